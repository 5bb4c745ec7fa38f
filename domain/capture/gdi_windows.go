//go:build windows

package capture

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
	srccopy           = 0x00CC0020
	captureBlt        = 0x40000000
	dibRGBColors      = 0
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	gdi32                  = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procGetSystemMetrics   = user32.NewProc("GetSystemMetrics")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
)

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte
}

// GDIGrabber copies the region straight from the desktop DC. Coordinates are
// virtual-screen coordinates, so monitors left of or above the primary one
// have negative offsets.
type GDIGrabber struct{}

func newGDIGrabber() (Grabber, error) { return GDIGrabber{}, nil }

// Name identifies the backend in diagnostics.
func (GDIGrabber) Name() string { return "gdi (BitBlt)" }

func (GDIGrabber) GrabRegion(rect image.Rectangle) (*image.RGBA, error) {
	screen := virtualScreen()
	if !rect.In(screen) {
		return nil, fmt.Errorf("region %v outside screen %v", rect, screen)
	}
	return bitBlt(rect)
}

func virtualScreen() image.Rectangle {
	x, y := systemMetric(smXVirtualScreen), systemMetric(smYVirtualScreen)
	w, h := systemMetric(smCxVirtualScreen), systemMetric(smCyVirtualScreen)
	return image.Rect(x, y, x+w, y+h)
}

// bitBlt copies r into a top-down 32-bit DIB and converts BGRA to RGBA.
func bitBlt(r image.Rectangle) (*image.RGBA, error) {
	w, h := r.Dx(), r.Dy()
	screenDC, _, err := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("GetDC: %v", err)
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, err := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC: %v", err)
	}
	defer procDeleteDC.Call(memDC)

	var bi bitmapInfo
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.Width = int32(w)
	bi.Header.Height = -int32(h)
	bi.Header.Planes = 1
	bi.Header.BitCount = 32
	bi.Header.SizeImage = uint32(w * h * 4)

	var bits unsafe.Pointer
	bmp, _, err := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if bmp == 0 {
		return nil, fmt.Errorf("CreateDIBSection: %v", err)
	}
	defer procDeleteObject.Call(bmp)

	if prev, _, err := procSelectObject.Call(memDC, bmp); prev == 0 || prev == ^uintptr(0) {
		return nil, fmt.Errorf("SelectObject: %v", err)
	}
	ok, _, err := procBitBlt.Call(memDC, 0, 0, uintptr(w), uintptr(h), screenDC,
		uintptr(int32(r.Min.X)), uintptr(int32(r.Min.Y)), srccopy|captureBlt)
	if ok == 0 {
		return nil, fmt.Errorf("BitBlt %v: %v", r, err)
	}

	n := w * h * 4
	src := unsafe.Slice((*byte)(bits), n)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < n; i += 4 {
		dst.Pix[i+0] = src[i+2]
		dst.Pix[i+1] = src[i+1]
		dst.Pix[i+2] = src[i+0]
		dst.Pix[i+3] = 0xFF
	}
	return dst, nil
}

func systemMetric(idx int) int {
	v, _, _ := procGetSystemMetrics.Call(uintptr(idx))
	return int(int32(v))
}
