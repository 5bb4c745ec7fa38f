//go:build darwin

package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// NativeGrabber captures through CoreGraphics.
type NativeGrabber struct{}

func (NativeGrabber) GrabRegion(rect image.Rectangle) (*image.RGBA, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("no active display")
	}
	return screenshot.CaptureRect(rect)
}

// Name identifies the backend in diagnostics.
func (NativeGrabber) Name() string { return "native (CoreGraphics)" }
