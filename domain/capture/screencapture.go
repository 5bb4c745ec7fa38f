package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os/exec"
	"time"
)

const screencaptureTimeout = 10 * time.Second

// ScreencaptureGrabber shells out to the macOS screencapture tool. It needs no
// cgo and honours the Screen Recording permission of the terminal.
type ScreencaptureGrabber struct {
	Binary string
}

func NewScreencaptureGrabber() *ScreencaptureGrabber {
	return &ScreencaptureGrabber{Binary: "screencapture"}
}

func (g *ScreencaptureGrabber) GrabRegion(rect image.Rectangle) (*image.RGBA, error) {
	bin := g.Binary
	if bin == "" {
		bin = "screencapture"
	}
	ctx, cancel := context.WithTimeout(context.Background(), screencaptureTimeout)
	defer cancel()
	region := fmt.Sprintf("%d,%d,%d,%d", rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy())
	out, err := exec.CommandContext(ctx, bin, "-x", "-t", "png", "-R", region, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", bin, err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode %s output: %w", bin, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// Name identifies the backend in diagnostics.
func (g *ScreencaptureGrabber) Name() string { return "screencapture" }
