//go:build !darwin

package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// NativeGrabber captures through the platform screenshot API (X11 or GDI).
type NativeGrabber struct{}

func (NativeGrabber) GrabRegion(rect image.Rectangle) (*image.RGBA, error) {
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return nil, err
	}
	if !rect.In(screen) {
		return nil, fmt.Errorf("region %v outside screen %v", rect, screen)
	}
	return screenshot.CaptureRect(rect)
}

// Name identifies the backend in diagnostics.
func (NativeGrabber) Name() string { return "native (screenshot)" }
