package capture

import (
	"fmt"
	"image"

	"github.com/soocke/pagegrab-go/config"
)

// Grabber captures a rectangle of the screen.
type Grabber interface {
	GrabRegion(rect image.Rectangle) (*image.RGBA, error)
}

// GrabberFunc adapts a function to Grabber.
type GrabberFunc func(rect image.Rectangle) (*image.RGBA, error)

func (f GrabberFunc) GrabRegion(rect image.Rectangle) (*image.RGBA, error) { return f(rect) }

// NewGrabber returns the backend named by the config value.
func NewGrabber(backend string) (Grabber, error) {
	switch backend {
	case "", config.BackendNative:
		return NativeGrabber{}, nil
	case config.BackendScreencapture:
		return NewScreencaptureGrabber(), nil
	case config.BackendGDI:
		return newGDIGrabber()
	default:
		return nil, fmt.Errorf("unknown capture backend %q", backend)
	}
}
