//go:build !windows

package capture

import "errors"

func newGDIGrabber() (Grabber, error) {
	return nil, errors.New("the gdi capture backend is only available on Windows")
}
