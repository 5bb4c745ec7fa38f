//go:build !windows

package action

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

type robotgoSender struct{}

// NewKeySender returns the platform key sender (robotgo on macOS and Linux).
func NewKeySender() KeySender { return robotgoSender{} }

// PressKey taps the named key, e.g. "down", "pagedown", "space" or "f5".
func (robotgoSender) PressKey(key string) error {
	k := Normalize(key)
	if k == "" {
		return fmt.Errorf("empty key")
	}
	if err := robotgo.KeyTap(k); err != nil {
		return fmt.Errorf("key tap %q: %w", k, err)
	}
	return nil
}

// Name identifies the sender in diagnostics.
func (robotgoSender) Name() string { return "robotgo" }
