package action

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

const keyeventfKeyUp = 0x0002

type windowsSender struct {
	keybdEvent *windows.LazyProc
}

// NewKeySender returns the platform key sender (keybd_event on Windows).
func NewKeySender() KeySender {
	user32 := windows.NewLazySystemDLL("user32.dll")
	return &windowsSender{keybdEvent: user32.NewProc("keybd_event")}
}

// PressKey sends a key down followed by a key up for the named key.
func (s *windowsSender) PressKey(key string) error {
	vk, ok := ParseVK(key)
	if !ok {
		return fmt.Errorf("unsupported key %q", key)
	}
	if err := s.keybdEvent.Find(); err != nil {
		return err
	}
	_, _, _ = s.keybdEvent.Call(uintptr(vk), 0, 0, 0)
	// small sleep to emulate human press duration
	time.Sleep(40 * time.Millisecond)
	_, _, _ = s.keybdEvent.Call(uintptr(vk), 0, keyeventfKeyUp, 0)
	return nil
}

// Name identifies the sender in diagnostics.
func (s *windowsSender) Name() string { return "keybd_event" }

var namedVK = map[string]byte{
	"down":     0x28, // VK_DOWN
	"up":       0x26,
	"left":     0x25,
	"right":    0x27,
	"pagedown": 0x22, // VK_NEXT
	"pageup":   0x21, // VK_PRIOR
	"space":    0x20,
	"enter":    0x0D,
	"home":     0x24,
	"end":      0x23,
}

// ParseVK converts a key token (e.g. "down", "F3", "R") into a Windows virtual-key code.
// Recognizes named navigation keys, F1..F12 and single letters/digits.
func ParseVK(key string) (byte, bool) {
	k := Normalize(key)
	if vk, ok := namedVK[k]; ok {
		return vk, true
	}
	if len(k) >= 2 && len(k) <= 3 && k[0] == 'f' {
		n := 0
		for _, c := range k[1:] {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		if n >= 1 && n <= 12 {
			return byte(0x70 + (n - 1)), true // VK_F1=0x70
		}
		return 0, false
	}
	if len(k) == 1 {
		c := k[0]
		if c >= 'a' && c <= 'z' {
			return c - 'a' + 'A', true // 'A'..'Z' match VK codes
		}
		if c >= '0' && c <= '9' {
			return c, true
		}
	}
	return 0, false
}
