package action

import "strings"

// KeySender injects a key press into the foreground application.
// Presses are fire-and-forget: no focus check, no acknowledgement.
type KeySender interface {
	PressKey(key string) error
}

// keyAliases maps accepted spellings onto the canonical names used by the
// platform senders.
var keyAliases = map[string]string{
	"arrowdown":  "down",
	"arrow_down": "down",
	"arrowup":    "up",
	"arrow_up":   "up",
	"arrowright": "right",
	"arrowleft":  "left",
	"pgdn":       "pagedown",
	"page_down":  "pagedown",
	"pgup":       "pageup",
	"page_up":    "pageup",
	"return":     "enter",
	" ":          "space",
}

// Normalize lower-cases a key token and resolves aliases. Unknown tokens are
// returned lower-cased so the platform sender can reject them.
func Normalize(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" && key != "" {
		k = " "
	}
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}
