package action

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"down":      "down",
		" Down ":    "down",
		"ArrowDown": "down",
		"PgDn":      "pagedown",
		"Return":    "enter",
		" ":         "space",
		"F5":        "f5",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q): expected %q got %q", in, want, got)
		}
	}
}
