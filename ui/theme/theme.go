package theme

// Palette constants and widget styles for the pagegrab window.

import (
	"github.com/soocke/pagegrab-go/domain/pipeline"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg        = "#f7f9fb"
	ColorPrimary   = "#2563eb"
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorWarning   = "#d97706"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleSectionLabel  = "section.TLabel"
)

// Init activates the base theme and configures the named styles.
func Init() {
	_ = ActivateTheme("azure light")
	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleSectionLabel,
		Foreground(ColorPrimary),
		Padding("2p 1p"),
	)
}

// StatusColor is the foreground used for a finished run's summary line.
func StatusColor(s pipeline.Status) string {
	switch s {
	case pipeline.StatusSuccess:
		return ColorAccent
	case pipeline.StatusCancelled:
		return ColorWarning
	case pipeline.StatusFailed:
		return ColorDanger
	default:
		return ColorText
	}
}
