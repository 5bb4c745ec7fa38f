package termui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress renders a percent bar with the latest status as its description.
type Progress struct {
	bar *progressbar.ProgressBar
	w   io.Writer
}

// NewProgress creates a 0-100 bar on w.
func NewProgress(w io.Writer, description string) *Progress {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)
	return &Progress{bar: bar, w: w}
}

// Set moves the bar to percent (0-100).
func (p *Progress) Set(percent float64) {
	_ = p.bar.Set(int(percent))
}

// Describe replaces the text before the bar.
func (p *Progress) Describe(status string) {
	p.bar.Describe(status)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}

// Abandon stops rendering without completing, leaving the line in place.
func (p *Progress) Abandon() {
	_ = p.bar.Exit()
	fmt.Fprint(p.w, "\n")
}
