// Package termui holds the terminal helpers shared by the CLI commands.
package termui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// UI writes status lines and tables.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// New returns a UI on stdout/stderr. noColor disables ANSI colors.
func New(noColor bool) *UI {
	if noColor {
		color.NoColor = true
	}
	return &UI{Out: os.Stdout, Err: os.Stderr}
}

func (ui *UI) line(w io.Writer, c *color.Color, symbol, format string, args ...any) {
	c.Fprintf(w, "%s %s\n", symbol, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...any) {
	ui.line(ui.Out, color.New(color.FgGreen), "✓", format, args...)
}

// Error prints an error message to stderr.
func (ui *UI) Error(format string, args ...any) {
	ui.line(ui.Err, color.New(color.FgRed), "✗", format, args...)
}

// Warning prints a warning message.
func (ui *UI) Warning(format string, args ...any) {
	ui.line(ui.Out, color.New(color.FgYellow), "⚠", format, args...)
}

// Info prints an informational message.
func (ui *UI) Info(format string, args ...any) {
	ui.line(ui.Out, color.New(color.FgCyan), "ℹ", format, args...)
}

// Step prints a step message.
func (ui *UI) Step(format string, args ...any) {
	ui.line(ui.Out, color.New(color.FgBlue), "→", format, args...)
}

// Message prints plain text.
func (ui *UI) Message(format string, args ...any) {
	fmt.Fprintf(ui.Out, format+"\n", args...)
}

// Section prints an underlined header.
func (ui *UI) Section(title string) {
	color.New(color.FgCyan, color.Bold).Fprintf(ui.Out, "\n%s\n", title)
	fmt.Fprintf(ui.Out, "%s\n\n", strings.Repeat("=", len([]rune(title))))
}

// Table prints rows aligned under headers.
func (ui *UI) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(ui.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	sep := make([]string, len(headers))
	for i, h := range headers {
		sep[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(sep, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}
