// Package progress maps phase-local completion into the overall 0-100 scale
// and carries the status line callbacks shared by the run phases.
package progress

import "fmt"

// Span is a sub-range of the overall 0-100 progress scale.
type Span struct {
	From float64
	To   float64
}

// Full covers the whole scale.
var Full = Span{From: 0, To: 100}

// At maps a fraction in [0,1] into the span. Out of range fractions are clamped.
func (s Span) At(fraction float64) float64 {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return s.From + (s.To-s.From)*fraction
}

// Sub returns the part of s between the two fractions.
func (s Span) Sub(from, to float64) Span {
	return Span{From: s.At(from), To: s.At(to)}
}

// Reporter forwards progress and status updates. Either callback may be nil.
// Callbacks run on the worker goroutine; front ends marshal to their own thread.
type Reporter struct {
	OnProgress func(percent float64)
	OnStatus   func(message string)
}

// Progress reports an absolute percentage.
func (r Reporter) Progress(percent float64) {
	if r.OnProgress != nil {
		r.OnProgress(percent)
	}
}

// Status reports a status line.
func (r Reporter) Status(message string) {
	if r.OnStatus != nil {
		r.OnStatus(message)
	}
}

// Statusf formats and reports a status line.
func (r Reporter) Statusf(format string, args ...any) {
	if r.OnStatus != nil {
		r.OnStatus(fmt.Sprintf(format, args...))
	}
}
