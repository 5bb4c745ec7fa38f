package model

import "time"

// RunClock measures the active run and counts finished runs. It is decoupled
// from the UI; presenters call OnTick and read Values. The zero value is
// ready to use.
type RunClock struct {
	active  bool
	started time.Time
	elapsed time.Duration
	runs    int
}

func NewRunClock() *RunClock { return &RunClock{} }

// OnTick advances the clock from the current running state.
func (c *RunClock) OnTick(running bool, now time.Time) {
	if c == nil {
		return
	}
	switch {
	case running && !c.active:
		c.active = true
		c.started = now
		c.elapsed = 0
	case running:
		c.elapsed = now.Sub(c.started)
	case c.active:
		c.elapsed = now.Sub(c.started)
		c.active = false
		c.runs++
	}
}

// Values returns the elapsed time of the current or last run and the number
// of finished runs.
func (c *RunClock) Values() (elapsed time.Duration, runs int) {
	if c == nil {
		return 0, 0
	}
	return c.elapsed, c.runs
}
