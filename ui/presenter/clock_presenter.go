package presenter

import (
	"time"

	"github.com/soocke/pagegrab-go/ui/model"
)

// RunningModel reports whether a run is active.
type RunningModel interface{ Running() bool }

// ElapsedView displays the run time.
type ElapsedView interface {
	SetElapsed(elapsed time.Duration, runs int)
}

// ClockPresenter drives the run clock from the run model.
type ClockPresenter struct {
	clock *model.RunClock
	run   RunningModel
	view  ElapsedView
}

func NewClockPresenter(clock *model.RunClock, run RunningModel, view ElapsedView) *ClockPresenter {
	return &ClockPresenter{clock: clock, run: run, view: view}
}

// Tick advances the clock and pushes its values to the view.
func (p *ClockPresenter) Tick(now time.Time) {
	if p == nil || p.clock == nil || p.run == nil || p.view == nil {
		return
	}
	p.clock.OnTick(p.run.Running(), now)
	p.view.SetElapsed(p.clock.Values())
}
