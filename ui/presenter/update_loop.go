package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Run      *RunPresenter
	Region   *RegionPresenter
	Clock    *ClockPresenter
	Schedule func()
}

func NewLoop(run *RunPresenter, region *RegionPresenter, clock *ClockPresenter, schedule func()) *Loop {
	return &Loop{Run: run, Region: region, Clock: clock, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Flush worker updates first so the clock sees the final running state.
	if l.Run != nil {
		l.Run.Tick()
	}
	if l.Clock != nil {
		l.Clock.Tick(now)
	}
	if l.Region != nil {
		l.Region.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
