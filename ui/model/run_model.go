package model

import (
	"sync/atomic"

	"github.com/soocke/pagegrab-go/domain/pipeline"
)

// RunModel tracks whether a pipeline run is active and keeps the last result.
// Concurrency-safe via atomic values because worker callbacks and presenter
// ticks may race. The zero value is idle and usable.
type RunModel struct {
	running atomic.Bool
	mode    atomic.Int32
	last    atomic.Pointer[pipeline.RunResult]
}

// Running reports whether a run is active.
func (m *RunModel) Running() bool {
	if m == nil {
		return false
	}
	return m.running.Load()
}

// Begin marks a run of mode as active. It returns false if one already is.
func (m *RunModel) Begin(mode pipeline.Mode) bool {
	if m == nil || !m.running.CompareAndSwap(false, true) {
		return false
	}
	m.mode.Store(int32(mode))
	return true
}

// Finish stores the result and marks the model idle.
func (m *RunModel) Finish(res pipeline.RunResult) {
	if m == nil {
		return
	}
	m.last.Store(&res)
	m.running.Store(false)
}

// Abort marks the model idle without a result, for runs that never started.
func (m *RunModel) Abort() {
	if m != nil {
		m.running.Store(false)
	}
}

// Mode is the mode of the active or most recent run.
func (m *RunModel) Mode() pipeline.Mode {
	if m == nil {
		return pipeline.ModeComplete
	}
	return pipeline.Mode(m.mode.Load())
}

// Last returns the most recent result, if any.
func (m *RunModel) Last() (pipeline.RunResult, bool) {
	if m == nil {
		return pipeline.RunResult{}, false
	}
	p := m.last.Load()
	if p == nil {
		return pipeline.RunResult{}, false
	}
	return *p, true
}
