package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// ElapsedLabels shows the current run time and the number of runs started.
type ElapsedLabels struct {
	runLbl   *LabelWidget
	countLbl *LabelWidget
}

// NewElapsedLabels grids both labels into parent at (row, startCol) and
// (row, startCol+1).
func NewElapsedLabels(parent *FrameWidget, row, startCol int) *ElapsedLabels {
	s := &ElapsedLabels{runLbl: Label(Width(12)), countLbl: Label(Width(10))}
	Grid(s.runLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.countLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.SetElapsed(0, 0)
	return s
}

// SetElapsed updates both labels.
func (s *ElapsedLabels) SetElapsed(d time.Duration, runs int) {
	if s == nil || s.runLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	s.runLbl.Configure(Txt(fmt.Sprintf("Run: %02d:%02d", seconds/60, seconds%60)))
	s.countLbl.Configure(Txt(fmt.Sprintf("Runs: %d", runs)))
}
