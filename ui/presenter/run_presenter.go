package presenter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/pipeline"
	"github.com/soocke/pagegrab-go/ui/model"
)

// Canceler stops an active run.
type Canceler interface{ Cancel() }

// Starter launches a run on a worker goroutine. Orchestrator.Start satisfies
// it through a small adapter.
type Starter func(ctx context.Context, cfg pipeline.RunConfig, cb pipeline.Callbacks) (Canceler, error)

// RunConfigSource builds the configuration for a mode from the current form.
type RunConfigSource func(mode pipeline.Mode) (pipeline.RunConfig, error)

// RunView shows run progress. Calls happen on the UI thread only.
type RunView interface {
	SetProgress(percent float64)
	SetStatus(text string)
	SetRunning(running bool)
	ShowResult(res pipeline.RunResult)
}

// RunPresenter starts and cancels runs and relays worker updates to the view.
// Worker callbacks only queue; Tick applies the queue on the UI thread.
type RunPresenter struct {
	model  *model.RunModel
	start  Starter
	source RunConfigSource
	view   RunView
	logger *slog.Logger

	mu       sync.Mutex
	progress float64
	hasProg  bool
	status   string
	hasStat  bool
	done     *pipeline.RunResult

	job Canceler
}

func NewRunPresenter(m *model.RunModel, start Starter, source RunConfigSource, view RunView, logger *slog.Logger) *RunPresenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RunPresenter{model: m, start: start, source: source, view: view, logger: logger}
}

// Start begins a run of mode. While one is active the request is rejected
// with ErrRunInProgress and the view is left as is.
func (p *RunPresenter) Start(ctx context.Context, mode pipeline.Mode) error {
	if p == nil || p.model == nil || p.start == nil || p.source == nil || p.view == nil {
		return fmt.Errorf("run presenter not wired")
	}
	if p.model.Running() {
		return errs.ErrRunInProgress
	}
	cfg, err := p.source(mode)
	if err != nil {
		p.view.SetStatus(err.Error())
		return err
	}
	if !p.model.Begin(mode) {
		return errs.ErrRunInProgress
	}
	p.view.SetRunning(true)
	p.view.SetProgress(0)
	p.view.SetStatus(fmt.Sprintf("Starting %s...", mode))
	job, err := p.start(ctx, cfg, pipeline.Callbacks{
		OnProgress: p.onProgress,
		OnStatus:   p.onStatus,
		OnDone:     p.onDone,
	})
	if err != nil {
		p.model.Abort()
		p.view.SetRunning(false)
		p.view.SetStatus("Could not start: " + err.Error())
		p.logger.Warn("run start rejected", "mode", mode.String(), "error", err)
		return err
	}
	p.job = job
	return nil
}

// Cancel requests cancellation of the active run.
func (p *RunPresenter) Cancel() {
	if p == nil || p.job == nil || !p.model.Running() {
		return
	}
	p.job.Cancel()
	if p.view != nil {
		p.view.SetStatus("Cancelling...")
	}
}

func (p *RunPresenter) onProgress(percent float64) {
	p.mu.Lock()
	p.progress, p.hasProg = percent, true
	p.mu.Unlock()
}

func (p *RunPresenter) onStatus(text string) {
	p.mu.Lock()
	p.status, p.hasStat = text, true
	p.mu.Unlock()
}

func (p *RunPresenter) onDone(res pipeline.RunResult) {
	p.mu.Lock()
	p.done = &res
	p.mu.Unlock()
}

// Tick flushes queued worker updates to the view. Only the latest progress
// and status are shown; the result is applied last.
func (p *RunPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	progress, hasProg := p.progress, p.hasProg
	status, hasStat := p.status, p.hasStat
	done := p.done
	p.hasProg, p.hasStat, p.done = false, false, nil
	p.mu.Unlock()

	if hasProg {
		p.view.SetProgress(progress)
	}
	if hasStat {
		p.view.SetStatus(status)
	}
	if done != nil {
		p.job = nil
		p.model.Finish(*done)
		p.view.SetRunning(false)
		p.view.ShowResult(*done)
	}
}
