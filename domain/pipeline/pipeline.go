// Package pipeline sequences capture and collation into one cancellable run
// with composed progress and optional cleanup of the page images.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

// Capturer runs the capture phase.
type Capturer interface {
	Run(ctx context.Context, opts capture.Options, rep progress.Reporter, span progress.Span) (capture.Report, error)
}

// Collator runs the collation phase.
type Collator interface {
	Collate(ctx context.Context, opts collate.Options, rep progress.Reporter, load, write progress.Span) (collate.Result, error)
}

// Callbacks receive run updates on the worker goroutine. All are optional.
type Callbacks struct {
	OnProgress func(percent float64)
	OnStatus   func(message string)
	OnDone     func(RunResult)
}

// Progress ranges of the complete process.
var (
	CaptureSpan = progress.Span{From: 0, To: 50}
	LoadSpan    = progress.Span{From: 50, To: 75}
	WriteSpan   = progress.Span{From: 75, To: 100}
)

// Orchestrator runs at most one pipeline at a time.
type Orchestrator struct {
	capturer Capturer
	collator Collator
	logger   *slog.Logger
	running  atomic.Bool
	remove   func(string) error
	now      func() time.Time
}

func New(capturer Capturer, collator Collator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{capturer: capturer, collator: collator, logger: logger, remove: os.Remove, now: time.Now}
}

// Running reports whether a run is active.
func (o *Orchestrator) Running() bool { return o.running.Load() }

// Run executes a pipeline on the calling goroutine. The only error is
// ErrRunInProgress; every other outcome is described by the RunResult.
func (o *Orchestrator) Run(ctx context.Context, cfg RunConfig, cb Callbacks) (RunResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return RunResult{}, errs.ErrRunInProgress
	}
	res := o.execute(ctx, uuid.NewString(), cfg, cb)
	o.running.Store(false)
	if cb.OnDone != nil {
		cb.OnDone(res)
	}
	return res, nil
}

// Job is a pipeline running on its own worker goroutine.
type Job struct {
	ID     string
	cancel context.CancelFunc
	done   chan struct{}
	result RunResult
}

// Cancel requests cooperative cancellation. Safe to call repeatedly.
func (j *Job) Cancel() { j.cancel() }

// Done is closed once the result is available.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the run ends and returns its result.
func (j *Job) Wait() RunResult {
	<-j.done
	return j.result
}

// Start launches a pipeline on a worker goroutine. A second Start while one is
// active is rejected with ErrRunInProgress. The running flag is cleared before
// OnDone so the callback may start the next run.
func (o *Orchestrator) Start(parent context.Context, cfg RunConfig, cb Callbacks) (*Job, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, errs.ErrRunInProgress
	}
	ctx, cancel := context.WithCancel(parent)
	job := &Job{ID: uuid.NewString(), cancel: cancel, done: make(chan struct{})}
	go func() {
		res := o.execute(ctx, job.ID, cfg, cb)
		cancel()
		job.result = res
		o.running.Store(false)
		close(job.done)
		if cb.OnDone != nil {
			cb.OnDone(res)
		}
	}()
	return job, nil
}

func (o *Orchestrator) execute(ctx context.Context, id string, cfg RunConfig, cb Callbacks) (res RunResult) {
	logger := o.logger.With("run", id, "mode", cfg.Mode.String())
	rep := progress.Reporter{OnProgress: cb.OnProgress, OnStatus: cb.OnStatus}
	res = RunResult{ID: id, Mode: cfg.Mode, PagesRequested: cfg.Pages, Started: o.now()}
	if cfg.Mode == ModeCollateOnly {
		res.PagesRequested = 0
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panic", "error", r, "stack", string(debug.Stack()))
			res = o.finish(logger, rep, res, StatusFailed, fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := cfg.Validate(); err != nil {
		return o.finish(logger, rep, res, StatusFailed, err)
	}
	res.Folder = cfg.Folder()
	logger.Info("run started", "folder", res.Folder, "pages", cfg.Pages, "region", cfg.Region.String())

	opts := cfg.collateOptions()
	if cfg.Mode != ModeCollateOnly {
		span := CaptureSpan
		if cfg.Mode == ModeCaptureOnly {
			span = progress.Full
		}
		report, err := o.capturer.Run(ctx, cfg.captureOptions(), rep, span)
		res.PagesCaptured = report.Captured()
		res.CaptureFailures = report.Failures
		switch {
		case errors.Is(err, errs.ErrCancelled):
			return o.finish(logger, rep, res, StatusCancelled, err)
		case err != nil:
			return o.finish(logger, rep, res, StatusFailed, err)
		case report.Captured() == 0:
			return o.finish(logger, rep, res, StatusFailed, fmt.Errorf("%w: all %d pages failed", errs.ErrCaptureFailure, len(report.Failures)))
		}
		if cfg.Mode == ModeCaptureOnly {
			return o.finish(logger, rep, res, StatusSuccess, nil)
		}
		// Only this run's pages; a reused folder may hold older ones.
		opts.Files = report.Pages
		rep.Status("Phase 2/2: Converting to PDF...")
	}

	load := LoadSpan
	if cfg.Mode == ModeCollateOnly {
		load = progress.Span{From: 0, To: 50}
	}
	doc, err := o.collator.Collate(ctx, opts, rep, load, WriteSpan)
	res.Warnings = doc.Warnings
	switch {
	case errors.Is(err, errs.ErrCancelled):
		return o.finish(logger, rep, res, StatusCancelled, err)
	case err != nil:
		return o.finish(logger, rep, res, StatusFailed, err)
	}
	res.DocumentPath = doc.Path
	res.DocumentSize = doc.Size
	res.DocumentPages = doc.Pages

	if cfg.DeleteIntermediates {
		o.cleanup(logger, &res, doc.Inputs)
	}
	return o.finish(logger, rep, res, StatusSuccess, nil)
}

// cleanup removes the images that went into the document. Failures are
// recorded and never change the run status.
func (o *Orchestrator) cleanup(logger *slog.Logger, res *RunResult, inputs []string) {
	for _, path := range inputs {
		if err := o.remove(path); err != nil {
			res.CleanupFailures = append(res.CleanupFailures, CleanupFailure{Path: path, Err: fmt.Errorf("%w: %v", errs.ErrCleanupFailure, err)})
			logger.Warn("cleanup", "path", path, "error", err)
			continue
		}
		res.Removed++
	}
}

func (o *Orchestrator) finish(logger *slog.Logger, rep progress.Reporter, res RunResult, status Status, err error) RunResult {
	res.Status = status
	res.Err = err
	res.Finished = o.now()
	if status == StatusSuccess {
		rep.Progress(100)
	}
	rep.Status(res.Summary())
	logger.Info("run finished",
		"status", status.String(),
		"pages", res.PagesCaptured,
		"document", res.DocumentPath,
		"removed", res.Removed,
		"elapsed", res.Elapsed(),
		"error", err,
	)
	return res
}
