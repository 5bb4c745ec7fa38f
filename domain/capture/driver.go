package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

// PageAdvancer moves the foreground viewer to the next page.
type PageAdvancer interface {
	PressKey(key string) error
}

// Options describes one capture run. Build it once and pass it by value.
type Options struct {
	Region    Region
	Pages     int
	Folder    string // absolute or relative output directory
	Prefix    string // file name prefix, default "page_"
	Key       string // next-page key, default "down"
	Countdown int    // countdown ticks before the first page
	Tick      time.Duration
	Settle    time.Duration
}

// Validate rejects options that must not produce any side effect.
func (o Options) Validate() error {
	if err := o.Region.Validate(); err != nil {
		return err
	}
	if o.Pages <= 0 {
		return fmt.Errorf("%w: page count %d must be positive", errs.ErrInvalidConfiguration, o.Pages)
	}
	if o.Folder == "" {
		return fmt.Errorf("%w: output folder is empty", errs.ErrInvalidConfiguration)
	}
	if o.Countdown < 0 || o.Settle < 0 {
		return fmt.Errorf("%w: negative delay", errs.ErrInvalidConfiguration)
	}
	return nil
}

// PageFailure records a page that could not be captured or written.
type PageFailure struct {
	Page int
	Err  error
}

func (f PageFailure) Error() string { return fmt.Sprintf("page %d: %v", f.Page, f.Err) }

// Report summarises a capture run.
type Report struct {
	Folder    string
	Pages     []string // written page paths in capture order
	Failures  []PageFailure
	Cancelled bool
}

// Captured is the number of page images written.
func (r Report) Captured() int { return len(r.Pages) }

// Stats summarises driver behaviour for instrumentation.
type Stats struct {
	Captures   uint64
	Failures   uint64
	AvgCapture time.Duration
}

// Driver grabs the region once per page and advances the viewer between grabs.
type Driver struct {
	grabber  Grabber
	keys     PageAdvancer
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	captures atomic.Uint64
	failures atomic.Uint64
	nanos    atomic.Uint64
}

// NewDriver returns a Driver. keys may be nil when the viewer is advanced by hand.
func NewDriver(grabber Grabber, keys PageAdvancer, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{grabber: grabber, keys: keys, logger: logger, sleep: sleepContext}
}

// Stats returns cumulative counters across runs.
func (d *Driver) Stats() Stats {
	captures := d.captures.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(d.nanos.Load() / captures)
	}
	return Stats{Captures: captures, Failures: d.failures.Load(), AvgCapture: avg}
}

// Run executes the countdown and the page loop. Progress is mapped into span.
// Cancellation is checked on each countdown tick and before each page; a page
// already started always completes. Per-page failures are recorded and the
// loop continues. The returned error is ErrInvalidConfiguration, ErrWriteFailure
// for an unusable folder, or ErrCancelled alongside the partial report.
func (d *Driver) Run(ctx context.Context, opts Options, rep progress.Reporter, span progress.Span) (Report, error) {
	if err := opts.Validate(); err != nil {
		return Report{}, err
	}
	if opts.Prefix == "" {
		opts.Prefix = "page_"
	}
	if opts.Key == "" {
		opts.Key = "down"
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	report := Report{Folder: opts.Folder}

	if err := os.MkdirAll(opts.Folder, 0o755); err != nil {
		return report, fmt.Errorf("%w: create %s: %v", errs.ErrWriteFailure, opts.Folder, err)
	}

	rep.Progress(span.At(0))
	for i := opts.Countdown; i > 0; i-- {
		if ctx.Err() != nil {
			report.Cancelled = true
			return report, errs.ErrCancelled
		}
		rep.Statusf("Starting in %d...", i)
		if err := d.sleep(ctx, opts.Tick); err != nil {
			report.Cancelled = true
			return report, errs.ErrCancelled
		}
	}

	rect := opts.Region.Rect()
	for page := 1; page <= opts.Pages; page++ {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}
		rep.Statusf("Processing page %d/%d", page, opts.Pages)
		path := filepath.Join(opts.Folder, PageName(opts.Prefix, page, opts.Pages))
		if err := d.capturePage(rect, path); err != nil {
			d.failures.Add(1)
			report.Failures = append(report.Failures, PageFailure{Page: page, Err: err})
			d.logger.Error("capture page", "page", page, "path", path, "error", err)
		} else {
			report.Pages = append(report.Pages, path)
			d.logger.Debug("page saved", "page", page, "path", path)
		}
		// The viewer advances even after a failed page so numbering stays aligned.
		if d.keys != nil {
			if err := d.keys.PressKey(opts.Key); err != nil {
				d.logger.Warn("next page key", "key", opts.Key, "error", err)
			}
		}
		rep.Progress(span.At(float64(page) / float64(opts.Pages)))
		if page < opts.Pages && opts.Settle > 0 {
			if err := d.sleep(ctx, opts.Settle); err != nil {
				report.Cancelled = true
				break
			}
		}
	}

	d.logStats()
	if report.Cancelled {
		return report, errs.ErrCancelled
	}
	return report, nil
}

// GrabOnce captures the region to path without countdown or key press.
func (d *Driver) GrabOnce(region Region, path string) error {
	if err := region.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	return d.capturePage(region.Rect(), path)
}

func (d *Driver) capturePage(rect image.Rectangle, path string) error {
	if d.grabber == nil {
		return fmt.Errorf("%w: no grabber", errs.ErrCaptureFailure)
	}
	start := time.Now()
	img, err := d.grabber.GrabRegion(rect)
	if err != nil {
		return fmt.Errorf("%w: grab: %v", errs.ErrCaptureFailure, err)
	}
	if img == nil {
		return fmt.Errorf("%w: grab returned no image", errs.ErrCaptureFailure)
	}
	d.nanos.Add(uint64(time.Since(start).Nanoseconds()))
	d.captures.Add(1)
	if err := imaging.Save(img, path); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("%w: save %s: %v", errs.ErrCaptureFailure, filepath.Base(path), err)
	}
	return nil
}

func (d *Driver) logStats() {
	stats := d.Stats()
	d.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
