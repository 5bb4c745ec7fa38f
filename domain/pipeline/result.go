package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
)

// Status is the terminal state of a run.
type Status int

const (
	StatusSuccess Status = iota
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// CleanupFailure records an intermediate file that could not be removed.
type CleanupFailure struct {
	Path string
	Err  error
}

func (f CleanupFailure) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(f.Path), f.Err)
}

// RunResult is produced exactly once per run.
type RunResult struct {
	ID     string
	Mode   Mode
	Status Status
	Err    error

	Folder          string
	PagesRequested  int
	PagesCaptured   int
	CaptureFailures []capture.PageFailure

	DocumentPath  string
	DocumentSize  int64
	DocumentPages int
	Warnings      []collate.Warning

	Removed         int
	CleanupFailures []CleanupFailure

	Started  time.Time
	Finished time.Time
}

// Elapsed is the wall time of the run.
func (r RunResult) Elapsed() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Summary renders the single human-readable line for the run.
func (r RunResult) Summary() string {
	switch r.Status {
	case StatusCancelled:
		switch {
		case r.Mode == ModeCollateOnly:
			return "Cancelled, no document written"
		case r.PagesCaptured >= r.PagesRequested:
			return fmt.Sprintf("Cancelled before the PDF was written, %d pages kept in %s", r.PagesCaptured, filepath.Base(r.Folder))
		default:
			return fmt.Sprintf("Cancelled after %d of %d pages", r.PagesCaptured, r.PagesRequested)
		}
	case StatusFailed:
		return "Failed: " + describeError(r.Err)
	}

	var b strings.Builder
	if r.Mode == ModeCaptureOnly {
		fmt.Fprintf(&b, "Done! %d screenshots saved in %s", r.PagesCaptured, filepath.Base(r.Folder))
	} else {
		fmt.Fprintf(&b, "Complete! PDF created: %s (%d pages, %s)",
			filepath.Base(r.DocumentPath), r.DocumentPages, humanize.Bytes(uint64(r.DocumentSize)))
	}
	if n := len(r.CaptureFailures); n > 0 {
		fmt.Fprintf(&b, ", %d pages failed", n)
	}
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(&b, ", %d images skipped", n)
	}
	if r.Removed > 0 {
		fmt.Fprintf(&b, ", %d PNG files deleted", r.Removed)
	}
	if n := len(r.CleanupFailures); n > 0 {
		fmt.Fprintf(&b, ", %d could not be deleted", n)
	}
	return b.String()
}

func describeError(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, errs.ErrNoInputFound):
		return "no images found: " + err.Error()
	case errors.Is(err, errs.ErrNoUsableInput):
		return "no usable images: " + err.Error()
	default:
		return err.Error()
	}
}
