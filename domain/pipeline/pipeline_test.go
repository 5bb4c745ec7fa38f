package pipeline

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func solidGrabber(onCall func(n int)) capture.Grabber {
	var mu sync.Mutex
	calls := 0
	return capture.GrabberFunc(func(rect image.Rectangle) (*image.RGBA, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if onCall != nil {
			onCall(n)
		}
		img := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
		return img, nil
	})
}

type nopKeys struct{}

func (nopKeys) PressKey(string) error { return nil }

func newOrchestrator(g capture.Grabber) *Orchestrator {
	logger := discardLogger()
	return New(capture.NewDriver(g, nopKeys{}, logger), collate.New(nil, logger), logger)
}

func runConfig(root string, mode Mode, pages int) RunConfig {
	return RunConfig{
		Mode:       mode,
		Region:     capture.RegionFromCorners(0, 0, 100, 100),
		Pages:      pages,
		OutputRoot: root,
		FolderName: "Book",
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// progressLog records progress values and statuses from the worker.
type progressLog struct {
	mu       sync.Mutex
	values   []float64
	statuses []string
}

func (p *progressLog) callbacks() Callbacks {
	return Callbacks{
		OnProgress: func(v float64) { p.mu.Lock(); p.values = append(p.values, v); p.mu.Unlock() },
		OnStatus:   func(s string) { p.mu.Lock(); p.statuses = append(p.statuses, s); p.mu.Unlock() },
	}
}

func TestRun_CompleteProducesPagesThenDocument(t *testing.T) {
	root := t.TempDir()
	log := &progressLog{}
	res, err := newOrchestrator(solidGrabber(nil)).Run(context.Background(), runConfig(root, ModeComplete, 3), log.callbacks())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status, res.Summary())
	require.NoError(t, res.Err)

	folder := filepath.Join(root, "Book")
	require.Equal(t, []string{"Book.pdf", "page_01.png", "page_02.png", "page_03.png"}, listDir(t, folder))
	require.Equal(t, filepath.Join(folder, "Book.pdf"), res.DocumentPath)
	require.Equal(t, 3, res.PagesCaptured)
	require.Equal(t, 3, res.DocumentPages)
	require.NotEmpty(t, res.ID)

	require.NotEmpty(t, log.values)
	for i := 1; i < len(log.values); i++ {
		require.GreaterOrEqual(t, log.values[i], log.values[i-1], "progress must not go backwards: %v", log.values)
	}
	require.Contains(t, log.values, 50.0)
	require.Contains(t, log.values, 75.0)
	require.Equal(t, 100.0, log.values[len(log.values)-1])
	require.True(t, strings.HasPrefix(log.statuses[len(log.statuses)-1], "Complete! PDF created: Book.pdf (3 pages"), log.statuses)
}

func TestRun_CancelOnPageThreeOfTen(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := solidGrabber(func(n int) {
		if n == 3 {
			cancel()
		}
	})
	res, err := newOrchestrator(g).Run(ctx, runConfig(root, ModeComplete, 10), Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, res.Status)
	require.LessOrEqual(t, res.PagesCaptured, 3)
	require.Empty(t, res.DocumentPath)

	files := listDir(t, filepath.Join(root, "Book"))
	require.LessOrEqual(t, len(files), 3)
	for _, f := range files {
		require.False(t, strings.HasSuffix(f, ".pdf"), "phase 2 must not start after cancellation")
	}
	require.Equal(t, "Cancelled after 3 of 10 pages", res.Summary())
}

func TestRun_DeleteIntermediates(t *testing.T) {
	root := t.TempDir()
	cfg := runConfig(root, ModeComplete, 4)
	cfg.DeleteIntermediates = true
	res, err := newOrchestrator(solidGrabber(nil)).Run(context.Background(), cfg, Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status)
	require.Equal(t, 4, res.Removed)
	require.Empty(t, res.CleanupFailures)
	require.Equal(t, []string{"Book.pdf"}, listDir(t, filepath.Join(root, "Book")))
	require.Contains(t, res.Summary(), "4 PNG files deleted")
}

func TestRun_ReusedFolderOnlyCollatesThisRunsPages(t *testing.T) {
	root := t.TempDir()
	o := newOrchestrator(solidGrabber(nil))
	first, err := o.Run(context.Background(), runConfig(root, ModeCaptureOnly, 5), Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, first.Status, first.Summary())

	cfg := runConfig(root, ModeComplete, 3)
	cfg.DeleteIntermediates = true
	res, err := o.Run(context.Background(), cfg, Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status, res.Summary())
	require.Equal(t, 3, res.PagesCaptured)
	require.Equal(t, 3, res.DocumentPages)
	require.Equal(t, 3, res.Removed)
	require.Equal(t, []string{"Book.pdf", "page_04.png", "page_05.png"}, listDir(t, filepath.Join(root, "Book")))
}

func TestRun_KeepIntermediatesByDefault(t *testing.T) {
	root := t.TempDir()
	res, err := newOrchestrator(solidGrabber(nil)).Run(context.Background(), runConfig(root, ModeComplete, 2), Callbacks{})
	require.NoError(t, err)
	require.Equal(t, 0, res.Removed)
	require.Len(t, listDir(t, filepath.Join(root, "Book")), 3)
}

func TestRun_CleanupFailureKeepsSuccess(t *testing.T) {
	root := t.TempDir()
	o := newOrchestrator(solidGrabber(nil))
	o.remove = func(path string) error {
		if strings.HasSuffix(path, "page_02.png") {
			return errors.New("permission denied")
		}
		return os.Remove(path)
	}
	cfg := runConfig(root, ModeComplete, 3)
	cfg.DeleteIntermediates = true
	res, err := o.Run(context.Background(), cfg, Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status)
	require.Equal(t, 2, res.Removed)
	require.Len(t, res.CleanupFailures, 1)
	require.ErrorIs(t, res.CleanupFailures[0].Err, errs.ErrCleanupFailure)
	require.Contains(t, res.Summary(), "1 could not be deleted")
}

func TestRun_InvalidConfigurationFailsWithoutSideEffects(t *testing.T) {
	root := t.TempDir()
	cfg := runConfig(root, ModeComplete, 3)
	cfg.Region = capture.RegionFromCorners(100, 100, 50, 200)
	res, err := newOrchestrator(solidGrabber(nil)).Run(context.Background(), cfg, Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, res.Status)
	require.ErrorIs(t, res.Err, errs.ErrInvalidConfiguration)
	require.Empty(t, listDir(t, root))

	cfg = runConfig(root, ModeComplete, 0)
	res, _ = newOrchestrator(solidGrabber(nil)).Run(context.Background(), cfg, Callbacks{})
	require.ErrorIs(t, res.Err, errs.ErrInvalidConfiguration)
}

func TestRun_CaptureOnly(t *testing.T) {
	root := t.TempDir()
	log := &progressLog{}
	res, err := newOrchestrator(solidGrabber(nil)).Run(context.Background(), runConfig(root, ModeCaptureOnly, 2), log.callbacks())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status)
	require.Equal(t, []string{"page_01.png", "page_02.png"}, listDir(t, filepath.Join(root, "Book")))
	require.Equal(t, 100.0, log.values[len(log.values)-1])
	require.Equal(t, "Done! 2 screenshots saved in Book", res.Summary())
}

func TestRun_CollateOnlyWithWarnings(t *testing.T) {
	root := t.TempDir()
	o := newOrchestrator(solidGrabber(nil))
	_, err := o.Run(context.Background(), runConfig(root, ModeCaptureOnly, 3), Callbacks{})
	require.NoError(t, err)
	folder := filepath.Join(root, "Book")
	require.NoError(t, os.WriteFile(filepath.Join(folder, "page_04.png"), []byte("broken"), 0o644))

	log := &progressLog{}
	cfg := RunConfig{Mode: ModeCollateOnly, InputDir: folder, DocumentName: "scan"}
	res, err := o.Run(context.Background(), cfg, log.callbacks())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, res.Status)
	require.Equal(t, 3, res.DocumentPages)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, filepath.Join(folder, "scan.pdf"), res.DocumentPath)
	require.Contains(t, res.Summary(), "1 images skipped")
	require.Equal(t, 0.0, log.values[0])
	require.Contains(t, log.values, 50.0)
	require.Contains(t, log.values, 75.0)
}

func TestRun_CollateOnlyEmptyFolderFails(t *testing.T) {
	dir := t.TempDir()
	res, err := newOrchestrator(solidGrabber(nil)).Run(context.Background(), RunConfig{Mode: ModeCollateOnly, InputDir: dir}, Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, res.Status)
	require.ErrorIs(t, res.Err, errs.ErrNoInputFound)
	require.True(t, strings.HasPrefix(res.Summary(), "Failed: no images found"))
}

type panicCollator struct{}

func (panicCollator) Collate(context.Context, collate.Options, progress.Reporter, progress.Span, progress.Span) (collate.Result, error) {
	panic("boom")
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	root := t.TempDir()
	logger := discardLogger()
	o := New(capture.NewDriver(solidGrabber(nil), nopKeys{}, logger), panicCollator{}, logger)
	res, err := o.Run(context.Background(), runConfig(root, ModeComplete, 1), Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, res.Status)
	require.Contains(t, res.Err.Error(), "boom")
	require.False(t, o.Running())
}

func TestStart_RejectsConcurrentRun(t *testing.T) {
	root := t.TempDir()
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	g := solidGrabber(func(n int) {
		if n == 1 {
			entered <- struct{}{}
			<-release
		}
	})
	o := newOrchestrator(g)

	done := make(chan RunResult, 1)
	job, err := o.Start(context.Background(), runConfig(root, ModeCaptureOnly, 2), Callbacks{OnDone: func(r RunResult) { done <- r }})
	require.NoError(t, err)
	<-entered
	require.True(t, o.Running())

	_, err = o.Start(context.Background(), runConfig(root, ModeCaptureOnly, 1), Callbacks{})
	require.ErrorIs(t, err, errs.ErrRunInProgress)
	_, err = o.Run(context.Background(), runConfig(root, ModeCaptureOnly, 1), Callbacks{})
	require.ErrorIs(t, err, errs.ErrRunInProgress)

	close(release)
	res := job.Wait()
	require.Equal(t, StatusSuccess, res.Status)
	select {
	case r := <-done:
		require.Equal(t, res.ID, r.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("OnDone not called")
	}
	require.False(t, o.Running())

	job2, err := o.Start(context.Background(), runConfig(root, ModeCaptureOnly, 1), Callbacks{})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, job2.Wait().Status)
}

func TestStart_CancelJob(t *testing.T) {
	root := t.TempDir()
	var job *Job
	started := make(chan struct{})
	g := solidGrabber(func(n int) {
		if n == 2 {
			<-started
			job.Cancel()
		}
	})
	o := newOrchestrator(g)
	var err error
	job, err = o.Start(context.Background(), runConfig(root, ModeComplete, 10), Callbacks{})
	require.NoError(t, err)
	close(started)
	res := job.Wait()
	require.Equal(t, StatusCancelled, res.Status)
	require.LessOrEqual(t, res.PagesCaptured, 2)
}

func TestRunConfig_DocumentAndFolder(t *testing.T) {
	cfg := runConfig("/out", ModeComplete, 1)
	require.Equal(t, filepath.Join("/out", "Book"), cfg.Folder())
	require.Equal(t, "Book.pdf", cfg.Document())
	cfg.DocumentName = "final"
	require.Equal(t, "final.pdf", cfg.Document())

	collateCfg := RunConfig{Mode: ModeCollateOnly, InputDir: "/scans/Thesis"}
	require.Equal(t, "/scans/Thesis", collateCfg.Folder())
	require.Equal(t, "Thesis.pdf", collateCfg.Document())
	require.NoError(t, collateCfg.Validate())
	require.ErrorIs(t, RunConfig{Mode: Mode(9)}.Validate(), errs.ErrInvalidConfiguration)
}

func TestSummary_Failed(t *testing.T) {
	r := RunResult{Status: StatusFailed, Err: errs.ErrWriteFailure}
	require.Equal(t, "Failed: write failure", r.Summary())
	require.Equal(t, "cancelled", StatusCancelled.String())
	require.Equal(t, "collate", ModeCollateOnly.String())
}
