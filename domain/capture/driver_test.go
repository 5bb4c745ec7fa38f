package capture

import (
	"context"
	"errors"
	"image"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// fakeGrabber returns a solid image whose red channel encodes the call number.
type fakeGrabber struct {
	mu     sync.Mutex
	calls  int
	failOn map[int]bool
	onCall func(n int)
}

func (g *fakeGrabber) GrabRegion(rect image.Rectangle) (*image.RGBA, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	g.mu.Unlock()
	if g.onCall != nil {
		g.onCall(n)
	}
	if g.failOn[n] {
		return nil, errors.New("display asleep")
	}
	img := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(n)
		img.Pix[i+3] = 0xff
	}
	return img, nil
}

type fakeKeys struct {
	mu      sync.Mutex
	pressed []string
}

func (k *fakeKeys) PressKey(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed = append(k.pressed, key)
	return nil
}

func testOptions(folder string, pages int) Options {
	return Options{Region: RegionFromCorners(0, 0, 100, 100), Pages: pages, Folder: folder}
}

func pngFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	sort.Strings(matches)
	return matches
}

func TestDriver_CapturesExactlyNPages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Book")
	keys := &fakeKeys{}
	d := NewDriver(&fakeGrabber{}, keys, discardLogger())

	var statuses []string
	var last float64
	rep := progress.Reporter{
		OnProgress: func(p float64) { last = p },
		OnStatus:   func(s string) { statuses = append(statuses, s) },
	}
	report, err := d.Run(context.Background(), testOptions(dir, 3), rep, progress.Span{From: 0, To: 50})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	files := pngFiles(t, dir)
	want := []string{"page_01.png", "page_02.png", "page_03.png"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files got %v", len(want), files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Fatalf("file %d: expected %s got %s", i, want[i], filepath.Base(f))
		}
	}
	if report.Captured() != 3 || report.Cancelled || len(report.Failures) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(keys.pressed) != 3 || keys.pressed[0] != "down" {
		t.Fatalf("expected 3 down presses got %v", keys.pressed)
	}
	if last != 50 {
		t.Fatalf("capture progress should end at span end 50, got %v", last)
	}
	if len(statuses) == 0 || statuses[len(statuses)-1] != "Processing page 3/3" {
		t.Fatalf("unexpected statuses %v", statuses)
	}
}

func TestDriver_InvalidConfigurationHasNoSideEffects(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "never")
	g := &fakeGrabber{}
	d := NewDriver(g, &fakeKeys{}, discardLogger())

	cases := []Options{
		{Region: RegionFromCorners(10, 10, 10, 50), Pages: 2, Folder: dir},
		{Region: RegionFromCorners(10, 10, 50, 5), Pages: 2, Folder: dir},
		{Region: RegionFromCorners(0, 0, 100, 100), Pages: 0, Folder: dir},
		{Region: RegionFromCorners(0, 0, 100, 100), Pages: 2, Folder: ""},
	}
	for i, opts := range cases {
		_, err := d.Run(context.Background(), opts, progress.Reporter{}, progress.Full)
		if !errors.Is(err, errs.ErrInvalidConfiguration) {
			t.Fatalf("case %d: expected ErrInvalidConfiguration got %v", i, err)
		}
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("folder must not be created on invalid configuration")
	}
	if g.calls != 0 {
		t.Fatalf("no capture expected, got %d", g.calls)
	}
}

func TestDriver_CancelDuringPageThreeKeepsAtMostThree(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := &fakeGrabber{onCall: func(n int) {
		if n == 3 {
			cancel()
		}
	}}
	d := NewDriver(g, &fakeKeys{}, discardLogger())
	report, err := d.Run(ctx, testOptions(dir, 10), progress.Reporter{}, progress.Full)
	if !errors.Is(err, errs.ErrCancelled) {
		t.Fatalf("expected ErrCancelled got %v", err)
	}
	if !report.Cancelled {
		t.Fatalf("report should be cancelled")
	}
	if n := len(pngFiles(t, dir)); n > 3 || n != report.Captured() {
		t.Fatalf("expected at most 3 pages matching report, files=%d captured=%d", n, report.Captured())
	}
	if report.Captured() != 3 {
		t.Fatalf("in-flight page should complete, captured=%d", report.Captured())
	}
}

func TestDriver_CancelDuringCountdown(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := &fakeGrabber{}
	d := NewDriver(g, &fakeKeys{}, discardLogger())
	ticks := 0
	d.sleep = func(ctx context.Context, _ time.Duration) error {
		ticks++
		if ticks == 2 {
			cancel()
		}
		return ctx.Err()
	}
	opts := testOptions(dir, 5)
	opts.Countdown = 5
	var statuses []string
	report, err := d.Run(ctx, opts, progress.Reporter{OnStatus: func(s string) { statuses = append(statuses, s) }}, progress.Full)
	if !errors.Is(err, errs.ErrCancelled) || report.Captured() != 0 || g.calls != 0 {
		t.Fatalf("expected cancel before capture: err=%v captured=%d calls=%d", err, report.Captured(), g.calls)
	}
	if len(statuses) != 2 || statuses[0] != "Starting in 5..." || statuses[1] != "Starting in 4..." {
		t.Fatalf("unexpected countdown statuses %v", statuses)
	}
}

func TestDriver_PageFailureContinues(t *testing.T) {
	dir := t.TempDir()
	keys := &fakeKeys{}
	d := NewDriver(&fakeGrabber{failOn: map[int]bool{2: true}}, keys, discardLogger())
	report, err := d.Run(context.Background(), testOptions(dir, 3), progress.Reporter{}, progress.Full)
	if err != nil {
		t.Fatalf("per-page failure must not abort: %v", err)
	}
	if report.Captured() != 2 || len(report.Failures) != 1 || report.Failures[0].Page != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if !errors.Is(report.Failures[0].Err, errs.ErrCaptureFailure) {
		t.Fatalf("failure should wrap ErrCaptureFailure: %v", report.Failures[0].Err)
	}
	if len(keys.pressed) != 3 {
		t.Fatalf("viewer should advance on every page, got %d presses", len(keys.pressed))
	}
	if s := d.Stats(); s.Captures != 2 || s.Failures != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestDriver_PadWidthWidensForLargeRuns(t *testing.T) {
	dir := t.TempDir()
	d := NewDriver(&fakeGrabber{}, nil, discardLogger())
	opts := testOptions(dir, 120)
	opts.Region = RegionFromSize(0, 0, 2, 2)
	if _, err := d.Run(context.Background(), opts, progress.Reporter{}, progress.Full); err != nil {
		t.Fatalf("run: %v", err)
	}
	files := pngFiles(t, dir)
	if len(files) != 120 {
		t.Fatalf("expected 120 files got %d", len(files))
	}
	if filepath.Base(files[0]) != "page_001.png" || filepath.Base(files[119]) != "page_120.png" {
		t.Fatalf("lexicographic order broken: first=%s last=%s", filepath.Base(files[0]), filepath.Base(files[119]))
	}
}

func TestDriver_GrabOnceWritesDecodablePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_region.png")
	d := NewDriver(&fakeGrabber{}, nil, discardLogger())
	if err := d.GrabOnce(RegionFromSize(5, 5, 8, 4), path); err != nil {
		t.Fatalf("grab once: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("unexpected size %v", b)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 1 {
		t.Fatalf("expected first grab marker")
	}
}

func TestDriver_NilLoggerIsTolerated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Book")
	d := NewDriver(&fakeGrabber{failOn: map[int]bool{1: true}}, &fakeKeys{}, nil)
	report, err := d.Run(context.Background(), testOptions(dir, 2), progress.Reporter{}, progress.Full)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Captured() != 1 || len(report.Failures) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
