// Package gui is the Tk desktop window. It only wires views to presenters;
// every run goes through the same orchestrator as the CLI.
package gui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pagegrab-go/app"
	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/pipeline"
	"github.com/soocke/pagegrab-go/ui/model"
	"github.com/soocke/pagegrab-go/ui/presenter"
	"github.com/soocke/pagegrab-go/ui/theme"
	"github.com/soocke/pagegrab-go/ui/view"
)

const (
	tick           = 100 * time.Millisecond
	testRegionFile = "test_region.png"
)

type window struct {
	c       *app.Container
	ctx     context.Context
	cancel  context.CancelFunc
	afterID string

	view   *view.RootView
	picker *view.RegionPicker
	runs   *model.RunModel
	run    *presenter.RunPresenter
	loop   *presenter.Loop
}

// Run builds the window and blocks until it is closed.
func Run(c *app.Container) error {
	ctx, cancel := context.WithCancel(context.Background())
	w := &window{c: c, ctx: ctx, cancel: cancel, runs: &model.RunModel{}}

	App.WmTitle("pagegrab")
	WmProtocol(App, "WM_DELETE_WINDOW", w.exit)
	theme.Init()

	w.view = view.NewRootView(c.Logger)
	w.view.Build(c.Config, view.Handlers{
		OnStart:        w.start,
		OnCancel:       func() { w.run.Cancel() },
		OnSave:         w.save,
		OnPickRegion:   w.pickRegion,
		OnTestRegion:   w.testRegion,
		OnRefresh:      w.refreshFolders,
		OnOpenDocument: w.openDocument,
		OnOpenFolder:   w.openFolder,
		OnExit:         w.exit,
	})
	w.picker = view.NewRegionPicker(w.regionPicked)
	w.refreshFolders()

	w.run = presenter.NewRunPresenter(w.runs, w.starter, w.runConfig, resultView{w.view, w.refreshFolders}, c.Logger.With("component", "gui"))
	region := presenter.NewRegionPresenter(w.view, w.view)
	clock := presenter.NewClockPresenter(model.NewRunClock(), w.runs, w.view)
	w.loop = presenter.NewLoop(w.run, region, clock, w.schedule)
	w.loop.Tick()

	App.Wait()
	return nil
}

// resultView refreshes the folder list once a run has written new pages.
type resultView struct {
	*view.RootView
	refresh func()
}

func (v resultView) ShowResult(res pipeline.RunResult) {
	v.RootView.ShowResult(res)
	v.refresh()
}

func (w *window) starter(ctx context.Context, cfg pipeline.RunConfig, cb pipeline.Callbacks) (presenter.Canceler, error) {
	job, err := w.c.Orchestrator.Start(ctx, cfg, cb)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// runConfig applies the form, then resolves the mode's input.
func (w *window) runConfig(mode pipeline.Mode) (pipeline.RunConfig, error) {
	if err := w.c.ApplyForm(w.view.Settings.Fields()); err != nil {
		return pipeline.RunConfig{}, err
	}
	rc := w.c.RunConfig(mode)
	if mode == pipeline.ModeCollateOnly {
		f, ok := w.view.SelectedFolder()
		if !ok {
			return rc, fmt.Errorf("%w: choose a folder first", errs.ErrInvalidConfiguration)
		}
		rc.InputDir = f.Path
	}
	return rc, nil
}

func (w *window) start(mode pipeline.Mode) {
	if err := w.run.Start(w.ctx, mode); err != nil {
		if errors.Is(err, errs.ErrRunInProgress) {
			w.view.SetStatus("A run is already in progress")
		}
		w.c.Logger.Warn("start rejected", "mode", mode.String(), "error", err)
	}
}

func (w *window) save() {
	if err := w.c.ApplyForm(w.view.Settings.Fields()); err != nil {
		w.view.SetStatus(err.Error())
		return
	}
	if err := w.c.SaveConfig(); err != nil {
		w.view.SetStatus("Could not save settings: " + err.Error())
		return
	}
	w.view.SetStatus("Settings saved")
}

func (w *window) pickRegion() {
	x1, y1, x2, y2 := w.view.RegionFields()
	vals := [4]int{}
	for i, s := range []string{x1, y1, x2, y2} {
		vals[i], _ = model.ParseIntField(s)
	}
	w.picker.Open(capture.RegionFromCorners(vals[0], vals[1], vals[2], vals[3]))
}

func (w *window) regionPicked(r capture.Region) {
	w.view.Settings.SetFields(map[string]string{
		model.FieldX1: strconv.Itoa(r.X1),
		model.FieldY1: strconv.Itoa(r.Y1),
		model.FieldX2: strconv.Itoa(r.X2),
		model.FieldY2: strconv.Itoa(r.Y2),
	})
}

// testRegion grabs the region once on the UI thread; a single grab is short.
func (w *window) testRegion() {
	if w.runs.Running() {
		return
	}
	if err := w.c.ApplyForm(w.view.Settings.Fields()); err != nil {
		w.view.SetStatus(err.Error())
		return
	}
	cfg := w.c.Config
	region := capture.RegionFromCorners(cfg.RegionX1, cfg.RegionY1, cfg.RegionX2, cfg.RegionY2)
	path := filepath.Join(cfg.OutputRoot, testRegionFile)
	if err := w.c.Driver.GrabOnce(region, path); err != nil {
		w.view.SetStatus("Test capture failed: " + err.Error())
		return
	}
	img, err := collate.DecodeFile(path)
	if err != nil {
		w.view.SetStatus("Test image unreadable: " + err.Error())
		return
	}
	w.view.ShowPreview(img)
	w.view.SetStatus(fmt.Sprintf("Test image saved: %s (%s)", path, region.Describe()))
}

func (w *window) refreshFolders() {
	folders, err := collate.ListFolders(w.c.Config.OutputRoot, w.c.Config.FilePattern)
	if err != nil {
		w.c.Logger.Debug("list folders", "root", w.c.Config.OutputRoot, "error", err)
	}
	w.view.SetFolders(folders)
}

func (w *window) openDocument() {
	if res, ok := w.runs.Last(); ok && res.DocumentPath != "" {
		w.open(res.DocumentPath)
	}
}

func (w *window) openFolder() {
	if res, ok := w.runs.Last(); ok && res.Folder != "" {
		w.open(res.Folder)
	}
}

func (w *window) open(path string) {
	if err := w.c.Opener.Open(path); err != nil {
		w.view.SetStatus(fmt.Sprintf("Could not open %s: %v", filepath.Base(path), err))
	}
}

// schedule queues the next loop tick on Tk's event loop thread.
func (w *window) schedule() {
	w.afterID = TclAfter(tick, w.loop.Tick)
}

func (w *window) exit() {
	w.run.Cancel()
	w.cancel()
	if w.afterID != "" {
		TclAfterCancel(w.afterID)
	}
	Destroy(App)
}
