package view

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/pipeline"
	"github.com/soocke/pagegrab-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const noFolders = "<no folders>"

// Handlers are invoked on user actions. All run on the UI thread.
type Handlers struct {
	OnStart        func(mode pipeline.Mode)
	OnCancel       func()
	OnSave         func()
	OnPickRegion   func()
	OnTestRegion   func()
	OnRefresh      func()
	OnOpenDocument func()
	OnOpenFolder   func()
	OnExit         func()
}

// RootView composes the window: the settings form on the left, one section
// per run mode in the middle, the region preview on the right and the run
// status along the bottom.
type RootView struct {
	logger *slog.Logger

	Settings *SettingsPanel
	Elapsed  *ElapsedLabels
	Preview  *RegionPreview

	startBtns map[pipeline.Mode]*TButtonWidget
	cancelBtn *TButtonWidget
	openDoc   *ButtonWidget
	openDir   *ButtonWidget
	refresh   *ButtonWidget
	progress  *LabelWidget
	status    *LabelWidget
	folderSel *TComboboxWidget
	folders   []collate.Folder
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger, startBtns: make(map[pipeline.Mode]*TButtonWidget)}
}

// Build constructs the layout.
func (rv *RootView) Build(cfg *config.Config, h Handlers) {
	title := TLabel(Txt("PDF Screenshot Tool"), Style(theme.StyleSectionLabel))
	Grid(title, Row(0), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))

	settings := Frame(Borderwidth(1), Relief("groove"))
	Grid(settings, Row(1), Column(0), Sticky("nwe"), Padx("0.4m"), Pady("0.3m"))
	rv.Settings = NewSettingsPanel()
	rv.Settings.Build(settings, cfg, h.OnSave, h.OnPickRegion, h.OnTestRegion)

	sections := Frame()
	Grid(sections, Row(1), Column(1), Sticky("nwe"), Padx("0.4m"), Pady("0.3m"))
	rv.section(sections, 0, pipeline.ModeCaptureOnly, "1. Take Screenshots",
		"Capture pages into the folder as PNG files.", h.OnStart)
	collateFrame := rv.section(sections, 1, pipeline.ModeCollateOnly, "2. PNG to PDF",
		"Convert an existing folder of images to one PDF.", h.OnStart)
	rv.section(sections, 2, pipeline.ModeComplete, "3. Complete Process",
		"Capture the pages, then build the PDF.", h.OnStart)

	rv.folderSel = TCombobox(Values([]string{noFolders}), Width(28))
	Grid(rv.folderSel, In(collateFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.folderSel.Current(0)
	rv.refresh = Button(Txt("Refresh"), Command(h.OnRefresh))
	Grid(rv.refresh, In(collateFrame), Row(3), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	previewFrame := Frame()
	Grid(previewFrame, Row(1), Column(2), Sticky("n"), Padx("0.4m"), Pady("0.3m"))
	rv.Preview = NewRegionPreview(previewFrame, 0, 0)

	status := Frame(Borderwidth(1), Relief("ridge"))
	Grid(status, Row(2), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.progress = Label(Txt("0%"), Width(6), Anchor("e"))
	Grid(rv.progress, In(status), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	rv.Elapsed = NewElapsedLabels(status, 0, 1)
	rv.status = Label(Txt("Ready"), Anchor("w"), Width(60))
	Grid(rv.status, In(status), Row(1), Column(0), Columnspan(6), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.cancelBtn = TButton(Txt("Cancel"), Style(theme.StyleDangerButton), Command(h.OnCancel))
	Grid(rv.cancelBtn, In(status), Row(0), Column(3), Sticky("we"), Padx("0.2m"))
	rv.openDoc = Button(Txt("Open PDF"), Command(h.OnOpenDocument))
	Grid(rv.openDoc, In(status), Row(0), Column(4), Sticky("we"), Padx("0.2m"))
	rv.openDir = Button(Txt("Open Folder"), Command(h.OnOpenFolder))
	Grid(rv.openDir, In(status), Row(0), Column(5), Sticky("we"), Padx("0.2m"))
	exit := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exit, In(status), Row(0), Column(6), Sticky("we"), Padx("0.2m"))

	rv.cancelBtn.Configure(State("disabled"))
	rv.openDoc.Configure(State("disabled"))
	rv.openDir.Configure(State("disabled"))
}

func (rv *RootView) section(parent *FrameWidget, row int, mode pipeline.Mode, title, desc string, onStart func(pipeline.Mode)) *FrameWidget {
	f := Frame(Borderwidth(1), Relief("groove"))
	Grid(f, In(parent), Row(row), Column(0), Sticky("we"), Pady("0.3m"))
	Grid(TLabel(Txt(title), Style(theme.StyleSectionLabel)), In(f), Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.2m"))
	Grid(Label(Txt(desc), Anchor("w"), Foreground(theme.ColorTextMuted)), In(f), Row(1), Column(0), Columnspan(2), Sticky("w"), Padx("0.2m"))
	btn := TButton(Txt("Start"), Style(theme.StylePrimaryButton), Command(func() { onStart(mode) }))
	Grid(btn, In(f), Row(2), Column(0), Sticky("w"), Padx("0.2m"), Pady("0.2m"))
	rv.startBtns[mode] = btn
	return f
}

// SetFolders refills the folder list of the PNG to PDF section.
func (rv *RootView) SetFolders(folders []collate.Folder) {
	rv.folders = folders
	labels := make([]string, 0, len(folders))
	for _, f := range folders {
		labels = append(labels, fmt.Sprintf("%s (%d images)", f.Name, f.Images))
	}
	if len(labels) == 0 {
		labels = []string{noFolders}
	}
	rv.folderSel.Configure(Values(labels))
	rv.folderSel.Current(0)
}

// SelectedFolder is the folder picked in the PNG to PDF section.
func (rv *RootView) SelectedFolder() (collate.Folder, bool) {
	idx, err := strconv.Atoi(rv.folderSel.Current(nil))
	if err != nil {
		if rv.logger != nil {
			rv.logger.Error("folder selection parse error", "error", err)
		}
		return collate.Folder{}, false
	}
	if idx < 0 || idx >= len(rv.folders) {
		return collate.Folder{}, false
	}
	return rv.folders[idx], true
}

func (rv *RootView) SetProgress(percent float64) {
	rv.progress.Configure(Txt(fmt.Sprintf("%.0f%%", percent)))
}

func (rv *RootView) SetStatus(text string) {
	rv.status.Configure(Txt(text), Foreground(theme.ColorText))
}

// SetRunning disables every start control while a run is active.
func (rv *RootView) SetRunning(running bool) {
	startState, cancelState := "normal", "disabled"
	if running {
		startState, cancelState = "disabled", "normal"
		rv.openDoc.Configure(State("disabled"))
		rv.openDir.Configure(State("disabled"))
	}
	for _, b := range rv.startBtns {
		b.Configure(State(startState))
	}
	rv.refresh.Configure(State(startState))
	rv.Settings.SetEditable(!running)
	rv.cancelBtn.Configure(State(cancelState))
}

func (rv *RootView) ShowResult(res pipeline.RunResult) {
	rv.status.Configure(Txt(res.Summary()), Foreground(theme.StatusColor(res.Status)))
	if res.DocumentPath != "" {
		rv.openDoc.Configure(State("normal"))
	}
	if res.Folder != "" {
		rv.openDir.Configure(State("normal"))
	}
}

func (rv *RootView) SetRegionInfo(text string) { rv.Settings.SetRegionInfo(text) }

func (rv *RootView) SetElapsed(d time.Duration, runs int) { rv.Elapsed.SetElapsed(d, runs) }

func (rv *RootView) RegionFields() (x1, y1, x2, y2 string) { return rv.Settings.RegionFields() }

// ShowPreview displays a test-region screenshot.
func (rv *RootView) ShowPreview(img image.Image) { rv.Preview.Show(img) }
