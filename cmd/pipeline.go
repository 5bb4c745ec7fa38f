package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/app"
	"github.com/soocke/pagegrab-go/cmd/termui"
	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/pipeline"
)

// runFlags are the settings a capture, collate or run invocation may
// override. Only flags the user set replace the loaded config.
type runFlags struct {
	pages          int
	folder         string
	root           string
	name           string
	x1, y1, x2, y2 int
	countdown      int
	settleMillis   int
	key            string
	deletePNGs     bool
	open           bool
	save           bool
}

func (f *runFlags) register(cmd *cobra.Command, capture, collate bool) {
	fl := cmd.Flags()
	if capture {
		fl.IntVarP(&f.pages, "pages", "n", 0, "number of pages to capture")
		fl.IntVar(&f.x1, "x1", 0, "region left edge")
		fl.IntVar(&f.y1, "y1", 0, "region top edge")
		fl.IntVar(&f.x2, "x2", 0, "region right edge")
		fl.IntVar(&f.y2, "y2", 0, "region bottom edge")
		fl.IntVar(&f.countdown, "countdown", 0, "seconds to wait before the first capture")
		fl.IntVar(&f.settleMillis, "settle", 0, "milliseconds to wait after each page turn")
		fl.StringVar(&f.key, "key", "", "key that advances the viewer (down, pagedown, space, right)")
		fl.BoolVar(&f.save, "save", false, "store the region and page settings in the config file")
	}
	if capture || !collate {
		fl.StringVarP(&f.folder, "folder", "f", "", "output folder name")
		fl.StringVar(&f.root, "root", "", "directory the output folder is created in")
	}
	if collate {
		fl.StringVar(&f.name, "name", "", "document file name (default <folder>.pdf)")
		fl.BoolVar(&f.deletePNGs, "delete-pngs", false, "delete the page images after the PDF is written")
	}
	fl.BoolVar(&f.open, "open", false, "open the result when done")
}

// apply copies the changed flags into cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	setInt := func(name string, dst *int, v int) {
		if changed(name) {
			*dst = v
		}
	}
	setInt("pages", &cfg.Pages, f.pages)
	setInt("x1", &cfg.RegionX1, f.x1)
	setInt("y1", &cfg.RegionY1, f.y1)
	setInt("x2", &cfg.RegionX2, f.x2)
	setInt("y2", &cfg.RegionY2, f.y2)
	setInt("countdown", &cfg.CountdownSeconds, f.countdown)
	setInt("settle", &cfg.SettleDelayMillis, f.settleMillis)
	if changed("key") {
		cfg.NextPageKey = f.key
	}
	if changed("folder") {
		cfg.FolderName = f.folder
	}
	if changed("root") {
		cfg.OutputRoot = termui.ExpandHome(f.root)
	}
	if changed("delete-pngs") {
		cfg.DeleteIntermediates = f.deletePNGs
	}
}

// executeRun runs a pipeline on the command goroutine with a progress bar.
// Ctrl-C cancels ctx and the run stops at the next page boundary.
func executeRun(ctx context.Context, c *app.Container, ui *termui.UI, rc pipeline.RunConfig, open bool) (pipeline.RunResult, error) {
	bar := termui.NewProgress(ui.Err, rc.Mode.String())
	res, err := c.Orchestrator.Run(ctx, rc, pipeline.Callbacks{
		OnProgress: bar.Set,
		OnStatus:   bar.Describe,
	})
	if err != nil {
		bar.Abandon()
		return res, err
	}
	if res.Status == pipeline.StatusSuccess {
		bar.Finish()
	} else {
		bar.Abandon()
	}
	report(ui, res)
	if res.Status != pipeline.StatusSuccess {
		return res, res.Err
	}
	if open {
		target := res.DocumentPath
		if target == "" {
			target = res.Folder
		}
		if err := c.Opener.Open(target); err != nil {
			ui.Warning("Could not open %s: %v", target, err)
		}
	}
	return res, nil
}

// report prints the summary line and the per-item problems.
func report(ui *termui.UI, res pipeline.RunResult) {
	for _, f := range res.CaptureFailures {
		ui.Warning("Page %d failed: %v", f.Page, f.Err)
	}
	for _, w := range res.Warnings {
		ui.Warning("Skipped %s", w.Error())
	}
	for _, f := range res.CleanupFailures {
		ui.Warning("Could not delete %s", f.Error())
	}
	switch res.Status {
	case pipeline.StatusSuccess:
		ui.Success("%s", res.Summary())
		if res.DocumentPath != "" {
			ui.Info("Location: %s", res.DocumentPath)
		} else if res.Folder != "" {
			ui.Info("Folder: %s", res.Folder)
		}
	case pipeline.StatusCancelled:
		ui.Warning("%s", res.Summary())
	default:
		ui.Error("%s", res.Summary())
	}
}

// printRegion shows the capture region before a countdown starts.
func printRegion(w io.Writer, rc pipeline.RunConfig) {
	r := rc.Region
	fmt.Fprintf(w, "Capture area: x=%d, y=%d (%s)\n", r.X1, r.Y1, r.Describe())
}
