package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/app"
	"github.com/soocke/pagegrab-go/cmd/termui"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/pipeline"
)

const previewFiles = 5

func newMenuCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu for screenshots, PNG to PDF and the complete process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			m := &menu{c: c, ui: o.ui, p: termui.NewPrompter(o.ui, cmd.InOrStdin())}
			return m.loop(cmd.Context())
		},
	}
}

// menu is the interactive front end. Every operation is a pipeline run; the
// menu only gathers its settings.
type menu struct {
	c  *app.Container
	ui *termui.UI
	p  *termui.Prompter
}

func (m *menu) loop(ctx context.Context) error {
	for {
		m.ui.Section("PDF SCREENSHOT TOOL")
		choice, err := m.p.PromptChoice("Choose an option:", []string{
			"Screenshots of a document only",
			"PNG to PDF only",
			"Screenshots + PDF (complete process)",
			"Quit",
		})
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			err = m.capture(ctx)
		case 1:
			err = m.collate(ctx)
		case 2:
			err = m.complete(ctx)
		default:
			m.ui.Message("Thanks for using pagegrab!")
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			m.ui.Warning("Interrupted")
			return nil
		}
		again, err := m.p.Confirm("Run another operation?", false)
		if err != nil {
			return err
		}
		if !again {
			m.ui.Message("Thanks for using pagegrab!")
			return nil
		}
	}
}

// captureSettings asks for the page count and folder name.
func (m *menu) captureSettings() error {
	cfg := m.c.Config
	m.ui.Message("Make sure that:")
	m.ui.Message("  1. The document is open")
	m.ui.Message("  2. Its window is in the foreground")
	m.ui.Message("  3. You are ready to start")
	rc := m.c.RunConfig(pipeline.ModeCaptureOnly)
	printRegion(m.ui.Out, rc)

	pages, err := m.p.PromptInt("How many pages", cfg.Pages, 1, 9999)
	if err != nil {
		return err
	}
	folder, err := m.p.PromptWithDefault("Folder name (without .pdf)", cfg.FolderName)
	if err != nil {
		return err
	}
	cfg.Pages = pages
	cfg.FolderName = folder
	return nil
}

func (m *menu) capture(ctx context.Context) error {
	m.ui.Section("SCREENSHOTS")
	if err := m.captureSettings(); err != nil {
		return err
	}
	res, _ := executeRun(ctx, m.c, m.ui, m.c.RunConfig(pipeline.ModeCaptureOnly), false)
	if res.Status == pipeline.StatusSuccess {
		return m.offerOpen("Open the screenshot folder?", res.Folder)
	}
	return nil
}

func (m *menu) collate(ctx context.Context) error {
	m.ui.Section("PNG TO PDF")
	dir, err := m.pickFolder()
	if err != nil {
		return err
	}
	inputs, err := collate.ListInputs(dir, m.c.Config.FilePattern)
	if err != nil || len(inputs) == 0 {
		m.ui.Error("No %s files found in %s", m.c.Config.FilePattern, filepath.Base(dir))
		return nil
	}
	m.ui.Info("Found %d images in %s", len(inputs), filepath.Base(dir))
	for i, p := range inputs {
		if i == previewFiles {
			m.ui.Message("  ... and %d more", len(inputs)-previewFiles)
			break
		}
		m.ui.Message("  %d. %s", i+1, filepath.Base(p))
	}
	name, err := m.p.PromptWithDefault("PDF file name", collate.DocumentName(dir, ""))
	if err != nil {
		return err
	}
	rc := m.c.RunConfig(pipeline.ModeCollateOnly)
	rc.InputDir = dir
	rc.DocumentName = name
	res, _ := executeRun(ctx, m.c, m.ui, rc, false)
	if res.Status == pipeline.StatusSuccess {
		return m.offerOpen("Open the PDF?", res.DocumentPath)
	}
	return nil
}

func (m *menu) complete(ctx context.Context) error {
	m.ui.Section("COMPLETE PROCESS: SCREENSHOTS + PDF")
	if err := m.captureSettings(); err != nil {
		return err
	}
	del, err := m.p.Confirm("Delete the PNG files once the PDF exists?", m.c.Config.DeleteIntermediates)
	if err != nil {
		return err
	}
	m.c.Config.DeleteIntermediates = del
	res, _ := executeRun(ctx, m.c, m.ui, m.c.RunConfig(pipeline.ModeComplete), false)
	if res.Status == pipeline.StatusSuccess {
		return m.offerOpen("Open the PDF?", res.DocumentPath)
	}
	return nil
}

// pickFolder lists the folders under the output root that hold images and
// lets the user enter any other path.
func (m *menu) pickFolder() (string, error) {
	root := m.c.Config.OutputRoot
	folders, err := collate.ListFolders(root, m.c.Config.FilePattern)
	if err != nil {
		m.ui.Warning("Cannot list %s: %v", root, err)
	}
	if len(folders) == 0 {
		return m.p.PromptDir("Folder path")
	}
	choices := make([]string, 0, len(folders)+1)
	for _, f := range folders {
		choices = append(choices, fmt.Sprintf("%s (%d images)", f.Name, f.Images))
	}
	choices = append(choices, "Enter a custom path")
	idx, err := m.p.PromptChoice("Folders in "+root+":", choices)
	if err != nil {
		return "", err
	}
	if idx == len(folders) {
		return m.p.PromptDir("Folder path")
	}
	return folders[idx].Path, nil
}

func (m *menu) offerOpen(question, path string) error {
	if path == "" {
		return nil
	}
	ok, err := m.p.Confirm(question, false)
	if err != nil || !ok {
		return err
	}
	if err := m.c.Opener.Open(path); err != nil {
		m.ui.Warning("Could not open %s: %v", path, err)
	}
	return nil
}
