package cmd

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/app"
	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/ocr"
)

// check is one line of the doctor report.
type check struct {
	name, value string
	ok          bool
}

func newDoctorCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report the capture backend, key sender and OCR installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			checks := diagnose(c)
			rows := make([][]string, 0, len(checks))
			failed := 0
			for _, ch := range checks {
				mark := "ok"
				if !ch.ok {
					mark = "missing"
					failed++
				}
				rows = append(rows, []string{ch.name, ch.value, mark})
			}
			o.ui.Table([]string{"Check", "Value", "Status"}, rows)
			if failed > 0 {
				o.ui.Warning("%d checks need attention", failed)
			} else {
				o.ui.Success("Everything is in place")
			}
			if runtime.GOOS == "darwin" {
				o.ui.Info("Screen Recording and Accessibility permissions must be granted to your terminal")
			}
			return nil
		},
	}
}

func diagnose(c *app.Container) []check {
	cfg := c.Config
	checks := []check{
		{name: "platform", value: runtime.GOOS + "/" + runtime.GOARCH, ok: true},
		{name: "config", value: c.ConfigPath, ok: true},
		{name: "capture backend", value: app.Describe(c.Grabber), ok: c.Grabber != nil},
		{name: "key sender", value: app.Describe(c.Keys), ok: c.Keys != nil},
	}
	if cfg.CaptureBackend == config.BackendScreencapture {
		path, err := exec.LookPath("screencapture")
		checks = append(checks, check{name: "screencapture", value: path, ok: err == nil})
	}
	st, err := os.Stat(cfg.OutputRoot)
	checks = append(checks, check{name: "output root", value: cfg.OutputRoot, ok: err == nil && st.IsDir()})

	version, err := c.Engine.Version()
	if err != nil {
		checks = append(checks, check{name: "tesseract", value: err.Error()})
		return checks
	}
	checks = append(checks, check{name: "tesseract", value: version + " (" + c.Engine.Name() + ")", ok: true})
	langs := ocr.Languages(c.Engine)
	checks = append(checks, check{name: "ocr languages", value: strconv.Itoa(len(langs)) + ": " + strings.Join(langs, ", "), ok: true})
	resolved := ocr.ResolveLanguage(langs, cfg.OCRLanguage)
	checks = append(checks, check{name: "ocr language " + cfg.OCRLanguage, value: resolved, ok: resolved == strings.ToLower(cfg.OCRLanguage)})
	return checks
}
