package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/cmd/termui"
	"github.com/soocke/pagegrab-go/domain/ocr"
	"github.com/soocke/pagegrab-go/domain/progress"
)

func newOCRCmd(o *rootOptions) *cobra.Command {
	var (
		lang    string
		enhance bool
		format  string
		open    bool
	)
	cmd := &cobra.Command{
		Use:   "ocr [DIR]",
		Short: "Recognize the text of every image in a folder with Tesseract",
		Long: `OCR runs Tesseract over the png, jpg, tif, bmp and webp images of DIR in name
order and saves the text next to them as OCR_<folder>_<timestamp>.txt.

With --format separate each image gets its own text file; yaml writes one
structured report with per-page confidence. DIR defaults to the configured
output folder.`,
		Example: `  pagegrab ocr ~/Desktop/Lecture3 --lang slk+eng
  pagegrab ocr --format yaml --no-enhance`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.cfg
			if cmd.Flags().Changed("lang") {
				cfg.OCRLanguage = lang
			}
			if cmd.Flags().Changed("enhance") {
				cfg.OCREnhance = enhance
			}
			if cmd.Flags().Changed("format") {
				cfg.OCRFormat = format
			}
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			version, err := c.Engine.Version()
			if err != nil {
				o.ui.Error("Tesseract is not available: %v", err)
				o.ui.Info("Install it with: brew install tesseract tesseract-lang")
				return err
			}
			o.ui.Info("Using %s", version)

			dir := cfg.OutputFolder()
			if len(args) == 1 {
				dir = termui.ExpandHome(args[0])
			}
			bar := termui.NewProgress(o.ui.Err, "ocr")
			batch, err := c.OCR.Process(cmd.Context(), ocr.Options{Dir: dir, Language: cfg.OCRLanguage, Enhance: cfg.OCREnhance},
				progress.Reporter{OnProgress: bar.Set, OnStatus: bar.Describe})
			if err != nil {
				bar.Abandon()
				o.ui.Error("%v", err)
				return err
			}
			bar.Finish()
			for _, p := range batch.Pages {
				if p.Err != nil {
					o.ui.Warning("%s: %v", p.File, p.Err)
				}
			}
			out, err := ocr.Save(batch, cfg.OCRFormat)
			if err != nil {
				o.ui.Error("Saving results failed: %v", err)
				return err
			}
			o.ui.Success("Recognized %d of %d images (language %s, mean confidence %.1f%%)",
				len(batch.Recognized()), len(batch.Pages), batch.Language, batch.MeanConfidence())
			o.ui.Info("Saved: %s", out)
			if open {
				if err := c.Opener.Open(out); err != nil {
					o.ui.Warning("Could not open %s: %v", out, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "eng", "Tesseract language, e.g. eng, slk or slk+eng")
	cmd.Flags().BoolVar(&enhance, "enhance", true, "preprocess images before recognition")
	cmd.Flags().StringVar(&format, "format", "txt", "output format: txt, separate or yaml")
	cmd.Flags().BoolVar(&open, "open", false, "open the result when done")
	cmd.AddCommand(newOCRLangsCmd(o))
	return cmd
}

func newOCRLangsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the installed Tesseract languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			langs, err := c.Engine.Languages()
			if errors.Is(err, ocr.ErrEngineUnavailable) {
				o.ui.Error("Tesseract is not available")
				return err
			}
			if err != nil || len(langs) == 0 {
				o.ui.Warning("Could not list languages, %s is assumed", ocr.DefaultLanguage)
				langs = ocr.Languages(nil)
			}
			o.ui.Message("%s", strings.Join(langs, "\n"))
			return nil
		},
	}
}
