package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/errs"
)

const rule = "============================================================"

// OutputName is OCR_<folder>_<YYYYMMDD_HHMMSS> with the given extension.
func OutputName(folder string, at time.Time, ext string) string {
	return fmt.Sprintf("OCR_%s_%s%s", filepath.Base(filepath.Clean(folder)), at.Format("20060102_150405"), ext)
}

type yamlReport struct {
	Folder         string     `yaml:"folder"`
	Language       string     `yaml:"language"`
	Created        string     `yaml:"created"`
	MeanConfidence float64    `yaml:"mean_confidence"`
	Pages          []PageText `yaml:"pages"`
	Failed         []string   `yaml:"failed,omitempty"`
}

// Save writes the batch next to its images in the given format and returns
// the written path (a file, or a folder for the separate format).
func Save(b Batch, format string) (string, error) {
	switch format {
	case "", config.OCRFormatText:
		return saveText(b)
	case config.OCRFormatSeparate:
		return saveSeparate(b)
	case config.OCRFormatYAML:
		return saveYAML(b)
	default:
		return "", fmt.Errorf("%w: unknown OCR format %q", errs.ErrInvalidConfiguration, format)
	}
}

func saveText(b Batch) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "OCR results - %s\n", b.Started.Format("2006-01-02 15:04:05"))
	sb.WriteString(rule + "\n\n")
	for _, p := range b.Recognized() {
		fmt.Fprintf(&sb, "File: %s\n", p.File)
		fmt.Fprintf(&sb, "Confidence: %.1f%%\n", p.Confidence)
		sb.WriteString(strings.Repeat("-", 30) + "\n")
		sb.WriteString(p.Text)
		sb.WriteString("\n\n" + rule + "\n\n")
	}
	path := filepath.Join(b.Folder, OutputName(b.Folder, b.Started, ".txt"))
	return path, writeFile(path, sb.String())
}

func saveSeparate(b Batch) (string, error) {
	dir := filepath.Join(b.Folder, OutputName(b.Folder, b.Started, "_separate"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	for _, p := range b.Recognized() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Source file: %s\n", p.File)
		fmt.Fprintf(&sb, "Confidence: %.1f%%\n", p.Confidence)
		fmt.Fprintf(&sb, "Time: %s\n", b.Started.Format("2006-01-02 15:04:05"))
		sb.WriteString(strings.Repeat("-", 40) + "\n\n")
		sb.WriteString(p.Text)
		name := strings.TrimSuffix(p.File, filepath.Ext(p.File)) + ".txt"
		if err := writeFile(filepath.Join(dir, name), sb.String()); err != nil {
			return dir, err
		}
	}
	return dir, nil
}

func saveYAML(b Batch) (string, error) {
	report := yamlReport{
		Folder:         b.Folder,
		Language:       b.Language,
		Created:        b.Started.Format(time.RFC3339),
		MeanConfidence: b.MeanConfidence(),
		Pages:          b.Recognized(),
	}
	for _, p := range b.Pages {
		if p.Err != nil {
			report.Failed = append(report.Failed, p.File)
		}
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	path := filepath.Join(b.Folder, OutputName(b.Folder, b.Started, ".yaml"))
	return path, writeFile(path, string(data))
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	return nil
}
