// Package ocr runs Tesseract over a folder of images and saves the text.
package ocr

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// ErrEngineUnavailable is returned when no Tesseract installation can be used.
var ErrEngineUnavailable = errors.New("tesseract not available")

// DefaultLanguage is used when the requested language is not installed.
const DefaultLanguage = "eng"

// Recognition is the text found in one image.
type Recognition struct {
	Text       string
	Confidence float64 // mean word confidence, 0-100
	Words      int
}

// Engine recognizes text in encoded image bytes (PNG).
type Engine interface {
	Recognize(ctx context.Context, image []byte, lang string) (Recognition, error)
	Version() (string, error)
	Languages() ([]string, error)
	Name() string
}

// ResolveLanguage returns lang when installed and DefaultLanguage otherwise.
func ResolveLanguage(available []string, lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultLanguage
	}
	// Tesseract accepts combined languages such as "eng+slk".
	for _, part := range strings.Split(lang, "+") {
		if !slices.Contains(available, part) {
			return DefaultLanguage
		}
	}
	return lang
}

// Languages lists installed languages, falling back to DefaultLanguage when
// the engine cannot tell.
func Languages(e Engine) []string {
	if e == nil {
		return []string{DefaultLanguage}
	}
	langs, err := e.Languages()
	if err != nil || len(langs) == 0 {
		return []string{DefaultLanguage}
	}
	return langs
}

// meanConfidence averages the positive word confidences.
func meanConfidence(confs []float64) (float64, int) {
	var sum float64
	n := 0
	for _, c := range confs {
		if c > 0 {
			sum += c
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
