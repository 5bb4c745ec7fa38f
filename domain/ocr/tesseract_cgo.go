//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// LibEngine links libtesseract through gosseract. One client is created per
// image so concurrent callers never share Tesseract state.
type LibEngine struct{}

// NewEngine returns the linked engine. Build with -tags ocr.
func NewEngine() Engine { return LibEngine{} }

func (LibEngine) Name() string { return "gosseract" }

func (LibEngine) Version() (string, error) {
	v := gosseract.Version()
	if v == "" {
		return "", ErrEngineUnavailable
	}
	return "tesseract " + v, nil
}

func (LibEngine) Languages() ([]string, error) {
	return gosseract.GetAvailableLanguages()
}

func (LibEngine) Recognize(ctx context.Context, image []byte, lang string) (Recognition, error) {
	if err := ctx.Err(); err != nil {
		return Recognition{}, err
	}
	client := gosseract.NewClient()
	defer client.Close()
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := client.SetLanguage(strings.Split(lang, "+")...); err != nil {
		return Recognition{}, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return Recognition{}, fmt.Errorf("set page mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Recognition{}, fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return Recognition{}, fmt.Errorf("recognize: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Recognition{Text: strings.TrimSpace(text)}, nil
	}
	confs := make([]float64, 0, len(boxes))
	for _, b := range boxes {
		confs = append(confs, b.Confidence)
	}
	mean, _ := meanConfidence(confs)
	return Recognition{Text: strings.TrimSpace(text), Confidence: mean, Words: len(boxes)}, nil
}
