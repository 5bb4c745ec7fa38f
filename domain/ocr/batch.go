package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

// imageExtensions are the inputs picked up from a folder, case-insensitive.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".tif": true, ".tiff": true, ".bmp": true, ".webp": true,
}

// Options describes one OCR batch.
type Options struct {
	Dir      string
	Language string
	Enhance  bool
}

// PageText is the outcome for one image.
type PageText struct {
	File       string  `yaml:"file"`
	Text       string  `yaml:"text"`
	Confidence float64 `yaml:"confidence"`
	Words      int     `yaml:"words"`
	Err        error   `yaml:"-"`
}

// Batch is the outcome for a folder.
type Batch struct {
	Folder   string
	Language string
	Started  time.Time
	Pages    []PageText
}

// Recognized returns the pages that produced text without error.
func (b Batch) Recognized() []PageText {
	var out []PageText
	for _, p := range b.Pages {
		if p.Err == nil {
			out = append(out, p)
		}
	}
	return out
}

// MeanConfidence averages the confidence of the recognized pages.
func (b Batch) MeanConfidence() float64 {
	ok := b.Recognized()
	if len(ok) == 0 {
		return 0
	}
	var sum float64
	for _, p := range ok {
		sum += p.Confidence
	}
	return sum / float64(len(ok))
}

// ListImages returns the supported images in dir sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidConfiguration, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Processor runs an Engine over a folder.
type Processor struct {
	engine Engine
	logger *slog.Logger
	now    func() time.Time
}

func NewProcessor(engine Engine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{engine: engine, logger: logger, now: time.Now}
}

// Process recognizes every image in opts.Dir. A failing image is recorded on
// its PageText and the batch continues. Cancellation stops between images.
func (p *Processor) Process(ctx context.Context, opts Options, rep progress.Reporter) (Batch, error) {
	if p.engine == nil {
		return Batch{}, ErrEngineUnavailable
	}
	files, err := ListImages(opts.Dir)
	if err != nil {
		return Batch{}, err
	}
	if len(files) == 0 {
		return Batch{}, fmt.Errorf("%w: no images in %s", errs.ErrNoInputFound, opts.Dir)
	}
	lang := ResolveLanguage(Languages(p.engine), opts.Language)
	if lang != strings.ToLower(strings.TrimSpace(opts.Language)) && opts.Language != "" {
		p.logger.Warn("language not installed, using fallback", "requested", opts.Language, "language", lang)
	}
	batch := Batch{Folder: opts.Dir, Language: lang, Started: p.now()}
	for i, path := range files {
		if ctx.Err() != nil {
			return batch, errs.ErrCancelled
		}
		name := filepath.Base(path)
		rep.Statusf("Recognizing %s (%d/%d)", name, i+1, len(files))
		page := PageText{File: name}
		rec, err := p.recognizeFile(ctx, path, lang, opts.Enhance)
		if err != nil {
			page.Err = err
			p.logger.Warn("ocr image", "path", path, "error", err)
		} else {
			page.Text, page.Confidence, page.Words = rec.Text, rec.Confidence, rec.Words
			p.logger.Debug("ocr image", "path", path, "chars", len(rec.Text), "confidence", rec.Confidence)
		}
		batch.Pages = append(batch.Pages, page)
		rep.Progress(progress.Full.At(float64(i+1) / float64(len(files))))
	}
	if len(batch.Recognized()) == 0 {
		return batch, fmt.Errorf("%w: no text recognized in %d images", errs.ErrNoUsableInput, len(files))
	}
	return batch, nil
}

func (p *Processor) recognizeFile(ctx context.Context, path, lang string, enhance bool) (Recognition, error) {
	img, err := collate.DecodeFile(path)
	if err != nil {
		return Recognition{}, err
	}
	var prepared image.Image = img
	if enhance {
		prepared = Preprocess(img)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return Recognition{}, fmt.Errorf("encode: %w", err)
	}
	return p.engine.Recognize(ctx, buf.Bytes(), lang)
}
