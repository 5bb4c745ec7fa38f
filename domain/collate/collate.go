// Package collate assembles a folder of single-page images into one
// paginated PDF. Order is the lexicographic order of file names.
package collate

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

const (
	DefaultPattern = "*.png"
	DefaultQuality = 95
)

// Options describes one collation.
type Options struct {
	Dir     string
	Pattern string // glob matched against file names in Dir
	Name    string // document name; defaults to <dir name>.pdf and is placed in Dir unless absolute
	Quality int    // JPEG quality of embedded pages

	// Files, when set, are the inputs in page order and Dir is not listed.
	Files []string
}

// Warning records an input that was skipped.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) Error() string { return fmt.Sprintf("%s: %v", filepath.Base(w.Path), w.Err) }

// Result describes the written document.
type Result struct {
	Path     string
	Size     int64
	Pages    int
	Inputs   []string // inputs that made it into the document, in page order
	Warnings []Warning
}

// Collator turns an image folder into a document.
type Collator struct {
	writer DocumentWriter
	logger *slog.Logger
}

// New returns a Collator. A nil writer selects the PDF writer.
func New(writer DocumentWriter, logger *slog.Logger) *Collator {
	if writer == nil {
		writer = NewPDFWriter()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collator{writer: writer, logger: logger}
}

// DocumentName returns name with a .pdf suffix, or <folder>.pdf when name is blank.
func DocumentName(folder, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(filepath.Clean(folder))
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

// ListInputs returns the files in dir matching pattern, sorted by name.
func ListInputs(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", errs.ErrInvalidConfiguration, pattern, err)
	}
	files := matches[:0]
	for _, m := range matches {
		if st, err := os.Stat(m); err == nil && st.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Collate loads every matching image into load and writes the document into write.
// Cancellation is honoured between images while loading; once the write has
// begun it runs to completion. Undecodable inputs become warnings. The document
// is written to a temporary file and renamed, so a failed write leaves nothing behind.
func (c *Collator) Collate(ctx context.Context, opts Options, rep progress.Reporter, load, write progress.Span) (Result, error) {
	if opts.Dir == "" {
		return Result{}, fmt.Errorf("%w: input folder is empty", errs.ErrInvalidConfiguration)
	}
	if st, err := os.Stat(opts.Dir); err != nil || !st.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is not a folder", errs.ErrInvalidConfiguration, opts.Dir)
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	files := opts.Files
	if len(files) == 0 {
		var err error
		if files, err = ListInputs(opts.Dir, opts.Pattern); err != nil {
			return Result{}, err
		}
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("%w: no %s files in %s", errs.ErrNoInputFound, patternOrDefault(opts.Pattern), opts.Dir)
	}

	var res Result
	pages := make([]Page, 0, len(files))
	total := len(files)
	rep.Progress(load.At(0))
	for i, path := range files {
		if ctx.Err() != nil {
			return res, errs.ErrCancelled
		}
		rep.Statusf("Loading %s (%d/%d)", filepath.Base(path), i+1, total)
		page, err := loadPage(path, opts.Quality)
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{Path: path, Err: err})
			c.logger.Warn("skip image", "path", path, "error", err)
		} else {
			pages = append(pages, page)
			res.Inputs = append(res.Inputs, path)
		}
		rep.Progress(load.At(float64(i+1) / float64(total)))
	}
	if len(pages) == 0 {
		return res, fmt.Errorf("%w: none of %d images could be decoded", errs.ErrNoUsableInput, total)
	}

	name := DocumentName(opts.Dir, opts.Name)
	target := name
	if !filepath.IsAbs(target) {
		target = filepath.Join(opts.Dir, name)
	}
	rep.Statusf("Creating PDF: %s", filepath.Base(target))
	rep.Progress(write.At(0))
	size, err := c.writeAtomic(target, pages, rep, write)
	if err != nil {
		return res, err
	}
	res.Path = target
	res.Size = size
	res.Pages = len(pages)
	rep.Progress(write.At(1))
	c.logger.Info("document written", "path", target, "pages", res.Pages, "size", size, "skipped", len(res.Warnings))
	return res, nil
}

// loadPage decodes, flattens to opaque RGB and JPEG-encodes one image. The
// decoded pixels are dropped before returning.
func loadPage(path string, quality int) (Page, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return Page{}, err
	}
	canvas := flatten(img)
	defer releaseCanvas(canvas)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return Page{}, fmt.Errorf("%w: encode: %v", errs.ErrDecodeFailure, err)
	}
	b := canvas.Bounds()
	return Page{Name: filepath.Base(path), Width: b.Dx(), Height: b.Dy(), JPEG: buf.Bytes()}, nil
}

func (c *Collator) writeAtomic(target string, pages []Page, rep progress.Reporter, span progress.Span) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".pagegrab-*.pdf.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	tmpName := tmp.Name()
	fail := func(err error) (int64, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	title := strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
	onPage := func(done, total int) { rep.Progress(span.At(0.9 * float64(done) / float64(total))) }
	if err := c.writer.Write(tmp, title, pages, onPage); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	st, err := os.Stat(target)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrWriteFailure, err)
	}
	return st.Size(), nil
}

func patternOrDefault(p string) string {
	if p == "" {
		return DefaultPattern
	}
	return p
}
