package collate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Page is one normalized, JPEG-encoded page ready for the document.
type Page struct {
	Name   string
	Width  int // pixels
	Height int // pixels
	JPEG   []byte
}

// DocumentWriter assembles pages into a paginated document on out. onPage,
// when set, is called after each page is added.
type DocumentWriter interface {
	Write(out io.Writer, title string, pages []Page, onPage func(done, total int)) error
}

// PDFWriter writes one page per image, each page sized to its image at one
// point per pixel.
type PDFWriter struct {
	Creator string
}

func NewPDFWriter() *PDFWriter { return &PDFWriter{Creator: "pagegrab"} }

func (w *PDFWriter) Write(out io.Writer, title string, pages []Page, onPage func(done, total int)) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages")
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator(w.Creator, true)
	for i, p := range pages {
		name := fmt.Sprintf("page-%d", i)
		info := pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPG"}, bytes.NewReader(p.JPEG))
		if info == nil || pdf.Err() {
			return fmt.Errorf("register %s: %w", p.Name, pdf.Error())
		}
		wd, ht := float64(p.Width), float64(p.Height)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: wd, Ht: ht})
		pdf.ImageOptions(name, 0, 0, wd, ht, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
		if pdf.Err() {
			return fmt.Errorf("add %s: %w", p.Name, pdf.Error())
		}
		if onPage != nil {
			onPage(i+1, len(pages))
		}
	}
	return pdf.Output(out)
}
