package view

import (
	"image"

	"github.com/soocke/pagegrab-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	maxPreviewW = 320
	maxPreviewH = 420
)

// RegionPreview shows the last test-region screenshot scaled down.
type RegionPreview struct {
	label *LabelWidget
	photo *Img // disposed before each replacement
}

// NewRegionPreview grids the preview label into parent.
func NewRegionPreview(parent *FrameWidget, row, col int) *RegionPreview {
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(200, 260))))
	lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, In(parent), Row(row), Column(col), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return &RegionPreview{label: lbl, photo: photo}
}

// Show replaces the preview with img.
func (v *RegionPreview) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(images.EncodePNG(scaled)))
	v.label.Configure(Image(v.photo))
}
