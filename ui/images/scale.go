package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit shrinks src so it fits within maxW x maxH preserving aspect
// ratio. Sources that already fit are returned unchanged; images are never
// enlarged.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	maxW, maxH = max(maxW, 1), max(maxH, 1)
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	// Previews of text pages stay legible with Lanczos; Box is faster but blurs glyphs.
	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}

// Placeholder is a blank preview of the given size.
func Placeholder(w, h int) image.Image {
	return imaging.New(max(w, 1), max(h, 1), image.White)
}
