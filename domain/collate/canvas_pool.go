package collate

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// canvasPool keeps RGBA backing buffers between pages. Consecutive pages of
// one book share a size, so after the first page normalization stops
// allocating full-page buffers.
var canvasPool sync.Pool // stores *image.RGBA

// acquireCanvas returns a reusable RGBA image sized to rect with Pix length
// exactly rect area * 4.
func acquireCanvas(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := canvasPool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// releaseCanvas returns the canvas to the pool. The caller must not touch it afterwards.
func releaseCanvas(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	canvasPool.Put(img)
}

// flatten composites src over opaque white into a pooled canvas, dropping
// alpha and palette. Release the result with releaseCanvas.
func flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := acquireCanvas(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
