package ocr

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	thresholdBlock  = 11 // neighbourhood edge in pixels, odd
	thresholdOffset = 2  // subtracted from the local mean
)

// Preprocess prepares a page for recognition: grayscale, 2x upscale, light
// blur and an adaptive threshold that keeps text dark on a white background.
func Preprocess(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := imaging.Grayscale(src)
	up := imaging.Resize(gray, b.Dx()*2, b.Dy()*2, imaging.CatmullRom)
	smooth := imaging.Blur(up, 0.5)
	return adaptiveThreshold(smooth, thresholdBlock, thresholdOffset)
}

// adaptiveThreshold binarizes against the mean of each pixel's block x block
// neighbourhood, computed from a summed-area table.
func adaptiveThreshold(src *image.NRGBA, block, offset int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}
	// integral has one extra row and column of zeros.
	integral := make([]int64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var row int64
		for x := 0; x < w; x++ {
			// Grayscale input: R == G == B.
			row += int64(src.Pix[y*src.Stride+x*4])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + row
		}
	}
	r := block / 2
	for y := 0; y < h; y++ {
		y0, y1 := max(0, y-r), min(h-1, y+r)
		for x := 0; x < w; x++ {
			x0, x1 := max(0, x-r), min(w-1, x+r)
			sum := integral[(y1+1)*(w+1)+x1+1] - integral[y0*(w+1)+x1+1] - integral[(y1+1)*(w+1)+x0] + integral[y0*(w+1)+x0]
			area := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			v := int64(src.Pix[y*src.Stride+x*4])
			if v*area > sum-int64(offset)*area {
				out.Pix[y*out.Stride+x] = 0xff
			}
		}
	}
	return out
}
