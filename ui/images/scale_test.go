package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 1100))
	got := ScaleToFit(src, 400, 225)
	b := got.Bounds()
	if b.Dy() != 225 {
		t.Fatalf("height = %d, want 225", b.Dy())
	}
	if b.Dx() < 162 || b.Dx() > 164 {
		t.Fatalf("width = %d, want about 163", b.Dx())
	}
}

func TestScaleToFit_SmallSourceUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if got := ScaleToFit(src, 400, 225); got != image.Image(src) {
		t.Fatal("a fitting source must be returned as is")
	}
	if ScaleToFit(nil, 1, 1) != nil {
		t.Fatal("nil in, nil out")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	data := EncodePNG(Placeholder(20, 12))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 12 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatal("nil image must encode to nil")
	}
}
