package capture

import (
	"fmt"
	"image"

	"github.com/soocke/pagegrab-go/domain/errs"
)

// Region is a screen rectangle given by its top-left (X1,Y1) and
// bottom-right (X2,Y2) corners. It is a value; copy it into a run and never
// mutate it afterwards.
type Region struct {
	X1, Y1, X2, Y2 int
}

// RegionFromCorners builds a Region from two corners.
func RegionFromCorners(x1, y1, x2, y2 int) Region {
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// RegionFromSize builds a Region from an origin and a size.
func RegionFromSize(x, y, width, height int) Region {
	return Region{X1: x, Y1: y, X2: x + width, Y2: y + height}
}

func (r Region) Width() int  { return r.X2 - r.X1 }
func (r Region) Height() int { return r.Y2 - r.Y1 }

// Rect converts to an image.Rectangle in global screen coordinates.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Validate rejects regions without a positive width and height.
func (r Region) Validate() error {
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("%w: region %dx%d must have positive width and height", errs.ErrInvalidConfiguration, r.Width(), r.Height())
	}
	return nil
}

// Describe renders the live preview text shown next to the region fields.
func (r Region) Describe() string {
	if r.Width() <= 0 || r.Height() <= 0 {
		return "Region: invalid"
	}
	return fmt.Sprintf("Region: %dx%d pixels", r.Width(), r.Height())
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
