package presenter

import (
	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/ui/model"
)

// RegionSource exposes the raw region fields of the form.
type RegionSource interface {
	RegionFields() (x1, y1, x2, y2 string)
}

// RegionView shows the live region description.
type RegionView interface{ SetRegionInfo(text string) }

// RegionPresenter keeps "Region: WxH pixels" in sync with the form.
type RegionPresenter struct {
	source RegionSource
	view   RegionView
	last   string
}

func NewRegionPresenter(source RegionSource, view RegionView) *RegionPresenter {
	return &RegionPresenter{source: source, view: view}
}

// Describe renders the region text for raw field values.
func Describe(x1, y1, x2, y2 string) string {
	vals := [4]int{}
	for i, s := range []string{x1, y1, x2, y2} {
		v, ok := model.ParseIntField(s)
		if !ok {
			return "Region: invalid"
		}
		vals[i] = v
	}
	return capture.RegionFromCorners(vals[0], vals[1], vals[2], vals[3]).Describe()
}

// Tick pushes the description when it changed.
func (p *RegionPresenter) Tick() {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	text := Describe(p.source.RegionFields())
	if text == p.last {
		return
	}
	p.last = text
	p.view.SetRegionInfo(text)
}
