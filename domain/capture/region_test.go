package capture

import (
	"errors"
	"testing"

	"github.com/soocke/pagegrab-go/domain/errs"
)

func TestRegion_FromSizeMatchesCorners(t *testing.T) {
	a := RegionFromSize(880, 180, 840, 1150)
	b := RegionFromCorners(880, 180, 1720, 1330)
	if a != b {
		t.Fatalf("expected equal regions: %v vs %v", a, b)
	}
	if a.Width() != 840 || a.Height() != 1150 {
		t.Fatalf("unexpected size %dx%d", a.Width(), a.Height())
	}
	if got := a.Describe(); got != "Region: 840x1150 pixels" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestRegion_ValidateRejectsEmpty(t *testing.T) {
	for _, r := range []Region{{}, RegionFromSize(0, 0, -1, 10), RegionFromSize(0, 0, 10, 0)} {
		if err := r.Validate(); !errors.Is(err, errs.ErrInvalidConfiguration) {
			t.Fatalf("region %v: expected ErrInvalidConfiguration got %v", r, err)
		}
		if r.Describe() != "Region: invalid" {
			t.Fatalf("region %v: unexpected description %q", r, r.Describe())
		}
	}
}

func TestPageName_Padding(t *testing.T) {
	cases := []struct {
		index, total int
		want         string
	}{
		{3, 3, "page_03.png"},
		{3, 9, "page_03.png"},
		{10, 99, "page_10.png"},
		{7, 100, "page_007.png"},
		{1234, 1500, "page_1234.png"},
	}
	for _, c := range cases {
		if got := PageName("page_", c.index, c.total); got != c.want {
			t.Fatalf("PageName(%d,%d): expected %s got %s", c.index, c.total, c.want, got)
		}
	}
}
