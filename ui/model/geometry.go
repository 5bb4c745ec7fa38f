package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/pagegrab-go/domain/capture"
)

// geomRe matches Tk window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)([+-]-?\d+)([+-]-?\d+)$`)

// RegionFromGeometry converts a Tk geometry string into a capture region.
func RegionFromGeometry(g string) (capture.Region, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return capture.Region{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, err1 := strconv.Atoi(strings.TrimPrefix(m[3], "+"))
	y, err2 := strconv.Atoi(strings.TrimPrefix(m[4], "+"))
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return capture.Region{}, false
	}
	return capture.RegionFromSize(x, y, w, h), true
}
