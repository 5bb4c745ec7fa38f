package capture

import (
	"fmt"
	"strconv"
)

// PadWidth is the zero-padding width for a run of total pages: at least two
// digits, widened so lexicographic order matches capture order for any total.
func PadWidth(total int) int {
	w := len(strconv.Itoa(total))
	if w < 2 {
		return 2
	}
	return w
}

// PageName returns the file name of the 1-based page index, e.g. page_03.png.
func PageName(prefix string, index, total int) string {
	return fmt.Sprintf("%s%0*d.png", prefix, PadWidth(total), index)
}
