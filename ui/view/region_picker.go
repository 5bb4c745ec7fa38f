package view

import (
	"fmt"
	"runtime"

	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

const pickerKey = "#008080"

// RegionPicker is a see-through window the user moves and resizes over the
// document page. Confirm hands its geometry to onPick as a capture region.
type RegionPicker struct {
	win    *ToplevelWidget
	onPick func(capture.Region)
}

func NewRegionPicker(onPick func(capture.Region)) *RegionPicker {
	return &RegionPicker{onPick: onPick}
}

// Open shows the picker over current, or a centred default when current is
// not a valid region.
func (v *RegionPicker) Open(current capture.Region) {
	if v.win != nil {
		return
	}
	win := App.Toplevel(Borderwidth(2), Background(pickerKey))
	win.WmTitle("Pick Region")
	v.win = win
	if current.Validate() != nil {
		current = capture.RegionFromSize(480, 180, 960, 720)
	}
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", current.Width(), current.Height(), current.X1, current.Y1))
	WmAttributes(win.Window, "-topmost", 1)
	if runtime.GOOS == "windows" {
		WmAttributes(win.Window, "-transparentcolor", pickerKey)
	} else {
		WmAttributes(win.Window, "-alpha", 0.4)
	}
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background(pickerKey))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Use Region [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.close))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.close))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
}

func (v *RegionPicker) confirm() {
	if v.win == nil {
		return
	}
	if r, ok := model.RegionFromGeometry(WmGeometry(v.win.Window)); ok && v.onPick != nil {
		v.onPick(r)
	}
	v.close()
}

func (v *RegionPicker) close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
