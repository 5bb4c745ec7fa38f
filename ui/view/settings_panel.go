package view

import (
	"strings"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsPanel is the shared settings form. It reads and writes field text
// only; parsing lives in model.ApplySettings.
type SettingsPanel struct {
	widgets map[string]*TextWidget
	saveBtn *ButtonWidget
	pickBtn *ButtonWidget
	testBtn *ButtonWidget
	info    *LabelWidget
}

func NewSettingsPanel() *SettingsPanel {
	return &SettingsPanel{widgets: make(map[string]*TextWidget)}
}

// Build grids the form into parent and returns the next free row.
func (v *SettingsPanel) Build(parent *FrameWidget, cfg *config.Config, onSave, onPick, onTest func()) (row int) {
	values := model.SettingsValues(cfg)
	makeRow := func(id, label string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(18))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", values[id])
		v.widgets[id] = w
		row++
	}
	makeRow(model.FieldX1, "Top-left X")
	makeRow(model.FieldY1, "Top-left Y")
	makeRow(model.FieldX2, "Bottom-right X")
	makeRow(model.FieldY2, "Bottom-right Y")

	v.info = Label(Txt("Region: invalid"), Anchor("w"), Foreground("#64748b"))
	Grid(v.info, In(parent), Row(row), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	row++

	makeRow(model.FieldPages, "Pages")
	makeRow(model.FieldFolder, "Folder name")
	makeRow(model.FieldKey, "Next page key")
	makeRow(model.FieldCountdown, "Countdown seconds")
	makeRow(model.FieldDeletePNGs, "Delete PNGs (true/false)")

	btns := Frame()
	Grid(btns, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Pady("0.3m"))
	v.pickBtn = Button(Txt("Pick Region"), Command(onPick))
	v.testBtn = Button(Txt("Test Region"), Command(onTest))
	v.saveBtn = Button(Txt("Save Settings"), Command(onSave))
	Grid(v.pickBtn, In(btns), Row(0), Column(0), Sticky("we"), Padx("0.2m"))
	Grid(v.testBtn, In(btns), Row(0), Column(1), Sticky("we"), Padx("0.2m"))
	Grid(v.saveBtn, In(btns), Row(0), Column(2), Sticky("we"), Padx("0.2m"))
	row++
	return row
}

// SetEditable toggles every field and button of the form.
func (v *SettingsPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		w.Configure(State(state))
	}
	for _, b := range []*ButtonWidget{v.saveBtn, v.pickBtn, v.testBtn} {
		if b != nil {
			b.Configure(State(state))
		}
	}
}

// Fields returns the current text of every field.
func (v *SettingsPanel) Fields() map[string]string {
	out := make(map[string]string, len(v.widgets))
	for id, w := range v.widgets {
		out[id] = text(w)
	}
	return out
}

// SetFields replaces the text of the named fields.
func (v *SettingsPanel) SetFields(values map[string]string) {
	for id, val := range values {
		w := v.widgets[id]
		if w == nil {
			continue
		}
		w.Delete("1.0", END)
		w.Insert("1.0", val)
	}
}

// RegionFields returns the raw corner text.
func (v *SettingsPanel) RegionFields() (x1, y1, x2, y2 string) {
	return text(v.widgets[model.FieldX1]), text(v.widgets[model.FieldY1]),
		text(v.widgets[model.FieldX2]), text(v.widgets[model.FieldY2])
}

// SetRegionInfo updates the region size line under the corner fields.
func (v *SettingsPanel) SetRegionInfo(s string) {
	if v.info != nil {
		v.info.Configure(Txt(s))
	}
}

func text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}
