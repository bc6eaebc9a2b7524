// Package inspector draws a field-by-field debug panel for the creature.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 26
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 40, G: 34, B: 30, A: 230}
	ColorPanelHeader = rl.Color{R: 70, G: 58, B: 50, A: 255}
	ColorPanelBorder = rl.Color{R: 110, G: 95, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 250, B: 240, A: 255}
	ColorCloseBtn    = rl.Color{R: 190, G: 90, B: 80, A: 255}
)

// Extra is a derived value shown below the creature fields.
type Extra struct {
	Name  string
	Value any
}

// Inspector is a toggleable panel in the top-right corner of the scene.
type Inspector struct {
	visible bool
	panelX  int32
	panelY  int32
}

// NewInspector creates a hidden inspector for a scene of the given width.
func NewInspector(sceneWidth int32) *Inspector {
	return &Inspector{
		panelX: sceneWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() {
	ins.visible = !ins.visible
}

// Visible reports whether the panel is shown.
func (ins *Inspector) Visible() bool {
	return ins.visible
}

// Contains reports whether a point lies over the visible panel, so scene
// clicks there can be ignored.
func (ins *Inspector) Contains(x, y float32, rows int) bool {
	if !ins.visible {
		return false
	}
	h := ins.height(rows)
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY && int32(y) <= ins.panelY+h
}

// HandleClick closes the panel when the close button is hit. Returns true
// if the click was consumed.
func (ins *Inspector) HandleClick(x, y float32) bool {
	if !ins.visible {
		return false
	}
	closeX := ins.panelX + PanelWidth - 22
	closeY := ins.panelY + 4
	if int32(x) >= closeX && int32(x) <= closeX+18 && int32(y) >= closeY && int32(y) <= closeY+18 {
		ins.visible = false
		return true
	}
	return false
}

// Rows returns how many rows Draw will render for c and extras.
func Rows(c *components.Creature, extras []Extra) int {
	return len(ExtractFields(c)) + len(extras)
}

func (ins *Inspector) height(rows int) int32 {
	return HeaderHeight + PanelPadding*2 + int32(rows)*rowHeight
}

// Draw renders the creature's fields followed by the extras.
func (ins *Inspector) Draw(c *components.Creature, extras []Extra) {
	if !ins.visible || c == nil {
		return
	}

	fields := ExtractFields(c)
	h := ins.height(len(fields) + len(extras))
	x, y := ins.panelX, ins.panelY

	rl.DrawRectangle(x, y, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLines(x, y, PanelWidth, h, ColorPanelBorder)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("Bunny ("+c.StageInfo().Label+")", x+PanelPadding, y+6, 16, ColorHeaderText)

	// Close button
	closeX := x + PanelWidth - 22
	rl.DrawRectangle(closeX, y+4, 18, 18, ColorCloseBtn)
	rl.DrawText("x", closeX+5, y+5, 16, ColorHeaderText)

	rowY := y + HeaderHeight + PanelPadding
	for _, f := range fields {
		rowY += DrawField(x+PanelPadding, rowY, f)
	}
	for _, e := range extras {
		rowY += DrawLabel(x+PanelPadding, rowY, e.Name, e.Value, nil)
	}
}
