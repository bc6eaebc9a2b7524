package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/game"
)

// ActionKind identifies a control panel action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionStart
	ActionPause
	ActionReset
	ActionArmFood
)

// Action is a button press reported by the control panel.
type Action struct {
	Kind ActionKind
	Food components.FoodKind
}

// PanelData holds everything the control panel shows.
type PanelData struct {
	State     game.State
	Status    string
	Hunger    float64
	HungerMax float64
	Band      components.HungerBand
	Age       float64
	Stage     string
	Foods     int
	Placement components.FoodKind
}

// ControlPanel renders the bottom panel with session and food buttons.
type ControlPanel struct {
	paint  painter
	x, y   int32
	width  int32
	height int32
	foods  []config.FoodKindConfig
}

// NewControlPanel creates a panel occupying the given rectangle.
func NewControlPanel(x, y, width, height int32, foods []config.FoodKindConfig) *ControlPanel {
	return &ControlPanel{
		paint:  painter{th: DefaultTheme()},
		x:      x,
		y:      y,
		width:  width,
		height: height,
		foods:  foods,
	}
}

// Draw renders the panel and returns the button pressed this frame, if any.
func (p *ControlPanel) Draw(data PanelData) Action {
	pt := p.paint
	th := pt.th
	pad := th.Padding

	pt.panel(p.x, p.y, p.width, p.height)
	action := Action{}

	// Session buttons
	bx := float32(p.x + pad)
	by := float32(p.y + pad)
	if p.button(bx, by, "Start", data.State != game.StateRunning) {
		action = Action{Kind: ActionStart}
	}
	bx += th.ButtonWidth + 8
	if p.button(bx, by, "Pause", data.State == game.StateRunning) {
		action = Action{Kind: ActionPause}
	}
	bx += th.ButtonWidth + 8
	if p.button(bx, by, "Reset", true) {
		action = Action{Kind: ActionReset}
	}

	// Food buttons
	by += th.ButtonHeight + 8
	bx = float32(p.x + pad)
	for _, f := range p.foods {
		kind := components.FoodKind(f.Name)
		if kind == data.Placement {
			rl.DrawRectangleLinesEx(
				rl.Rectangle{X: bx - 3, Y: by - 3, Width: th.ButtonWidth + 6, Height: th.ButtonHeight + 6},
				2, th.Highlight,
			)
		}
		if p.button(bx, by, f.Label, true) {
			action = Action{Kind: ActionArmFood, Food: kind}
		}
		bx += th.ButtonWidth + 8
	}

	// Status column
	sx := p.x + p.width/2 + pad
	sw := p.width/2 - pad*2
	y := p.y + pad
	rl.DrawText(data.Status, sx, y, th.HeaderFontSize, th.StatusColor)
	y += th.LineHeight + 4
	y = pt.hungerMeter(sx, y, sw, data.Hunger, data.HungerMax, data.Band)
	y = pt.stat(sx, y, "Stage", fmt.Sprintf("%s (%.0fs)", data.Stage, data.Age))
	pt.stat(sx, y, "Food", fmt.Sprintf("%d in garden", data.Foods))

	return action
}

func (p *ControlPanel) button(x, y float32, text string, enabled bool) bool {
	if !enabled {
		gui.Disable()
		defer gui.Enable()
	}
	bounds := rl.Rectangle{X: x, Y: y, Width: p.paint.th.ButtonWidth, Height: p.paint.th.ButtonHeight}
	return gui.Button(bounds, text) && enabled
}
