package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
)

// painter draws the panel's static pieces in the theme's style.
type painter struct {
	th Theme
}

// panel fills the strip below the scene with a rounded top edge.
func (pt painter) panel(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, pt.th.PanelBg)
	rl.DrawLine(x, y, x+w, y, pt.th.PanelBorder)
	rl.DrawLine(x, y+1, x+w, y+1, pt.th.PanelBorder)
}

// stat draws "label: value" and returns the y of the next row.
func (pt painter) stat(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, pt.th.FontSize, pt.th.LabelColor)
	rl.DrawText(value, x+pt.th.LabelWidth, y, pt.th.FontSize, pt.th.ValueColor)
	return y + pt.th.LineHeight
}

// hungerMeter draws the hunger bar colored by the creature's hunger band
// and returns the y of the next row.
func (pt painter) hungerMeter(x, y, w int32, hunger, hungerMax float64, band components.HungerBand) int32 {
	ratio := 0.0
	if hungerMax > 0 {
		ratio = max(0, min(1, hunger/hungerMax))
	}

	barX := x + pt.th.LabelWidth
	barW := w - pt.th.LabelWidth - 90
	rl.DrawText("Hunger", x, y, pt.th.FontSize, pt.th.LabelColor)
	rl.DrawRectangle(barX, y+2, barW, pt.th.BarHeight, pt.th.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barW)*ratio), pt.th.BarHeight, pt.bandColor(band))

	rl.DrawText(fmt.Sprintf("%.0f %s", hunger, band), barX+barW+8, y, pt.th.FontSize, pt.th.ValueColor)
	return y + pt.th.LineHeight + 2
}

func (pt painter) bandColor(band components.HungerBand) rl.Color {
	switch band {
	case components.HungerFull, components.HungerNormal:
		return pt.th.BarFillHigh
	case components.HungerHungry:
		return pt.th.BarFillMedium
	default:
		return pt.th.BarFillLow
	}
}
