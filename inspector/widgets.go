package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg   = rl.Color{R: 60, G: 50, B: 45, A: 255}
	ColorBarFill = rl.Color{R: 120, G: 190, B: 100, A: 255}
	ColorBarLow  = rl.Color{R: 210, G: 90, B: 80, A: 255}
	ColorText    = rl.Color{R: 240, G: 235, B: 225, A: 255}
	ColorTextDim = rl.Color{R: 170, G: 160, B: 150, A: 255}
	ColorBoolOn  = rl.Color{R: 120, G: 200, B: 110, A: 255}
	ColorBoolOff = rl.Color{R: 100, G: 95, B: 90, A: 255}
)

const rowHeight = 18

// DrawLabel renders "name: value".
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatValue(value, options["fmt"]), x+110, y, 14, ColorText)
	return rowHeight
}

// DrawBar renders a horizontal meter scaled by the max option.
func DrawBar(x, y int32, name string, value float64, options map[string]string) int32 {
	ratio := value / GetMax(options)
	ratio = max(0, min(1, ratio))

	const barWidth, barHeight = int32(110), int32(14)
	barX := x + 110

	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fill := ColorBarFill
	if ratio < 0.3 {
		fill = ColorBarLow
	}
	rl.DrawRectangle(barX, y, int32(float64(barWidth)*ratio), barHeight, fill)
	rl.DrawText(fmt.Sprintf("%.1f", value), barX+barWidth+6, y, 14, ColorTextDim)
	return rowHeight
}

// DrawBool renders a yes/no indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	color, text := ColorBoolOff, "no"
	if value {
		color, text = ColorBoolOn, "yes"
	}
	rl.DrawRectangle(x+110, y, 14, 14, color)
	rl.DrawText(text, x+130, y, 14, color)
	return rowHeight
}

// DrawField renders a field using its widget type and returns the row height.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}
