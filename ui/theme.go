// Package ui draws the control panel and runs the windowed garden.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	StatusColor    rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Highlight      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	ButtonWidth    float32
	ButtonHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 60, G: 45, B: 35, A: 245},
		PanelBorder:    rl.Color{R: 110, G: 85, B: 60, A: 255},
		SectionHeader:  rl.Color{R: 255, G: 215, B: 120, A: 255},
		LabelColor:     rl.Color{R: 220, G: 210, B: 190, A: 255},
		ValueColor:     rl.White,
		StatusColor:    rl.Color{R: 255, G: 235, B: 170, A: 255},
		BarBg:          rl.Color{R: 40, G: 30, B: 25, A: 255},
		BarFillLow:     rl.Color{R: 210, G: 90, B: 80, A: 255},
		BarFillMedium:  rl.Color{R: 220, G: 180, B: 90, A: 255},
		BarFillHigh:    rl.Color{R: 110, G: 200, B: 100, A: 255},
		Highlight:      rl.Color{R: 255, G: 230, B: 120, A: 255},
		Padding:        10,
		LineHeight:     20,
		LabelWidth:     70,
		BarHeight:      14,
		FontSize:       16,
		HeaderFontSize: 18,
		ButtonWidth:    90,
		ButtonHeight:   30,
	}
}
