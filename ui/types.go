// Package ui draws the HUD, end-of-run overlays and debug overlays on top
// of the arena.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Accent         rl.Color
	Danger         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 14, B: 24, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 90, B: 140, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 50, A: 255},
		BarFill:        rl.Color{R: 100, G: 200, B: 255, A: 255},
		BarFillLow:     rl.Color{R: 220, G: 80, B: 80, A: 255},
		BarFillMedium:  rl.Color{R: 220, G: 180, B: 80, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 220, B: 120, A: 255},
		Accent:         rl.Color{R: 120, G: 220, B: 255, A: 255},
		Danger:         rl.Color{R: 255, G: 50, B: 70, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
