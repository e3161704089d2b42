package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyHint is a non-overlay key binding listed under the toggles.
type KeyHint struct {
	Key  string
	Text string
}

// ControlsPanel lists overlay toggles and other debug keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	hints    []KeyHint
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32, hints ...KeyHint) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		hints:    hints,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height for the given registry.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := len(c.hints)
	for _, cat := range overlays.Categories() {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	return int32(rows+1)*t.LineHeight + t.Padding*3
}

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	y := c.y + padding
	rl.DrawText("Debug", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	for _, h := range c.hints {
		c.drawKey(c.x+padding, y, h.Key, h.Text, r.Theme.LabelColor, c.width-padding*2)
		y += lineHeight
	}
	return y + padding
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := c.renderer.Theme.LabelColor
	if enabled {
		statusColor = c.renderer.Theme.BarFillHigh
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+3, 8, 8, statusColor)
	c.drawKey(x+14, y, desc.KeyLabel, desc.Name, nameColor, width-14)
}

// drawKey draws a label with its key right aligned.
func (c *ControlsPanel) drawKey(x, y int32, key, text string, col rl.Color, width int32) {
	size := c.renderer.Theme.FontSize
	rl.DrawText(text, x, y, size, col)
	if key == "" {
		return
	}
	keyText := fmt.Sprintf("[%s]", key)
	rl.DrawText(keyText, x+width-rl.MeasureText(keyText, size), y, size, rl.Gray)
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "grid":
		return "Grid"
	case "combat":
		return "Combat"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
