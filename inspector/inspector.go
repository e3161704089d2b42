// Package inspector shows the live components of one selected enemy.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warpdash/entities"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30

	// pickSlack widens enemy hitboxes for selection clicks
	pickSlack = 6
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 20, G: 24, B: 34, A: 235}
	ColorPanelHeader = rl.Color{R: 40, G: 48, B: 66, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 90, B: 120, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 56, B: 72, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 210, B: 230, A: 255}
)

// Source is what the inspector reads from.
type Source interface {
	EnemyView(e ecs.Entity) (entities.EnemyView, bool)
	Inspect(e ecs.Entity) []any
}

// Inspector manages enemy selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector anchored to the right screen edge.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth)
	return ins
}

// Resize re-anchors the panel.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 90
}

// Pick returns the enemy whose hit circle contains the arena point (x, y),
// preferring the closest center.
func Pick(x, y float64, enemies []entities.EnemyView) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := math.Inf(1)
	found := false
	for _, e := range enemies {
		dx, dy := x-e.HitPos.X, y-e.HitPos.Y
		d := dx*dx + dy*dy
		r := e.Radius + pickSlack
		if d < r*r && d < bestDist {
			best, bestDist, found = e.E, d, true
		}
	}
	return best, found
}

// HandleClick selects the enemy under an arena-space click. Screen
// coordinates are used to check the close button and the panel itself.
func (ins *Inspector) HandleClick(screenX, screenY int32, arenaX, arenaY float64, enemies []entities.EnemyView) {
	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if screenX >= closeX && screenX <= closeX+20 && screenY >= closeY && screenY <= closeY+20 {
			ins.Deselect()
			return
		}
		if screenX >= ins.panelX && screenX <= ins.panelX+PanelWidth && screenY >= ins.panelY {
			return
		}
	}
	if e, ok := Pick(arenaX, arenaY, enemies); ok {
		ins.selected = e
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the panel. A selection whose enemy died is dropped.
func (ins *Inspector) Draw(src Source) {
	if !ins.hasSelected {
		return
	}
	view, ok := src.EnemyView(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}

	var fields []Field
	for _, c := range src.Inspect(ins.selected) {
		fields = append(fields, ExtractFields(c)...)
	}

	height := int32(HeaderHeight + PanelPadding*2 + 22 + 8 + 40)
	for _, f := range fields {
		height += FieldHeight(f)
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("ID: %d  Kind: %s", view.ID, view.Kind), x, y, 14, ColorHeaderText)
	y += 22
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	y += DrawLabel(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", view.Pos.X, view.Pos.Y), nil)
	y += DrawLabel(x, y, "Velocity", fmt.Sprintf("(%.2f, %.2f)", view.Vel.X, view.Vel.Y), nil)

	for _, f := range fields {
		y += DrawField(x, y, f)
	}
}

// DrawSelectionHighlight rings the selected enemy. Call it in arena space.
func (ins *Inspector) DrawSelectionHighlight(src Source) {
	if !ins.hasSelected {
		return
	}
	view, ok := src.EnemyView(ins.selected)
	if !ok {
		return
	}
	rl.DrawCircleLines(int32(view.HitPos.X), int32(view.HitPos.Y), float32(view.Radius*1.8), rl.Yellow)
}
