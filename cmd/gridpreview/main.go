// Warp grid preview tool - interactive spring and fisheye tuning with sliders.
//
// Left click kicks the lattice under the cursor, right click fires a color
// shockwave. The crosshair shows the inverse fisheye mapping: the screen
// cursor is mapped back to lattice space and forward again.
//
// Usage: go run ./cmd/gridpreview
package main

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/systems"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	arenaWidth   = 900
	panelWidth   = windowWidth - arenaWidth - 30
)

// previewParams holds the values under the sliders. Distortion is shown in
// units of 1e-4.
type previewParams struct {
	Base    config.GridConfig
	Spring  float32
	Damping float32
	KBase   float32
	KLevel  float32
	Level   float32
	Radius  float32
	Force   float32
}

func defaultParams(cfg *config.Config) previewParams {
	return previewParams{
		Base:    cfg.Grid,
		Spring:  float32(cfg.Grid.Spring),
		Damping: float32(cfg.Grid.Damping),
		KBase:   float32(cfg.Grid.DistortionBase * 1e4),
		KLevel:  float32(cfg.Grid.DistortionPerLevel * 1e4),
		Radius:  150,
		Force:   50,
	}
}

// grid returns the grid config section under the sliders.
func (p previewParams) grid() config.GridConfig {
	gc := p.Base
	gc.Spring = float64(p.Spring)
	gc.Damping = float64(p.Damping)
	gc.DistortionBase = float64(p.KBase) / 1e4
	gc.DistortionPerLevel = float64(p.KLevel) / 1e4
	return gc
}

// slider draws a labelled slider row and returns the new value.
func slider(x float32, y *float32, label string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.RayWhite)
	*y += 35
	return v
}

func gridYAML(gc config.GridConfig) string {
	data, err := yaml.Marshal(map[string]config.GridConfig{"grid": gc})
	if err != nil {
		return ""
	}
	return string(data)
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Warp Grid Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams(cfg)
	center := r2.Vec{X: arenaWidth / 2, Y: windowHeight / 2}
	grid := systems.NewWarpGrid(arenaWidth, windowHeight, systems.GridParamsFrom(params.grid()))
	var points []r2.Vec
	hue := 0.0

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime()) / cfg.Derived.DT
		level := float64(params.Level)

		mouse := rl.GetMousePosition()
		inArena := mouse.X < arenaWidth
		lattice, scale := grid.InverseDistortedPoint(float64(mouse.X), float64(mouse.Y), center.X, center.Y, level)
		if inArena && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			grid.ApplyForce(lattice.X, lattice.Y, float64(params.Radius)*scale, float64(params.Force))
		}
		if inArena && rl.IsMouseButtonPressed(rl.MouseButtonRight) {
			hue = float64(int(hue+47) % 360)
			grid.AddColorShockwave(lattice.X, lattice.Y, float64(params.Radius)*2, hue,
				cfg.Kill.ShockwaveLife*2, cfg.Kill.ShockwaveWidth)
		}
		grid.Update(dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		points = grid.DisplayPoints(points, center.X, center.Y, level)
		drawLattice(grid, points)

		if inArena {
			back := grid.DistortedPoint(lattice.X, lattice.Y, center.X, center.Y, level)
			rl.DrawCircleLines(int32(back.X), int32(back.Y), float32(params.Radius), rl.Fade(rl.SkyBlue, 0.5))
			rl.DrawLine(int32(back.X)-6, int32(back.Y), int32(back.X)+6, int32(back.Y), rl.SkyBlue)
			rl.DrawLine(int32(back.X), int32(back.Y)-6, int32(back.X), int32(back.Y)+6, rl.SkyBlue)
			rl.DrawText(fmt.Sprintf("lattice %.0f,%.0f  scale %.3f", lattice.X, lattice.Y, scale),
				10, windowHeight-24, 16, rl.Gray)
		}

		// Control panel
		rl.DrawRectangle(arenaWidth, 0, windowWidth-arenaWidth, windowHeight, rl.Color{R: 20, G: 20, B: 28, A: 255})
		panelX := float32(arenaWidth + 15)
		panelY := float32(10)

		rl.DrawText("Warp Grid Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		prev := params
		params.Spring = slider(panelX, &panelY, "Spring (pull toward origin)", params.Spring, 0.01, 1, "%.2f")
		params.Damping = slider(panelX, &panelY, "Damping (velocity kept per step)", params.Damping, 0.1, 0.99, "%.2f")
		params.KBase = slider(panelX, &panelY, "Distortion base (x1e-4)", params.KBase, 0, 20, "%.1f")
		params.KLevel = slider(panelX, &panelY, "Distortion per level (x1e-4)", params.KLevel, 0, 20, "%.1f")
		params.Level = slider(panelX, &panelY, "Level (combo distortion)", params.Level, 0, 1, "%.2f")
		params.Radius = slider(panelX, &panelY, "Kick radius", params.Radius, 20, 600, "%.0f")
		params.Force = slider(panelX, &panelY, "Kick force (negative pulls)", params.Force, -200, 200, "%.0f")

		// Grid params are fixed at construction, so a change rebuilds the lattice
		if params.grid() != prev.grid() {
			grid = systems.NewWarpGrid(arenaWidth, windowHeight, systems.GridParamsFrom(params.grid()))
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Settle") {
			grid.Reset()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			grid = systems.NewWarpGrid(arenaWidth, windowHeight, systems.GridParamsFrom(params.grid()))
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Max displacement: %.1f", grid.Displacement()), int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 30

		out := gridYAML(params.grid())
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		rl.DrawText(out, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

// drawLattice draws the distorted grid lines, tinting points inside a
// shockwave ring.
func drawLattice(g *systems.WarpGrid, points []r2.Vec) {
	cols, rows := g.Cols(), g.Rows()
	lattice := g.Points()
	waves := g.Shockwaves()
	base := rl.Color{R: 40, G: 60, B: 120, A: 255}

	color := func(i int) rl.Color {
		c := base
		for w := range waves {
			k := waves[w].RingIntensity(lattice[i].Pos) * waves[w].Fade()
			if k <= 0 {
				continue
			}
			rc := rl.White
			if waves[w].Hue >= 0 {
				rc = components.HueColor(waves[w].Hue)
			}
			c = lerp(c, rc, k)
		}
		return c
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			col := color(i)
			p := rl.Vector2{X: float32(points[i].X), Y: float32(points[i].Y)}
			if c+1 < cols {
				q := points[i+1]
				rl.DrawLineV(p, rl.Vector2{X: float32(q.X), Y: float32(q.Y)}, col)
			}
			if r+1 < rows {
				q := points[i+cols]
				rl.DrawLineV(p, rl.Vector2{X: float32(q.X), Y: float32(q.Y)}, col)
			}
		}
	}
}

func lerp(a, b rl.Color, t float64) rl.Color {
	t = min(1, max(0, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
