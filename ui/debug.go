package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/game"
	"github.com/pthm-cable/warpdash/telemetry"
)

// Debug overlay colors
var (
	ColorTruePos   = rl.Color{R: 255, G: 255, B: 0, A: 200}
	ColorVisualPos = rl.Color{R: 0, G: 255, B: 255, A: 200}
	ColorBlastArc  = rl.Color{R: 255, G: 140, B: 0, A: 160}
)

// DrawWorldOverlays draws the enabled arena-space overlays. Call it inside
// the same 2D mode the arena was drawn with.
func DrawWorldOverlays(reg *OverlayRegistry, s *game.Snapshot, cfg *config.Config) {
	if reg.IsEnabled(OverlayGridPoints) {
		drawGridPoints(s)
	}
	if reg.IsEnabled(OverlayHitboxes) {
		drawHitboxes(s)
	}
	if reg.IsEnabled(OverlayShieldArcs) {
		drawShieldArcs(s, cfg)
	}
	if reg.IsEnabled(OverlaySpawnTelegraph) {
		drawSpawnQueue(s)
	}
}

// drawGridPoints plots lattice points where they really are, brighter the
// further they sit from rest.
func drawGridPoints(s *game.Snapshot) {
	if s.Grid == nil {
		return
	}
	for _, p := range s.Grid.Points() {
		d := float32(math.Min(1, p.Displacement()/20))
		col := rl.Color{R: uint8(80 + 175*d), G: 80, B: uint8(255 - 175*d), A: 200}
		rl.DrawCircle(int32(p.Pos.X), int32(p.Pos.Y), 1.5, col)
	}
}

// drawHitboxes shows the gap between an enemy's true position and the
// distorted position hits are resolved against.
func drawHitboxes(s *game.Snapshot) {
	for _, e := range s.Enemies {
		tp := rl.Vector2{X: float32(e.Pos.X), Y: float32(e.Pos.Y)}
		hp := rl.Vector2{X: float32(e.HitPos.X), Y: float32(e.HitPos.Y)}
		rl.DrawCircleLinesV(tp, float32(e.Radius), ColorTruePos)
		if tp != hp {
			rl.DrawCircleLinesV(hp, float32(e.Radius), ColorVisualPos)
			rl.DrawLineV(tp, hp, rl.Fade(rl.White, 0.4))
		}
	}
	for _, m := range s.Mines {
		rl.DrawCircleLines(int32(m.Pos.X), int32(m.Pos.Y), float32(m.Radius), ColorTruePos)
	}
	p := s.Player
	rl.DrawCircleLines(int32(p.Pos.X), int32(p.Pos.Y), float32(p.Radius), ColorVisualPos)
}

// drawShieldArcs draws the dash arc and the wider blast arc for shielded
// enemies.
func drawShieldArcs(s *game.Snapshot, cfg *config.Config) {
	dash := config.ArcRadians(cfg.Enemies.Shielded.DashArc)
	blast := config.ArcRadians(cfg.Enemies.Shielded.BlastArc)
	for _, e := range s.Enemies {
		if !e.HasShield {
			continue
		}
		c := rl.Vector2{X: float32(e.HitPos.X), Y: float32(e.HitPos.Y)}
		r := float32(e.Radius)
		arcWedge(c, r+30, e.ShieldAngle-blast, e.ShieldAngle+blast, ColorBlastArc)
		arcWedge(c, r+20, e.ShieldAngle-dash, e.ShieldAngle+dash, ColorVisualPos)
	}
}

func arcWedge(c rl.Vector2, r float32, from, to float64, col rl.Color) {
	const deg = 180 / math.Pi
	rl.DrawCircleSectorLines(c, r, float32(from*deg), float32(to*deg), 16, col)
}

func drawSpawnQueue(s *game.Snapshot) {
	for _, q := range s.Queue {
		rl.DrawText(fmt.Sprintf("%s %.0f", q.Kind, q.Timer), int32(q.Pos.X)+8, int32(q.Pos.Y)-6, 10, rl.White)
	}
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y
	p.renderer.DrawPanel(x-6, y-6, 250, int32(len(telemetry.Phases))*14+50)

	rl.DrawText(fmt.Sprintf("Tick %s | %.0f FPS", stats.AvgTickDuration.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 20

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
