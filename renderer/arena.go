// Package renderer draws game snapshots with raylib.
package renderer

import (
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/camera"
	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/entities"
	"github.com/pthm-cable/warpdash/game"
	"github.com/pthm-cable/warpdash/systems"
)

// Palette
var (
	ColorBackground = rl.Color{R: 6, G: 8, B: 16, A: 255}
	ColorGrid       = rl.Color{R: 40, G: 60, B: 120, A: 110}
	ColorPlayer     = rl.Color{R: 240, G: 250, B: 255, A: 255}
	ColorAim        = rl.Color{R: 120, G: 220, B: 255, A: 180}
	ColorMine       = rl.Color{R: 255, G: 60, B: 60, A: 255}
	ColorShot       = rl.Color{R: 255, G: 170, B: 60, A: 255}
	ColorTracking   = rl.Color{R: 255, G: 60, B: 220, A: 255}
	ColorShield     = rl.Color{R: 120, G: 200, B: 255, A: 255}
	ColorStunned    = rl.Color{R: 110, G: 110, B: 110, A: 255}
	ColorZone       = rl.Color{R: 255, G: 40, B: 90, A: 200}
	ColorWarning    = rl.Color{R: 255, G: 30, B: 30, A: 255}
)

// Arena draws the playfield: grid, entities, effects and the ritual.
type Arena struct {
	cfg *config.Config
	cam *camera.Camera
	rng *rand.Rand

	// Scratch buffer for distorted grid points
	points []r2.Vec
	view   rl.Camera2D
}

// NewArena creates an arena renderer. The shake offset uses its own RNG so
// drawing never perturbs the simulation.
func NewArena(cfg *config.Config, cam *camera.Camera) *Arena {
	return &Arena{
		cfg: cfg,
		cam: cam,
		rng: rand.New(rand.NewSource(1)),
	}
}

// Camera2D returns the arena transform for a frame with the given shake.
func (a *Arena) Camera2D(shake float64) rl.Camera2D {
	dx, dy := camera.ShakeOffset(shake, a.rng)
	return rl.Camera2D{
		Offset: rl.Vector2{X: a.cam.OffsetX + float32(dx)*a.cam.Zoom, Y: a.cam.OffsetY + float32(dy)*a.cam.Zoom},
		Zoom:   a.cam.Zoom,
	}
}

// View returns the transform of the last drawn frame, shake included.
func (a *Arena) View() rl.Camera2D { return a.view }

// Draw renders a snapshot in arena space. The caller owns BeginDrawing.
func (a *Arena) Draw(s *game.Snapshot) {
	rl.ClearBackground(ColorBackground)
	a.view = a.Camera2D(s.Shake)
	rl.BeginMode2D(a.view)

	a.drawGrid(s)
	a.drawZone(s)
	a.drawQueue(s)
	a.drawSlashes(s)
	a.drawMines(s)
	a.drawEnemies(s)
	a.drawProjectiles(s)
	a.drawStars(s)
	a.drawBossWarning(s)
	a.drawParticles(s)
	a.drawPlayer(s)
	a.drawTexts(s)

	rl.EndMode2D()
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

// drawGrid draws the distorted lattice. Lines near a shockwave ring take the
// ring's hue.
func (a *Arena) drawGrid(s *game.Snapshot) {
	g := s.Grid
	if g == nil {
		return
	}
	a.points = g.DisplayPoints(a.points, s.Center.X, s.Center.Y, s.Level)
	cols, rows := g.Cols(), g.Rows()
	lattice := g.Points()
	waves := g.Shockwaves()

	tint := func(i int) rl.Color {
		c := ColorGrid
		for w := range waves {
			k := waves[w].RingIntensity(lattice[i].Pos) * waves[w].Fade()
			if k <= 0 {
				continue
			}
			rc := rl.White
			if waves[w].Hue >= 0 {
				rc = components.HueColor(waves[w].Hue)
			}
			c = lerpColor(c, rc, float32(k))
		}
		return c
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			col := tint(i)
			if c+1 < cols {
				rl.DrawLineV(vec(a.points[i]), vec(a.points[i+1]), col)
			}
			if r+1 < rows {
				rl.DrawLineV(vec(a.points[i]), vec(a.points[i+cols]), col)
			}
		}
	}
}

func (a *Arena) drawZone(s *game.Snapshot) {
	if s.Zone <= 0 {
		return
	}
	rl.DrawCircleLinesV(vec(s.Center), float32(s.Zone), ColorZone)
	rl.DrawCircleLinesV(vec(s.Center), float32(s.Zone)-4, rl.Fade(ColorZone, 0.4))
}

// drawQueue draws spawn telegraphs: a ring that closes in as the timer runs out.
func (a *Arena) drawQueue(s *game.Snapshot) {
	for _, q := range s.Queue {
		col := components.KindColor(q.Kind)
		r := float32(10 + q.Timer*0.5)
		rl.DrawCircleLinesV(vec(q.Pos), r, rl.Fade(col, 0.6))
		rl.DrawCircleV(vec(q.Pos), 3, col)
	}
}

func (a *Arena) drawSlashes(s *game.Snapshot) {
	for _, l := range s.Slashes {
		fade := float32(0)
		if l.MaxLife > 0 {
			fade = float32(l.Life / l.MaxLife)
		}
		col := ColorAim
		if l.Lethal {
			col = components.HueColor(math.Mod(s.Frame*4, 360))
		}
		rl.DrawLineEx(vec(l.A), vec(l.B), float32(l.Width)*fade+1, rl.Fade(col, fade))
	}
}

func (a *Arena) drawMines(s *game.Snapshot) {
	pulse := float32(0.6 + 0.4*math.Sin(s.Frame*0.15))
	for _, m := range s.Mines {
		c := vec(m.Pos)
		r := float32(m.Radius)
		rl.DrawCircleV(c, r*0.5, rl.Fade(ColorMine, pulse))
		rl.DrawPolyLines(c, 8, r, float32(s.Frame), ColorMine)
	}
}

func (a *Arena) drawEnemies(s *game.Snapshot) {
	for i := range s.Enemies {
		a.drawEnemy(s, &s.Enemies[i])
	}
}

func (a *Arena) drawEnemy(s *game.Snapshot, e *entities.EnemyView) {
	c := vec(e.HitPos)
	r := float32(e.Radius)
	col := e.Color
	if e.Stunned > 0 {
		col = ColorStunned
	}
	alpha := float32(1)
	if e.Kind == components.KindPhantom {
		alpha = float32(e.Opacity)
	}
	if e.Invuln > 0 && int(s.Frame)%6 < 3 {
		alpha *= 0.3
	}
	col = rl.Fade(col, alpha)

	switch e.Kind {
	case components.KindBasic:
		rl.DrawCircleLinesV(c, r, col)
		rl.DrawCircleV(c, r*0.4, col)
	case components.KindShooter:
		rl.DrawPolyLines(c, 3, r, float32(s.Frame*2), col)
		rl.DrawCircleV(c, r*0.3, col)
	case components.KindPhantom:
		rl.DrawCircleLinesV(c, r, col)
		rl.DrawCircleLinesV(c, r*0.6, col)
	case components.KindSingularity:
		rl.DrawCircleV(c, r, rl.Fade(rl.Black, alpha))
		ring := col
		if e.Warmup > 0 {
			ring = rl.Fade(col, 0.4)
		}
		rl.DrawRing(c, r, r+3, float32(s.Frame*3), float32(s.Frame*3)+300, 24, ring)
	case components.KindWarden:
		rl.DrawPoly(c, 6, r, float32(s.Frame), rl.Fade(col, 0.3*alpha))
		rl.DrawPolyLines(c, 6, r, float32(s.Frame), col)
		arc := config.ArcRadians(a.cfg.Enemies.Warden.ShieldArc)
		for _, start := range e.Shields {
			drawArc(c, r+8, start, start+arc, 4, ColorShield)
		}
	case components.KindGlitch:
		rl.DrawRectanglePro(rl.Rectangle{X: c.X, Y: c.Y, Width: r * 1.6, Height: r * 1.6},
			rl.Vector2{X: r * 0.8, Y: r * 0.8}, float32(s.Frame*5), col)
		rl.DrawText(fmt.Sprint(e.Lives), int32(c.X)-3, int32(c.Y)-5, 10, rl.Black)
	case components.KindJouster:
		rl.DrawPolyLines(c, 4, r, 45, col)
		if e.Jouster == components.JousterTelegraph {
			end := r2.Add(e.HitPos, r2.Scale(200, e.JousterDir))
			rl.DrawLineEx(c, vec(end), 2, rl.Fade(ColorWarning, 0.5))
		}
	default:
		rl.DrawCircleLinesV(c, r, col)
	}

	if e.HasShield {
		half := config.ArcRadians(a.cfg.Enemies.Shielded.DashArc)
		sc := ColorShield
		if e.Stunned > 0 {
			sc = ColorStunned
		}
		drawArc(c, r+6, e.ShieldAngle-half, e.ShieldAngle+half, 3, rl.Fade(sc, alpha))
	}
}

// drawArc draws a thick arc between two angles in radians.
func drawArc(c rl.Vector2, r float32, from, to float64, width float32, col rl.Color) {
	const deg = 180 / math.Pi
	rl.DrawRing(c, r-width/2, r+width/2, float32(from*deg), float32(to*deg), 16, col)
}

func (a *Arena) drawProjectiles(s *game.Snapshot) {
	for _, p := range s.Projectiles {
		col := ColorShot
		if p.Tracking {
			col = ColorTracking
		}
		rl.DrawCircleV(vec(p.Pos), float32(p.Radius), col)
	}
}

func (a *Arena) drawStars(s *game.Snapshot) {
	for _, st := range s.Stars {
		c := vec(st.Pos)
		r := float32(st.Radius)
		if !st.Active {
			rl.DrawCircleLinesV(c, r, rl.Fade(st.Color, 0.3))
			continue
		}
		rl.DrawCircleV(c, r, rl.Fade(st.Color, 0.5))
		rl.DrawCircleLinesV(c, r, st.Color)
		if st.ID == s.Status.NextStar {
			pulse := r + 6 + float32(4*math.Sin(s.Frame*0.2))
			rl.DrawCircleLinesV(c, pulse, rl.White)
		}
	}
}

func (a *Arena) drawBossWarning(s *game.Snapshot) {
	if s.BossWarningTimer <= 0 {
		return
	}
	c := vec(s.BossWarningPos)
	pulse := float32(0.5 + 0.5*math.Sin(s.Frame*0.3))
	rl.DrawCircleLinesV(c, 40+float32(s.BossWarningTimer)*0.5, rl.Fade(ColorWarning, pulse))
	rl.DrawCircleV(c, 6, ColorWarning)
}

func (a *Arena) drawParticles(s *game.Snapshot) {
	if s.Particles == nil {
		return
	}
	s.Particles.Each(func(p *systems.Particle) {
		fade := float32(p.Fade())
		col := rl.Fade(p.Color, fade)
		switch p.Kind {
		case systems.ParticleConfetti:
			rl.DrawRectanglePro(
				rl.Rectangle{X: float32(p.Pos.X), Y: float32(p.Pos.Y), Width: float32(p.W), Height: float32(p.H)},
				rl.Vector2{X: float32(p.W) / 2, Y: float32(p.H) / 2},
				float32(p.Angle*180/math.Pi), col)
		case systems.ParticleGhost:
			rl.DrawCircleLinesV(vec(p.Pos), float32(p.Size), col)
		case systems.ParticleTeleportLine:
			rl.DrawLineEx(vec(p.Pos), vec(p.End), 2, col)
		case systems.ParticleDataBit:
			sz := float32(p.Size)
			rl.DrawRectangleV(rl.Vector2{X: float32(p.Pos.X) - sz/2, Y: float32(p.Pos.Y) - sz/2}, rl.Vector2{X: sz, Y: sz}, col)
		}
	})
}

func (a *Arena) drawPlayer(s *game.Snapshot) {
	p := s.Player
	c := vec(p.Pos)

	if s.Aiming {
		rl.DrawCircleLinesV(c, float32(s.DashRange), rl.Fade(ColorAim, 0.25))
		rl.DrawLineEx(c, vec(s.DashEnd), 2, ColorAim)
		rl.DrawCircleLinesV(vec(s.DashEnd), float32(p.Radius), ColorAim)
	}

	col := ColorPlayer
	if p.Overheat > 0 {
		col = ColorWarning
	}
	rl.DrawCircleV(c, float32(p.Radius), col)

	// Ram pips orbit the player
	for i := 0; i < p.MaxRam; i++ {
		ang := float64(i)/float64(max(1, p.MaxRam))*2*math.Pi - math.Pi/2
		pip := rl.Vector2{X: c.X + float32(math.Cos(ang))*float32(p.Radius+8), Y: c.Y + float32(math.Sin(ang))*float32(p.Radius+8)}
		pc := rl.Fade(ColorPlayer, 0.2)
		if i < p.Ram {
			pc = ColorAim
		}
		rl.DrawCircleV(pip, 2.5, pc)
	}
}

func (a *Arena) drawTexts(s *game.Snapshot) {
	for _, t := range s.Texts {
		fade := float32(0)
		if t.MaxLife > 0 {
			fade = float32(t.Life / t.MaxLife)
		}
		size := int32(t.Size)
		w := rl.MeasureText(t.Text, size)
		rl.DrawText(t.Text, int32(t.Pos.X)-w/2, int32(t.Pos.Y), size, rl.Fade(t.Color, fade))
	}
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	t = float32(math.Max(0, math.Min(1, float64(t))))
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}
