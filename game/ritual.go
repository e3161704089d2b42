package game

import (
	"image/color"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/telemetry"
)

// StarNode is one ritual target. Nodes must be dashed through in ID order.
type StarNode struct {
	ID     int
	Pos    r2.Vec
	Radius float64
	Color  color.RGBA
	Active bool
}

// starOrder places node i at ring slot starOrder[i], so consecutive IDs
// trace a pentagram.
var starOrder = [...]int{0, 2, 4, 1, 3}

var starColors = [...]color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 255, G: 136, B: 0, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
}

// initRitual clears the arena and lays out the star nodes. The containment
// zone starts as large as the arena.
func (g *Game) initRitual() {
	cfg := g.config()
	rc := &cfg.Ritual

	g.ritualActive = true
	g.bossActive = false
	g.bossWarning = false
	g.em.Reset()

	g.zone = math.Max(cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	c := g.center()
	g.stars = g.stars[:0]
	for i, slot := range starOrder {
		angle := float64(slot)*2*math.Pi/float64(len(starOrder)) - math.Pi/2
		g.stars = append(g.stars, StarNode{
			ID:     i + 1,
			Pos:    r2.Vec{X: c.X + math.Cos(angle)*rc.Radius, Y: c.Y + math.Sin(angle)*rc.Radius},
			Radius: rc.NodeRadius,
			Color:  starColors[i],
		})
	}
	g.resetStars()

	g.audio.Play(CueBossWarning, float64(g.wardensKilled))
	slog.Info("ritual_started", "wardens_killed", g.wardensKilled, "score", int(g.score))
	g.refreshUI()
}

// resetStars re-arms every node and restarts the sequence.
func (g *Game) resetStars() {
	for i := range g.stars {
		g.stars[i].Active = true
	}
	g.nextStar = 1
}

// updateRitual applies the ritual pressure for one tick: shake floor, grid
// pull at the center, score decay and the shrinking containment zone.
func (g *Game) updateRitual(dt, timeDelta float64) {
	cfg := g.config()
	rc := &cfg.Ritual

	g.shake.Floor(rc.ShakeBase + math.Sin(g.frame*0.1))
	c := g.center()
	g.ApplyGridForce(c.X, c.Y, rc.GridRadius, rc.GridForce)

	sec := timeDelta * cfg.Derived.DT
	g.score = math.Max(0, g.score-rc.ScoreDecay*sec*g.timeScale)
	if g.zone > rc.MinZone {
		g.zone -= rc.ShrinkRate * dt
	}

	if r2.Norm(r2.Sub(g.player.Pos, c)) > g.zone {
		g.Over(components.ReasonContainment)
	}
}

// triggerVictory ends the ritual in victory mode.
func (g *Game) triggerVictory() {
	g.state = StateVictory
	g.aiming = false
	g.targetTimeScale = 1
	g.audio.Play(CueVictory, float64(g.combo))
	g.saveHighScore()
	g.finishRun(telemetry.OutcomeVictory, "")
	slog.Info("victory", "score", int(g.score), "attempt", g.attempt)
	g.refreshUI()
}

// Zone returns the containment radius while the ritual runs.
func (g *Game) Zone() float64 { return g.zone }

// RitualActive reports whether the ritual is running.
func (g *Game) RitualActive() bool { return g.ritualActive }
