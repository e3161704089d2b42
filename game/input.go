package game

import (
	"log/slog"
	"runtime/debug"

	"gonum.org/v1/gonum/spatial/r2"
)

// acceptsInput reports whether the pointer drives the player. Victory mode
// keeps accepting dashes.
func (g *Game) acceptsInput() bool {
	return g.state == StatePlaying || g.state == StateVictory
}

// AimStart presses the pointer at arena point (x, y). The aim only arms
// while the player is not overheated; time slows to the aim scale.
func (g *Game) AimStart(x, y float64) {
	if !g.acceptsInput() {
		return
	}
	g.cursor = r2.Vec{X: x, Y: y}
	g.pointerDown = true
	if g.player.Overheat > 0 {
		g.audio.Play(CueError, float64(g.combo))
		return
	}
	g.aiming = true
	g.targetTimeScale = g.config().Player.AimTimeScale
	g.audio.Play(CueSlowDown, float64(g.combo))
}

// AimMove tracks the pointer.
func (g *Game) AimMove(x, y float64) {
	g.cursor = r2.Vec{X: x, Y: y}
}

// AimRelease lifts the pointer. It restores normal time and fires the dash
// if an aim was armed. The aim flag is always cleared, even if the dash
// panics. Releasing without an armed aim does nothing else.
func (g *Game) AimRelease() {
	if !g.acceptsInput() {
		return
	}
	g.pointerDown = false
	g.targetTimeScale = 1
	if !g.aiming {
		return
	}
	defer func() {
		g.aiming = false
		if r := recover(); r != nil {
			slog.Error("dash_panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	g.executeDash()
}

// Cursor returns the last pointer position.
func (g *Game) Cursor() r2.Vec { return g.cursor }
