package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/entities"
	"github.com/pthm-cable/warpdash/systems"
)

// Autopilot plays headless runs. Every think interval it picks a target,
// presses the pointer on it, holds the aim briefly and releases. It prefers
// the next ritual star, otherwise the nearest enemy it can actually kill
// without crossing a mine.
type Autopilot struct {
	cfg config.AutopilotConfig

	think float64
	hold  float64

	enemies []entities.EnemyView
	mines   []entities.MineInfo
}

// NewAutopilot creates an autopilot.
func NewAutopilot(cfg config.AutopilotConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// Reset clears pending decisions.
func (a *Autopilot) Reset() {
	a.think = 0
	a.hold = 0
}

// Drive feeds pointer input into g for one frame of timeDelta ticks.
func (a *Autopilot) Drive(g *Game, timeDelta float64) {
	if !g.acceptsInput() {
		return
	}

	if g.aiming {
		a.hold -= timeDelta
		if a.hold <= 0 {
			g.AimRelease()
		}
		return
	}

	a.think -= timeDelta
	if a.think > 0 {
		return
	}
	a.think = a.cfg.Think

	if g.player.Overheat > 0 || (g.player.Ram <= 0 && g.state != StateVictory) {
		return
	}
	target, ok := a.pick(g)
	if !ok {
		return
	}
	g.AimStart(target.X, target.Y)
	a.hold = a.cfg.AimHold
}

// pick chooses a dash target.
func (a *Autopilot) pick(g *Game) (r2.Vec, bool) {
	if g.ritualActive {
		return a.pickStar(g)
	}

	from := g.player.Pos
	reach := g.dashRange()
	a.mines = g.em.Mines(a.mines[:0])
	a.enemies = g.em.Enemies(a.enemies[:0])

	best := r2.Vec{}
	bestDist := math.Inf(1)
	found := false
	for _, v := range a.enemies {
		if !a.killable(g, v) {
			continue
		}
		d := r2.Norm(r2.Sub(v.HitPos, from))
		if d > reach || d >= bestDist {
			continue
		}
		if g.tier < 2 && a.crossesMine(from, v.HitPos) {
			continue
		}
		best, bestDist, found = v.HitPos, d, true
	}
	return best, found
}

// killable reports whether a dash from the player could kill v right now.
func (a *Autopilot) killable(g *Game, v entities.EnemyView) bool {
	cfg := g.config()
	switch v.Kind {
	case components.KindPhantom:
		if v.Opacity < cfg.Enemies.Phantom.DashOpacity {
			return false
		}
	case components.KindSingularity:
		if v.Warmup <= 0 {
			return false
		}
	case components.KindJouster:
		if v.Jouster == components.JousterTelegraph {
			return false
		}
	}
	if v.Invuln > 0 {
		return false
	}
	return !g.shieldBlocks(v, g.player.Pos, config.ArcRadians(cfg.Enemies.Shielded.DashArc))
}

// crossesMine reports whether the segment passes too close to a mine.
func (a *Autopilot) crossesMine(from, to r2.Vec) bool {
	for _, m := range a.mines {
		if systems.LineCircleCollide(from, to, m.Pos, m.Radius+a.cfg.MineMargin) {
			return true
		}
	}
	return false
}

// pickStar aims at the next ritual node when the path there misses every
// other active node.
func (a *Autopilot) pickStar(g *Game) (r2.Vec, bool) {
	from := g.player.Pos
	for _, s := range g.stars {
		if !s.Active || s.ID != g.nextStar {
			continue
		}
		for _, o := range g.stars {
			if o.Active && o.ID != s.ID && systems.LineCircleCollide(from, s.Pos, o.Pos, o.Radius) {
				return a.detour(g, s)
			}
		}
		return s.Pos, true
	}
	return r2.Vec{}, false
}

// detour heads for a point beside the center so the next attempt has a
// clear line.
func (a *Autopilot) detour(g *Game, s StarNode) (r2.Vec, bool) {
	c := g.center()
	dir, _, ok := systems.Direction(c, s.Pos)
	if !ok {
		return r2.Vec{}, false
	}
	side := r2.Vec{X: -dir.Y, Y: dir.X}
	p := r2.Add(c, r2.Scale(g.config().Ritual.Radius*0.5, side))
	for _, o := range g.stars {
		if o.Active && systems.LineCircleCollide(g.player.Pos, p, o.Pos, o.Radius) {
			return r2.Vec{}, false
		}
	}
	return p, true
}
