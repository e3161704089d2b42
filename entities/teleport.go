package entities

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/systems"
)

// Teleport relocates an enemy near its current position, away from the
// player. It leaves a ghost at the old position and a streak to the new one,
// and returns the new position.
//
// Candidates are sampled within +/- range of the enemy, clamped to the arena
// margin, and must be farther than min_player_dist from the player and more
// than min_move from the start. If every attempt fails the enemy is placed
// along the player-to-enemy direction at the fallback distance, never closer
// than min_player_dist.
func (m *Manager) Teleport(e ecs.Entity, player r2.Vec) r2.Vec {
	tc := &m.cfg.Enemies.Teleport
	w, h := m.cfg.Derived.ScreenW, m.cfg.Derived.ScreenH

	pos, _, en := m.Enemy(e)
	old := pos.Vec()
	m.SpawnGhost(old, en.Color, en.Radius)

	minPlayerSq := tc.MinPlayerDist * tc.MinPlayerDist
	minMoveSq := tc.MinMove * tc.MinMove

	target := old
	found := false
	for i := 0; i < tc.Attempts; i++ {
		cand := r2.Vec{
			X: old.X + (m.rng.Float64()-0.5)*2*tc.Range,
			Y: old.Y + (m.rng.Float64()-0.5)*2*tc.Range,
		}
		cand = systems.ClampToArena(cand, w, h, tc.Margin)
		if r2.Norm2(r2.Sub(cand, player)) > minPlayerSq && r2.Norm2(r2.Sub(cand, old)) > minMoveSq {
			target = cand
			found = true
			break
		}
	}

	if !found {
		target = m.fallbackPos(old, player)
	}

	pos.Set(target)
	en.HasVisual = false
	m.SpawnTeleportLine(old, target, en.Color)
	m.indexDirty = true
	return target
}

// fallbackPos places the enemy beyond the exclusion radius along the escape
// direction. When the arena wall clamps that point back inside the radius it
// tries the opposite direction, then the inner corner farthest from the player.
func (m *Manager) fallbackPos(old, player r2.Vec) r2.Vec {
	tc := &m.cfg.Enemies.Teleport
	w, h := m.cfg.Derived.ScreenW, m.cfg.Derived.ScreenH
	minPlayerSq := tc.MinPlayerDist * tc.MinPlayerDist

	dir, _, ok := systems.Direction(player, old)
	if !ok {
		dir = r2.Vec{X: 1}
	}
	dist := max(tc.Fallback, tc.MinPlayerDist+1)
	for _, d := range []r2.Vec{dir, r2.Scale(-1, dir)} {
		p := systems.ClampToArena(r2.Add(player, r2.Scale(dist, d)), w, h, tc.Margin)
		if r2.Norm2(r2.Sub(p, player)) > minPlayerSq {
			return p
		}
	}

	corner := r2.Vec{X: tc.Margin, Y: tc.Margin}
	if player.X < w/2 {
		corner.X = w - tc.Margin
	}
	if player.Y < h/2 {
		corner.Y = h - tc.Margin
	}
	return corner
}
