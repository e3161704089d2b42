package game

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// updateBoss starts a warden warning once enough kills have accumulated,
// pulls the grid at the warning spot while it counts down, then spawns the
// warden there.
func (g *Game) updateBoss(dt float64) {
	cfg := g.config()
	bc := &cfg.Boss

	if !g.bossWarning && !g.bossActive && !g.ritualActive &&
		g.wardensKilled < cfg.Ritual.WardensNeeded && g.totalKills >= g.nextWardenKills {
		g.bossWarning = true
		g.bossWarningTimer = bc.WarningTicks
		g.bossWarningPos = g.bossSpawnPos()
		g.audio.Play(CueBossWarning, float64(g.wardensKilled))
		slog.Info("warden_warning",
			"kills", g.totalKills,
			"x", int(g.bossWarningPos.X),
			"y", int(g.bossWarningPos.Y),
		)
		g.refreshUI()
	}

	if !g.bossWarning {
		return
	}
	g.bossWarningTimer -= dt
	p := g.bossWarningPos
	g.ApplyGridForce(p.X, p.Y, bc.WarningRadius, bc.WarningForce)
	if g.bossWarningTimer > 0 {
		return
	}

	g.bossWarning = false
	g.em.SpawnBoss(p, g.wardensKilled)
	g.bossActive = true
	g.encounters++
	slog.Info("warden_spawned", "encounter", g.encounters, "wardens_killed", g.wardensKilled)
	g.refreshUI()
}

// bossSpawnPos samples a safe arena point, falling back to the point half
// an arena away from the player.
func (g *Game) bossSpawnPos() r2.Vec {
	cfg := g.config()
	w, h := cfg.Derived.ScreenW, cfg.Derived.ScreenH
	view := g.playerView()

	for i := 0; i < cfg.Boss.SpawnAttempts; i++ {
		p := r2.Vec{X: g.rng.Float64() * w, Y: g.rng.Float64() * h}
		if g.em.IsLocationSafe(p, view) {
			return p
		}
	}
	return r2.Vec{
		X: math.Mod(g.player.Pos.X+w/2, w),
		Y: math.Mod(g.player.Pos.Y+h/2, h),
	}
}
