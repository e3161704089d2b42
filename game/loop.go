package game

import (
	"log/slog"
	"math"
	"runtime/debug"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/telemetry"
)

// aimWarpRange is the share of the dash range pulled in around the player
// while aiming.
const aimWarpRange = 0.5

// ClampFrameDT sanitizes a wall-clock frame delta in seconds: NaN and
// negative deltas become 0, large ones are capped at limit.
func ClampFrameDT(dt, limit float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > limit {
		return limit
	}
	return dt
}

// Frame advances the session by dt seconds of wall-clock time and draws it.
// A panic in update or draw is logged and the next frame still runs.
func (g *Game) Frame(dt float64) {
	cfg := g.config()
	dt = ClampFrameDT(dt, cfg.Screen.MaxFrameDT)
	timeDelta := dt / cfg.Derived.DT

	g.perfCollector.StartTick()
	if g.autopilot != nil {
		g.autopilot.Drive(g, timeDelta)
	}
	g.safeUpdate(timeDelta)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	if !g.headless {
		g.perfCollector.StartPhase(telemetry.PhaseDraw)
		g.safeDraw()
	}
	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
	g.tick++
}

// Step advances one fixed tick. Headless runs use it in place of Frame.
func (g *Game) Step() {
	g.Frame(g.config().Derived.DT)
}

func (g *Game) safeUpdate(timeDelta float64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("frame_update_panic", "error", r, "tick", g.tick, "stack", string(debug.Stack()))
		}
	}()
	g.update(timeDelta)
}

func (g *Game) safeDraw() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("frame_draw_panic", "error", r, "tick", g.tick, "stack", string(debug.Stack()))
		}
	}()
	g.renderer.Draw(g.buildSnapshot())
}

// update runs one tick. timeDelta is in ticks of unscaled time.
func (g *Game) update(timeDelta float64) {
	switch g.state {
	case StateVictory:
		g.updateVictory(timeDelta)
		return
	case StatePlaying:
	default:
		return
	}

	cfg := g.config()
	dt := timeDelta * g.timeScale
	g.frame += dt
	ease := math.Min(1, cfg.Player.TimeScaleEase*timeDelta)
	g.timeScale += (g.targetTimeScale - g.timeScale) * ease

	g.perfCollector.StartPhase(telemetry.PhaseGrid)
	if g.aiming && g.player.Ram > 0 {
		p := g.player.Pos
		g.ApplyGridForce(p.X, p.Y, g.dashRange()*aimWarpRange, cfg.Grid.AimForce)
	}
	g.level = math.Min(cfg.Combo.DistortionCombo, float64(g.combo)) / cfg.Combo.DistortionCombo
	g.grid.Update(timeDelta)

	g.perfCollector.StartPhase(telemetry.PhaseEntities)
	res := g.em.Update(dt, timeDelta, g.playerView())
	g.player.Vel = r2.Add(g.player.Vel, res.Impulse)
	if res.Shots > 0 {
		g.audio.Play(CueShoot, float64(res.Shots))
	}
	if res.Death != nil {
		g.Over(res.Death.Reason)
		return
	}
	g.updateTier()

	g.perfCollector.StartPhase(telemetry.PhaseSpawning)
	g.updateSpawning(dt)

	g.perfCollector.StartPhase(telemetry.PhaseEncounter)
	g.updateBoss(dt)
	if !g.ritualActive && !g.bossActive && g.wardensKilled >= cfg.Ritual.WardensNeeded {
		g.initRitual()
	}
	g.updateTimers(dt)
	if g.ritualActive {
		g.updateRitual(dt, timeDelta)
		if g.state != StatePlaying {
			return
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseCombat)
	g.movePlayer(dt)
	g.chargeNuke(dt)
	g.updateSlashes(dt)
	g.shake.Update(timeDelta)
}

// updateTimers decays the combo window and the overheat lockout.
func (g *Game) updateTimers(dt float64) {
	if g.combo > 0 {
		g.comboTimer -= dt
		if g.comboTimer <= 0 {
			g.combo = 0
			g.refreshUI()
		}
	}
	if g.player.Overheat > 0 {
		g.player.Overheat -= dt
		if g.player.Overheat <= 0 {
			g.player.Overheat = 0
			g.player.Ram = g.player.MaxRam
			g.refreshUI()
		}
	}
}

// movePlayer integrates the drifting player and bounces it off the arena
// edges.
func (g *Game) movePlayer(dt float64) {
	cfg := g.config()
	p := &g.player
	p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
	p.Vel = r2.Scale(math.Pow(cfg.Player.Drag, dt), p.Vel)

	w, h := cfg.Derived.ScreenW, cfg.Derived.ScreenH
	if p.Pos.X < 0 || p.Pos.X > w {
		p.Vel.X = -p.Vel.X
		p.Pos.X = math.Max(0, math.Min(w, p.Pos.X))
	}
	if p.Pos.Y < 0 || p.Pos.Y > h {
		p.Vel.Y = -p.Vel.Y
		p.Pos.Y = math.Max(0, math.Min(h, p.Pos.Y))
	}
}

// chargeNuke fills the nuke meter while the pointer is up.
func (g *Game) chargeNuke(dt float64) {
	nc := &g.config().Nuke
	if !g.pointerDown {
		rate := nc.ChargeRate
		if top := g.config().Derived.MaxTier; top > 0 && g.tier >= top {
			rate = nc.TopChargeRate
		}
		g.nukeCharge += dt * g.config().Derived.DT * rate
	}
	g.nukeCharge = math.Min(1, g.nukeCharge)
}

// updateVictory keeps the arena alive after the ritual: the grid settles,
// effects fade and random bursts go off.
func (g *Game) updateVictory(timeDelta float64) {
	cfg := g.config()
	pc := &cfg.Particles

	g.grid.Update(timeDelta)
	if g.rng.Float64() < pc.VictoryBurstChance {
		p := r2.Vec{X: g.rng.Float64() * cfg.Derived.ScreenW, Y: g.rng.Float64() * cfg.Derived.ScreenH}
		g.em.SpawnConfetti(p, components.HueColor(g.rng.Float64()*360), pc.VictoryConfetti)
		g.explosion(p, pc.VictoryExplosion)
	}
	g.em.UpdateEffects(timeDelta)
	g.em.AgeSlashes(timeDelta)
	g.shake.Update(timeDelta)
}

// Over ends the attempt with a game over. It does nothing unless a run is
// in progress.
func (g *Game) Over(reason string) {
	if g.state != StatePlaying {
		return
	}
	g.state = StateGameOver
	g.reason = reason
	g.aiming = false
	g.pointerDown = false
	g.targetTimeScale = 1
	g.em.ClearTexts()

	g.audio.Play(CueGameOver, float64(g.combo))
	g.collector.RecordDeath()
	g.saveHighScore()
	g.finishRun(telemetry.OutcomeGameOver, reason)

	slog.Info("game_over",
		"reason", reason,
		"score", int(g.score),
		"attempt", g.attempt,
		"tick", g.tick,
	)
	g.refreshUI()
}

// saveHighScore persists the score when it beats the stored best.
func (g *Game) saveHighScore() {
	score := int(g.score)
	if score <= g.highScore {
		return
	}
	saved, err := g.store.SaveHighScore(score)
	if err != nil {
		slog.Error("failed to save high score", "error", err)
		return
	}
	if saved {
		g.highScore = score
		slog.Info("high_score", "score", score)
	}
}
