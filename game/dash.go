package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/entities"
	"github.com/pthm-cable/warpdash/systems"
)

// Confetti counts for dash impacts.
const (
	deflectConfetti = 8
	shotConfetti    = 3
	mineConfetti    = 120
	mineDebris      = 20
)

// dashRange returns the reach of a dash at the current tier. Victory mode
// dashes are unlimited.
func (g *Game) dashRange() float64 {
	cfg := g.config()
	if g.state == StateVictory {
		return math.Inf(1)
	}
	r := cfg.Dash.Range
	if cfg.Derived.MaxTier > 0 && g.tier >= cfg.Derived.MaxTier {
		r *= cfg.Dash.TierRangeMult
	}
	return r
}

// dashTarget returns where a dash toward the cursor would land, clamped to
// the arena. ok is false when the cursor sits on the player.
func (g *Game) dashTarget() (end r2.Vec, ok bool) {
	dir, dist, ok := systems.Direction(g.player.Pos, g.cursor)
	if !ok {
		return g.player.Pos, false
	}
	end = r2.Add(g.player.Pos, r2.Scale(math.Min(dist, g.dashRange()), dir))
	return systems.ClampToArena(end, g.config().Derived.ScreenW, g.config().Derived.ScreenH, 0), true
}

// executeDash moves the player to the dash endpoint and resolves everything
// the segment crosses, in order: star nodes, mines, projectiles, the charged
// nuke, then enemies.
func (g *Game) executeDash() {
	cfg := g.config()
	dc := &cfg.Dash
	victory := g.state == StateVictory

	if g.player.Ram <= 0 && !victory {
		return
	}
	dir, _, ok := systems.Direction(g.player.Pos, g.cursor)
	if !ok {
		return
	}
	start := g.player.Pos
	end, _ := g.dashTarget()

	echo := g.tier >= 1
	life := dc.LineLife
	if echo {
		life += dc.EchoLifeBonus
	}
	g.em.AddSlash(entities.SlashLine{A: start, B: end, Life: life, Width: dc.LineWidth, Lethal: echo})
	g.ApplyGridForce(start.X, start.Y, dc.GridRadius, dc.GridForce)
	g.ApplyGridForce(end.X, end.Y, dc.GridRadius, dc.GridForce)

	g.player.Pos = end
	g.player.Vel = r2.Scale(dc.ResidualSpeed, dir)

	hits := 0
	sweepDone := false

	if g.ritualActive {
		n, halt := g.dashStars(start, end)
		hits += n
		if halt {
			g.recordDash(hits)
			g.refreshUI()
			return
		}
	}

	hitMine := false
	g.mineBuf = g.em.Mines(g.mineBuf[:0])
	for _, m := range g.mineBuf {
		if !systems.LineCircleCollide(start, end, m.Pos, m.Radius) {
			continue
		}
		if g.tier >= 2 {
			hits += g.detonateMine(m)
			if hits > 0 {
				sweepDone = true
			}
			continue
		}
		hitMine = true
		g.shake.Kick(cfg.Kill.MineShake)
		g.audio.Play(CueError, float64(g.combo))
		g.em.SpawnConfetti(m.Pos, components.ColorMine, mineConfetti)
		g.em.RemoveMine(m.E)
		g.ApplyGridForce(m.Pos.X, m.Pos.Y, cfg.Kill.MineGridRadius, cfg.Kill.MineGridForce)
	}
	if hitMine {
		g.player.Ram = 0
		g.player.Overheat = dc.MineOverheat
		g.player.Vel = r2.Scale(-2, g.player.Vel)
		g.combo = 0
		g.collector.RecordMine(false)
		g.recordDash(hits)
		g.Over(components.ReasonMine)
		return
	}

	cleared := 0
	g.projBuf = g.em.Projectiles(g.projBuf[:0])
	for _, p := range g.projBuf {
		if systems.LineCircleCollide(start, end, p.Pos, p.Radius) {
			g.em.RemoveProjectile(p.E)
			g.em.SpawnConfetti(p.Pos, components.ColorSpark, shotConfetti)
			cleared++
		}
	}
	g.collector.RecordShotsCleared(cleared)

	if nc := &cfg.Nuke; g.nukeCharge > nc.MinCharge {
		r := nc.Radius * g.nukeCharge
		g.explosion(end, r)
		g.ApplyGridForce(end.X, end.Y, r, nc.GridForce)
		hits += g.blastDamage(end, r)
		g.nukeCharge = 0
		g.collector.RecordNuke()
	}

	if !sweepDone {
		hits += g.dashEnemies(start, end)
	}

	g.audio.Play(CueDash, float64(g.combo))
	g.shake.Set(dc.Shake)

	if hits > 0 {
		g.player.Ram = min(g.player.MaxRam, g.player.Ram+1)
		g.shake.Kick(float64(hits) * dc.ShakePerHit)
		g.combo += hits
		g.comboTimer = cfg.Combo.Window
		if hits >= cfg.Nova.MinHits {
			g.nova(end, -1)
		}
	} else if !victory {
		g.player.Ram--
		if g.player.Ram <= 0 {
			g.player.Ram = 0
			g.player.Overheat = dc.MissOverheat
			g.combo = 0
			g.audio.Play(CueError, 0)
		}
	}

	g.recordDash(hits)
	g.refreshUI()
}

// dashEnemies kills or deflects every enemy on the segment and returns the
// hit count. A warden kill ends the sweep.
func (g *Game) dashEnemies(start, end r2.Vec) int {
	cfg := g.config()
	hits := 0

	g.enemyBuf = g.em.Enemies(g.enemyBuf[:0])
	for i := range g.enemyBuf {
		// Earlier kills can stun shields or remove neighbors; re-read.
		v, ok := g.em.EnemyView(g.enemyBuf[i].E)
		if !ok {
			continue
		}
		if v.Kind == components.KindPhantom && v.Opacity < cfg.Enemies.Phantom.DashOpacity {
			continue
		}
		if !systems.LineCircleCollide(start, end, v.HitPos, v.Radius) {
			continue
		}

		blocked := v.Kind == components.KindJouster && v.Jouster == components.JousterTelegraph
		if !blocked {
			blocked = g.shieldBlocks(v, start, config.ArcRadians(cfg.Enemies.Shielded.DashArc))
		}
		if blocked {
			g.deflect(v)
			continue
		}

		immune := v.Kind == components.KindSingularity && v.Warmup <= 0
		bossKilled := g.killEnemy(v.E, sourceDash)
		if !immune {
			hits++
		}
		if bossKilled {
			break
		}
	}
	return hits
}

// shieldBlocks reports whether v's shield faces a threat coming from the
// point from. Wardens use their rotating arcs; other shields only block
// while the bearer is not stunned.
func (g *Game) shieldBlocks(v entities.EnemyView, from r2.Vec, halfWidth float64) bool {
	threat := systems.AngleTo(v.Pos, from)
	switch {
	case v.Kind == components.KindWarden:
		return systems.ArcShieldBlocks(v.Shields, config.ArcRadians(g.config().Enemies.Warden.ShieldArc), threat)
	case v.HasShield && v.Stunned <= 0:
		return systems.ShieldBlocks(v.ShieldAngle, halfWidth, threat)
	}
	return false
}

// deflect bounces the player off a blocking enemy.
func (g *Game) deflect(v entities.EnemyView) {
	g.audio.Play(CueDeflect, float64(g.combo))
	g.em.SpawnConfetti(v.Pos, components.ColorShielded, deflectConfetti)
	g.player.Vel = r2.Scale(-1, g.player.Vel)
	g.collector.RecordBlock()
	g.run.blocks++
}

// detonateMine turns a mine on the dash line into an explosion. Returns the
// enemies caught in the blast.
func (g *Game) detonateMine(m entities.MineInfo) int {
	cfg := g.config()
	nc := &cfg.Nuke

	g.em.RemoveMine(m.E)
	g.em.SpawnDataBits(m.Pos, components.ColorSingularity, mineDebris)
	g.explosion(m.Pos, nc.MineRadius)
	g.ApplyGridForce(m.Pos.X, m.Pos.Y, nc.MineGridRadius, nc.GridForce)
	g.player.Ram = min(g.player.MaxRam, g.player.Ram+1)

	hits := g.blastDamage(m.Pos, nc.MineRadius)
	g.combo++
	g.comboTimer = cfg.Combo.Window
	g.collector.RecordMine(true)
	return hits
}

// dashStars resolves ritual star nodes on the segment. Hitting the expected
// node advances the sequence; any other node resets the sequence, bounces
// the player back to start and halts the dash.
func (g *Game) dashStars(start, end r2.Vec) (hits int, halt bool) {
	cfg := g.config()
	rc := &cfg.Ritual

	for i := range g.stars {
		s := &g.stars[i]
		if !s.Active || !systems.LineCircleCollide(start, end, s.Pos, s.Radius) {
			continue
		}
		if s.ID == g.nextStar {
			s.Active = false
			g.nextStar++
			g.explosion(s.Pos, rc.NodeExplosion)
			g.audio.Play(CueKill, float64(g.combo))
			g.ApplyGridForce(s.Pos.X, s.Pos.Y, rc.NodeGridRadius, rc.NodeGridForce)
			hits++
			if g.nextStar > len(g.stars) {
				g.triggerVictory()
				return hits, true
			}
			continue
		}

		g.audio.Play(CueError, float64(g.combo))
		g.shake.Set(rc.WrongShake)
		g.em.SpawnText(r2.Vec{X: s.Pos.X, Y: s.Pos.Y - 30}, "RESET", components.ColorWarden)
		g.resetStars()
		g.player.Ram = 0
		g.player.Overheat = cfg.Dash.WrongNodeOverheat
		g.player.Vel = r2.Scale(-0.5, g.player.Vel)
		g.player.Pos = start
		return hits, true
	}
	return hits, false
}

// recordDash updates run and window counters for one resolved dash.
func (g *Game) recordDash(hits int) {
	g.collector.RecordDash(hits)
	g.run.dashes++
	g.run.hits += hits
	if g.combo > g.run.maxCombo {
		g.run.maxCombo = g.combo
	}
}
