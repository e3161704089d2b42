package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
)

// killSource is what delivered a lethal hit.
type killSource uint8

const (
	sourceDash killSource = iota
	sourceSlash
	sourceExplosion
)

// Effect sizes for kill side effects.
const (
	stunConfetti     = 10
	trackingConfetti = 5
	rainbowCombo     = 5 // Kill confetti cycles hue above this combo
	killTextRise     = 20
)

// killEnemy resolves a lethal hit on e. It returns true only when a warden
// died, which ends the current sweep.
//
// Singularities shrug off dashes and echo lines once warmed up. Invulnerable
// enemies ignore the hit. Glitches with spare lives lose one and teleport.
// Everything else is removed, scored and leaves effects behind.
func (g *Game) killEnemy(e ecs.Entity, src killSource) bool {
	if !g.em.Alive(e) {
		return false
	}
	cfg := g.config()
	pos, _, en := g.em.Enemy(e)
	p := pos.Vec()

	switch en.Kind {
	case components.KindWarden:
		g.killWarden(e, p)
		return true
	case components.KindSingularity:
		if src != sourceExplosion && g.em.Singularity(e).Warmup <= 0 {
			if en.HitCooldown > 0 {
				return false
			}
			g.audio.Play(CueDeflect, float64(g.combo))
			en.HitCooldown = cfg.Enemies.Singularity.HitCooldown
			return false
		}
	}

	if en.Invuln > 0 {
		return false
	}

	if en.Kind == components.KindGlitch {
		if gl := g.em.Glitch(e); gl.Lives > 0 {
			gc := &cfg.Enemies.Glitch
			gl.Lives--
			en.Invuln = gc.Invuln
			en.Stunned = gc.Stun
			g.audio.Play(CueDeflect, float64(g.combo))
			g.em.Teleport(e, g.player.Pos)
			return false
		}
	}

	kind := en.Kind
	base := g.baseScore(en)
	col := en.Color
	if g.combo > rainbowCombo {
		col = components.HueColor(math.Mod(g.frame*2, 360))
	}

	g.stunShields(p)
	g.em.RemoveEnemy(e)
	g.totalKills++

	kc := &cfg.Kill
	g.em.SpawnConfetti(p, col, kc.Confetti)
	points := base * max(1, g.combo)
	g.score += float64(points)
	g.audio.Play(CueKill, float64(g.combo))
	g.collector.RecordKill(kind)

	cleared := g.em.ClearProjectiles(p, kc.ClearRadius, shotConfetti)
	g.collector.RecordShotsCleared(cleared)

	g.ApplyGridForce(p.X, p.Y, kc.GridRadius, kc.GridForce)
	g.addShockwave(p, kc.ShockwaveRadius, -1, kc.ShockwaveLife, kc.ShockwaveWidth)
	g.em.SpawnText(r2.Vec{X: p.X, Y: p.Y - killTextRise}, fmt.Sprintf("+%d", points), col)

	g.refreshUI()
	return false
}

// baseScore returns the unmultiplied score of an enemy.
func (g *Game) baseScore(en *components.Enemy) int {
	ec := &g.config().Enemies
	if en.Kind == components.KindBasic && en.HasShield {
		return ec.Shielded.Score
	}
	switch en.Kind {
	case components.KindBasic:
		return ec.Basic.Score
	case components.KindShooter:
		return ec.Shooter.Score
	case components.KindPhantom:
		return ec.Phantom.Score
	case components.KindSingularity:
		return ec.Singularity.Score
	case components.KindWarden:
		return ec.Warden.Score
	case components.KindGlitch:
		return ec.Glitch.Score
	case components.KindJouster:
		return ec.Jouster.Score
	default:
		panic(fmt.Sprintf("game: no score for enemy kind %d", en.Kind))
	}
}

// stunShields drops the guard of shielded enemies near a kill.
func (g *Game) stunShields(p r2.Vec) {
	kc := &g.config().Kill
	g.nearBuf = g.em.Near(g.nearBuf[:0], p, kc.StunRadius)
	for _, n := range g.nearBuf {
		if !g.em.Alive(n.E) {
			continue
		}
		_, _, en := g.em.Enemy(n.E)
		if !en.HasShield || en.Kind == components.KindWarden || en.Stunned > 0 {
			continue
		}
		en.Stunned = kc.StunTicks
		g.em.SpawnConfetti(n.Pos, components.ColorStun, stunConfetti)
	}
}

// killWarden ends a boss encounter and schedules the next one.
func (g *Game) killWarden(e ecs.Entity, p r2.Vec) {
	cfg := g.config()
	bc := &cfg.Boss

	g.bossActive = false
	g.wardensKilled++
	g.score += float64(cfg.Enemies.Warden.Score)
	g.nextWardenKills = g.totalKills + bc.KillGapBase + g.wardensKilled*bc.KillGapPerWarden

	g.nova(p, bc.NovaIntensity)
	g.em.SpawnCelebration(p, bc.Confetti)
	g.em.RemoveEnemy(e)

	cleared := g.em.ClearTracking(trackingConfetti)
	g.collector.RecordKill(components.KindWarden)
	g.collector.RecordShotsCleared(cleared)

	slog.Info("warden_killed",
		"wardens", g.wardensKilled,
		"next_at_kills", g.nextWardenKills,
		"score", int(g.score),
	)
	g.refreshUI()
}

// nova pushes back and stuns every non-warden enemy in range and clears
// projectiles. A negative intensity uses the current combo for the cue.
func (g *Game) nova(p r2.Vec, intensity float64) {
	nc := &g.config().Nova

	g.addShockwave(p, nc.ShockwaveRadius, -1, nc.ShockwaveLife, nc.ShockwaveWidth)
	g.ApplyGridForce(p.X, p.Y, nc.Range, nc.GridForce)
	if intensity < 0 {
		intensity = float64(g.combo)
	}
	g.audio.Play(CueNova, intensity)

	g.nearBuf = g.em.Near(g.nearBuf[:0], p, nc.Range)
	for _, n := range g.nearBuf {
		if !g.em.Alive(n.E) {
			continue
		}
		_, vel, en := g.em.Enemy(n.E)
		if en.Kind == components.KindWarden {
			continue
		}
		d := math.Sqrt(n.DistSq)
		if d <= 1 {
			continue
		}
		push := (1 - d/nc.Range) * nc.Push
		vel.X += n.Delta.X / d * push
		vel.Y += n.Delta.Y / d * push
		en.Stunned = nc.Stun
	}

	cleared := g.em.ClearProjectiles(p, nc.Range, shotConfetti)
	g.collector.RecordShotsCleared(cleared)
	g.collector.RecordNova()
}

// blastDamage kills every enemy whose hit circle overlaps the blast,
// except those whose shield faces it. Returns the hits.
func (g *Game) blastDamage(center r2.Vec, radius float64) int {
	cfg := g.config()
	cleared := g.em.ClearProjectiles(center, radius, shotConfetti)
	g.collector.RecordShotsCleared(cleared)

	hits := 0
	g.enemyBuf = g.em.Enemies(g.enemyBuf[:0])
	for i := range g.enemyBuf {
		v, ok := g.em.EnemyView(g.enemyBuf[i].E)
		if !ok {
			continue
		}
		if r2.Norm(r2.Sub(v.HitPos, center)) >= radius+v.Radius {
			continue
		}
		if g.shieldBlocks(v, center, config.ArcRadians(cfg.Enemies.Shielded.BlastArc)) {
			g.audio.Play(CueDeflect, float64(g.combo))
			g.collector.RecordBlock()
			continue
		}
		hits++
		if g.killEnemy(v.E, sourceExplosion) {
			break
		}
	}
	return hits
}

// explosion draws a white blast ring and plays the cue.
func (g *Game) explosion(p r2.Vec, radius float64) {
	kc := &g.config().Kill
	g.addShockwave(p, radius, -1, kc.ExplosionLife, kc.ExplosionWidth)
	g.audio.Play(CueExplode, float64(g.combo))
}
