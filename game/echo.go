package game

import (
	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/systems"
)

// updateSlashes ages the dash trails, then lets lethal echo lines cut any
// enemy they touch. Shields facing the line's origin hold; their deflect
// cue is throttled per enemy.
func (g *Game) updateSlashes(dt float64) {
	cfg := g.config()
	dc := &cfg.Dash
	g.em.AgeSlashes(dt)

	lines := g.em.Slashes()
	for li := range lines {
		s := lines[li]
		if !s.Lethal || s.Life <= dc.LethalMinLife {
			continue
		}
		mid := s.Midpoint()

		g.enemyBuf = g.em.Enemies(g.enemyBuf[:0])
		for i := range g.enemyBuf {
			v, ok := g.em.EnemyView(g.enemyBuf[i].E)
			if !ok || !systems.LineCircleCollide(s.A, s.B, v.HitPos, v.Radius) {
				continue
			}

			if g.shieldBlocks(v, s.A, config.ArcRadians(cfg.Enemies.Shielded.DashArc)) {
				_, _, en := g.em.Enemy(v.E)
				if en.LastBlock == 0 || g.frame-en.LastBlock > dc.BlockThrottle {
					if v.Kind != components.KindWarden {
						g.audio.Play(CueDeflect, float64(g.combo))
					}
					en.LastBlock = g.frame
				}
				continue
			}

			if g.tier >= 1 && v.Kind != components.KindWarden && v.Kind != components.KindSingularity {
				pos, _, _ := g.em.Enemy(v.E)
				g.em.MoveEnemy(v.E, systems.Lerp(pos.Vec(), mid, dc.EchoPull))
			}
			if g.killEnemy(v.E, sourceSlash) {
				break
			}
		}
	}
}

