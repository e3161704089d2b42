package game

import (
	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/systems"
)

// species is one spawn scheduler entry. Mines are placed directly; every
// other species goes through the telegraphed spawn queue.
type species struct {
	name string
	cfg  config.SpeciesConfig
	kind components.Kind
	mine bool
}

// newSpeciesTable lists the species in scheduler order.
func newSpeciesTable(cfg *config.Config) []species {
	sc := &cfg.Spawn
	return []species{
		{name: "basic", cfg: sc.Basic, kind: components.KindBasic},
		{name: "shooter", cfg: sc.Shooter, kind: components.KindShooter},
		{name: "phantom", cfg: sc.Phantom, kind: components.KindPhantom},
		{name: "singularity", cfg: sc.Singularity, kind: components.KindSingularity},
		{name: "glitch", cfg: sc.Glitch, kind: components.KindGlitch},
		{name: "shielded", cfg: sc.Shielded, kind: components.KindShielded},
		{name: "mines", cfg: sc.Mines, mine: true},
		{name: "jouster", cfg: sc.Jouster, kind: components.KindJouster},
	}
}

// density is the cap multiplier for the current combo.
func (g *Game) density() float64 {
	cc := &g.config().Combo
	if g.combo > cc.DensityCombo {
		return cc.DensityHigh
	}
	return cc.DensityLow
}

// updateSpawning advances every species timer and spawns the species whose
// timer fired. Nothing spawns during the ritual.
func (g *Game) updateSpawning(dt float64) {
	if g.ritualActive {
		return
	}

	density := g.density()
	enemies := g.em.EnemyCount()
	g.speciesTk = g.speciesTk[:0]
	for _, sp := range g.species {
		count := g.em.MineCount()
		if !sp.mine {
			count = g.em.Count(sp.kind)
		}
		g.speciesTk = append(g.speciesTk, systems.SpeciesTick{
			Rate:  systems.SpeciesRate(sp.cfg, g.score),
			Cap:   systems.SpeciesCap(sp.cfg, g.score, density, enemies),
			Count: count,
			Open:  systems.SpeciesOpen(sp.cfg, g.wardensKilled, g.score),
		})
	}

	g.spawnBuf = g.scheduler.Advance(dt, g.speciesTk, g.spawnBuf[:0])
	if len(g.spawnBuf) == 0 {
		return
	}
	view := g.playerView()
	for _, i := range g.spawnBuf {
		sp := g.species[i]
		if sp.mine {
			g.em.QueueMine(view)
			continue
		}
		g.em.QueueSpawn(1, sp.kind, view)
	}
}
