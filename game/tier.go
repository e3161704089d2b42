package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
)

// TierForCombo returns the number of ascending thresholds combo has reached.
func TierForCombo(combo int, thresholds []int) int {
	tier := 0
	for _, t := range thresholds {
		if combo < t {
			break
		}
		tier++
	}
	return tier
}

// updateTier recomputes the power tier from the combo. Rising announces
// the new tier; falling is silent.
func (g *Game) updateTier() {
	tier := TierForCombo(g.combo, g.config().Derived.TierThresholds)
	if tier == g.tier {
		return
	}
	up := tier > g.tier
	g.tier = tier
	if !up {
		return
	}

	g.audio.Play(CueTierUp, float64(tier))
	g.collector.RecordTierUp()
	if tier > g.run.maxTier {
		g.run.maxTier = tier
	}
	p := g.player.Pos
	g.em.SpawnText(r2.Vec{X: p.X, Y: p.Y - 40}, TierLabel(tier), components.HueColor(float64(tier)*90))
	slog.Info("tier_up", "tier", tier, "combo", g.combo)
	g.refreshUI()
}

// TierLabel names a power tier for banners.
func TierLabel(tier int) string {
	switch tier {
	case 0:
		return ""
	case 1:
		return "ECHO"
	case 2:
		return "DETONATOR"
	default:
		return "OVERDRIVE"
	}
}
