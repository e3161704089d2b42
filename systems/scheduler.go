package systems

import (
	"math"

	"github.com/pthm-cable/warpdash/config"
)

// SpeciesTick is the per-tick state of one spawn species.
type SpeciesTick struct {
	Rate  float64 // Ticks between spawns
	Cap   float64 // Population limit
	Count int     // Live population
	Open  bool    // Unlock gate
}

// Scheduler keeps one independent spawn timer per species. A timer only
// advances while its species is unlocked and under cap, and resets after
// firing.
type Scheduler struct {
	timers []float64
}

// NewScheduler creates a scheduler for n species.
func NewScheduler(n int) *Scheduler {
	return &Scheduler{timers: make([]float64, n)}
}

// Advance steps every timer by dt and appends the index of each species
// that should spawn this tick to dst.
func (s *Scheduler) Advance(dt float64, species []SpeciesTick, dst []int) []int {
	for i := range species {
		if i >= len(s.timers) {
			break
		}
		sp := species[i]
		if !sp.Open || float64(sp.Count) >= sp.Cap {
			continue
		}
		s.timers[i] += dt
		if s.timers[i] > sp.Rate {
			s.timers[i] = 0
			dst = append(dst, i)
		}
	}
	return dst
}

// Timer returns the accumulated time of species i.
func (s *Scheduler) Timer(i int) float64 {
	return s.timers[i]
}

// Reset zeroes every timer.
func (s *Scheduler) Reset() {
	for i := range s.timers {
		s.timers[i] = 0
	}
}

// SpeciesCap computes a species population cap from score, the density
// multiplier and the live enemy count.
func SpeciesCap(c config.SpeciesConfig, score, density float64, enemies int) float64 {
	scoreTerm := 0.0
	if c.CapScoreDiv > 0 {
		scoreTerm = score / c.CapScoreDiv
		if c.CapScoreStep {
			scoreTerm = math.Floor(scoreTerm)
		}
	}
	limit := c.CapBase + scoreTerm
	if c.Density {
		limit *= density
	}
	if c.CapEnemyFrac > 0 {
		limit = math.Max(limit, float64(enemies)*c.CapEnemyFrac)
	}
	return limit
}

// SpeciesRate computes the spawn interval, shortening with score when configured.
func SpeciesRate(c config.SpeciesConfig, score float64) float64 {
	rate := c.Rate
	if c.RateScoreDiv > 0 {
		rate = math.Max(c.RateMin, rate-score/c.RateScoreDiv)
	}
	return rate
}

// SpeciesOpen reports whether a species is unlocked.
func SpeciesOpen(c config.SpeciesConfig, wardensKilled int, score float64) bool {
	if !c.Enabled {
		return false
	}
	if wardensKilled < c.MinWardens {
		return false
	}
	if c.MinScore > 0 && score <= c.MinScore {
		return false
	}
	return true
}
