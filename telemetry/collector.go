// Package telemetry tracks arena activity in fixed windows, per-run records,
// highlights and frame timing, and writes them as CSV.
package telemetry

import "github.com/pthm-cable/warpdash/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for the current window
	dashes       int
	hits         int
	misses       int
	blocks       int
	kills        [components.NumKinds]int
	mineHits     int
	detonations  int
	novas        int
	nukes        int
	shotsCleared int
	tierUps      int
	deaths       int
}

// Gauges are sampled by the caller at window end.
type Gauges struct {
	Enemies          int
	Mines            int
	Projectiles      int
	Particles        int
	Score            int
	Combo            int
	Tier             int
	GridDisplacement float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordDash records a resolved dash and how many enemies it killed.
func (c *Collector) RecordDash(hits int) {
	c.dashes++
	if hits > 0 {
		c.hits += hits
	} else {
		c.misses++
	}
}

// RecordBlock records a hit deflected by a shield or an immune enemy.
func (c *Collector) RecordBlock() {
	c.blocks++
}

// RecordKill records an enemy removed by the player.
func (c *Collector) RecordKill(kind components.Kind) {
	if kind < components.NumKinds {
		c.kills[kind]++
	}
}

// RecordMine records a dash into a mine.
func (c *Collector) RecordMine(detonated bool) {
	if detonated {
		c.detonations++
	} else {
		c.mineHits++
	}
}

// RecordNova records a prism nova.
func (c *Collector) RecordNova() {
	c.novas++
}

// RecordNuke records a charged explosion.
func (c *Collector) RecordNuke() {
	c.nukes++
}

// RecordShotsCleared records projectiles destroyed by the player.
func (c *Collector) RecordShotsCleared(n int) {
	c.shotsCleared += n
}

// RecordTierUp records an upward tier transition.
func (c *Collector) RecordTierUp() {
	c.tierUps++
}

// RecordDeath records a game over.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, g Gauges) WindowStats {
	totalKills := 0
	for _, k := range c.kills {
		totalKills += k
	}

	var hitRate, blockRate float64
	if c.dashes > 0 {
		hitRate = float64(c.dashes-c.misses) / float64(c.dashes)
	}
	if attempts := totalKills + c.blocks; attempts > 0 {
		blockRate = float64(c.blocks) / float64(attempts)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Enemies:     g.Enemies,
		Mines:       g.Mines,
		Projectiles: g.Projectiles,
		Particles:   g.Particles,
		Score:       g.Score,
		Combo:       g.Combo,
		Tier:        g.Tier,

		Dashes:       c.dashes,
		Hits:         c.hits,
		Misses:       c.misses,
		Blocks:       c.blocks,
		Kills:        totalKills,
		MineHits:     c.mineHits,
		Detonations:  c.detonations,
		Novas:        c.novas,
		Nukes:        c.nukes,
		ShotsCleared: c.shotsCleared,
		TierUps:      c.tierUps,
		Deaths:       c.deaths,
		HitRate:      hitRate,
		BlockRate:    blockRate,

		KillsBasic:       c.kills[components.KindBasic],
		KillsShooter:     c.kills[components.KindShooter],
		KillsPhantom:     c.kills[components.KindPhantom],
		KillsSingularity: c.kills[components.KindSingularity],
		KillsWarden:      c.kills[components.KindWarden],
		KillsGlitch:      c.kills[components.KindGlitch],
		KillsJouster:     c.kills[components.KindJouster],

		GridDisplacement: g.GridDisplacement,
	}

	c.windowStartTick = currentTick
	c.dashes, c.hits, c.misses, c.blocks = 0, 0, 0, 0
	c.kills = [components.NumKinds]int{}
	c.mineHits, c.detonations = 0, 0
	c.novas, c.nukes, c.shotsCleared = 0, 0, 0
	c.tierUps, c.deaths = 0, 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
