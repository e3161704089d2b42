package game

import (
	"log/slog"

	"github.com/pthm-cable/warpdash/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.gauges())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Console output
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.output != nil {
			if err := g.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// gauges samples the arena at window end.
func (g *Game) gauges() telemetry.Gauges {
	return telemetry.Gauges{
		Enemies:          g.em.EnemyCount(),
		Mines:            g.em.MineCount(),
		Projectiles:      g.em.ProjectileCount(),
		Particles:        g.em.Particles().Count(),
		Score:            int(g.score),
		Combo:            g.combo,
		Tier:             g.tier,
		GridDisplacement: g.grid.Displacement(),
	}
}

// finishRun emits the record of the current attempt.
func (g *Game) finishRun(outcome, reason string) {
	rec := telemetry.RunRecord{
		Attempt:       g.attempt,
		Seed:          g.seed,
		Outcome:       outcome,
		Reason:        reason,
		Score:         int(g.score),
		Kills:         g.totalKills,
		WardensKilled: g.wardensKilled,
		MaxCombo:      g.run.maxCombo,
		MaxTier:       g.run.maxTier,
		Dashes:        g.run.dashes,
		Hits:          g.run.hits,
		Blocks:        g.run.blocks,
		Ticks:         g.tick - g.run.startTick,
	}
	rec.SurvivalSec = float64(rec.Ticks) * g.config().Derived.DT

	slog.Info("run_finished", "run", rec)
	if g.runCallback != nil {
		g.runCallback(rec)
	}
	if g.output != nil {
		if err := g.output.WriteRun(rec); err != nil {
			slog.Error("failed to write run", "error", err)
		}
	}
}
