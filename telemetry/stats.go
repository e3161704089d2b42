package telemetry

import "log/slog"

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Sampled at window end
	Enemies     int `csv:"enemies"`
	Mines       int `csv:"mines"`
	Projectiles int `csv:"projectiles"`
	Particles   int `csv:"particles"`
	Score       int `csv:"score"`
	Combo       int `csv:"combo"`
	Tier        int `csv:"tier"`

	// Events during window
	Dashes       int     `csv:"dashes"`
	Hits         int     `csv:"hits"`
	Misses       int     `csv:"misses"`
	Blocks       int     `csv:"blocks"`
	Kills        int     `csv:"kills"`
	MineHits     int     `csv:"mine_hits"`
	Detonations  int     `csv:"detonations"`
	Novas        int     `csv:"novas"`
	Nukes        int     `csv:"nukes"`
	ShotsCleared int     `csv:"shots_cleared"`
	TierUps      int     `csv:"tier_ups"`
	Deaths       int     `csv:"deaths"`
	HitRate      float64 `csv:"hit_rate"`   // Dashes that killed at least once
	BlockRate    float64 `csv:"block_rate"` // Blocks / (kills + blocks)

	KillsBasic       int `csv:"kills_basic"`
	KillsShooter     int `csv:"kills_shooter"`
	KillsPhantom     int `csv:"kills_phantom"`
	KillsSingularity int `csv:"kills_singularity"`
	KillsWarden      int `csv:"kills_warden"`
	KillsGlitch      int `csv:"kills_glitch"`
	KillsJouster     int `csv:"kills_jouster"`

	GridDisplacement float64 `csv:"grid_displacement"` // Largest lattice offset at window end
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("enemies", s.Enemies),
		slog.Int("mines", s.Mines),
		slog.Int("projectiles", s.Projectiles),
		slog.Int("particles", s.Particles),
		slog.Int("score", s.Score),
		slog.Int("combo", s.Combo),
		slog.Int("tier", s.Tier),
		slog.Int("dashes", s.Dashes),
		slog.Int("hits", s.Hits),
		slog.Int("misses", s.Misses),
		slog.Int("blocks", s.Blocks),
		slog.Int("kills", s.Kills),
		slog.Int("mine_hits", s.MineHits),
		slog.Int("detonations", s.Detonations),
		slog.Int("novas", s.Novas),
		slog.Int("nukes", s.Nukes),
		slog.Int("shots_cleared", s.ShotsCleared),
		slog.Int("tier_ups", s.TierUps),
		slog.Int("deaths", s.Deaths),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("block_rate", s.BlockRate),
		slog.Float64("grid_displacement", s.GridDisplacement),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"enemies", s.Enemies,
		"projectiles", s.Projectiles,
		"score", s.Score,
		"combo", s.Combo,
		"tier", s.Tier,
		"dashes", s.Dashes,
		"hits", s.Hits,
		"misses", s.Misses,
		"blocks", s.Blocks,
		"kills", s.Kills,
		"kills_warden", s.KillsWarden,
		"mine_hits", s.MineHits,
		"detonations", s.Detonations,
		"novas", s.Novas,
		"hit_rate", s.HitRate,
		"block_rate", s.BlockRate,
		"grid_displacement", s.GridDisplacement,
	)
}
