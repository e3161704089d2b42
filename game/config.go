package game

import (
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/telemetry"
)

// Options configures a Game. Nil collaborators fall back to no-ops (or an
// in-memory store).
type Options struct {
	// Config overrides the global config. Concurrent headless runs each
	// carry their own copy.
	Config *config.Config

	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // CSV telemetry directory, empty = disabled
	Headless       bool
	Autopilot      bool

	Audio    Audio
	UI       UI
	Store    Store
	Renderer Renderer

	// StatsCallback receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
	// RunCallback receives the record of every finished attempt.
	RunCallback func(telemetry.RunRecord)
}

// DefaultOptions returns options for an interactive session.
func DefaultOptions() Options {
	return Options{Seed: 1}
}
