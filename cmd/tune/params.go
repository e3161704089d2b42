package main

import (
	"math"

	"github.com/pthm-cable/warpdash/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string  // Column name in the log
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
	Int  bool    // Rounded before it is written back

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of tunable difficulty parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// floatParam tunes the float64 field returned by field.
func floatParam(name, path string, lo, hi float64, field func(*config.Config) *float64) ParamSpec {
	return ParamSpec{
		Name: name, Path: path, Min: lo, Max: hi,
		get: func(c *config.Config) float64 { return *field(c) },
		set: func(c *config.Config, v float64) { *field(c) = v },
	}
}

func intParam(name, path string, lo, hi float64, field func(*config.Config) *int) ParamSpec {
	return ParamSpec{
		Name: name, Path: path, Min: lo, Max: hi, Int: true,
		get: func(c *config.Config) float64 { return float64(*field(c)) },
		set: func(c *config.Config, v float64) { *field(c) = int(math.Round(v)) },
	}
}

// NewParamVector creates the standard set of difficulty parameters: spawn
// pressure per species and warden pacing.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Basic swarm
			floatParam("basic_rate", "spawn.basic.rate", 10, 50, func(c *config.Config) *float64 { return &c.Spawn.Basic.Rate }),
			floatParam("basic_rate_min", "spawn.basic.rate_min", 2, 15, func(c *config.Config) *float64 { return &c.Spawn.Basic.RateMin }),
			floatParam("basic_cap_base", "spawn.basic.cap_base", 6, 24, func(c *config.Config) *float64 { return &c.Spawn.Basic.CapBase }),
			floatParam("basic_cap_score_div", "spawn.basic.cap_score_div", 100, 1000, func(c *config.Config) *float64 { return &c.Spawn.Basic.CapScoreDiv }),
			// Specials
			floatParam("shooter_rate", "spawn.shooter.rate", 20, 100, func(c *config.Config) *float64 { return &c.Spawn.Shooter.Rate }),
			floatParam("phantom_rate", "spawn.phantom.rate", 30, 120, func(c *config.Config) *float64 { return &c.Spawn.Phantom.Rate }),
			floatParam("singularity_rate", "spawn.singularity.rate", 35, 140, func(c *config.Config) *float64 { return &c.Spawn.Singularity.Rate }),
			floatParam("glitch_rate", "spawn.glitch.rate", 25, 100, func(c *config.Config) *float64 { return &c.Spawn.Glitch.Rate }),
			floatParam("shielded_rate", "spawn.shielded.rate", 25, 100, func(c *config.Config) *float64 { return &c.Spawn.Shielded.Rate }),
			floatParam("mines_rate", "spawn.mines.rate", 10, 60, func(c *config.Config) *float64 { return &c.Spawn.Mines.Rate }),
			floatParam("mines_cap_base", "spawn.mines.cap_base", 1, 6, func(c *config.Config) *float64 { return &c.Spawn.Mines.CapBase }),
			floatParam("jouster_rate", "spawn.jouster.rate", 25, 100, func(c *config.Config) *float64 { return &c.Spawn.Jouster.Rate }),
			// Wardens
			intParam("boss_first_kills", "boss.first_kills", 10, 40, func(c *config.Config) *int { return &c.Boss.FirstKills }),
			intParam("boss_kill_gap_base", "boss.kill_gap_base", 8, 30, func(c *config.Config) *int { return &c.Boss.KillGapBase }),
			floatParam("boss_warning_ticks", "boss.warning_ticks", 20, 90, func(c *config.Config) *float64 { return &c.Boss.WarningTicks }),
			// Ritual
			floatParam("ritual_shrink_rate", "ritual.shrink_rate", 0.05, 0.5, func(c *config.Config) *float64 { return &c.Ritual.ShrinkRate }),
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and integer parameters are
// whole.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Int {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
