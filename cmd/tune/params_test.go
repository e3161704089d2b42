package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/telemetry"
)

func TestDefaultsInsideBounds(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	for i, v := range pv.ExtractFromConfig(cfg) {
		spec := pv.Specs[i]
		if v < spec.Min || v > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Name, v, spec.Min, spec.Max)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	raw := pv.ExtractFromConfig(cfg)
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyClampsAndRounds(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	v := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		switch spec.Name {
		case "basic_rate":
			v[i] = 1000
		case "boss_first_kills":
			v[i] = 17.6
		}
	}
	pv.ApplyToConfig(cfg, v)

	if cfg.Spawn.Basic.Rate != 50 {
		t.Errorf("basic rate = %v, want clamped to 50", cfg.Spawn.Basic.Rate)
	}
	if cfg.Boss.FirstKills != 18 {
		t.Errorf("first kills = %d, want 18", cfg.Boss.FirstKills)
	}
}

func TestFitnessPrefersTarget(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	fe := NewFitnessEvaluator(NewParamVector(), 100, nil, cfg, Targets{SurvivalSec: 200, VictoryRate: 0.2})

	tests := []struct {
		name        string
		near, far   telemetry.RunSummary
	}{
		{
			name: "survival",
			near: telemetry.RunSummary{Runs: 4, MeanSurvival: 190, VictoryRate: 0.2},
			far:  telemetry.RunSummary{Runs: 4, MeanSurvival: 40, VictoryRate: 0.2},
		},
		{
			name: "victory",
			near: telemetry.RunSummary{Runs: 4, MeanSurvival: 200, VictoryRate: 0.25},
			far:  telemetry.RunSummary{Runs: 4, MeanSurvival: 200, VictoryRate: 1},
		},
		{
			name: "quality breaks ties",
			near: telemetry.RunSummary{Runs: 4, MeanSurvival: 200, VictoryRate: 0.2, MeanWardens: 3, MeanMaxTier: 3},
			far:  telemetry.RunSummary{Runs: 4, MeanSurvival: 200, VictoryRate: 0.2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if a, b := fe.computeFitness(tt.near), fe.computeFitness(tt.far); a >= b {
				t.Errorf("near fitness %v should beat far fitness %v", a, b)
			}
		})
	}

	if !math.IsInf(fe.computeFitness(telemetry.RunSummary{}), 1) {
		t.Error("empty batch should score +Inf")
	}
}
