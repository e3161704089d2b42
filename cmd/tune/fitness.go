package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/game"
	"github.com/pthm-cable/warpdash/telemetry"
)

// Targets describes the difficulty curve the tuner aims for.
type Targets struct {
	SurvivalSec float64 // Mean autopilot survival
	VictoryRate float64 // Share of runs that finish the ritual
}

// FitnessEvaluator runs headless autopilot attempts and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	targets    Targets

	mu          sync.Mutex
	lastSummary telemetry.RunSummary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		targets:    targets,
	}
}

// LastSummary returns the run summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastSummary() telemetry.RunSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSummary
}

// Evaluate computes fitness for a parameter vector (lower = better). Every
// seed plays one attempt in its own goroutine with its own config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	records := make([]telemetry.RunRecord, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			records[idx] = fe.runAttempt(x, s)
		}(i, seed)
	}
	wg.Wait()

	summary := telemetry.SummarizeRuns(records)

	fe.mu.Lock()
	fe.lastSummary = summary
	fe.mu.Unlock()

	return fe.computeFitness(summary)
}

// runAttempt plays one headless attempt until it ends or hits maxTicks.
func (fe *FitnessEvaluator) runAttempt(x []float64, seed int64) telemetry.RunRecord {
	cfg, err := fe.baseConfig.Clone()
	if err != nil {
		slog.Error("failed to copy config", "error", err)
		return telemetry.RunRecord{Seed: seed, Outcome: telemetry.OutcomeAbandoned}
	}
	fe.params.ApplyToConfig(cfg, x)

	var rec telemetry.RunRecord
	g := game.NewGame(game.Options{
		Config:    cfg,
		Seed:      seed,
		Headless:  true,
		Autopilot: true,
		RunCallback: func(r telemetry.RunRecord) {
			rec = r
		},
	})

	g.Start()
	for g.State() == game.StatePlaying && g.Tick() < fe.maxTicks {
		g.Step()
	}
	g.Unload()
	return rec
}

// Fitness weights.
const (
	weightSurvival = 1.0
	weightVictory  = 2.0
	weightQuality  = 0.2
)

// computeFitness scores a batch of runs (lower = better). Squared relative
// survival error and victory rate error dominate; quality breaks ties
// between configs that pace the same.
func (fe *FitnessEvaluator) computeFitness(s telemetry.RunSummary) float64 {
	if s.Runs == 0 {
		return math.Inf(1)
	}

	survivalErr := 0.0
	if fe.targets.SurvivalSec > 0 {
		survivalErr = (s.MeanSurvival - fe.targets.SurvivalSec) / fe.targets.SurvivalSec
	}
	victoryErr := s.VictoryRate - fe.targets.VictoryRate

	return weightSurvival*survivalErr*survivalErr +
		weightVictory*victoryErr*victoryErr -
		weightQuality*fe.computeQuality(s)
}

// computeQuality rewards runs that reach the late game: tier progression
// and wardens defeated, each in [0, 1].
func (fe *FitnessEvaluator) computeQuality(s telemetry.RunSummary) float64 {
	tierScore := 0.0
	if top := fe.baseConfig.Derived.MaxTier; top > 0 {
		tierScore = clamp01(s.MeanMaxTier / float64(top))
	}
	wardenScore := 0.0
	if need := fe.baseConfig.Ritual.WardensNeeded; need > 0 {
		wardenScore = clamp01(s.MeanWardens / float64(need))
	}
	return 0.5*tierScore + 0.5*wardenScore
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
