package telemetry

import (
	"math"
	"testing"
)

func TestSummarizeRuns(t *testing.T) {
	records := []RunRecord{
		{Score: 100, SurvivalSec: 10, Kills: 2, Outcome: OutcomeGameOver, Reason: "DATA MINE"},
		{Score: 200, SurvivalSec: 20, Kills: 4, Outcome: OutcomeGameOver, Reason: "CORRUPTED SECTOR"},
		{Score: 300, SurvivalSec: 30, Kills: 6, Outcome: OutcomeGameOver, Reason: "DATA MINE"},
		{Score: 400, SurvivalSec: 40, Kills: 8, Outcome: OutcomeVictory, WardensKilled: 3},
	}

	s := SummarizeRuns(records)

	if s.Runs != 4 || s.Victories != 1 || s.VictoryRate != 0.25 {
		t.Errorf("runs=%d victories=%d rate=%v", s.Runs, s.Victories, s.VictoryRate)
	}
	if math.Abs(s.MeanScore-250) > 1e-9 {
		t.Errorf("mean score = %v, want 250", s.MeanScore)
	}
	// Sample standard deviation of 100..400
	if math.Abs(s.StdScore-129.0994) > 1e-3 {
		t.Errorf("std score = %v", s.StdScore)
	}
	if s.P50Score != 200 || s.P10Score != 100 || s.P90Score != 400 {
		t.Errorf("quantiles = %v %v %v", s.P10Score, s.P50Score, s.P90Score)
	}
	if math.Abs(s.MeanSurvival-25) > 1e-9 || math.Abs(s.MeanKills-5) > 1e-9 {
		t.Errorf("survival=%v kills=%v", s.MeanSurvival, s.MeanKills)
	}
	if len(s.ReasonsByRank) != 2 || s.ReasonsByRank[0] != "DATA MINE" {
		t.Errorf("reasons = %v", s.ReasonsByRank)
	}
}

func TestSummarizeRunsEdgeCases(t *testing.T) {
	if s := SummarizeRuns(nil); s.Runs != 0 || s.MeanScore != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	s := SummarizeRuns([]RunRecord{{Score: 500, SurvivalSec: 12}})
	if s.MeanScore != 500 || s.StdScore != 0 || s.P90Score != 500 {
		t.Errorf("single run summary = %+v", s)
	}
}
