package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Run outcomes.
const (
	OutcomeGameOver  = "game_over"
	OutcomeVictory   = "victory"
	OutcomeAbandoned = "abandoned" // Headless run hit its tick limit
)

// RunRecord summarizes one attempt.
type RunRecord struct {
	Attempt       int     `csv:"attempt"`
	Seed          int64   `csv:"seed"`
	Outcome       string  `csv:"outcome"`
	Reason        string  `csv:"reason"`
	Score         int     `csv:"score"`
	Kills         int     `csv:"kills"`
	WardensKilled int     `csv:"wardens_killed"`
	MaxCombo      int     `csv:"max_combo"`
	MaxTier       int     `csv:"max_tier"`
	Dashes        int     `csv:"dashes"`
	Hits          int     `csv:"hits"`
	Blocks        int     `csv:"blocks"`
	Ticks         int32   `csv:"ticks"`
	SurvivalSec   float64 `csv:"survival_sec"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("attempt", r.Attempt),
		slog.String("outcome", r.Outcome),
		slog.String("reason", r.Reason),
		slog.Int("score", r.Score),
		slog.Int("kills", r.Kills),
		slog.Int("wardens_killed", r.WardensKilled),
		slog.Int("max_combo", r.MaxCombo),
		slog.Int("max_tier", r.MaxTier),
		slog.Float64("survival_sec", r.SurvivalSec),
	)
}

// RunSummary aggregates a batch of runs.
type RunSummary struct {
	Runs          int
	Victories     int
	MeanScore     float64
	StdScore      float64
	P10Score      float64
	P50Score      float64
	P90Score      float64
	MeanSurvival  float64
	StdSurvival   float64
	MeanKills     float64
	MeanWardens   float64
	MeanMaxTier   float64
	VictoryRate   float64
	ReasonsByRank []string // Game over causes, most frequent first
}

// SummarizeRuns computes score and survival statistics over records.
func SummarizeRuns(records []RunRecord) RunSummary {
	n := len(records)
	if n == 0 {
		return RunSummary{}
	}

	scores := make([]float64, n)
	survival := make([]float64, n)
	kills := make([]float64, n)
	wardens := make([]float64, n)
	tiers := make([]float64, n)
	reasons := make(map[string]int)
	victories := 0

	for i, r := range records {
		scores[i] = float64(r.Score)
		survival[i] = r.SurvivalSec
		kills[i] = float64(r.Kills)
		wardens[i] = float64(r.WardensKilled)
		tiers[i] = float64(r.MaxTier)
		if r.Outcome == OutcomeVictory {
			victories++
		} else if r.Reason != "" {
			reasons[r.Reason]++
		}
	}

	s := RunSummary{
		Runs:        n,
		Victories:   victories,
		VictoryRate: float64(victories) / float64(n),
		MeanKills:   stat.Mean(kills, nil),
		MeanWardens: stat.Mean(wardens, nil),
		MeanMaxTier: stat.Mean(tiers, nil),
	}
	s.MeanScore, s.StdScore = meanStd(scores)
	s.MeanSurvival, s.StdSurvival = meanStd(survival)

	sort.Float64s(scores)
	s.P10Score = stat.Quantile(0.1, stat.Empirical, scores, nil)
	s.P50Score = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)

	for reason := range reasons {
		s.ReasonsByRank = append(s.ReasonsByRank, reason)
	}
	sort.Slice(s.ReasonsByRank, func(i, j int) bool {
		a, b := s.ReasonsByRank[i], s.ReasonsByRank[j]
		if reasons[a] != reasons[b] {
			return reasons[a] > reasons[b]
		}
		return a < b
	})

	return s
}

// meanStd returns the mean and sample standard deviation; a single value has
// zero spread.
func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// LogStats logs the summary using slog.
func (s RunSummary) LogStats() {
	slog.Info("run_summary",
		"runs", s.Runs,
		"victories", s.Victories,
		"mean_score", s.MeanScore,
		"std_score", s.StdScore,
		"p50_score", s.P50Score,
		"p90_score", s.P90Score,
		"mean_survival", s.MeanSurvival,
		"mean_kills", s.MeanKills,
		"mean_wardens", s.MeanWardens,
		"reasons", s.ReasonsByRank,
	)
}
