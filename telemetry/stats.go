package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartSec float64 `csv:"-"`
	WindowEndSec   float64 `csv:"sim_time"`
	Ticks          int     `csv:"ticks"`

	// Creature state at window end
	Age      float64 `csv:"age"`
	Stage    string  `csv:"stage"`
	Activity string  `csv:"activity"`
	Foods    int     `csv:"foods"`

	// Hunger distribution (sampled every tick)
	HungerMean float64 `csv:"hunger_mean"`
	HungerStd  float64 `csv:"hunger_std"`
	HungerP10  float64 `csv:"hunger_p10"`
	HungerP50  float64 `csv:"hunger_p50"`
	HungerP90  float64 `csv:"hunger_p90"`

	// Events during window
	FoodsEaten    int     `csv:"foods_eaten"`
	SatietyGained float64 `csv:"satiety_gained"`
	FoodsPlaced   int     `csv:"foods_placed"`
	FoodsSpawned  int     `csv:"foods_spawned"`
	StageChanges  int     `csv:"stage_changes"`
	Moods         int     `csv:"moods"`
	Distress      int     `csv:"distress"`

	// Behavior decisions
	Decisions    int `csv:"decisions"`
	SeekFood     int `csv:"seek_food"`
	ChoseIdle    int `csv:"chose_idle"`
	ChoseWalking int `csv:"chose_walking"`
	ChoseDancing int `csv:"chose_dancing"`
	ChoseEating  int `csv:"chose_eating"`
}

// ComputeHungerStats calculates mean, std and percentiles from hunger samples.
func ComputeHungerStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStartSec),
		slog.Float64("window_end", s.WindowEndSec),
		slog.Int("ticks", s.Ticks),
		slog.Float64("age", s.Age),
		slog.String("stage", s.Stage),
		slog.String("activity", s.Activity),
		slog.Int("foods", s.Foods),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("hunger_std", s.HungerStd),
		slog.Int("foods_eaten", s.FoodsEaten),
		slog.Float64("satiety_gained", s.SatietyGained),
		slog.Int("stage_changes", s.StageChanges),
		slog.Int("decisions", s.Decisions),
		slog.Int("seek_food", s.SeekFood),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"sim_time", s.WindowEndSec,
		"stage", s.Stage,
		"activity", s.Activity,
		"hunger_mean", s.HungerMean,
		"hunger_p10", s.HungerP10,
		"foods", s.Foods,
		"foods_eaten", s.FoodsEaten,
		"distress", s.Distress,
	)
}
