package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one frame window.
type WindowStats struct {
	WindowStart int64 `csv:"-"`
	WindowEnd   int64 `csv:"window_end"`

	// Population counts at window end
	Bots      int `csv:"bots"`
	Predators int `csv:"predators"`
	Food      int `csv:"food"`

	// Events during window
	Births      int `csv:"births"`
	Deaths      int `csv:"deaths"`
	Kills       int `csv:"kills"`
	Deliveries  int `csv:"deliveries"`
	Conversions int `csv:"conversions"`

	// Bot health distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`
}

// HealthStats calculates mean, standard deviation, and percentiles of
// the sampled health values. An empty sample yields zeros.
func HealthStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStart),
		slog.Int64("window_end", s.WindowEnd),
		slog.Int("bots", s.Bots),
		slog.Int("predators", s.Predators),
		slog.Int("food", s.Food),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("kills", s.Kills),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("conversions", s.Conversions),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_p50", s.HealthP50),
	)
}
