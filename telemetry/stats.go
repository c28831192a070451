// Package telemetry collects per-window round statistics, bookmarks and step
// timing, and writes them as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	AISpeed         float64 `csv:"ai_speed"`

	// Population at window end
	LiveBugs    int     `csv:"live_bugs"`
	LiveLoops   int     `csv:"live_loops"` // loops with at least one member
	PlayerBugs  int     `csv:"player_bugs"`
	PlayerShare float64 `csv:"player_share"`

	// Conversions during window
	Conversions    int     `csv:"conversions"`
	ConversionRate float64 `csv:"conversion_rate"` // per simulated second

	// Loop size distribution over live loops (sampled at window end)
	LoopSizeMean float64 `csv:"loop_size_mean"`
	LoopSizeStd  float64 `csv:"loop_size_std"`
	LoopSizeP50  float64 `csv:"loop_size_p50"`
	LoopSizeMax  float64 `csv:"loop_size_max"`

	// Largest loop not controlled by the player
	LargestRival int `csv:"largest_rival"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSizeStats calculates mean, sample standard deviation, median and
// maximum of loop sizes. Empty loops should be excluded by the caller.
func ComputeSizeStats(values []float64) (mean, std, p50, largest float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.50), sorted[n-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("ai_speed", s.AISpeed),
		slog.Int("live_bugs", s.LiveBugs),
		slog.Int("live_loops", s.LiveLoops),
		slog.Int("player_bugs", s.PlayerBugs),
		slog.Float64("player_share", s.PlayerShare),
		slog.Int("conversions", s.Conversions),
		slog.Float64("conversion_rate", s.ConversionRate),
		slog.Float64("loop_size_mean", s.LoopSizeMean),
		slog.Float64("loop_size_std", s.LoopSizeStd),
		slog.Float64("loop_size_p50", s.LoopSizeP50),
		slog.Float64("loop_size_max", s.LoopSizeMax),
		slog.Int("largest_rival", s.LargestRival),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"live_loops", s.LiveLoops,
		"player_bugs", s.PlayerBugs,
		"player_share", s.PlayerShare,
		"conversions", s.Conversions,
		"conversion_rate", s.ConversionRate,
		"loop_size_mean", s.LoopSizeMean,
		"loop_size_std", s.LoopSizeStd,
		"loop_size_max", s.LoopSizeMax,
		"largest_rival", s.LargestRival,
	)
}
