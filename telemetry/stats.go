package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one window of frames.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	ElapsedSec       float64 `csv:"elapsed"`

	// Field state at window end
	Particles int `csv:"particles"`
	Width     int `csv:"width"`
	Height    int `csv:"height"`

	// Events during window
	PointerMoves  int `csv:"pointer_moves"`
	Impulses      int `csv:"impulses"`
	Resizes       int `csv:"resizes"`
	Regenerations int `csv:"regenerations"`
	SkippedFrames int `csv:"skipped_frames"`

	// Connection lines per drawn frame
	EdgesMean float64 `csv:"edges_mean"`
	EdgesP50  float64 `csv:"edges_p50"`
	EdgesP90  float64 `csv:"edges_p90"`
	EdgesMax  float64 `csv:"edges_max"`

	// Particle speed distribution sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Summary describes a sample distribution.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes the mean, sample standard deviation and empirical quantiles of values.
// An empty input yields the zero Summary. values is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var s Summary
	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	s.Max = sorted[len(sorted)-1]
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.Int("particles", s.Particles),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("pointer_moves", s.PointerMoves),
		slog.Int("impulses", s.Impulses),
		slog.Int("resizes", s.Resizes),
		slog.Int("regenerations", s.Regenerations),
		slog.Int("skipped_frames", s.SkippedFrames),
		slog.Float64("edges_mean", s.EdgesMean),
		slog.Float64("edges_p90", s.EdgesP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}
