package game

import (
	"log/slog"

	"github.com/pthm-cable/driftfield/telemetry"
)

// flushTelemetry closes the stats window once it is full and reports it.
func (r *Renderer) flushTelemetry() {
	if !r.collector.ShouldFlush(r.frames) {
		return
	}

	r.speeds = r.field.Speeds(r.speeds)
	stats := r.collector.Flush(r.frames, telemetry.FieldState{
		Particles: r.field.Len(),
		Width:     r.viewport.Width,
		Height:    r.viewport.Height,
		Speeds:    r.speeds,
	})
	perfStats := r.perf.Stats()

	if r.opts.OnStats != nil {
		r.opts.OnStats(stats)
	}

	if r.opts.LogStats {
		slog.Info("stats", "window", stats)
		slog.Info("perf", "perf", perfStats)
	}

	if r.output != nil {
		if err := r.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := r.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// PerfStats returns the rolling frame timings.
func (r *Renderer) PerfStats() telemetry.PerfStats {
	return r.perf.Stats()
}
