package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(3, 1.0/60)

	if c.ShouldFlush(2) {
		t.Error("flush requested before window end")
	}
	if !c.ShouldFlush(3) {
		t.Error("flush not requested at window end")
	}

	c.RecordPointerMove()
	c.RecordPointerMove()
	c.RecordImpulse(4)
	c.RecordResize()
	c.RecordRegeneration()
	c.RecordSkipped()
	c.RecordFrame(2)
	c.RecordFrame(6)

	stats := c.Flush(3, FieldState{Particles: 12, Width: 640, Height: 480, Speeds: []float64{0.1, 0.3}})

	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 3 {
		t.Errorf("window = [%d, %d], want [0, 3]", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if stats.PointerMoves != 2 || stats.Impulses != 4 || stats.Resizes != 1 || stats.Regenerations != 1 || stats.SkippedFrames != 1 {
		t.Errorf("unexpected counters: %+v", stats)
	}
	if stats.EdgesMean != 4 || stats.EdgesMax != 6 {
		t.Errorf("edges mean/max = %v/%v, want 4/6", stats.EdgesMean, stats.EdgesMax)
	}
	if stats.Particles != 12 || stats.Width != 640 {
		t.Errorf("field state not copied: %+v", stats)
	}
	if math.Abs(stats.ElapsedSec-0.05) > 1e-9 {
		t.Errorf("elapsed = %v, want 0.05", stats.ElapsedSec)
	}

	// Counters reset for the next window
	next := c.Flush(6, FieldState{})
	if next.WindowStartFrame != 3 {
		t.Errorf("next window starts at %d, want 3", next.WindowStartFrame)
	}
	if next.PointerMoves != 0 || next.Impulses != 0 || next.EdgesMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if c.ShouldFlush(8) {
		t.Error("flush requested mid-window")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0, 1)
	if c.WindowFrames() != 1 {
		t.Errorf("WindowFrames() = %d, want 1", c.WindowFrames())
	}
}
