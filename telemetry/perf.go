package telemetry

import (
	"log/slog"
	"time"
)

// Frame phases, in the order the renderer runs them.
const (
	PhaseResize      = "resize"
	PhasePhysics     = "physics"
	PhasePointer     = "pointer"
	PhaseDraw        = "draw"
	PhaseConnections = "connections"
)

var phaseOrder = []string{PhaseResize, PhasePhysics, PhasePointer, PhaseDraw, PhaseConnections}

type frameSample struct {
	cost   time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps the cost of the last N frames in a ring and maintains
// running sums, so Stats only scans the ring for min and max.
type PerfCollector struct {
	ring  []frameSample
	next  int
	count int

	costSum  time.Duration
	phaseSum map[string]time.Duration

	// Frame in progress
	began  time.Time
	open   string
	opened time.Time
	phases map[string]time.Duration

	presented time.Time
	interval  time.Duration
}

// NewPerfCollector returns a collector over the last window frames (60 if window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ring:     make([]frameSample, window),
		phaseSum: make(map[string]time.Duration),
	}
}

// StartFrame marks the start of a frame.
func (p *PerfCollector) StartFrame() {
	p.began = time.Now()
	p.open = ""
	p.phases = make(map[string]time.Duration, len(phaseOrder))
}

// StartPhase closes the open phase and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.open = phase
	p.opened = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.open != "" {
		p.phases[p.open] += now.Sub(p.opened)
		p.open = ""
	}
}

// EndFrame closes the frame and pushes it into the ring, evicting the oldest
// sample once the window is full.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.phases == nil {
		p.phases = make(map[string]time.Duration)
	}
	p.closePhase(now)

	if p.count == len(p.ring) {
		old := p.ring[p.next]
		p.costSum -= old.cost
		for name, d := range old.phases {
			p.phaseSum[name] -= d
		}
	} else {
		p.count++
	}

	s := frameSample{cost: now.Sub(p.began), phases: p.phases}
	p.ring[p.next] = s
	p.next = (p.next + 1) % len(p.ring)
	p.costSum += s.cost
	for name, d := range s.phases {
		p.phaseSum[name] += d
	}
	p.phases = nil

	if !p.presented.IsZero() {
		p.interval = now.Sub(p.presented)
	}
	p.presented = now
}

// PerfStats summarises the frames in the window.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average frame, 0-100

	// Frames per second the CPU work alone would allow
	Headroom float64

	// Rate at which frames are actually presented
	FPS float64
}

// Stats summarises the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration, len(p.phaseSum)),
		PhasePct: make(map[string]float64, len(p.phaseSum)),
	}
	if p.interval > 0 {
		out.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.count == 0 {
		return out
	}

	out.MinFrameDuration = p.ring[0].cost
	for _, s := range p.ring[:p.count] {
		out.MinFrameDuration = min(out.MinFrameDuration, s.cost)
		out.MaxFrameDuration = max(out.MaxFrameDuration, s.cost)
	}

	n := time.Duration(p.count)
	out.AvgFrameDuration = p.costSum / n
	for name, sum := range p.phaseSum {
		avg := sum / n
		out.PhaseAvg[name] = avg
		if out.AvgFrameDuration > 0 {
			out.PhasePct[name] = 100 * float64(avg) / float64(out.AvgFrameDuration)
		}
	}
	if out.AvgFrameDuration > 0 {
		out.Headroom = float64(time.Second) / float64(out.AvgFrameDuration)
	}
	return out
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("headroom_fps", s.Headroom),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		// Phases under 0.1% are noise
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      uint64  `csv:"window_end"`
	AvgFrameUS     int64   `csv:"avg_frame_us"`
	MinFrameUS     int64   `csv:"min_frame_us"`
	MaxFrameUS     int64   `csv:"max_frame_us"`
	Headroom       float64 `csv:"headroom_fps"`
	FPS            float64 `csv:"fps"`
	ResizePct      float64 `csv:"resize_pct"`
	PhysicsPct     float64 `csv:"physics_pct"`
	PointerPct     float64 `csv:"pointer_pct"`
	DrawPct        float64 `csv:"draw_pct"`
	ConnectionsPct float64 `csv:"connections_pct"`
}

// ToCSV flattens s into a row for the window ending at frame windowEnd.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgFrameUS:     s.AvgFrameDuration.Microseconds(),
		MinFrameUS:     s.MinFrameDuration.Microseconds(),
		MaxFrameUS:     s.MaxFrameDuration.Microseconds(),
		Headroom:       s.Headroom,
		FPS:            s.FPS,
		ResizePct:      s.PhasePct[PhaseResize],
		PhysicsPct:     s.PhasePct[PhasePhysics],
		PointerPct:     s.PhasePct[PhasePointer],
		DrawPct:        s.PhasePct[PhaseDraw],
		ConnectionsPct: s.PhasePct[PhaseConnections],
	}
}
