package telemetry

// FieldState is the snapshot of the field taken when a window closes.
type FieldState struct {
	Particles int
	Width     int
	Height    int
	Speeds    []float64
}

// Collector accumulates frame events within windows and produces WindowStats.
type Collector struct {
	windowFrames     uint64
	frameSec         float64
	windowStartFrame uint64

	pointerMoves  int
	impulses      int
	resizes       int
	regenerations int
	skipped       int
	edges         []float64
}

// NewCollector creates a collector that closes a window every windowFrames frames.
// frameSec converts frame numbers to elapsed seconds.
func NewCollector(windowFrames int, frameSec float64) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: uint64(windowFrames),
		frameSec:     frameSec,
		edges:        make([]float64, 0, windowFrames),
	}
}

// RecordPointerMove records a pointer move notification.
func (c *Collector) RecordPointerMove() {
	c.pointerMoves++
}

// RecordImpulse records n particles pushed by the pointer in one frame.
func (c *Collector) RecordImpulse(n int) {
	c.impulses += n
}

// RecordResize records an applied viewport change.
func (c *Collector) RecordResize() {
	c.resizes++
}

// RecordRegeneration records a particle set rebuild.
func (c *Collector) RecordRegeneration() {
	c.regenerations++
}

// RecordFrame records a drawn frame with its connection line count.
func (c *Collector) RecordFrame(edges int) {
	c.edges = append(c.edges, float64(edges))
}

// RecordSkipped records a frame skipped because the viewport was empty.
func (c *Collector) RecordSkipped() {
	c.skipped++
}

// ShouldFlush returns true once frame has reached the end of the current window.
func (c *Collector) ShouldFlush(frame uint64) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats ending at frame and resets counters for the next window.
func (c *Collector) Flush(frame uint64, state FieldState) WindowStats {
	edges := Summarize(c.edges)
	speeds := Summarize(state.Speeds)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		ElapsedSec:       float64(frame) * c.frameSec,

		Particles: state.Particles,
		Width:     state.Width,
		Height:    state.Height,

		PointerMoves:  c.pointerMoves,
		Impulses:      c.impulses,
		Resizes:       c.resizes,
		Regenerations: c.regenerations,
		SkippedFrames: c.skipped,

		EdgesMean: edges.Mean,
		EdgesP50:  edges.P50,
		EdgesP90:  edges.P90,
		EdgesMax:  edges.Max,

		SpeedMean: speeds.Mean,
		SpeedStd:  speeds.Std,
		SpeedP10:  speeds.P10,
		SpeedP50:  speeds.P50,
		SpeedP90:  speeds.P90,
	}

	c.windowStartFrame = frame
	c.pointerMoves = 0
	c.impulses = 0
	c.resizes = 0
	c.regenerations = 0
	c.skipped = 0
	c.edges = c.edges[:0]

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() uint64 {
	return c.windowFrames
}
