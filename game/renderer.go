// Package game implements the particle field renderer and its frame lifecycle.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
	"github.com/pthm-cable/driftfield/telemetry"
)

// Options configures a Renderer.
type Options struct {
	Seed      int64  // RNG seed (0 = time-based)
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // CSV and config snapshot directory (empty = disabled)

	// OnStats is called with every closed stats window.
	OnStats func(telemetry.WindowStats)
}

// Renderer animates a particle field on a Surface.
// All methods must be called from the thread that pumps the Scheduler.
type Renderer struct {
	cfg     *config.Config
	surface Surface
	sched   Scheduler
	events  EventSource
	opts    Options

	rng     *rand.Rand
	field   *Field
	cursor  Cursor
	falloff systems.Falloff

	viewport      Viewport
	pendingView   Viewport
	resizePending bool
	regenPending  bool

	pointer      r2.Vec
	pointerSeen  bool
	impulseArmed bool

	frameID  FrameID
	mounted  bool
	released bool
	frames   uint64
	edges    int
	removers []func()

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	speeds    []float64
}

// NewRenderer creates an unmounted renderer.
func NewRenderer(cfg *config.Config, surface Surface, sched Scheduler, events EventSource, opts Options) (*Renderer, error) {
	if cfg == nil || surface == nil || sched == nil || events == nil {
		return nil, errors.New("game: renderer needs a config, surface, scheduler and event source")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Refresh()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return &Renderer{
		cfg:       cfg,
		surface:   surface,
		sched:     sched,
		events:    events,
		opts:      opts,
		rng:       rand.New(rand.NewSource(seed)),
		field:     NewField(),
		falloff:   systems.ParseFalloff(cfg.Connections.Falloff),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(cfg.Derived.StatsWindowFrames, 1/float64(cfg.Screen.TargetFPS)),
		output:    output,
	}, nil
}

// Mount sizes the surface to v, generates the particle set, subscribes to input and starts the frame loop.
// Mounting twice, or after Unmount, does nothing.
func (r *Renderer) Mount(v Viewport) {
	if r.mounted || r.released {
		return
	}
	r.mounted = true

	r.removers = append(r.removers,
		r.events.OnPointerMove(r.OnPointerMove),
		r.events.OnResize(r.OnResize),
		r.events.OnPointerButton(r.OnPointerButton),
	)

	r.surface.Resize(v)
	r.viewport = v
	r.populate()

	slog.Info("mount", "width", v.Width, "height", v.Height, "particles", r.field.Len())
	r.frameID = r.sched.RequestFrame(r.step)
}

// OnResize records v as the pending viewport. The next frame resizes the surface and
// regenerates the field; later calls before that frame supersede earlier ones.
func (r *Renderer) OnResize(v Viewport) {
	r.pendingView = v
	r.resizePending = true
}

// OnPointerMove records the pointer position for the next frame's repulsion.
func (r *Renderer) OnPointerMove(x, y float64) {
	r.pointer = r2.Vec{X: x, Y: y}
	r.pointerSeen = true
	r.impulseArmed = true
	r.cursor.MoveTo(r.pointer)
	r.collector.RecordPointerMove()
}

// OnPointerButton records the primary button state for the cursor ring.
func (r *Renderer) OnPointerButton(down bool) {
	r.cursor.SetPressed(down)
}

// Unmount stops the frame loop, removes the listeners, releases the surface and
// discards the particle set. It is safe to call more than once.
func (r *Renderer) Unmount() {
	if r.released {
		return
	}
	r.released = true
	r.mounted = false

	if r.frameID != 0 {
		r.sched.CancelFrame(r.frameID)
		r.frameID = 0
	}
	for _, remove := range r.removers {
		remove()
	}
	r.removers = nil

	r.surface.Release()
	r.field.Reset()

	if err := r.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	r.output = nil

	slog.Info("unmount", "frames", r.frames)
}

// ApplyConfig swaps in a new configuration. Changes to the field's shape regenerate
// the particle set on the next frame; everything else takes effect immediately.
func (r *Renderer) ApplyConfig(next *config.Config) error {
	if next == nil {
		return errors.New("game: nil config")
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	next.Refresh()

	reshape := !r.cfg.Field.SameShape(next.Field)
	r.cfg = next
	if err := r.output.WriteConfig(next); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	r.falloff = systems.ParseFalloff(next.Connections.Falloff)
	if reshape {
		r.regenPending = true
	}

	slog.Debug("config applied", "regenerate", reshape)
	return nil
}

// Regenerate discards the particle set and samples a new one on the next frame.
func (r *Renderer) Regenerate() {
	r.regenPending = true
}

// step runs one animation frame and schedules the next while mounted.
func (r *Renderer) step(_ time.Time) {
	r.frameID = 0
	if !r.mounted {
		return
	}

	r.perf.StartFrame()

	r.perf.StartPhase(telemetry.PhaseResize)
	r.applyPending()

	if r.viewport.Empty() {
		// Nothing to draw until a later resize gives the field some area
		r.impulseArmed = false
		r.collector.RecordSkipped()
	} else {
		r.drawFrame()
	}

	r.perf.EndFrame()
	r.frames++
	r.flushTelemetry()

	if r.mounted {
		r.frameID = r.sched.RequestFrame(r.step)
	}
}

func (r *Renderer) applyPending() {
	if r.resizePending {
		r.resizePending = false
		r.viewport = r.pendingView
		r.surface.Resize(r.viewport)
		r.regenPending = true
		r.collector.RecordResize()
		slog.Debug("resize", "width", r.viewport.Width, "height", r.viewport.Height)
	}
	if r.regenPending {
		r.populate()
	}
}

func (r *Renderer) drawFrame() {
	cfg := r.cfg

	r.perf.StartPhase(telemetry.PhasePhysics)
	r.field.Move()

	r.perf.StartPhase(telemetry.PhasePointer)
	if r.impulseArmed || (cfg.Pointer.Continuous && r.pointerSeen) {
		n := r.field.Push(r.pointer, cfg.Pointer.Radius, cfg.Pointer.ForceScale, cfg.Pointer.MaxSpeed)
		r.collector.RecordImpulse(n)
	}
	r.impulseArmed = false

	r.perf.StartPhase(telemetry.PhaseDraw)
	r.surface.Clear()
	r.field.Draw(r.surface, cfg.Derived.Palette, cfg.Field.GlowFactor, cfg.Field.GlowAlpha)

	r.perf.StartPhase(telemetry.PhaseConnections)
	edges := r.field.Connect(cfg.Connections.Distance, cfg.Connections.MaxOpacity, r.falloff)
	r.field.DrawConnections(r.surface, edges, cfg.Connections.LineWidth, cfg.Connections.Color)
	r.edges = len(edges)
	r.collector.RecordFrame(r.edges)

	if cfg.Cursor.Enabled && r.cursor.Visible() {
		r.cursor.Update(cfg.Cursor.Follow)
		p := r.cursor.Position()
		r.surface.StrokeCircle(p.X, p.Y, r.cursor.Radius(cfg.Cursor.Radius, cfg.Cursor.PressedScale),
			cfg.Cursor.Width, cfg.Cursor.Color.RGBA(cfg.Cursor.Opacity))
	}
}

func (r *Renderer) populate() {
	r.regenPending = false
	n := r.field.Populate(r.viewport, r.rng, r.cfg.Field)
	r.collector.RecordRegeneration()
	slog.Debug("regenerate", "particles", n, "width", r.viewport.Width, "height", r.viewport.Height)
}

// Count returns the current number of particles.
func (r *Renderer) Count() int {
	return r.field.Len()
}

// Frames returns the number of frames run.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Edges returns the number of connection lines drawn in the last frame.
func (r *Renderer) Edges() int {
	return r.edges
}

// Mounted reports whether the frame loop is running.
func (r *Renderer) Mounted() bool {
	return r.mounted
}

// Viewport returns the viewport the field currently fills.
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// Config returns the active configuration.
func (r *Renderer) Config() *config.Config {
	return r.cfg
}

// Field exposes the particle set for inspection.
func (r *Renderer) Field() *Field {
	return r.field
}
