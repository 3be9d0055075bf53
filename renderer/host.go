package renderer

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/game"
)

// Host owns the raylib window. It turns window state into game events and
// pumps the frame loop once per presented frame.
type Host struct {
	events *game.Events
	loop   *game.FrameLoop
	canvas *Canvas

	viewport    game.Viewport
	mouse       rl.Vector2
	mouseSeen   bool
	mouseDown   bool
	passthrough bool
}

// NewHost opens the window described by cfg.
func NewHost(cfg config.ScreenConfig) *Host {
	var flags uint32
	if cfg.Transparent {
		flags |= rl.FlagWindowTransparent
	}
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if cfg.Undecorated {
		flags |= rl.FlagWindowUndecorated
	}
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	flags |= rl.FlagVsyncHint
	rl.SetConfigFlags(flags)

	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	h := &Host{
		events:   game.NewEvents(),
		loop:     game.NewFrameLoop(),
		canvas:   NewCanvas(cfg.Background.RGBA(1), cfg.Transparent),
		viewport: game.Viewport{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()},
	}
	h.SetPassthrough(cfg.Passthrough)
	return h
}

func (h *Host) Events() *game.Events    { return h.events }
func (h *Host) Loop() *game.FrameLoop   { return h.loop }
func (h *Host) Canvas() *Canvas         { return h.canvas }
func (h *Host) Viewport() game.Viewport { return h.viewport }

// SetPassthrough lets pointer input fall through the window to whatever is below it.
func (h *Host) SetPassthrough(on bool) {
	if on == h.passthrough {
		return
	}
	h.passthrough = on
	if on {
		rl.SetWindowState(rl.FlagWindowMousePassthrough)
	} else {
		rl.ClearWindowState(rl.FlagWindowMousePassthrough)
	}
}

// Run presents frames until the window closes, ctx is done, or before returns false.
// before runs ahead of input polling each frame; overlay draws on top of the field.
// Either may be nil.
func (h *Host) Run(ctx context.Context, before func() bool, overlay func()) {
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		if before != nil && !before() {
			return
		}

		h.poll()

		rl.BeginDrawing()
		h.loop.Pump(time.Now())
		if overlay != nil {
			overlay()
		}
		rl.EndDrawing()
	}
}

// poll emits resize, pointer and button events for changes since the last frame.
func (h *Host) poll() {
	if rl.IsWindowResized() {
		v := game.Viewport{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()}
		if v != h.viewport {
			h.viewport = v
			h.events.EmitResize(v)
		}
	}

	m := rl.GetMousePosition()
	if !h.mouseSeen || m != h.mouse {
		h.mouse = m
		h.mouseSeen = true
		h.events.EmitPointer(float64(m.X), float64(m.Y))
	}

	down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if down != h.mouseDown {
		h.mouseDown = down
		h.events.EmitButton(down)
	}
}

// Close destroys the window.
func (h *Host) Close() {
	rl.CloseWindow()
}
