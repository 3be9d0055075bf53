package main

import (
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/game"
)

var (
	headlessWidth  int
	headlessHeight int
	headlessOrbit  bool
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the field without a window and report stats",
	Long: `Runs the renderer against a surface that only counts draw calls. Frames are
paced at screen.target_fps. Combine with --log-stats or --output-dir to record
window and perf stats, and --orbit to drive a synthetic pointer around the
viewport centre.`,
	RunE: runHeadless,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Cfg().MarshalYAMLBytes()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	headlessCmd.Flags().IntVar(&headlessWidth, "width", 0, "Viewport width (0 = screen.width)")
	headlessCmd.Flags().IntVar(&headlessHeight, "height", 0, "Viewport height (0 = screen.height)")
	headlessCmd.Flags().BoolVar(&headlessOrbit, "orbit", false, "Move a synthetic pointer in a circle")
}

// orbit traces a circle around the viewport centre, one lap every four seconds.
type orbit struct {
	cx, cy, r float64
	step      float64
	angle     float64
}

func newOrbit(v game.Viewport, fps int) *orbit {
	return &orbit{
		cx:   float64(v.Width) / 2,
		cy:   float64(v.Height) / 2,
		r:    math.Min(float64(v.Width), float64(v.Height)) / 4,
		step: 2 * math.Pi / float64(4*fps),
	}
}

func (o *orbit) next() (x, y float64) {
	o.angle += o.step
	return o.cx + o.r*math.Cos(o.angle), o.cy + o.r*math.Sin(o.angle)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Cfg()
	v := game.Viewport{Width: cfg.Screen.Width, Height: cfg.Screen.Height}
	if headlessWidth > 0 {
		v.Width = headlessWidth
	}
	if headlessHeight > 0 {
		v.Height = headlessHeight
	}

	surface := &game.NullSurface{}
	loop := game.NewFrameLoop()
	events := game.NewEvents()

	r, err := game.NewRenderer(cfg, surface, loop, events, gameOptions())
	if err != nil {
		return err
	}
	defer r.Unmount()

	updates, stopWatch, err := startWatcher(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	slog.Info("starting headless run",
		"seed", seed,
		"width", v.Width,
		"height", v.Height,
		"max_frames", maxFrames,
		"orbit", headlessOrbit,
	)

	r.Mount(v)

	var pointer *orbit
	if headlessOrbit {
		pointer = newOrbit(v, cfg.Screen.TargetFPS)
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Screen.TargetFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "frames", r.Frames())
			return nil
		case next := <-updates:
			applyReload(r, next)
		case now := <-ticker.C:
			if pointer != nil {
				events.EmitPointer(pointer.next())
			}
			loop.Pump(now)

			if maxFrames > 0 && r.Frames() >= maxFrames {
				slog.Info("max frames reached",
					"frames", r.Frames(),
					"draws", surface.Draws(),
				)
				return nil
			}
		}
	}
}
