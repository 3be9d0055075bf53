package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/game"
	"github.com/pthm-cable/driftfield/renderer"
	"github.com/pthm-cable/driftfield/ui"
)

var (
	// Global flags
	configPath string
	seed       int64
	logStats   bool
	outputDir  string
	watch      bool
	maxFrames  uint64
)

var rootCmd = &cobra.Command{
	Use:   "driftfield",
	Short: "Ambient particle field overlay",
	Long: `driftfield draws a slowly drifting field of glowing particles, joined by faint
lines when they come close, that scatter away from the pointer.

Run without a subcommand to open the overlay window. Press F1 for the tuning panel.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Structured logging (JSON to stdout)
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if watch && configPath == "" {
			return fmt.Errorf("--watch requires --config")
		}
		return nil
	},
	RunE: runWindow,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().BoolVar(&logStats, "log-stats", false, "Output stats via slog")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "Reload --config when the file changes")
	rootCmd.PersistentFlags().Uint64Var(&maxFrames, "max-frames", 0, "Stop after N frames (0 = unlimited)")

	rootCmd.AddCommand(headlessCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func gameOptions() game.Options {
	return game.Options{
		Seed:      seed,
		LogStats:  logStats,
		OutputDir: outputDir,
	}
}

// startWatcher returns a channel of reloaded configs, or nil when --watch is off.
func startWatcher(ctx context.Context) (<-chan *config.Config, func(), error) {
	if !watch {
		return nil, func() {}, nil
	}
	w, err := config.NewWatcher(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, nil, err
	}
	slog.Info("watching config", "path", configPath)
	return w.Updates(), w.Stop, nil
}

// applyReload hands a reloaded config to the renderer, logging rejected ones.
func applyReload(r *game.Renderer, next *config.Config) {
	if err := r.ApplyConfig(next); err != nil {
		slog.Warn("config reload rejected", "error", err)
		return
	}
	slog.Info("config reloaded")
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Cfg()

	host := renderer.NewHost(cfg.Screen)
	defer host.Close()

	r, err := game.NewRenderer(cfg, host.Canvas(), host.Loop(), host.Events(), gameOptions())
	if err != nil {
		return err
	}
	defer r.Unmount()

	updates, stopWatch, err := startWatcher(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	overlay := ui.NewOverlay()
	r.Mount(host.Viewport())

	before := func() bool {
		select {
		case next := <-updates:
			applyReload(r, next)
		default:
		}
		if overlay.HandleInput() {
			// The panel needs the pointer while it is open.
			host.SetPassthrough(cfg.Screen.Passthrough && !overlay.Visible())
		}
		return maxFrames == 0 || r.Frames() < maxFrames
	}

	draw := func() {
		v := r.Viewport()
		data := ui.HUDData{
			Particles: r.Count(),
			Edges:     r.Edges(),
			Frames:    r.Frames(),
			FPS:       rl.GetFPS(),
			Width:     v.Width,
			Height:    v.Height,
			Perf:      r.PerfStats(),
		}
		next, regenerate := overlay.Draw(r.Config(), data)
		if next != nil {
			if err := r.ApplyConfig(next); err != nil {
				slog.Warn("tuning rejected", "error", err)
			}
		}
		if regenerate {
			r.Regenerate()
		}
		overlay.DrawHint(int32(v.Height))
	}

	host.Run(ctx, before, draw)
	slog.Info("window closed", "frames", r.Frames())
	return nil
}
