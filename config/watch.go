package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
// Reloaded configs are delivered on Updates; the consumer applies them on its own goroutine.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	updates  chan *Config
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool

	pendingSince time.Time
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watching config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: 150 * time.Millisecond, // Editors often write in several steps
		updates:  make(chan *Config, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates returns the channel of successfully reloaded configs.
// Only the most recent reload is kept if the consumer falls behind.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start begins watching. It is non-blocking; events are handled on a separate goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return nil
	}

	// Watch the directory: editors replace the file rather than writing in place.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true

	go w.run(ctx)

	slog.Debug("config watcher started", "path", w.path)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		slog.Error("closing config watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		case now := <-ticker.C:
			if !w.pendingSince.IsZero() && now.Sub(w.pendingSince) >= w.debounce {
				w.pendingSince = time.Time{}
				w.reload()
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.pendingSince = time.Now()
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep running with the previous config until the file is fixed
		slog.Warn("config reload rejected", "path", w.path, "error", err)
		return
	}

	// Replace any undelivered config with the newer one
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg

	slog.Info("config reloaded", "path", w.path)
}
