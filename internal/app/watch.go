package app

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"algo-visualizer/internal/config"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay coalesces the bursts of events editors produce on save.
const DefaultReloadDelay = 200 * time.Millisecond

// ConfigWatcher reloads the configuration file when it changes on disk.
// The directory is watched rather than the file so that editors which
// save by renaming a temporary file are picked up.
type ConfigWatcher struct {
	path    string
	delay   time.Duration
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	onReload func(*config.Config)
	onError  func(error)

	stopCh   chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &ConfigWatcher{
		path:    abs,
		delay:   DefaultReloadDelay,
		watcher: w,
		logger:  logger,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// OnReload sets the callback receiving each successfully parsed config.
// Callbacks run on the watcher goroutine.
func (w *ConfigWatcher) OnReload(callback func(*config.Config)) {
	w.onReload = callback
}

// OnError sets the callback receiving parse and watch errors.
func (w *ConfigWatcher) OnError(callback func(error)) {
	w.onError = callback
}

// SetDelay changes the debounce delay. Call before Start.
func (w *ConfigWatcher) SetDelay(d time.Duration) {
	w.delay = d
}

// Path returns the absolute path of the watched file.
func (w *ConfigWatcher) Path() string {
	return w.path
}

// Start begins watching in a background goroutine.
func (w *ConfigWatcher) Start() {
	if w.started.Swap(true) {
		return
	}
	go w.watchLoop()
}

// Stop stops the watcher goroutine and releases the watch.
func (w *ConfigWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	if w.started.Load() {
		<-w.done
	}
	return err
}

func (w *ConfigWatcher) watchLoop() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Config: change detected", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(fmt.Errorf("config watcher: %w", err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		// The file may be mid-rename; a Create event follows.
		if errors.Is(err, config.ErrNotFound) {
			return
		}
		w.report(err)
		return
	}
	w.logger.Info("Config: reloaded from disk", "path", w.path)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *ConfigWatcher) report(err error) {
	w.logger.Warn("Config: reload failed", "error", err)
	if w.onError != nil {
		w.onError(err)
	}
}
