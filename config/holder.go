package config

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder wraps a Config and supports atomic hot-reloading.
// All reads go through Get() which is safe for concurrent use.
type Holder struct {
	mu       sync.RWMutex
	cfg      *Config
	path     string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	sigCh    chan os.Signal
	stopCh   chan struct{}
	onChange []func(*Config)
}

// NewHolder creates a Holder with an initial config loaded from path.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Holder{
		cfg:    cfg,
		path:   path,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// Get returns the current config. Callers must not mutate the result.
func (h *Holder) Get() *Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// OnChange registers a callback invoked after each successful reload.
func (h *Holder) OnChange(fn func(*Config)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Reload re-reads the config file. On failure the previous config is kept.
func (h *Holder) Reload() error {
	cfg, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Str("path", h.path).Msg("config reload failed, keeping previous config")
		return err
	}

	h.mu.Lock()
	old := h.cfg
	h.cfg = cfg
	callbacks := make([]func(*Config), len(h.onChange))
	copy(callbacks, h.onChange)
	h.mu.Unlock()

	h.logChanges(old, cfg)
	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

// WatchFile starts watching the config file for changes.
// The parent directory is watched because editors and orchestrators
// replace files atomically via rename.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	h.watcher = watcher
	go h.watchLoop()
	h.logger.Info().Str("path", h.path).Msg("watching config file for changes")
	return nil
}

// WatchSignals starts reloading the config on SIGHUP.
func (h *Holder) WatchSignals() {
	h.sigCh = make(chan os.Signal, 1)
	signal.Notify(h.sigCh, syscall.SIGHUP)
	go func() {
		for {
			select {
			case <-h.sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading config")
				h.Reload() //nolint:errcheck // reload logs its own failure
			case <-h.stopCh:
				return
			}
		}
	}()
}

// Stop stops watching for file changes and signals.
func (h *Holder) Stop() {
	close(h.stopCh)
	if h.watcher != nil {
		h.watcher.Close()
	}
	if h.sigCh != nil {
		signal.Stop(h.sigCh)
	}
}

func (h *Holder) watchLoop() {
	base := filepath.Base(h.path)
	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			h.logger.Debug().Str("event", event.Op.String()).Msg("config file changed")
			h.Reload() //nolint:errcheck
		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("config watcher error")
		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(old, new *Config) {
	ev := h.logger.Info()
	if old.API.Version != new.API.Version {
		ev = ev.Str("api_version", new.API.Version)
	}
	if old.Logging.Level != new.Logging.Level {
		ev = ev.Str("log_level", new.Logging.Level)
	}
	ev.Msg("config reloaded")
}
