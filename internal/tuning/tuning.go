// Package tuning manages the scoring weight set: canonical defaults, an
// optional YAML override file, and hot reload of that file at runtime.
package tuning

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/raido/internal/search"
	"github.com/starford/raido/pkg/config"
)

// Provider hands out the current weight set. Reads are lock-free; reloads
// swap the whole set atomically so a request never sees a half-applied file.
type Provider struct {
	current atomic.Pointer[search.Weights]
	path    string
}

// NewProvider returns a provider serving the canonical defaults.
func NewProvider() *Provider {
	p := &Provider{}
	w := search.DefaultWeights()
	p.current.Store(&w)
	return p
}

// Current returns the active weight set.
func (p *Provider) Current() search.Weights {
	return *p.current.Load()
}

// LoadFile overlays the YAML file at path onto the defaults and makes the
// result current. Keys absent from the file keep their default values.
func (p *Provider) LoadFile(path string) error {
	w := search.DefaultWeights()
	if err := config.Load(path, &w); err != nil {
		return err
	}
	p.current.Store(&w)
	p.path = path
	return nil
}

// Watch re-loads the weights file whenever it changes, until ctx is
// cancelled. Editors replace files with write+rename bursts, so reloads are
// debounced. A file that fails to parse is logged and skipped; the previous
// weights stay active.
func (p *Provider) Watch(ctx context.Context, logger *slog.Logger) error {
	if p.path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory: rename-based saves drop and recreate the file.
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		return err
	}

	logger.Info("tuning: watching weights file", slog.String("path", p.path))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("tuning: watcher stopped")
			return nil

		case <-reloadCh:
			if err := p.LoadFile(p.path); err != nil {
				logger.Warn("tuning: reload failed, keeping previous weights",
					slog.String("path", p.path),
					slog.String("error", err.Error()))
				continue
			}
			logger.Info("tuning: weights reloaded", slog.String("path", p.path))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(p.path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("tuning: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
