// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nurbergenoovv/CustomLibreChat1/internal/logging"
)

// =============================================================================
// CATALOG WATCHER
// =============================================================================

// Watcher reloads the catalog file when it changes on disk and republishes
// snapshots through a callback. Editors often write config files with a
// burst of events (truncate, write, rename), so reloads are debounced.
type Watcher struct {
	path     string
	level    AccessLevel
	debounce time.Duration
	onReload func(Snapshot)
	log      *logging.Logger

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	pending time.Time
	dirty   bool
}

// WatchDebounce is the default quiet interval before a changed catalog
// file is reloaded.
const WatchDebounce = 300 * time.Millisecond

// NewWatcher watches the catalog file at path and calls onReload with a
// fresh snapshot after each (debounced) change. The watch is on the
// parent directory so rename-based saves are observed.
func NewWatcher(path string, level AccessLevel, log *logging.Logger, onReload func(Snapshot)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		level:    level,
		debounce: WatchDebounce,
		onReload: onReload,
		log:      logging.OrNop(log).Component("catalog"),
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
	}

	go w.processEvents()
	go w.processPending()

	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents marks the catalog dirty on relevant filesystem events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.dirty = true
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("catalog watch error")
		}
	}
}

// processPending reloads the catalog once changes have settled.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			ready := w.dirty && time.Since(w.pending) >= w.debounce
			if ready {
				w.dirty = false
			}
			w.mu.Unlock()

			if ready {
				w.reload()
			}
		}
	}
}

// reload parses the catalog file and publishes the new snapshot. Parse
// failures keep the previous snapshot in effect.
func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("catalog reload failed, keeping previous snapshot")
		return
	}
	w.log.Debug().Str("path", w.path).Msg("catalog reloaded")
	w.onReload(f.Snapshot(w.level))
}
