// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher signals when the config file changes on disk. Editors and atomic
// writers produce bursts of events, so changes are debounced before a
// signal is delivered.
type Watcher struct {
	Events chan struct{}

	fsw    *fsnotify.Watcher
	logger zerolog.Logger
	done   chan struct{}
}

const debounceDelay = 250 * time.Millisecond

// NewWatcher watches the config file at path. The parent directory is
// watched so that rename-based saves are seen too.
func NewWatcher(path string, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		Events: make(chan struct{}, 1),
		fsw:    fsw,
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.loop(filepath.Base(path))
	return w, nil
}

func (w *Watcher) loop(base string) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}
		case <-timerC:
			select {
			case w.Events <- struct{}{}:
			default:
			}
			w.logger.Debug().
				Str("event", "config.file_changed").
				Msg("config file change detected")
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Str("event", "config.watch_error").Msg("config watcher error")
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
