// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and delivers the
// result on Updates. Invalid edits are logged and skipped; the previous
// config stays in effect.
type Watcher struct {
	updates chan *Config
	fw      *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching path for changes. Editors commonly replace the
// file rather than writing in place, so the parent directory is watched
// and events are filtered by name.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		updates: make(chan *Config, 1),
		fw:      fw,
		done:    make(chan struct{}),
	}
	go w.loop(path)
	return w, nil
}

// Updates delivers each successfully reloaded config.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop(path string) {
	base := filepath.Base(path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadFromPath(path)
			if err != nil {
				slog.Warn("config reload skipped", "error", err)
				continue
			}
			// Drop a stale pending update so the latest one wins.
			select {
			case <-w.updates:
			default:
			}
			w.updates <- cfg
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher", "error", err)
		}
	}
}
