// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher reports changes of a config file. Editors often replace files
// instead of writing them, so the directory is watched.
type Watcher struct {
	path    string
	w       *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "config watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "config watcher")
	}
	w := &Watcher{
		path:    abs,
		w:       fw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				select {
				case w.changed <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher", slog.Any("error", err))
		}
	}
}

// Poll reports whether the file changed since the last Poll. It never
// blocks.
func (w *Watcher) Poll() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Changed is signaled once for any number of changes between receives.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}
