package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher republishes the config file whenever it changes on disk. Updates
// are delivered through a single-slot channel: a reader that falls behind
// only ever sees the newest config.
type Watcher struct {
	path    string
	log     *slog.Logger
	watcher *fsnotify.Watcher
	updates chan *Config
}

// Watch starts watching filename until ctx is done. The parent directory is
// watched so editors that replace the file by rename are noticed too.
func Watch(ctx context.Context, filename string, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(filename)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filename, err)
	}
	w := &Watcher{
		path:    filepath.Clean(filename),
		log:     log,
		watcher: fw,
		updates: make(chan *Config, 1),
	}
	go w.loop(ctx)
	return w, nil
}

// Poll returns the newest reloaded config, if any, without blocking.
func (w *Watcher) Poll() (*Config, bool) {
	select {
	case cfg := <-w.updates:
		return cfg, true
	default:
		return nil, false
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	// an empty file is a save in progress, the next event brings the content
	if fi, err := os.Stat(w.path); err != nil || fi.Size() == 0 {
		return
	}
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("ignoring config change", "path", w.path, "error", err)
		return
	}
	// drop a stale pending update so the send never blocks
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
