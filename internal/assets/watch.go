package assets

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher collects the files below the asset root that changed on disk, so
// the frame loop can reload the textures behind them.
type Watcher struct {
	log     *slog.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	changed map[string]struct{}
}

// Watch starts watching the resolver's root until ctx is done.
func Watch(ctx context.Context, r Resolver, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(r.Root()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Root(), err)
	}
	w := &Watcher{
		log:     log,
		watcher: fw,
		changed: make(map[string]struct{}),
	}
	go w.loop(ctx)
	return w, nil
}

// Changed returns the paths modified since the last call, sorted.
func (w *Watcher) Changed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.changed) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.changed))
	for p := range w.changed {
		out = append(out, p)
	}
	clear(w.changed)
	slices.Sort(out)
	return out
}

func (w *Watcher) mark(path string) {
	w.mu.Lock()
	w.changed[filepath.Clean(path)] = struct{}{}
	w.mu.Unlock()
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
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.mark(ev.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("asset watcher error", "error", err)
		}
	}
}
