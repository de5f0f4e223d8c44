package assets

import (
	"context"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestWatchReportsChangedArtwork(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)
	path := r.Resolve("head.png")
	writePNG(t, path, 2, 2, color.NRGBA{A: 255})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := Watch(ctx, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	c := NewCache()
	h, err := c.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	writePNG(t, path, 6, 2, color.NRGBA{A: 255})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if changed := w.Changed(); slices.Contains(changed, path) {
			// an event can arrive before the write finishes
			h2, err := c.Reload(path)
			img, _ := c.Image(h)
			if err == nil && img.Bounds().Dx() == 6 {
				if h2 != h {
					t.Fatalf("Reload moved the handle from %d to %d", h, h2)
				}
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("change to head.png not reported")
}

func TestChangedDrains(t *testing.T) {
	w := &Watcher{changed: make(map[string]struct{})}
	w.mark("b.png")
	w.mark("a.png")
	w.mark("b.png")
	if got := w.Changed(); !slices.Equal(got, []string{"a.png", "b.png"}) {
		t.Fatalf("Changed = %v", got)
	}
	if got := w.Changed(); got != nil {
		t.Fatalf("second Changed = %v", got)
	}
}

func TestWatchMissingRoot(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "missing"))
	if _, err := Watch(context.Background(), r, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected an error for a missing asset dir")
	}
}
