package settings

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/Miyukiichan/lofi-buddy/config"
)

type memStore struct {
	cfg     *config.Config
	updates int
	err     error
}

func (m *memStore) Current() *config.Config { return m.cfg }

func (m *memStore) Update(cfg *config.Config) error {
	if m.err != nil {
		return m.err
	}
	m.updates++
	m.cfg = cfg
	return nil
}

func newPanel(store Store) *Panel {
	return New(image.Rect(100, 0, 320, 156), DefaultToggles, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func centre(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestClosedPanelIgnoresClicks(t *testing.T) {
	p := newPanel(&memStore{cfg: config.NewDefault()})
	if p.Contains(150, 50) {
		t.Fatal("closed panel claims clicks")
	}
	if !p.Poll() {
		t.Fatal("closed panel should poll as closed")
	}
}

func TestToggleRowFlipsAndSaves(t *testing.T) {
	store := &memStore{cfg: config.NewDefault()}
	p := newPanel(store)
	p.Open()

	var monitorRow Row
	for _, r := range p.Rows() {
		if r.Key == config.ShowMonitor {
			monitorRow = r
		}
	}
	if monitorRow.Checked {
		t.Fatal("show_monitor should start unchecked")
	}

	// clicks are only handled on Poll
	c := centre(monitorRow.Box)
	p.Click(c.X, c.Y)
	if store.updates != 0 {
		t.Fatal("click handled before Poll")
	}
	if p.Poll() {
		t.Fatal("toggle click closed the panel")
	}
	if store.updates != 1 || !store.cfg.Enabled(config.ShowMonitor) {
		t.Fatalf("store not updated: %d updates", store.updates)
	}

	// clicking the label area flips it back
	p.Click(monitorRow.Label.X+20, monitorRow.Label.Y)
	p.Poll()
	if store.cfg.Enabled(config.ShowMonitor) {
		t.Fatal("second click did not flip the toggle back")
	}
}

func TestCloseButton(t *testing.T) {
	store := &memStore{cfg: config.NewDefault()}
	p := newPanel(store)
	p.Open()

	c := centre(p.CloseButton())
	p.Click(c.X, c.Y)
	if !p.Poll() || p.Contains(c.X, c.Y) {
		t.Fatal("close button did not close the panel")
	}
	if store.updates != 0 {
		t.Fatal("closing changed the config")
	}
}

func TestClicksOutsideAreDropped(t *testing.T) {
	p := newPanel(&memStore{cfg: config.NewDefault()})
	p.Open()
	p.Click(5, 5)
	if len(p.queue) != 0 {
		t.Fatal("click outside the panel was queued")
	}
}

func TestStoreFailureKeepsPanelOpen(t *testing.T) {
	store := &memStore{cfg: config.NewDefault(), err: errors.New("read-only")}
	p := newPanel(store)
	p.Open()
	row := p.Rows()[0]
	c := centre(row.Box)
	p.Click(c.X, c.Y)
	if p.Poll() {
		t.Fatal("panel closed on store failure")
	}
	if !store.cfg.Enabled(row.Key) {
		t.Fatal("live config changed despite the failed update")
	}
	if !p.Rows()[0].Checked {
		t.Fatal("row shows a change that was not saved")
	}
}

func TestFlipKeepsExternalEdits(t *testing.T) {
	store := &memStore{cfg: config.NewDefault()}
	p := newPanel(store)
	p.Open()

	// the config file is edited while the panel is open
	reloaded := config.NewDefault()
	reloaded.SetBool(config.ShapeWindow, false)
	store.cfg = reloaded

	for _, r := range p.Rows() {
		switch r.Key {
		case config.ShapeWindow:
			if r.Checked {
				t.Fatal("row does not follow the reloaded config")
			}
		case config.ShowMonitor:
			c := centre(r.Box)
			p.Click(c.X, c.Y)
		}
	}
	p.Poll()
	if !store.cfg.Enabled(config.ShowMonitor) {
		t.Fatal("toggle not saved")
	}
	if store.cfg.Enabled(config.ShapeWindow) {
		t.Fatal("toggle saved over the reloaded config")
	}
}
