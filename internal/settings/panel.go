// Package settings is the secondary window for editing config toggles. It
// lives inside the pet's window area and is driven from the frame loop: clicks
// are queued as they arrive and handled when the loop polls the panel.
package settings

import (
	"image"
	"log/slog"

	"github.com/Miyukiichan/lofi-buddy/config"
)

const (
	headerHeight = 28
	rowHeight    = 22
	boxSize      = 16
	padding      = 10
)

// Toggle is one boolean config key shown as a checkbox row.
type Toggle struct {
	Key   string
	Label string
}

// DefaultToggles are the rows shown by the application.
var DefaultToggles = []Toggle{
	{Key: config.AlwaysOnTop, Label: "Always on top"},
	{Key: config.ShapeWindow, Label: "Shape window"},
	{Key: config.ShowNowPlaying, Label: "Show track name"},
	{Key: config.ShowMonitor, Label: "Show CPU/memory"},
}

// Store is where the panel reads the live config from and commits edits to.
type Store interface {
	Current() *config.Config
	Update(cfg *config.Config) error
}

// Row is the laid out state of one toggle, in window coordinates.
type Row struct {
	Toggle
	Box     image.Rectangle
	Label   image.Point // baseline origin for the label text
	Checked bool
}

// Panel is the settings window.
type Panel struct {
	bounds  image.Rectangle
	toggles []Toggle
	store   Store
	log     *slog.Logger

	open  bool
	queue []image.Point
}

// New returns a closed panel occupying bounds.
func New(bounds image.Rectangle, toggles []Toggle, store Store, log *slog.Logger) *Panel {
	return &Panel{bounds: bounds, toggles: toggles, store: store, log: log}
}

// Bounds returns the panel area in window coordinates.
func (p *Panel) Bounds() image.Rectangle { return p.bounds }

// Open shows the panel.
func (p *Panel) Open() {
	p.open = true
	p.queue = p.queue[:0]
}

// Contains reports whether a click at (x, y) belongs to the panel.
func (p *Panel) Contains(x, y int) bool {
	return p.open && image.Pt(x, y).In(p.bounds)
}

// Click queues a left click for the next Poll.
func (p *Panel) Click(x, y int) {
	if p.Contains(x, y) {
		p.queue = append(p.queue, image.Pt(x, y))
	}
}

// Poll handles queued clicks and reports whether the panel is now closed.
func (p *Panel) Poll() (closed bool) {
	if !p.open {
		return true
	}
	queue := p.queue
	p.queue = p.queue[:0]
	for _, pt := range queue {
		if pt.In(p.CloseButton()) {
			p.open = false
			return true
		}
		for _, row := range p.Rows() {
			if pt.In(row.hitArea(p.bounds)) {
				p.flip(row.Key, !row.Checked)
			}
		}
	}
	return false
}

// flip edits a copy of the live config, so a reload that landed while the
// panel was open is not saved over.
func (p *Panel) flip(key string, value bool) {
	cfg := p.store.Current().Clone()
	cfg.SetBool(key, value)
	if err := p.store.Update(cfg); err != nil {
		p.log.Warn("saving settings failed", "key", key, "error", err)
		return
	}
	p.log.Info("setting changed", "key", key, "value", value)
}

// CloseButton returns the area of the close box in the header.
func (p *Panel) CloseButton() image.Rectangle {
	x := p.bounds.Max.X - padding - boxSize
	y := p.bounds.Min.Y + (headerHeight-boxSize)/2
	return image.Rect(x, y, x+boxSize, y+boxSize)
}

// Title returns the baseline origin for the header text.
func (p *Panel) Title() image.Point {
	return image.Pt(p.bounds.Min.X+padding, p.bounds.Min.Y+headerHeight-10)
}

// Rows lays out the toggles below the header.
func (p *Panel) Rows() []Row {
	rows := make([]Row, 0, len(p.toggles))
	for i, t := range p.toggles {
		top := p.bounds.Min.Y + headerHeight + i*rowHeight
		box := image.Rect(p.bounds.Min.X+padding, top, p.bounds.Min.X+padding+boxSize, top+boxSize)
		checked := false
		if p.open {
			checked = p.store.Current().Enabled(t.Key)
		}
		rows = append(rows, Row{
			Toggle:  t,
			Box:     box,
			Label:   image.Pt(box.Max.X+8, box.Max.Y-3),
			Checked: checked,
		})
	}
	return rows
}

// hitArea is the whole row width, so clicking the label flips the toggle.
func (r Row) hitArea(bounds image.Rectangle) image.Rectangle {
	return image.Rect(bounds.Min.X, r.Box.Min.Y, bounds.Max.X, r.Box.Min.Y+rowHeight)
}
