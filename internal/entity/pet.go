package entity

import (
	"image"

	"github.com/Miyukiichan/lofi-buddy/internal/assets"
)

// SetName names a group of sprites that is shown or hidden as a unit.
type SetName string

const (
	SetAlways      SetName = "always"       // desk and head
	SetMenuOverlay SetName = "menu_overlay" // backdrop behind the menu
	SetMenuButtons SetName = "menu_buttons"
	SetSettings    SetName = "settings"
)

// Sprite is a positioned reference to a cached texture.
type Sprite struct {
	Name    string
	Texture assets.Handle
	X, Y    int
	W, H    int

	// Label is drawn on top of the sprite in the real window only. It never
	// reaches the shape mask.
	Label string
}

// Bounds returns the window-space rectangle covered by the sprite.
func (s Sprite) Bounds() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)
}

// Contains reports whether the window-space point lies on the sprite.
func (s Sprite) Contains(x, y int) bool {
	return image.Pt(x, y).In(s.Bounds())
}

// Pet is everything the window can show, grouped by set. Sets keep their
// insertion order, which is also the drawing order.
type Pet struct {
	Width  int // window width in pixels
	Height int // window height in pixels

	// Primary is the name of the sprite that answers clicks (the head).
	Primary string

	sets map[SetName][]Sprite
}

// NewPet returns an empty pet for a width x height window.
func NewPet(width, height int) *Pet {
	return &Pet{Width: width, Height: height, sets: make(map[SetName][]Sprite)}
}

// Add appends sprite to set.
func (p *Pet) Add(set SetName, sprite Sprite) {
	p.sets[set] = append(p.sets[set], sprite)
}

// Replace swaps the whole content of set.
func (p *Pet) Replace(set SetName, sprites []Sprite) {
	p.sets[set] = sprites
}

// Set returns the sprites of one set in drawing order.
func (p *Pet) Set(set SetName) []Sprite {
	return p.sets[set]
}

// Visible concatenates the given sets in the order they are listed.
func (p *Pet) Visible(sets ...SetName) []Sprite {
	var out []Sprite
	for _, name := range sets {
		out = append(out, p.sets[name]...)
	}
	return out
}

// Hit returns the topmost sprite of the given sets under (x, y).
func (p *Pet) Hit(x, y int, sets ...SetName) (Sprite, bool) {
	visible := p.Visible(sets...)
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Contains(x, y) {
			return visible[i], true
		}
	}
	return Sprite{}, false
}
