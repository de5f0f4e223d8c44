// Package compositor renders sprite sets off-screen to produce the alpha
// plane the window silhouette is built from.
package compositor

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/Miyukiichan/lofi-buddy/internal/assets"
	"github.com/Miyukiichan/lofi-buddy/internal/entity"
	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

// Textures is the part of assets.Cache the compositor reads from.
type Textures interface {
	Image(h assets.Handle) (image.Image, error)
}

// Compositor owns a reusable off-screen buffer of the window size.
type Compositor struct {
	textures Textures
	buf      *image.RGBA
}

// New returns a compositor for a width x height window.
func New(textures Textures, width, height int) *Compositor {
	return &Compositor{
		textures: textures,
		buf:      image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Render clears the buffer to transparent, draws sprites in order with
// source-over and returns the alpha plane. Labels are not drawn.
func (c *Compositor) Render(sprites []entity.Sprite) (*silhouette.AlphaBuffer, error) {
	clear(c.buf.Pix)
	for _, s := range sprites {
		if err := c.draw(s); err != nil {
			return nil, err
		}
	}
	return silhouette.AlphaFromImage(c.buf), nil
}

func (c *Compositor) draw(s entity.Sprite) error {
	img, err := c.textures.Image(s.Texture)
	if err != nil {
		return fmt.Errorf("sprite %q: %w", s.Name, err)
	}
	src := img.Bounds()
	w, h := s.W, s.H
	if w <= 0 || h <= 0 {
		w, h = src.Dx(), src.Dy()
	}
	dst := image.Rect(s.X, s.Y, s.X+w, s.Y+h)
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(c.buf, dst, img, src.Min, draw.Over)
		return nil
	}
	// nearest neighbour keeps hard alpha edges when a sprite is resized
	draw.NearestNeighbor.Scale(c.buf, dst, img, src, draw.Over, nil)
	return nil
}
