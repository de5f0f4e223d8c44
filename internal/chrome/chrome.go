// Package chrome draws the procedural textures behind the menu and the
// settings window.
package chrome

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// Panel returns a w x h rounded rectangle filled with fill and outlined with
// border. Pixels outside the rounded corners are fully transparent, so they
// drop out of the window silhouette.
func Panel(w, h int, radius float64, fill, border color.Color) image.Image {
	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.Clear()
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	dc.Fill()

	dc.SetColor(border)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(1, 1, float64(w)-2, float64(h)-2, radius)
	dc.Stroke()

	_ = dc.FlushGPU()
	return dc.Image()
}

// Checkbox returns a size x size box, filled when checked.
func Checkbox(size int, checked bool, fg color.Color) image.Image {
	dc := gg.NewContext(size, size)
	defer dc.Close()

	s := float64(size)
	dc.SetColor(fg)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, s-2, s-2)
	dc.Stroke()
	if checked {
		dc.DrawRectangle(4, 4, s-8, s-8)
		dc.Fill()
	}
	_ = dc.FlushGPU()
	return dc.Image()
}
