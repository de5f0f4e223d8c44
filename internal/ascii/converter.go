// Package ascii prints images and silhouettes as text, for checking sprite
// artwork from a terminal.
package ascii

import (
	"image"
	"image/color"
	"strings"

	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

// Brightness ramp, dark to light. Fully transparent pixels print as the
// last (blank) character.
const asciiChars = "@%#*+=-:. "

// Mask characters for opaque and transparent pixels.
const (
	opaqueChar      = '#'
	transparentChar = '.'
)

// steps returns the sampling stride for a targetWidth columns wide picture.
// Terminal cells are about twice as tall as wide, so rows are sampled twice
// as sparsely.
func steps(width, targetWidth int) (stepX, stepY int) {
	stepX = 1
	if targetWidth > 0 {
		stepX = width / targetWidth
	}
	if stepX < 1 {
		stepX = 1
	}
	return stepX, stepX * 2
}

// Convert shades img with the brightness ramp, about targetWidth columns wide.
func Convert(img image.Image, targetWidth int) []string {
	b := img.Bounds()
	stepX, stepY := steps(b.Dx(), targetWidth)

	var result []string
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x += stepX {
			line.WriteByte(pixelToASCII(img.At(x, y)))
		}
		result = append(result, line.String())
	}
	return result
}

func pixelToASCII(c color.Color) byte {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return asciiChars[len(asciiChars)-1]
	}
	gray := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)

	idx := int(gray / 255 * float64(len(asciiChars)-1))
	if idx >= len(asciiChars) {
		idx = len(asciiChars) - 1
	}
	return asciiChars[idx]
}

// Mask draws the opaque area of buf, about targetWidth columns wide. A cell
// is opaque when its sampled pixel is.
func Mask(buf *silhouette.AlphaBuffer, targetWidth int) []string {
	stepX, stepY := steps(buf.Width, targetWidth)

	var result []string
	for y := 0; y < buf.Height; y += stepY {
		line := make([]byte, 0, buf.Width/stepX+1)
		for x := 0; x < buf.Width; x += stepX {
			if buf.Opaque(x, y) {
				line = append(line, opaqueChar)
			} else {
				line = append(line, transparentChar)
			}
		}
		result = append(result, string(line))
	}
	return result
}

// Region draws a region the same way Mask draws a buffer.
func Region(r silhouette.Region, targetWidth int) []string {
	return Mask(r.Mask(), targetWidth)
}
