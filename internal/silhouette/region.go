package silhouette

import (
	"fmt"
	"image"
)

// AlphaBuffer is a width x height grid of alpha samples stored row-major
// with a stride equal to Width.
type AlphaBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewAlphaBuffer allocates a fully transparent buffer.
func NewAlphaBuffer(width, height int) *AlphaBuffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("silhouette: negative buffer size %dx%d", width, height))
	}
	return &AlphaBuffer{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// AlphaFromImage copies the alpha plane of img. The buffer origin is the
// image's Bounds().Min.
func AlphaFromImage(img image.Image) *AlphaBuffer {
	b := img.Bounds()
	buf := NewAlphaBuffer(b.Dx(), b.Dy())
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < buf.Height; y++ {
			off := rgba.PixOffset(b.Min.X, b.Min.Y+y)
			row := buf.Row(y)
			for x := range row {
				row[x] = rgba.Pix[off+x*4+3]
			}
		}
		return buf
	}
	for y := 0; y < buf.Height; y++ {
		row := buf.Row(y)
		for x := range row {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			row[x] = uint8(a >> 8)
		}
	}
	return buf
}

// Row returns the samples of row y.
func (b *AlphaBuffer) Row(y int) []uint8 {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Opaque reports whether the pixel at (x, y) has non-zero alpha.
func (b *AlphaBuffer) Opaque(x, y int) bool {
	return b.Pix[y*b.Width+x] != 0
}

func (b *AlphaBuffer) check() {
	if b.Width < 0 || b.Height < 0 || len(b.Pix) != b.Width*b.Height {
		panic(fmt.Sprintf("silhouette: malformed alpha buffer %dx%d with %d samples", b.Width, b.Height, len(b.Pix)))
	}
}

// Span is one opaque horizontal interval [Left, Right) on Row.
type Span struct {
	Row   int
	Left  int
	Right int
}

// Region is the platform-neutral outline of a window: every opaque pixel of
// the source buffer lies in exactly one span, and nothing else does.
type Region struct {
	Width  int
	Height int
	Spans  []Span
}

// Build scans buf row by row and records its opaque runs. The result only
// depends on buf, so two builds of the same buffer are Equal.
func Build(buf *AlphaBuffer) Region {
	buf.check()
	r := Region{Width: buf.Width, Height: buf.Height}
	for y := 0; y < buf.Height; y++ {
		for run := range Runs(buf.Row(y)) {
			if run.Opaque {
				r.Spans = append(r.Spans, Span{Row: y, Left: run.Left, Right: run.Right})
			}
		}
	}
	return r
}

// Area returns the number of pixels covered by the region.
func (r Region) Area() int {
	n := 0
	for _, s := range r.Spans {
		n += s.Right - s.Left
	}
	return n
}

// Equal reports whether both regions describe the same spans over the same
// bounds.
func (r Region) Equal(o Region) bool {
	if r.Width != o.Width || r.Height != o.Height || len(r.Spans) != len(o.Spans) {
		return false
	}
	for i := range r.Spans {
		if r.Spans[i] != o.Spans[i] {
			return false
		}
	}
	return true
}

// Full returns a region covering the whole width x height rectangle.
func Full(width, height int) Region {
	r := Region{Width: width, Height: height}
	if width == 0 {
		return r
	}
	r.Spans = make([]Span, height)
	for y := range r.Spans {
		r.Spans[y] = Span{Row: y, Left: 0, Right: width}
	}
	return r
}

// Mask rebuilds an alpha buffer from the region, 255 inside and 0 outside.
func (r Region) Mask() *AlphaBuffer {
	buf := NewAlphaBuffer(r.Width, r.Height)
	for _, s := range r.Spans {
		row := buf.Row(s.Row)
		for x := s.Left; x < s.Right; x++ {
			row[x] = 0xff
		}
	}
	return buf
}

// Rects merges spans with identical bounds on consecutive rows into taller
// rectangles. The union of the rectangles equals the union of the spans.
func (r Region) Rects() []image.Rectangle {
	var (
		rects []image.Rectangle
		// open rectangles that reached the previous row, keyed by column range
		open = map[[2]int]int{}
		next = map[[2]int]int{}
	)
	row := -1
	for _, s := range r.Spans {
		if s.Row != row {
			if s.Row != row+1 {
				clear(next)
			}
			open, next = next, open
			clear(next)
			row = s.Row
		}
		key := [2]int{s.Left, s.Right}
		if i, ok := open[key]; ok {
			rects[i].Max.Y = s.Row + 1
			next[key] = i
			continue
		}
		rects = append(rects, image.Rect(s.Left, s.Row, s.Right, s.Row+1))
		next[key] = len(rects) - 1
	}
	return rects
}
