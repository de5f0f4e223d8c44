package compositor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Miyukiichan/lofi-buddy/internal/assets"
	"github.com/Miyukiichan/lofi-buddy/internal/entity"
	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderAlphaPlane(t *testing.T) {
	cache := assets.NewCache()
	block := cache.Insert("block", solid(2, 2, color.NRGBA{G: 255, A: 255}))

	// a texture with a transparent hole in its middle column
	holed := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	holed.Set(0, 0, color.NRGBA{A: 10})
	holed.Set(2, 0, color.NRGBA{A: 10})
	hole := cache.Insert("hole", holed)

	c := New(cache, 6, 3)
	buf, err := c.Render([]entity.Sprite{
		{Name: "block", Texture: block, X: 0, Y: 0, W: 2, H: 2},
		{Name: "hole", Texture: hole, X: 3, Y: 2, W: 3, H: 1, Label: "ignored"},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := silhouette.Build(buf).Spans
	want := []silhouette.Span{
		{Row: 0, Left: 0, Right: 2},
		{Row: 1, Left: 0, Right: 2},
		{Row: 2, Left: 3, Right: 4},
		{Row: 2, Left: 5, Right: 6},
	}
	if len(got) != len(want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("spans = %v, want %v", got, want)
		}
	}
}

func TestRenderClearsBetweenFrames(t *testing.T) {
	cache := assets.NewCache()
	h := cache.Insert("dot", solid(1, 1, color.White))
	c := New(cache, 4, 4)

	if _, err := c.Render([]entity.Sprite{{Texture: h, X: 1, Y: 1}}); err != nil {
		t.Fatal(err)
	}
	buf, err := c.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if silhouette.Build(buf).Area() != 0 {
		t.Fatal("previous frame leaked into the next one")
	}
}

func TestRenderScalesWithoutSoftEdges(t *testing.T) {
	cache := assets.NewCache()
	h := cache.Insert("dot", solid(1, 1, color.NRGBA{B: 255, A: 255}))
	c := New(cache, 8, 8)

	buf, err := c.Render([]entity.Sprite{{Texture: h, X: 2, Y: 2, W: 4, H: 3}})
	if err != nil {
		t.Fatal(err)
	}
	r := silhouette.Build(buf)
	if r.Area() != 12 {
		t.Fatalf("scaled area = %d, want 12", r.Area())
	}
	for _, s := range r.Spans {
		if s.Left != 2 || s.Right != 6 {
			t.Fatalf("unexpected span %+v", s)
		}
	}
}

func TestRenderUnknownTexture(t *testing.T) {
	c := New(assets.NewCache(), 2, 2)
	_, err := c.Render([]entity.Sprite{{Name: "ghost", Texture: 9}})
	if !errors.Is(err, assets.ErrUnknownHandle) {
		t.Fatalf("err = %v", err)
	}
}
