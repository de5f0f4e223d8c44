package ascii

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/Miyukiichan/lofi-buddy/internal/silhouette"
)

func TestMaskFullResolution(t *testing.T) {
	buf := &silhouette.AlphaBuffer{Width: 4, Height: 2, Pix: []uint8{
		0, 255, 255, 0,
		0, 0, 0, 1,
	}}
	// a target as wide as the image keeps every column but every other row
	got := Mask(buf, 4)
	want := []string{".##."}
	if !slices.Equal(got, want) {
		t.Fatalf("Mask = %q, want %q", got, want)
	}
}

func TestMaskDownsamples(t *testing.T) {
	buf := silhouette.NewAlphaBuffer(8, 8)
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			buf.Pix[y*8+x] = 255
		}
	}
	got := Mask(buf, 4)
	if len(got) != 2 {
		t.Fatalf("%d rows, want 2", len(got))
	}
	for _, line := range got {
		if line != "..##" {
			t.Fatalf("row %q, want ..##", line)
		}
	}
}

func TestRegionMatchesMask(t *testing.T) {
	buf := silhouette.NewAlphaBuffer(6, 4)
	buf.Pix[0], buf.Pix[13], buf.Pix[23] = 9, 200, 255
	if !slices.Equal(Region(silhouette.Build(buf), 6), Mask(buf, 6)) {
		t.Fatal("region drawing differs from the buffer it was built from")
	}
}

func TestConvertShades(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{255, 255, 255, 255})
	// pixel 2 stays transparent

	got := Convert(img, 3)
	if len(got) != 1 || got[0] != "@  " {
		t.Fatalf("Convert = %q", got)
	}
}

func TestConvertHonoursBoundsOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.NRGBA{0, 0, 0, 255})
	got := Convert(img, 2)
	if len(got) != 1 || got[0] != "@ " {
		t.Fatalf("Convert = %q", got)
	}
}
