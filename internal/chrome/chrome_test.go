package chrome

import (
	"image/color"
	"testing"
)

func alphaAt(t *testing.T, img interface {
	At(x, y int) color.Color
}, x, y int) uint32 {
	t.Helper()
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestPanelCornersAreTransparent(t *testing.T) {
	img := Panel(60, 40, 12, color.NRGBA{R: 30, G: 30, B: 40, A: 255}, color.White)
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("bounds = %v", b)
	}
	if a := alphaAt(t, img, 0, 0); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if a := alphaAt(t, img, 59, 39); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
	if a := alphaAt(t, img, 30, 20); a == 0 {
		t.Error("centre is transparent")
	}
}

func TestCheckbox(t *testing.T) {
	on := Checkbox(16, true, color.White)
	off := Checkbox(16, false, color.White)
	if alphaAt(t, on, 8, 8) == 0 {
		t.Error("checked box has an empty centre")
	}
	if alphaAt(t, off, 8, 8) != 0 {
		t.Error("unchecked box has a filled centre")
	}
}
