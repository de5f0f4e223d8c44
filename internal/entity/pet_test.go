package entity

import "testing"

func TestPetHitTopmost(t *testing.T) {
	p := NewPet(100, 100)
	p.Add(SetAlways, Sprite{Name: "desk", X: 0, Y: 50, W: 100, H: 50})
	p.Add(SetAlways, Sprite{Name: "head", X: 60, Y: 40, W: 32, H: 32})
	p.Add(SetMenuButtons, Sprite{Name: "quit", X: 0, Y: 0, W: 40, H: 20})

	tests := []struct {
		x, y int
		sets []SetName
		want string
	}{
		{70, 60, []SetName{SetAlways}, "head"},
		{10, 60, []SetName{SetAlways}, "desk"},
		{10, 10, []SetName{SetAlways}, ""},
		{10, 10, []SetName{SetAlways, SetMenuButtons}, "quit"},
		// right and bottom edges are exclusive
		{92, 45, []SetName{SetAlways}, ""},
	}
	for _, tt := range tests {
		s, ok := p.Hit(tt.x, tt.y, tt.sets...)
		if tt.want == "" {
			if ok {
				t.Errorf("Hit(%d,%d) = %q, want miss", tt.x, tt.y, s.Name)
			}
			continue
		}
		if !ok || s.Name != tt.want {
			t.Errorf("Hit(%d,%d) = %q/%v, want %q", tt.x, tt.y, s.Name, ok, tt.want)
		}
	}
}

func TestPetVisibleOrder(t *testing.T) {
	p := NewPet(10, 10)
	p.Add(SetMenuOverlay, Sprite{Name: "backdrop"})
	p.Add(SetAlways, Sprite{Name: "desk"})
	p.Add(SetAlways, Sprite{Name: "head"})

	got := p.Visible(SetAlways, SetMenuOverlay)
	names := []string{}
	for _, s := range got {
		names = append(names, s.Name)
	}
	want := []string{"desk", "head", "backdrop"}
	if len(names) != len(want) {
		t.Fatalf("Visible = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Visible = %v, want %v", names, want)
		}
	}
}
