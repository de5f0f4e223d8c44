package silhouette

import (
	"math/rand"
	"slices"
	"testing"
)

func collect(row []uint8) []Run {
	return slices.Collect(Runs(row))
}

func TestRunsExample(t *testing.T) {
	got := collect([]uint8{0, 0, 0, 5, 5, 0, 0})
	want := []Run{
		{Left: 0, Right: 3, Opaque: false},
		{Left: 3, Right: 5, Opaque: true},
		{Left: 5, Right: 7, Opaque: false},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Runs = %v, want %v", got, want)
	}
}

func TestRunsEdges(t *testing.T) {
	tests := []struct {
		name string
		row  []uint8
		want []Run
	}{
		{"empty", nil, nil},
		{"single transparent", []uint8{0}, []Run{{0, 1, false}}},
		{"single opaque", []uint8{1}, []Run{{0, 1, true}}},
		{"all transparent", []uint8{0, 0, 0, 0}, []Run{{0, 4, false}}},
		{"all opaque", []uint8{9, 255, 1}, []Run{{0, 3, true}}},
		{"trailing transparent", []uint8{7, 0, 0}, []Run{{0, 1, true}, {1, 3, false}}},
		{"alternating", []uint8{1, 0, 1, 0}, []Run{{0, 1, true}, {1, 2, false}, {2, 3, true}, {3, 4, false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(tt.row); !slices.Equal(got, tt.want) {
				t.Fatalf("Runs(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestRunsStopEarly(t *testing.T) {
	n := 0
	for range Runs([]uint8{1, 0, 1, 0, 1}) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("iterated %d runs, want 2", n)
	}
}

func TestRunsPartitionRandomRows(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		row := make([]uint8, rng.Intn(64))
		for x := range row {
			// bias towards zero so transparent runs actually occur
			if rng.Intn(3) > 0 {
				row[x] = uint8(rng.Intn(256))
			}
		}
		runs := collect(row)

		next := 0
		rebuilt := make([]bool, 0, len(row))
		for j, r := range runs {
			if r.Left != next || r.Right <= r.Left {
				t.Fatalf("row %v: run %d = %+v does not continue at %d", row, j, r, next)
			}
			if j > 0 && runs[j-1].Opaque == r.Opaque {
				t.Fatalf("row %v: runs %d and %d share a tag", row, j-1, j)
			}
			for x := r.Left; x < r.Right; x++ {
				rebuilt = append(rebuilt, r.Opaque)
			}
			next = r.Right
		}
		if next != len(row) {
			t.Fatalf("row %v: runs end at %d, want %d", row, next, len(row))
		}
		for x, opaque := range rebuilt {
			if opaque != (row[x] != 0) {
				t.Fatalf("row %v: pixel %d rebuilt as opaque=%v", row, x, opaque)
			}
		}
	}
}
