// Package silhouette turns an alpha plane into the outline of a shaped window.
package silhouette

import "iter"

// Run is a half-open interval [Left, Right) on a single row.
type Run struct {
	Left   int
	Right  int
	Opaque bool
}

// Len returns the number of pixels covered by the run.
func (r Run) Len() int { return r.Right - r.Left }

// Runs walks one row of alpha samples left to right and yields maximal runs
// of equal opacity. A sample is transparent iff it is zero. The runs cover
// [0, len(row)) exactly; an empty row yields nothing.
func Runs(row []uint8) iter.Seq[Run] {
	return func(yield func(Run) bool) {
		if len(row) == 0 {
			return
		}
		start := 0
		opaque := row[0] != 0
		for x := 1; x < len(row); x++ {
			if (row[x] != 0) == opaque {
				continue
			}
			if !yield(Run{Left: start, Right: x, Opaque: opaque}) {
				return
			}
			start = x
			opaque = !opaque
		}
		// close whatever is still open at the row end
		yield(Run{Left: start, Right: len(row), Opaque: opaque})
	}
}
