package manifoldcube

// WinState holds the independent solved-state predicates. Ultimate is
// the conjunction of the other two.
type WinState struct {
	Classic  bool
	Sudokube bool
	Ultimate bool
}

// Win evaluates every solved-state predicate. It is a pure read of the
// cube and may be called after any mutation.
func (c *Cube) Win() WinState {
	w := WinState{
		Classic:  c.classicSolved(),
		Sudokube: c.sudokubeSolved(),
	}
	w.Ultimate = w.Classic && w.Sudokube
	return w
}

// classicSolved checks that every physical face is monochrome in its
// current colors and that the six face colors form a permutation of the
// six faces.
func (c *Cube) classicSolved() bool {
	var seen [7]bool
	for _, d := range Directions {
		first := c.faceColor(d, 0, 0)
		if !first.Valid() || seen[first] {
			return false
		}
		seen[first] = true
		for row := 0; row < c.n; row++ {
			for col := 0; col < c.n; col++ {
				if c.faceColor(d, row, col) != first {
					return false
				}
			}
		}
	}
	return true
}

// OverlayValue is the sticker's secondary numeric label in 1..N, used by
// the sudokube predicate. It is fixed by the sticker's identity grid
// cell: (row+col) mod N + 1.
func (s *Sticker) OverlayValue(n int) int {
	g := s.Grid(n)
	return (g.Row+g.Col)%n + 1
}

// sudokubeSolved checks that on every face, the stickers' overlay values
// laid out at their current grid cells form a Latin square: each row and
// each column of the face contains every value in 1..N exactly once.
// A freshly built cube satisfies this by construction, since the solved
// layout puts value (row+col) mod N + 1 at cell (row,col).
func (c *Cube) sudokubeSolved() bool {
	for _, d := range Directions {
		for i := 0; i < c.n; i++ {
			rowSeen := make([]bool, c.n+1)
			colSeen := make([]bool, c.n+1)
			for j := 0; j < c.n; j++ {
				rv, ok := c.overlayAt(d, i, j)
				if !ok || rv < 1 || rv > c.n || rowSeen[rv] {
					return false
				}
				rowSeen[rv] = true

				cv, ok := c.overlayAt(d, j, i)
				if !ok || cv < 1 || cv > c.n || colSeen[cv] {
					return false
				}
				colSeen[cv] = true
			}
		}
	}
	return true
}

// overlayAt returns the overlay value of the sticker currently sitting
// at face d's grid cell (row,col).
func (c *Cube) overlayAt(d Direction, row, col int) (int, bool) {
	s := c.StickerAt(locationAt(c.n, d, row, col))
	if s == nil {
		return 0, false
	}
	return s.OverlayValue(c.n), true
}
