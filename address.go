package manifoldcube

import "fmt"

// GridCoord is a face-local cell address. (0,0) is the top-left cell as
// seen by an observer facing the sticker's direction.
type GridCoord struct {
	Row, Col int
}

// gridCoord maps a cubie position on the shell face d to its face-local
// grid cell. One fixed affine map per direction; each is a bijection
// from the face's cubie positions onto [0,n-1]^2.
func gridCoord(n int, x, y, z int, d Direction) GridCoord {
	switch d {
	case PosX:
		return GridCoord{Row: n - 1 - y, Col: n - 1 - z}
	case NegX:
		return GridCoord{Row: n - 1 - y, Col: z}
	case PosY:
		return GridCoord{Row: z, Col: x}
	case NegY:
		return GridCoord{Row: n - 1 - z, Col: x}
	case PosZ:
		return GridCoord{Row: n - 1 - y, Col: x}
	default: // NegZ
		return GridCoord{Row: n - 1 - y, Col: n - 1 - x}
	}
}

// locationAt inverts gridCoord: the current location of face d's grid
// cell (row,col).
func locationAt(n int, d Direction, row, col int) Location {
	switch d {
	case PosX:
		return Location{X: n - 1, Y: n - 1 - row, Z: n - 1 - col, Dir: d}
	case NegX:
		return Location{X: 0, Y: n - 1 - row, Z: col, Dir: d}
	case PosY:
		return Location{X: col, Y: n - 1, Z: row, Dir: d}
	case NegY:
		return Location{X: col, Y: 0, Z: n - 1 - row, Dir: d}
	case PosZ:
		return Location{X: col, Y: n - 1 - row, Z: n - 1, Dir: d}
	default: // NegZ
		return Location{X: n - 1 - col, Y: n - 1 - row, Z: 0, Dir: d}
	}
}

// Grid returns the sticker's identity grid cell, computed from its
// immutable original position and direction. It never changes, no matter
// where rotations move the sticker.
func (s *Sticker) Grid(n int) GridCoord {
	return gridCoord(n, s.OrigX, s.OrigY, s.OrigZ, s.OrigDir)
}

// gridID formats the canonical manifold address for a face and cell.
func gridID(n int, f Face, g GridCoord) string {
	return fmt.Sprintf("M%d-%03d", f, g.Row*n+g.Col+1)
}

// GridID returns the sticker's rotation-invariant manifold address,
// e.g. "M3-005". It depends only on identity fields.
func (s *Sticker) GridID(n int) string {
	return gridID(n, s.Original, s.Grid(n))
}

// AntipodalID returns the address of the sticker's topological twin:
// the same grid cell on the involution-paired face.
func (s *Sticker) AntipodalID(n int) string {
	return gridID(n, s.Original.Antipode(), s.Grid(n))
}

// buildIndex rebuilds the manifold index: a bijective map from every
// sticker's grid id to its current location. O(N^3) pass over all
// stickers.
func (c *Cube) buildIndex() {
	idx := make(map[string]Location, 6*c.n*c.n)
	c.ForEachSticker(func(loc Location, s *Sticker) {
		idx[s.GridID(c.n)] = loc
	})
	c.index = idx
	c.indexDirty = false
}

// Resolve looks up a grid id in the manifold index and returns the
// sticker's current location. The index is rebuilt lazily after any
// rotation; flips never move stickers, so they leave it valid.
func (c *Cube) Resolve(id string) (Location, bool) {
	if c.indexDirty || c.index == nil {
		c.buildIndex()
	}
	loc, ok := c.index[id]
	return loc, ok
}
