package manifoldcube

import "strings"

// Sticker is a colored tile on the cube's outer shell. Current mutates
// when the sticker is flipped; everything else is fixed at creation.
// OrigX/OrigY/OrigZ and OrigDir are the sticker's permanent identity,
// independent of where rotations later move it.
type Sticker struct {
	Current   Face
	Original  Face
	FlipCount uint32

	OrigX, OrigY, OrigZ int
	OrigDir             Direction
}

// Cubie is one unit cell of the cube. Its position mutates under slice
// rotations. Shell cubies carry 1-3 stickers in fixed direction slots;
// interior cubies carry none.
type Cubie struct {
	X, Y, Z int

	// Stickers is indexed by the sticker's current Direction.
	Stickers [numDirections]*Sticker
}

// Location addresses a sticker by its current cubie position and the
// direction it currently faces.
type Location struct {
	X, Y, Z int
	Dir     Direction
}

// Cube is an N×N×N cube of cubies. Cubies live in a flat arena and are
// found through a position-indexed lookup table, so rotations relocate
// cubies without reallocating them and sticker pointers stay stable for
// the lifetime of the cube.
type Cube struct {
	n      int
	cubies []Cubie
	byPos  []int32 // position index -> arena index

	index      map[string]Location
	indexDirty bool
}

// NewCube builds a solved cube of the given size. Every shell cubie face
// gets a sticker whose Original color is fixed by its outward direction.
func NewCube(n int) (*Cube, error) {
	if n < 2 {
		return nil, ErrInvalidSize
	}

	c := &Cube{
		n:          n,
		cubies:     make([]Cubie, n*n*n),
		byPos:      make([]int32, n*n*n),
		indexDirty: true,
	}

	i := 0
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				cb := &c.cubies[i]
				cb.X, cb.Y, cb.Z = x, y, z
				c.byPos[c.posIndex(x, y, z)] = int32(i)

				for _, d := range Directions {
					if !c.onShellFace(x, y, z, d) {
						continue
					}
					f := solvedFace(d)
					cb.Stickers[d] = &Sticker{
						Current:  f,
						Original: f,
						OrigX:    x,
						OrigY:    y,
						OrigZ:    z,
						OrigDir:  d,
					}
				}
				i++
			}
		}
	}

	return c, nil
}

// Size returns N.
func (c *Cube) Size() int {
	return c.n
}

func (c *Cube) posIndex(x, y, z int) int {
	return (x*c.n+y)*c.n + z
}

func (c *Cube) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.n && y >= 0 && y < c.n && z >= 0 && z < c.n
}

// onShellFace reports whether a cubie at (x,y,z) has an outer face in
// direction d, i.e. whether stepping along d leaves the cube.
func (c *Cube) onShellFace(x, y, z int, d Direction) bool {
	dx, dy, dz := d.Vector()
	return !c.inBounds(x+dx, y+dy, z+dz)
}

// At returns the cubie at (x,y,z), or nil when out of bounds.
func (c *Cube) At(x, y, z int) *Cubie {
	if !c.inBounds(x, y, z) {
		return nil
	}
	return &c.cubies[c.byPos[c.posIndex(x, y, z)]]
}

// StickerAt returns the sticker at the given current location, or nil
// when the location is out of bounds or holds no sticker.
func (c *Cube) StickerAt(loc Location) *Sticker {
	if !loc.Dir.Valid() {
		return nil
	}
	cb := c.At(loc.X, loc.Y, loc.Z)
	if cb == nil {
		return nil
	}
	return cb.Stickers[loc.Dir]
}

// ForEachSticker calls fn for every sticker, in a fixed order
// (ascending x, y, z, then direction). The fixed order keeps anything
// driven by a seeded RNG reproducible.
func (c *Cube) ForEachSticker(fn func(Location, *Sticker)) {
	for x := 0; x < c.n; x++ {
		for y := 0; y < c.n; y++ {
			for z := 0; z < c.n; z++ {
				cb := &c.cubies[c.byPos[c.posIndex(x, y, z)]]
				for _, d := range Directions {
					if s := cb.Stickers[d]; s != nil {
						fn(Location{X: x, Y: y, Z: z, Dir: d}, s)
					}
				}
			}
		}
	}
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := &Cube{
		n:          c.n,
		cubies:     make([]Cubie, len(c.cubies)),
		byPos:      make([]int32, len(c.byPos)),
		indexDirty: true,
	}
	copy(clone.byPos, c.byPos)
	for i := range c.cubies {
		src := &c.cubies[i]
		dst := &clone.cubies[i]
		dst.X, dst.Y, dst.Z = src.X, src.Y, src.Z
		for d, s := range src.Stickers {
			if s != nil {
				cp := *s
				dst.Stickers[d] = &cp
			}
		}
	}
	return clone
}

// faceColor returns the current color of the face-grid cell (row,col) as
// seen from direction d, or 0 when the cell holds no sticker.
func (c *Cube) faceColor(d Direction, row, col int) Face {
	s := c.StickerAt(locationAt(c.n, d, row, col))
	if s == nil {
		return 0
	}
	return s.Current
}

// String renders the cube as an unfolded net: +Y on top, then the
// -X/+Z/+X/-Z band, then -Y.
func (c *Cube) String() string {
	var b strings.Builder
	pad := strings.Repeat(" ", 2*c.n)

	for row := 0; row < c.n; row++ {
		b.WriteString(pad)
		for col := 0; col < c.n; col++ {
			b.WriteString(c.faceColor(PosY, row, col).String() + " ")
		}
		b.WriteByte('\n')
	}

	for row := 0; row < c.n; row++ {
		for _, d := range []Direction{NegX, PosZ, PosX, NegZ} {
			for col := 0; col < c.n; col++ {
				b.WriteString(c.faceColor(d, row, col).String() + " ")
			}
		}
		b.WriteByte('\n')
	}

	for row := 0; row < c.n; row++ {
		b.WriteString(pad)
		for col := 0; col < c.n; col++ {
			b.WriteString(c.faceColor(NegY, row, col).String() + " ")
		}
		b.WriteByte('\n')
	}

	return b.String()
}
