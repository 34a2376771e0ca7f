package manifoldcube

// Axis identifies the rotation axis of a slice turn.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ

	numAxes = 3
)

// Valid reports whether a is one of the three axes.
func (a Axis) Valid() bool {
	return a < numAxes
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// axisCoord returns the cubie coordinate along the axis.
func axisCoord(a Axis, x, y, z int) int {
	switch a {
	case AxisX:
		return x
	case AxisY:
		return y
	default:
		return z
	}
}

// RotateSlice applies a quarter turn to the slice of cubies whose
// axis-coordinate equals slice. dir is +1 or -1. Cubie coordinates are
// rotated about the slice center in doubled integer coordinates, so the
// result is exact: four applications of the same turn are the identity,
// and +1 followed by -1 is the identity. Each moved cubie's stickers are
// re-keyed by rotating their direction slots with the same turn.
//
// An invalid axis, slice index, or dir is a no-op; RotateSlice reports
// whether the turn was applied.
func (c *Cube) RotateSlice(axis Axis, slice int, dir int) bool {
	if !axis.Valid() || slice < 0 || slice >= c.n || (dir != 1 && dir != -1) {
		return false
	}

	type relocation struct {
		arena   int32
		x, y, z int
	}
	moves := make([]relocation, 0, c.n*c.n)

	// Doubled coordinates center the slice on the cube axis so the
	// quarter turn stays in integers for both even and odd N.
	off := c.n - 1
	for i := range c.cubies {
		cb := &c.cubies[i]
		if axisCoord(axis, cb.X, cb.Y, cb.Z) != slice {
			continue
		}

		tx, ty, tz := 2*cb.X-off, 2*cb.Y-off, 2*cb.Z-off
		tx, ty, tz = rotateVector(tx, ty, tz, axis, dir)
		moves = append(moves, relocation{
			arena: int32(i),
			x:     (tx + off) / 2,
			y:     (ty + off) / 2,
			z:     (tz + off) / 2,
		})

		var rotated [numDirections]*Sticker
		for d, s := range cb.Stickers {
			if s != nil {
				rotated[Direction(d).rotate(axis, dir)] = s
			}
		}
		cb.Stickers = rotated
	}

	// The new positions permute the old ones within the slice, so every
	// slot is rewritten exactly once.
	for _, m := range moves {
		cb := &c.cubies[m.arena]
		cb.X, cb.Y, cb.Z = m.x, m.y, m.z
		c.byPos[c.posIndex(m.x, m.y, m.z)] = m.arena
	}

	c.indexDirty = true
	return true
}
