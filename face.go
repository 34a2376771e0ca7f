package manifoldcube

// Face represents one of the six sticker colors.
// Faces are paired by a fixed involution with no fixed points:
// 1<->4, 2<->5, 3<->6. The pairing is constant data and never changes.
type Face uint8

const (
	Red    Face = 1 // +X when solved
	White  Face = 2 // +Y when solved
	Blue   Face = 3 // +Z when solved
	Orange Face = 4 // -X when solved, antipode of Red
	Yellow Face = 5 // -Y when solved, antipode of White
	Green  Face = 6 // -Z when solved, antipode of Blue
)

// Antipode returns the face paired with f by the fixed involution.
// Antipode is its own inverse: f.Antipode().Antipode() == f.
func (f Face) Antipode() Face {
	return (f+2)%6 + 1
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= 1 && f <= 6
}

func (f Face) String() string {
	switch f {
	case Red:
		return "R"
	case White:
		return "W"
	case Blue:
		return "B"
	case Orange:
		return "O"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	default:
		return "?"
	}
}

// Direction is one of the six outward unit normals a sticker can face.
// Opposite directions differ in the low bit, so d^1 is always d.Opposite().
type Direction uint8

const (
	PosX Direction = 0
	NegX Direction = 1
	PosY Direction = 2
	NegY Direction = 3
	PosZ Direction = 4
	NegZ Direction = 5

	numDirections = 6
)

// Directions lists all six directions in canonical order.
var Directions = [numDirections]Direction{PosX, NegX, PosY, NegY, PosZ, NegZ}

// Vector returns the unit vector for the direction.
func (d Direction) Vector() (x, y, z int) {
	switch d {
	case PosX:
		return 1, 0, 0
	case NegX:
		return -1, 0, 0
	case PosY:
		return 0, 1, 0
	case NegY:
		return 0, -1, 0
	case PosZ:
		return 0, 0, 1
	case NegZ:
		return 0, 0, -1
	default:
		return 0, 0, 0
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d < numDirections
}

func (d Direction) String() string {
	switch d {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return "??"
	}
}

// solvedFace returns the color a sticker facing d carries on a freshly
// built cube. Opposite directions get antipodal colors, which is what
// makes the antipodal pairing line up with opposite physical faces.
func solvedFace(d Direction) Face {
	switch d {
	case PosX:
		return Red
	case NegX:
		return Orange
	case PosY:
		return White
	case NegY:
		return Yellow
	case PosZ:
		return Blue
	case NegZ:
		return Green
	default:
		return Red
	}
}

// directionFromVector maps a unit vector back to its Direction.
func directionFromVector(x, y, z int) Direction {
	switch {
	case x == 1:
		return PosX
	case x == -1:
		return NegX
	case y == 1:
		return PosY
	case y == -1:
		return NegY
	case z == 1:
		return PosZ
	default:
		return NegZ
	}
}

// rotateVector applies a quarter turn about the given axis to an integer
// vector. dir is +1 or -1. Each rotation is a swap-and-negate, so four
// applications are the exact identity and +1 undoes -1.
func rotateVector(x, y, z int, axis Axis, dir int) (int, int, int) {
	switch axis {
	case AxisX:
		return x, -dir * z, dir * y
	case AxisY:
		return dir * z, y, -dir * x
	case AxisZ:
		return -dir * y, dir * x, z
	default:
		return x, y, z
	}
}

// rotate returns the direction after a quarter turn about axis.
func (d Direction) rotate(axis Axis, dir int) Direction {
	x, y, z := d.Vector()
	return directionFromVector(rotateVector(x, y, z, axis, dir))
}
