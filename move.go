package manifoldcube

import (
	"strconv"
	"strings"
)

// Move represents a single slice turn: an axis, a slice index along that
// axis, and a direction (+1 or -1).
type Move struct {
	Axis  Axis
	Slice int
	Dir   int
}

// Notation returns the move's notation string: the axis letter, the
// slice index, and a trailing apostrophe for counter-clockwise turns.
// Examples: X0, Y2, Z1'
func (m Move) Notation() string {
	suffix := ""
	if m.Dir < 0 {
		suffix = "'"
	}
	return m.Axis.String() + strconv.Itoa(m.Slice) + suffix
}

// Inverse returns the move that undoes this one.
func (m Move) Inverse() Move {
	m.Dir = -m.Dir
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a notation string into a Move.
// Examples: X0, Y2, Z1'
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Move{}, ErrInvalidNotation
	}

	var axis Axis
	switch s[0] {
	case 'X', 'x':
		axis = AxisX
	case 'Y', 'y':
		axis = AxisY
	case 'Z', 'z':
		axis = AxisZ
	default:
		return Move{}, ErrInvalidNotation
	}

	dir := 1
	rest := s[1:]
	if strings.HasSuffix(rest, "'") || strings.HasSuffix(rest, "`") {
		dir = -1
		rest = rest[:len(rest)-1]
	}

	slice, err := strconv.Atoi(rest)
	if err != nil || slice < 0 {
		return Move{}, ErrInvalidNotation
	}

	return Move{Axis: axis, Slice: slice, Dir: dir}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "X0 Y2' Z1"
// Invalid tokens are skipped.
func ParseMoves(s string) []Move {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			continue
		}
		moves = append(moves, move)
	}

	return moves
}

// FormatMoves formats a slice of moves as a space-separated notation
// string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// Apply performs the move on the cube and reports whether it was
// applied. Out-of-range moves are no-ops.
func (c *Cube) Apply(m Move) bool {
	return c.RotateSlice(m.Axis, m.Slice, m.Dir)
}

// ApplyMoves applies a sequence of moves and returns how many were
// applied.
func (c *Cube) ApplyMoves(moves []Move) int {
	applied := 0
	for _, m := range moves {
		if c.Apply(m) {
			applied++
		}
	}
	return applied
}
