package manifoldcube

import "github.com/hexwild/manifoldcube/pkg/rng"

// Scramble applies count random slice turns drawn from r and returns
// the moves that were applied. Consecutive moves never undo each other
// directly. Callers should clear the refractory table alongside a
// scramble, the same as for a reset.
func (c *Cube) Scramble(r *rng.RNG, count int) []Move {
	moves := make([]Move, 0, count)
	var last Move

	for len(moves) < count {
		m := Move{
			Axis:  Axis(r.IntN(numAxes)),
			Slice: r.IntN(c.n),
			Dir:   1 - 2*r.IntN(2),
		}
		if len(moves) > 0 && m == last.Inverse() {
			continue
		}
		c.Apply(m)
		moves = append(moves, m)
		last = m
	}

	return moves
}
