// Package rng provides a deterministic random source for the engine.
// Every probabilistic call in the engine takes an explicit *RNG so that
// simulations are reproducible from a seed.
package rng

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for
// deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a random float64 in [0,1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// IntN returns a random int in [0,n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Uint64N returns a random uint64 in [0,n).
func (r *RNG) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return r.r.Uint64N(n)
}

// Perm returns a random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	return r.r.Perm(n)
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
