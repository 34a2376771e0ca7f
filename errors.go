package manifoldcube

import "errors"

// Sentinel errors for the manifoldcube package.
var (
	// ErrInvalidSize is returned when building a cube smaller than 2x2x2.
	ErrInvalidSize = errors.New("manifoldcube: cube size must be at least 2")

	// ErrInvalidNotation is returned when parsing a malformed slice move.
	ErrInvalidNotation = errors.New("manifoldcube: invalid move notation")

	// ErrInvalidChaosLevel is returned when a chaos level is outside 1..4.
	ErrInvalidChaosLevel = errors.New("manifoldcube: chaos level must be 1-4")
)
