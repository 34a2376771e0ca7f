package manifoldcube

import "time"

// Option configures Game behavior.
type Option func(*gameConfig)

type gameConfig struct {
	size             int
	seed             int64
	seedSet          bool
	chaosLevel       ChaosLevel
	refractoryWindow time.Duration
}

func defaultGameConfig() *gameConfig {
	return &gameConfig{
		size:             3,
		chaosLevel:       ChaosUneasy,
		refractoryWindow: DefaultRefractoryWindow,
	}
}

// WithSize sets the cube size N. The default is 3.
func WithSize(n int) Option {
	return func(c *gameConfig) {
		c.size = n
	}
}

// WithSeed fixes the RNG seed so the whole game (scrambles and chaos)
// is reproducible. Without it the seed is taken from the wall clock.
func WithSeed(seed int64) Option {
	return func(c *gameConfig) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithChaosLevel sets the cascade aggressiveness used when chaos mode
// is enabled. The default is ChaosUneasy.
func WithChaosLevel(level ChaosLevel) Option {
	return func(c *gameConfig) {
		c.chaosLevel = level
	}
}

// WithRefractoryWindow overrides the per-sticker flip cooldown window.
func WithRefractoryWindow(window time.Duration) Option {
	return func(c *gameConfig) {
		c.refractoryWindow = window
	}
}
