// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the engine and recording defaults. Every field can be
// overridden by a MANIFOLD_* environment variable; flags take precedence
// over both.
type Config struct {
	DBPath           string        `env:"MANIFOLD_DB"`
	Size             int           `env:"MANIFOLD_SIZE"              envDefault:"3"`
	ChaosLevel       int           `env:"MANIFOLD_CHAOS_LEVEL"       envDefault:"2"`
	Seed             int64         `env:"MANIFOLD_SEED"              envDefault:"0"`
	RefractoryWindow time.Duration `env:"MANIFOLD_REFRACTORY_WINDOW" envDefault:"7s"`
}

// Load returns configuration parsed from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Size < 2 {
		return Config{}, fmt.Errorf("invalid cube size %d: must be at least 2", cfg.Size)
	}
	if cfg.ChaosLevel < 1 || cfg.ChaosLevel > 4 {
		return Config{}, fmt.Errorf("invalid chaos level %d: must be between 1 and 4", cfg.ChaosLevel)
	}
	return cfg, nil
}
