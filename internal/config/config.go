// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// #region config
// Config carries the settings shared by the cmds. The constraint table is
// compile-time fixed; only thresholds and paths are configurable.
type Config struct {
	DBPath        string  `env:"MANIFOLD_DB" envDefault:"trajectories.db"`
	Strategy      string  `env:"MANIFOLD_STRATEGY" envDefault:"balanced"`
	MaxIterations int     `env:"MANIFOLD_MAX_ITERATIONS" envDefault:"100"`
	Eps           float64 `env:"DISCOVERY_EPS" envDefault:"0.3"`
	MinSamples    int     `env:"DISCOVERY_MIN_SAMPLES" envDefault:"5"`
	HighBand      float64 `env:"CLASSIFY_HIGH_BAND" envDefault:"0.7"`
	MidBand       float64 `env:"CLASSIFY_MID_BAND" envDefault:"0.4"`
	Debug         bool    `env:"MANIFOLD_DEBUG" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// #endregion config
