package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment. DBPath falls back to the
// storage default when unset.
type Config struct {
	DBPath       string `env:"FOCUSDEN_DB"`
	UserID       string `env:"FOCUSDEN_USER" envDefault:"main"`
	HistoryLimit int    `env:"FOCUSDEN_HISTORY_LIMIT" envDefault:"20"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
