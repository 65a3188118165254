// Package config loads the server configuration from the environment.
package config

import (
	"fmt"

	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/caarlos0/env/v11"
)

// Config is shared by the serve and mcp commands. Command-line flags, when set,
// take precedence over these values.
type Config struct {
	Addr        string   `env:"RULEGEN_ADDR" envDefault:":8080"`
	Packs       []string `env:"RULEGEN_PACKS" envSeparator:","`
	RedisAddr   string   `env:"RULEGEN_REDIS_ADDR"`
	RedisPrefix string   `env:"RULEGEN_REDIS_PREFIX" envDefault:"rulegen:pack:"`
	LoamDir     string   `env:"RULEGEN_LOAM_DIR"`
	LogLevel    string   `env:"RULEGEN_LOG_LEVEL" envDefault:"info"`
	MaxDepth    int      `env:"RULEGEN_MAX_DEPTH" envDefault:"10"`

	// MaxInputSize bounds each variable name and value accepted over HTTP.
	MaxInputSize int `env:"RULEGEN_MAX_INPUT_SIZE" envDefault:"4096"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxDepth < 0 {
		return Config{}, fmt.Errorf("%w: RULEGEN_MAX_DEPTH must be >= 0, got %d", domain.ErrInvalidArgument, cfg.MaxDepth)
	}
	return cfg, nil
}
