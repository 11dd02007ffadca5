// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of the audit tool.
type Config struct {
	BaseURL   string        `env:"THRONES_API_BASE_URL"     envDefault:"https://thronesapi.com/api/v2"`
	Timeout   time.Duration `env:"THRONES_HTTP_TIMEOUT"     envDefault:"10s"`
	Threshold float64       `env:"THRONES_FAMILY_THRESHOLD" envDefault:"0.8"`
	LogJSON   bool          `env:"THRONES_LOG_JSON"         envDefault:"false"`
	LogFile   string        `env:"THRONES_LOG_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.New("threshold must be between 0 and 1")
	}
	return nil
}
