// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all process-wide configuration. It is populated once at
// startup and treated as read-only afterwards.
type Config struct {
	Port int `env:"PORT" envDefault:"8000"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Token signing secret. Required; the server refuses to start without it.
	TokenSecret string        `env:"ACCESS_TOKEN_SECRET,required,unset"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// Comma-separated origins allowed by CORS.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses environment variables and returns a Config.
// Returns an error if a required variable is missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
