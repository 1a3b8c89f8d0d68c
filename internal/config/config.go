// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store backends selectable at startup.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// devSecret is the development-only signing secret fallback. Production
// startup fails instead of using it.
const devSecret = "dev-secret"

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Storage backend: memory or postgres
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// Cache (Redis); empty disables caching
	RedisURL string `env:"REDIS_URL"`

	// Token signing. JWTExpires accepts "1h"/"7d"-style expressions or a
	// bare count of seconds; it is normalized once at startup.
	JWTSecret  string `env:"JWT_SECRET"`
	JWTExpires string `env:"JWT_EXPIRES"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SigningSecret returns the configured signing secret, falling back to the
// development secret only outside production. Load rejects that combination
// in production, so the fallback can never reach a production process.
func (c *Config) SigningSecret() string {
	if c.JWTSecret != "" {
		return c.JWTSecret
	}
	return devSecret
}

// UsingDevSecret reports whether the development fallback secret is in use.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == ""
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing or inconsistent.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required in production")
	}

	switch cfg.StoreBackend {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}
