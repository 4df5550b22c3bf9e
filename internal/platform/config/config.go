// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration. Defaults suit local development;
// deployments override through the environment.
type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL    string `env:"DATABASE_URL"`
	SessionSecret  string `env:"SESSION_SECRET" envDefault:"defaultsecret"`
	ViewsDir       string `env:"VIEWS_DIR" envDefault:"views"`
	PublicDir      string `env:"PUBLIC_DIR" envDefault:"public"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

// Load parses the environment and validates cross-field constraints.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.StorageBackend {
	case "memory":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	return cfg, nil
}
