// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates cfg from environment variables using `env` struct tags.
// Fields without a matching variable fall back to their envDefault value;
// fields tagged required cause an error when unset.
//
//	type Config struct {
//	    DatabaseURL string `env:"DATABASE_URL,required"`
//	    HTTPPort    int    `env:"HTTP_PORT" envDefault:"8004"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
