// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Data Sources

const (
	// SourcePostgres reads events from the local events table.
	SourcePostgres = "postgres"

	// SourceRest reads events from a PostgREST endpoint.
	SourceRest = "rest"
)

// # Configuration Schema

// Config holds all runtime configuration for the Chronomap API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DataSource selects where events are loaded from (postgres or rest).
	DataSource string `env:"DATA_SOURCE" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Hosted REST endpoint (PostgREST / Supabase)
	RestURL string `env:"REST_URL"`
	RestKey string `env:"REST_KEY"`

	// Key-Value Cache (Redis). Sessions stay in memory when unset.
	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// DisplayLocale selects date suffixes ("fr" or "en").
	DisplayLocale string `env:"DISPLAY_LOCALE" envDefault:"fr"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	var errs []error

	switch c.DataSource {
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DATA_SOURCE=postgres"))
		}
	case SourceRest:
		if c.RestURL == "" {
			errs = append(errs, errors.New("REST_URL is required when DATA_SOURCE=rest"))
		}
		if c.RestKey == "" {
			errs = append(errs, errors.New("REST_KEY is required when DATA_SOURCE=rest"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourcePostgres, SourceRest, c.DataSource))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// OriginAllowed reports whether a browser origin may call the API outside
// development. An empty suffix allows no cross-origin caller.
func (c *Config) OriginAllowed(origin string) bool {
	return c.AllowedOriginSuffix != "" && strings.HasSuffix(origin, c.AllowedOriginSuffix)
}

// UsesPostgres reports whether a database pool is needed.
func (c *Config) UsesPostgres() bool {
	return c.DataSource == SourcePostgres
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
