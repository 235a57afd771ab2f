// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file,
when present, is loaded first so development setups need no exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (gateway, settings store) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/dexview/internal/platform/apperr"
	"github.com/taibuivan/dexview/internal/platform/validate"
)

// Bounds enforced on top of the env tags.
const (
	minSessionSecretLength = 16
	maxEnrichConcurrency   = 64
	maxSessionLimit        = 100000
)

// # Configuration Schema

// Config holds all runtime configuration for the dexview server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// SessionSecret signs the visitor identity cookie.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionIdleTTL is how long an untouched visitor session is kept in memory.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// SessionMax caps live visitor sessions. Each session runs its own
	// acquisition pipeline against the remote API.
	SessionMax int `env:"SESSION_MAX" envDefault:"500"`

	// Durable settings backends. Redis wins over PostgreSQL; with neither set
	// the settings live in process memory.
	RedisURL      string `env:"REDIS_URL"`
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Remote creature API
	RemoteBaseURL   string        `env:"REMOTE_BASE_URL"   envDefault:"https://pokeapi.co/api/v2/"`
	SpriteBaseURL   string        `env:"SPRITE_BASE_URL"   envDefault:"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/versions/generation-i/red-blue/"`
	RemoteTimeout   time.Duration `env:"REMOTE_TIMEOUT"    envDefault:"15s"`
	RemoteRateLimit float64       `env:"REMOTE_RATE_LIMIT" envDefault:"50"`
	RemoteRateBurst int           `env:"REMOTE_RATE_BURST" envDefault:"50"`

	// EnrichConcurrency caps simultaneous detail fetches during enrichment.
	EnrichConcurrency int `env:"ENRICH_CONCURRENCY" envDefault:"16"`

	// Flavor text language chain: preferred, then fallback, then a placeholder.
	DescriptionLanguage string `env:"DESCRIPTION_LANGUAGE" envDefault:"nl"`
	FallbackLanguage    string `env:"FALLBACK_LANGUAGE"    envDefault:"en"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the values env tags cannot express.
func (c *Config) validate() error {
	validator := &validate.Validator{}
	validator.
		OneOf("ENVIRONMENT", c.Environment, "development", "test", "staging", "production").
		MinLen("SESSION_SECRET", c.SessionSecret, minSessionSecretLength).
		AbsoluteURL("REMOTE_BASE_URL", c.RemoteBaseURL).
		Range("ENRICH_CONCURRENCY", c.EnrichConcurrency, 1, maxEnrichConcurrency).
		Custom("SESSION_IDLE_TTL", c.SessionIdleTTL <= 0, "Must be positive").
		Range("SESSION_MAX", c.SessionMax, 1, maxSessionLimit)

	appError := apperr.As(validator.Err())
	if appError == nil {
		return nil
	}

	problems := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		problems = append(problems, detail.Field+": "+detail.Message)
	}
	return fmt.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
