// Copyright (c) 2026 Gravadora. All rights reserved.
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

Once loaded, configuration is read-only and passed to components through
their constructors. No global variables hold it.
*/
package config

import (
	"fmt"
	"time"
	// Embedded zone database so TIMEZONE works on minimal images.
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/gravadora/internal/platform/sec"
)

// # Configuration Schema

// Config holds all runtime configuration for the Gravadora back-office API.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath overrides the embedded SQL migrations with a directory.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis): sessions and auth-state events
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Keys for access-token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required,notEmpty"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	// Object Storage (S3-compatible) for /documentos
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Timezone is the IANA zone used for day-granularity date logic
	// (project lateness, payment dates, current-month releases).
	Timezone string `env:"TIMEZONE" envDefault:"America/Sao_Paulo"`

	// ProfileDefaultRole is assigned to auto-provisioned profiles.
	ProfileDefaultRole string `env:"PROFILE_DEFAULT_ROLE" envDefault:"admin"`

	// ProfileCacheTTL bounds how long a resolved profile is reused.
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"30s"`

	// DashboardFanoutLimit caps concurrent per-budget payment queries.
	DashboardFanoutLimit int `env:"DASHBOARD_FANOUT_LIMIT" envDefault:"8"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"gravadora.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values that parse but cannot be used.
func (c *Config) validate() error {
	role, err := sec.ParseRole(c.ProfileDefaultRole)
	if err != nil || !role.IsAssignable() {
		return fmt.Errorf("config: PROFILE_DEFAULT_ROLE %q is not an assignable role", c.ProfileDefaultRole)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}

	if c.DashboardFanoutLimit < 1 {
		return fmt.Errorf("config: DASHBOARD_FANOUT_LIMIT must be positive, got %d", c.DashboardFanoutLimit)
	}

	return nil
}

// Location returns the configured time zone. Load has already validated it.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// DefaultRole returns the role assigned to auto-provisioned profiles.
func (c *Config) DefaultRole() sec.Role {
	return sec.Role(c.ProfileDefaultRole)
}

// StorageEnabled reports whether document storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginSuffix returns the suffix accepted by the CORS middleware outside development.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
