// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	backend, err := store.Open(ctx, cfg.Store)
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Store      StoreConfig      `koanf:"store"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	I18n       I18nConfig       `koanf:"i18n"`
	Validation ValidationConfig `koanf:"validation"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // Read and write timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // Grace period for in-flight requests
	Environment     string        `koanf:"environment"`      // "development", "staging", "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects and tunes the document store.
type StoreConfig struct {
	// Backend is "mongo" or "badger".
	Backend string        `koanf:"backend"`
	Mongo   MongoConfig   `koanf:"mongo"`
	Badger  BadgerConfig  `koanf:"badger"`
	Breaker BreakerConfig `koanf:"breaker"`

	// HealthInterval is how often the store monitor pings the backend.
	// Zero disables the monitor.
	HealthInterval time.Duration `koanf:"health_interval"`
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI      string        `koanf:"uri"`
	Database string        `koanf:"database"`
	Timeout  time.Duration `koanf:"timeout"` // Per-operation deadline
}

// BadgerConfig holds embedded BadgerDB settings
type BadgerConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`

	// GCInterval schedules value log garbage collection. Zero disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
	GCRatio    float64       `koanf:"gc_ratio"` // Discard ratio, 0 < r < 1
}

// BreakerConfig tunes the circuit breaker in front of remote stores.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval after which closed-state counts reset.
	Interval time.Duration `koanf:"interval"`

	// Timeout spent open before probing again.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests before the failure ratio is considered.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio (0-1] that opens the circuit.
	FailureRatio float64 `koanf:"failure_ratio"`
}

// SecurityConfig holds CORS, rate limiting and password hashing settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// I18nConfig selects the translation catalogs.
type I18nConfig struct {
	DefaultLocale string   `koanf:"default_locale"`
	Locales       []string `koanf:"locales"`
}

// ValidationConfig tunes the request validation pipeline.
type ValidationConfig struct {
	// AttachValidated stores parsed input on the request context for
	// handlers to read.
	AttachValidated bool `koanf:"attach_validated"`

	// LogFailures logs every rejected request at info level.
	LogFailures bool `koanf:"log_failures"`

	// MaxBodyBytes caps request bodies read for validation.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
