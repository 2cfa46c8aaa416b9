// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/agora/config.yaml",
	"/etc/agora/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Store: StoreConfig{
			Backend: "badger",
			Mongo: MongoConfig{
				URI:      "",
				Database: "agora",
				Timeout:  5 * time.Second,
			},
			Badger: BadgerConfig{
				Path:       "/data/agora",
				InMemory:   false,
				SyncWrites: true,
				GCInterval: 10 * time.Minute,
				GCRatio:    0.5,
			},
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
			HealthInterval: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			BcryptCost:        12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		I18n: I18nConfig{
			DefaultLocale: "en",
			Locales:       []string{"en", "es", "fr"},
		},
		Validation: ValidationConfig{
			AttachValidated: true,
			LogFailures:     true,
			MaxBodyBytes:    1 << 20, // 1MB
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables (mapped explicitly, see envTransformFunc)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first existing
// DefaultConfigPaths entry, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings from
// the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"i18n.locales",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Store mappings
	"store_backend":         "store.backend",
	"mongo_uri":             "store.mongo.uri",
	"mongo_database":        "store.mongo.database",
	"mongo_timeout":         "store.mongo.timeout",
	"badger_path":           "store.badger.path",
	"badger_in_memory":      "store.badger.in_memory",
	"badger_sync_writes":    "store.badger.sync_writes",
	"badger_gc_interval":    "store.badger.gc_interval",
	"badger_gc_ratio":       "store.badger.gc_ratio",
	"store_health_interval": "store.health_interval",
	"breaker_max_requests":  "store.breaker.max_requests",
	"breaker_interval":      "store.breaker.interval",
	"breaker_timeout":       "store.breaker.timeout",
	"breaker_min_requests":  "store.breaker.min_requests",
	"breaker_failure_ratio": "store.breaker.failure_ratio",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"bcrypt_cost":         "security.bcrypt_cost",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// I18n mappings
	"default_locale": "i18n.default_locale",
	"locales":        "i18n.locales",

	// Validation mappings
	"validation_attach":         "validation.attach_validated",
	"validation_log_failures":   "validation.log_failures",
	"validation_max_body_bytes": "validation.max_body_bytes",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - MONGO_URI -> store.mongo.uri
//   - DEFAULT_LOCALE -> i18n.default_locale
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables cannot
	// pollute the config.
	return ""
}
