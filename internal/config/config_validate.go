// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateI18n(); err != nil {
		return err
	}

	if c.Validation.MaxBodyBytes <= 0 {
		return fmt.Errorf("VALIDATION_MAX_BODY_BYTES must be positive, got %d", c.Validation.MaxBodyBytes)
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

// validateStore validates the selected backend only; settings for the
// other backend are ignored.
func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case "mongo":
		if c.Store.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=mongo")
		}
		if !strings.HasPrefix(c.Store.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Store.Mongo.URI, "mongodb+srv://") {
			return fmt.Errorf("MONGO_URI must start with mongodb:// or mongodb+srv://")
		}
		if c.Store.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DATABASE is required when STORE_BACKEND=mongo")
		}
		return c.validateBreaker()
	case "badger":
		if !c.Store.Badger.InMemory && c.Store.Badger.Path == "" {
			return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
		}
		if r := c.Store.Badger.GCRatio; c.Store.Badger.GCInterval > 0 && (r <= 0 || r >= 1) {
			return fmt.Errorf("BADGER_GC_RATIO must be in (0, 1), got %v", r)
		}
		return nil
	default:
		return fmt.Errorf("STORE_BACKEND must be 'mongo' or 'badger', got %q", c.Store.Backend)
	}
}

func (c *Config) validateBreaker() error {
	b := c.Store.Breaker
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", b.FailureRatio)
	}
	if b.MaxRequests == 0 {
		return fmt.Errorf("BREAKER_MAX_REQUESTS must be at least 1")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %s", b.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow < time.Second {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Security.BcryptCost)
	}
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

func (c *Config) validateI18n() error {
	if c.I18n.DefaultLocale == "" {
		return fmt.Errorf("DEFAULT_LOCALE is required")
	}
	if !slices.Contains(c.I18n.Locales, c.I18n.DefaultLocale) {
		return fmt.Errorf("DEFAULT_LOCALE %q must be listed in LOCALES %v", c.I18n.DefaultLocale, c.I18n.Locales)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || strings.EqualFold(c.Server.Environment, "development")
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
