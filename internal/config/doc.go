// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package config provides centralized configuration management for Agora.

Configuration is layered with knadh/koanf v2: struct defaults, then an
optional YAML file, then environment variables. Environment variables are
mapped explicitly (see envMappings); unknown variables are ignored.

# Configuration File

The file is read from CONFIG_PATH, or the first of config.yaml, config.yml,
/etc/agora/config.yaml, /etc/agora/config.yml that exists:

	server:
	  port: 8080
	store:
	  backend: mongo
	  mongo:
	    uri: mongodb://localhost:27017
	    database: agora
	i18n:
	  default_locale: en
	  locales: [en, es, fr]

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, ENVIRONMENT

Store:
  - STORE_BACKEND: mongo or badger (default: badger)
  - MONGO_URI, MONGO_DATABASE, MONGO_TIMEOUT
  - BADGER_PATH, BADGER_IN_MEMORY, BADGER_SYNC_WRITES
  - BADGER_GC_INTERVAL (default: 10m), BADGER_GC_RATIO (default: 0.5)
  - STORE_HEALTH_INTERVAL: backend ping period (default: 30s, 0 disables)
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO

Security:
  - CORS_ORIGINS: comma-separated (default: *; rejected in production)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - BCRYPT_COST (default: 12)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Localization:
  - DEFAULT_LOCALE (default: en), LOCALES (default: en,es,fr)

Validation:
  - VALIDATION_ATTACH, VALIDATION_LOG_FAILURES, VALIDATION_MAX_BODY_BYTES

# Validation

LoadWithKoanf calls Config.Validate, which checks only the settings of the
selected store backend, rate limit bounds, the bcrypt cost range and that
the default locale is enabled.
*/
package config
