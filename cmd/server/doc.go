// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package main is the entry point for the Agora server.

Agora is a social network REST backend. Every request is validated against
a declarative schema before a handler runs, and every failure is returned as
a localized, field-level error envelope.

# Application Architecture

	RootSupervisor ("agora")
	├── DataSupervisor ("data-layer")
	│   ├── Store monitor (store_up gauge)
	│   └── Badger value log GC (badger backend only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Translations: embedded en, es and fr catalogs
 4. Store: MongoDB (behind a circuit breaker) or embedded BadgerDB
 5. Validation: formatter and invoker
 6. HTTP: Chi router with CORS, rate limiting, locale and metrics middleware
 7. Supervisor Tree: Suture v4 process supervision

# Configuration

Environment variables override config.yaml, which overrides defaults:

	STORE_BACKEND=mongo|badger
	MONGO_URI, MONGO_DATABASE
	BADGER_PATH, BADGER_IN_MEMORY
	HTTP_PORT, HTTP_HOST
	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW
	DEFAULT_LOCALE, LOCALES
	LOG_LEVEL, LOG_FORMAT

See internal/config for the complete list.

# Examples

Development with an embedded store:

	export STORE_BACKEND=badger
	export BADGER_IN_MEMORY=true
	export LOG_FORMAT=console
	./agora

Production with MongoDB:

	export STORE_BACKEND=mongo
	export MONGO_URI=mongodb://mongo:27017
	export ENVIRONMENT=production
	export CORS_ORIGINS=https://app.example.com
	./agora

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and drains in-flight requests for up to
HTTP_SHUTDOWN_TIMEOUT before the store is closed.
*/
package main
