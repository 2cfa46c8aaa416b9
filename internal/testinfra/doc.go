// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to manage Docker containers for integration tests,
// so the MongoDB store is exercised against a real server rather than a fake.
//
// # MongoDB Container
//
//	func TestUsers(t *testing.T) {
//	    mongo := testinfra.StartMongo(t)
//
//	    backend, err := store.OpenMongo(ctx, config.MongoConfig{
//	        URI:      mongo.URI,
//	        Database: "agora_test",
//	    }, breakerCfg)
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require Docker. They are skipped gracefully if Docker is unavailable.
//
// # Build Tag
//
// All files use the integration build tag:
//
//	go test -tags integration ./...
package testinfra
