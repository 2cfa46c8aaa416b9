// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package store persists documents in MongoDB or an embedded BadgerDB.

Both backends implement the same generic Repository[T] with insert, get,
replace and list operations. Secondary indexes are declared per collection
with Index[T]; unique indexes turn conflicting writes into ErrDuplicate.

Backends:

  - mongo: go.mongodb.org/mongo-driver/v2. Every call runs through a
    sony/gobreaker circuit breaker; while it is open callers get
    ErrUnavailable.
  - badger: dgraph-io/badger/v4, on disk or in memory. Documents are
    JSON-encoded; index entries live next to them in the same keyspace.

Errors:

ErrNotFound, ErrDuplicate and ErrUnavailable carry an HTTP status, a wire
code and a translation key so the API layer can render them without a
lookup table.

Usage:

	backend, err := store.Open(ctx, cfg.Store)
	if err != nil {
	    return err
	}
	defer backend.Close(ctx)

	cols, err := store.OpenCollections(ctx, backend)
	if err != nil {
	    return err
	}
	user, err := cols.Users.Get(ctx, id)

Metrics:

store_operation_duration_seconds and store_operation_errors_total are
labelled by backend, operation and collection. The Mongo breaker exports
circuit_breaker_* series under the name "store-mongo".
*/
package store
