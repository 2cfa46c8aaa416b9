// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/agora/internal/config"
)

// Backend names accepted by Open.
const (
	BackendMongo  = "mongo"
	BackendBadger = "badger"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = &Error{status: http.StatusNotFound, code: "NOT_FOUND", key: "errors.NOT_FOUND", msg: "document not found"}

	// ErrDuplicate is returned when an insert or replace would break a
	// unique index.
	ErrDuplicate = &Error{status: http.StatusConflict, code: "CONFLICT", key: "errors.CONFLICT", msg: "document already exists"}

	// ErrUnavailable is returned while the backend circuit breaker is open.
	ErrUnavailable = &Error{status: http.StatusServiceUnavailable, code: "SERVICE_UNAVAILABLE", key: "errors.SERVICE_UNAVAILABLE", msg: "store unavailable"}

	// ErrNoIndex is returned by List when filtering on a field that has no
	// index. It is a programming error, not a client error.
	ErrNoIndex = errors.New("store: no index for field")
)

// Error is a sentinel store error that also knows how it renders over HTTP.
type Error struct {
	status int
	code   string
	key    string
	msg    string
}

func (e *Error) Error() string          { return e.msg }
func (e *Error) StatusCode() int        { return e.status }
func (e *Error) ErrorCode() string      { return e.code }
func (e *Error) TranslationKey() string { return e.key }

// Document is anything stored by id.
type Document interface {
	DocumentID() string
}

// Index declares a secondary index on a collection. Field is the stored
// field name (json and bson names match across models). Value extracts
// the indexed value for backends that maintain indexes themselves.
type Index[T Document] struct {
	Field  string
	Unique bool
	Value  func(T) string
}

// ListOptions pages through a collection in id order, optionally filtered
// by equality on one indexed field.
type ListOptions struct {
	Limit  int
	Offset int
	Field  string
	Value  string
}

// Repository stores one collection of T.
type Repository[T Document] interface {
	Insert(ctx context.Context, doc T) error
	Get(ctx context.Context, id string) (T, error)
	Replace(ctx context.Context, doc T) error
	List(ctx context.Context, opts ListOptions) ([]T, error)
}

// Backend is an open database connection shared by repositories.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects to the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case BackendMongo:
		return OpenMongo(ctx, cfg.Mongo, cfg.Breaker)
	case BackendBadger, "":
		return OpenBadger(cfg.Badger)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// NewRepository returns a repository for collection on b, creating the
// declared indexes.
func NewRepository[T Document](ctx context.Context, b Backend, collection string, indexes ...Index[T]) (Repository[T], error) {
	switch backend := b.(type) {
	case *MongoBackend:
		return newMongoRepository(ctx, backend, collection, indexes)
	case *BadgerBackend:
		return newBadgerRepository(backend, collection, indexes)
	default:
		return nil, fmt.Errorf("store: unsupported backend %T", b)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// DefaultListLimit applies when ListOptions.Limit is zero.
const DefaultListLimit = 20
