// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/metrics"
)

const defaultMongoTimeout = 5 * time.Second

// MongoBackend is a MongoDB connection. Every operation runs through a
// circuit breaker and a per-operation timeout.
type MongoBackend struct {
	client  *mongo.Client
	db      *mongo.Database
	breaker *breaker
	timeout time.Duration
}

// OpenMongo connects to MongoDB and verifies the connection with a ping.
func OpenMongo(ctx context.Context, cfg config.MongoConfig, bcfg config.BreakerConfig) (*MongoBackend, error) {
	if cfg.URI == "" {
		return nil, errors.New("store: mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("store: mongo database is required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return newMongoBackend(ctx, client, cfg, bcfg)
}

func newMongoBackend(ctx context.Context, client *mongo.Client, cfg config.MongoConfig, bcfg config.BreakerConfig) (*MongoBackend, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultMongoTimeout
	}
	b := &MongoBackend{
		client:  client,
		db:      client.Database(cfg.Database),
		breaker: newBreaker("store-mongo", bcfg),
		timeout: timeout,
	}

	if err := b.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logging.Info().Str("database", cfg.Database).Dur("timeout", timeout).Msg("MongoDB store opened")
	return b, nil
}

func (b *MongoBackend) Name() string { return BackendMongo }

// Ping bypasses the breaker so readiness reflects the server, not the
// breaker state.
func (b *MongoBackend) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.client.Ping(ctx, readpref.Primary())
}

func (b *MongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// run executes op under the breaker with a deadline and records metrics.
func (b *MongoBackend) run(ctx context.Context, op, collection string, fn func(ctx context.Context) (any, error)) (any, error) {
	start := time.Now()
	result, err := b.breaker.execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		return fn(ctx)
	})
	metrics.RecordStoreOperation(BackendMongo, op, collection, time.Since(start), errorType(err))
	return result, err
}

// errorType labels err for the store error counter.
func errorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}

type mongoRepository[T Document] struct {
	backend *MongoBackend
	coll    *mongo.Collection
	name    string
}

func newMongoRepository[T Document](ctx context.Context, b *MongoBackend, collection string, indexes []Index[T]) (*mongoRepository[T], error) {
	coll := b.db.Collection(collection)

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	for _, idx := range indexes {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: idx.Field, Value: 1}},
			Options: options.Index().SetUnique(idx.Unique),
		}
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return nil, fmt.Errorf("create index %s.%s: %w", collection, idx.Field, err)
		}
	}

	return &mongoRepository[T]{backend: b, coll: coll, name: collection}, nil
}

func (r *mongoRepository[T]) Insert(ctx context.Context, doc T) error {
	_, err := r.backend.run(ctx, "insert", r.name, func(ctx context.Context) (any, error) {
		_, err := r.coll.InsertOne(ctx, doc)
		return nil, mapMongoError(err)
	})
	return err
}

func (r *mongoRepository[T]) Get(ctx context.Context, id string) (T, error) {
	result, err := r.backend.run(ctx, "get", r.name, func(ctx context.Context) (any, error) {
		var doc T
		if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
			return nil, mapMongoError(err)
		}
		return doc, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

func (r *mongoRepository[T]) Replace(ctx context.Context, doc T) error {
	_, err := r.backend.run(ctx, "replace", r.name, func(ctx context.Context) (any, error) {
		res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.DocumentID()}}, doc)
		if err != nil {
			return nil, mapMongoError(err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (r *mongoRepository[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	filter := bson.D{}
	if opts.Field != "" {
		filter = bson.D{{Key: opts.Field, Value: opts.Value}}
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(max(opts.Offset, 0))).
		SetLimit(int64(normalizeLimit(opts.Limit)))

	result, err := r.backend.run(ctx, "list", r.name, func(ctx context.Context) (any, error) {
		cur, err := r.coll.Find(ctx, filter, findOpts)
		if err != nil {
			return nil, mapMongoError(err)
		}
		docs := make([]T, 0)
		if err := cur.All(ctx, &docs); err != nil {
			return nil, mapMongoError(err)
		}
		return docs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
