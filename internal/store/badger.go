// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/metrics"
)

// Key layout:
//
//	doc/<collection>/<id>                       -> JSON document
//	uniq/<collection>/<field>/<value>           -> id
//	idx/<collection>/<field>/<value>/<id>       -> empty
//
// Values are path-escaped so a "/" inside a value cannot collide with the
// separator. Ids are UUIDv7 strings, so key order is creation order.
const (
	prefixDoc    = "doc/"
	prefixUnique = "uniq/"
	prefixIndex  = "idx/"
)

// BadgerBackend is an embedded BadgerDB store, used for single-node
// deployments and tests.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the database at cfg.Path, or an in-memory
// database when cfg.InMemory is set.
func OpenBadger(cfg config.BadgerConfig) (*BadgerBackend, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").
			WithInMemory(true).
			WithMemTableSize(16 << 20)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("store: badger path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	opts.Logger = badgerLogger{log: logging.WithComponent("badger")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("BadgerDB store opened")
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Name() string { return BackendBadger }

func (b *BadgerBackend) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return errors.New("store: badger is closed")
	}
	return nil
}

func (b *BadgerBackend) Close(_ context.Context) error {
	return b.db.Close()
}

// RunGC rewrites value log files until no file has more than ratio of
// discardable data. In-memory databases have no value log.
func (b *BadgerBackend) RunGC(ratio float64) error {
	for {
		err := b.db.RunValueLogGC(ratio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		default:
			return fmt.Errorf("badger value log gc: %w", err)
		}
	}
}

type badgerRepository[T Document] struct {
	db      *badger.DB
	name    string
	indexes map[string]Index[T]
}

func newBadgerRepository[T Document](b *BadgerBackend, collection string, indexes []Index[T]) (*badgerRepository[T], error) {
	r := &badgerRepository[T]{
		db:      b.db,
		name:    collection,
		indexes: make(map[string]Index[T], len(indexes)),
	}
	for _, idx := range indexes {
		if idx.Value == nil {
			return nil, fmt.Errorf("store: index %s.%s has no value func", collection, idx.Field)
		}
		r.indexes[idx.Field] = idx
	}
	return r, nil
}

func (r *badgerRepository[T]) docKey(id string) []byte {
	return []byte(prefixDoc + r.name + "/" + id)
}

func (r *badgerRepository[T]) uniqueKey(field, value string) []byte {
	return []byte(prefixUnique + r.name + "/" + field + "/" + url.PathEscape(value))
}

func (r *badgerRepository[T]) indexPrefix(field, value string) string {
	return prefixIndex + r.name + "/" + field + "/" + url.PathEscape(value) + "/"
}

func (r *badgerRepository[T]) observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(BackendBadger, op, r.name, time.Since(start), errorType(err))
}

func (r *badgerRepository[T]) Insert(_ context.Context, doc T) (err error) {
	defer func(start time.Time) { r.observe("insert", start, err) }(time.Now())

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", r.name, err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := r.docKey(doc.DocumentID())
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("%w: %s id %s", ErrDuplicate, r.name, doc.DocumentID())
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := r.putIndexes(txn, doc); err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

func (r *badgerRepository[T]) Get(_ context.Context, id string) (doc T, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())

	err = r.db.View(func(txn *badger.Txn) error {
		var err error
		doc, err = r.load(txn, id)
		return err
	})
	return doc, err
}

func (r *badgerRepository[T]) Replace(_ context.Context, doc T) (err error) {
	defer func(start time.Time) { r.observe("replace", start, err) }(time.Now())

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", r.name, err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		old, err := r.load(txn, doc.DocumentID())
		if err != nil {
			return err
		}
		if err := r.deleteIndexes(txn, old); err != nil {
			return err
		}
		if err := r.putIndexes(txn, doc); err != nil {
			return err
		}
		return txn.Set(r.docKey(doc.DocumentID()), data)
	})
}

func (r *badgerRepository[T]) List(_ context.Context, opts ListOptions) (docs []T, err error) {
	defer func(start time.Time) { r.observe("list", start, err) }(time.Now())

	limit := normalizeLimit(opts.Limit)
	offset := max(opts.Offset, 0)
	docs = make([]T, 0)

	if opts.Field == "" {
		err = r.db.View(func(txn *badger.Txn) error {
			return r.scan(txn, prefixDoc+r.name+"/", offset, limit, func(item *badger.Item) error {
				doc, err := r.decode(item)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
				return nil
			})
		})
		return docs, err
	}

	idx, ok := r.indexes[opts.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoIndex, r.name, opts.Field)
	}

	err = r.db.View(func(txn *badger.Txn) error {
		if idx.Unique {
			if offset > 0 {
				return nil
			}
			item, err := txn.Get(r.uniqueKey(idx.Field, opts.Value))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			} else if err != nil {
				return err
			}
			id, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			doc, err := r.load(txn, string(id))
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		}

		prefix := r.indexPrefix(idx.Field, opts.Value)
		return r.scan(txn, prefix, offset, limit, func(item *badger.Item) error {
			id := strings.TrimPrefix(string(item.Key()), prefix)
			doc, err := r.load(txn, id)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

// scan visits up to limit items under prefix after skipping offset.
func (r *badgerRepository[T]) scan(txn *badger.Txn, prefix string, offset, limit int, visit func(*badger.Item) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	seen := 0
	for it.Rewind(); it.Valid(); it.Next() {
		if seen < offset {
			seen++
			continue
		}
		if err := visit(it.Item()); err != nil {
			return err
		}
		limit--
		if limit == 0 {
			break
		}
	}
	return nil
}

func (r *badgerRepository[T]) load(txn *badger.Txn, id string) (T, error) {
	var zero T
	item, err := txn.Get(r.docKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return zero, ErrNotFound
	} else if err != nil {
		return zero, err
	}
	return r.decode(item)
}

func (r *badgerRepository[T]) decode(item *badger.Item) (T, error) {
	var doc T
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	})
	if err != nil {
		return doc, fmt.Errorf("decode %s document: %w", r.name, err)
	}
	return doc, nil
}

// putIndexes writes index entries for doc, failing with ErrDuplicate when
// a unique value belongs to another document. Empty values are not indexed.
func (r *badgerRepository[T]) putIndexes(txn *badger.Txn, doc T) error {
	id := doc.DocumentID()
	for _, idx := range r.indexes {
		value := idx.Value(doc)
		if value == "" {
			continue
		}
		if !idx.Unique {
			if err := txn.Set([]byte(r.indexPrefix(idx.Field, value)+id), nil); err != nil {
				return err
			}
			continue
		}

		key := r.uniqueKey(idx.Field, value)
		item, err := txn.Get(key)
		switch {
		case err == nil:
			owner, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if string(owner) != id {
				return fmt.Errorf("%w: %s.%s", ErrDuplicate, r.name, idx.Field)
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		if err := txn.Set(key, []byte(id)); err != nil {
			return err
		}
	}
	return nil
}

func (r *badgerRepository[T]) deleteIndexes(txn *badger.Txn, doc T) error {
	id := doc.DocumentID()
	for _, idx := range r.indexes {
		value := idx.Value(doc)
		if value == "" {
			continue
		}
		key := []byte(r.indexPrefix(idx.Field, value) + id)
		if idx.Unique {
			key = r.uniqueKey(idx.Field, value)
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// badgerLogger routes BadgerDB's internal logging to zerolog. Info and
// debug chatter is demoted so compactions do not flood the log.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Trace().Msgf(strings.TrimSpace(format), args...)
}
