// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tomtom215/agora/internal/config"
)

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreaker_TripsOnFailures(t *testing.T) {
	t.Parallel()
	b := newBreaker(t.Name(), testBreakerConfig())
	boom := errors.New("connection refused")

	for range 3 {
		_, err := b.execute(func() (any, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, gobreaker.StateOpen, b.state())

	called := false
	_, err := b.execute(func() (any, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, called, "open breaker must not call through")
}

func TestBreaker_DomainErrorsAreSuccesses(t *testing.T) {
	t.Parallel()
	b := newBreaker(t.Name(), testBreakerConfig())

	for range 5 {
		_, err := b.execute(func() (any, error) { return nil, ErrNotFound })
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = b.execute(func() (any, error) { return nil, fmt.Errorf("%w: users.email", ErrDuplicate) })
		assert.ErrorIs(t, err, ErrDuplicate)
	}
	assert.Equal(t, gobreaker.StateClosed, b.state())
}

func TestBreaker_PassesResult(t *testing.T) {
	t.Parallel()
	b := newBreaker(t.Name(), testBreakerConfig())

	got, err := b.execute(func() (any, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestBreakerStateHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
		{gobreaker.State(99), -1, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.f, stateToFloat(tt.state))
		assert.Equal(t, tt.s, stateToString(tt.state))
	}
}

func TestMapMongoError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, mapMongoError(nil))
	assert.ErrorIs(t, mapMongoError(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	err := mapMongoError(dup)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "E11000")

	other := errors.New("socket closed")
	assert.Same(t, other, mapMongoError(other))
}
