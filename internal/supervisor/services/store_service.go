// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/metrics"
)

// pingTimeout bounds a single health check.
const pingTimeout = 5 * time.Second

// Pinger is the health-check subset of store.Backend.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// GarbageCollector is implemented by backends with offline compaction,
// such as *store.BadgerBackend.
type GarbageCollector interface {
	Name() string
	RunGC(ratio float64) error
}

// StoreMonitorService pings the store on an interval, exports the result
// as the store_up gauge and logs transitions between up and down.
//
//	tree.AddDataService(services.NewStoreMonitorService(backend, cfg.Store.HealthInterval))
type StoreMonitorService struct {
	backend  Pinger
	interval time.Duration
	up       *bool
}

// NewStoreMonitorService creates a monitor for backend.
func NewStoreMonitorService(backend Pinger, interval time.Duration) *StoreMonitorService {
	return &StoreMonitorService{backend: backend, interval: interval}
}

// Serve implements suture.Service. A failed ping is recorded, not
// returned: the store recovering is not the monitor's job.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("store monitor: interval %v: %w", s.interval, suture.ErrDoNotRestart)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *StoreMonitorService) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := s.backend.Ping(pingCtx)
	cancel()
	if ctx.Err() != nil {
		return
	}

	up := err == nil
	metrics.SetStoreUp(s.backend.Name(), up)

	if s.up != nil && *s.up == up {
		return
	}
	s.up = &up
	if up {
		logging.Info().Str("backend", s.backend.Name()).Msg("Store reachable")
	} else {
		logging.Warn().Err(err).Str("backend", s.backend.Name()).Msg("Store unreachable")
	}
}

// String implements fmt.Stringer.
func (s *StoreMonitorService) String() string {
	return "store-monitor"
}

// StoreGCService runs backend garbage collection on an interval.
type StoreGCService struct {
	backend  GarbageCollector
	interval time.Duration
	ratio    float64
}

// NewStoreGCService creates a collector for backend. ratio is passed to
// RunGC unchanged.
func NewStoreGCService(backend GarbageCollector, interval time.Duration, ratio float64) *StoreGCService {
	return &StoreGCService{backend: backend, interval: interval, ratio: ratio}
}

// Serve implements suture.Service. A GC error is returned so the
// supervisor backs off before the next attempt.
func (s *StoreGCService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("store gc: interval %v: %w", s.interval, suture.ErrDoNotRestart)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			err := s.backend.RunGC(s.ratio)
			metrics.RecordStoreGC(s.backend.Name(), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("store gc: %w", err)
			}
			logging.Debug().
				Str("backend", s.backend.Name()).
				Dur("duration", time.Since(start)).
				Msg("Store garbage collection completed")
		}
	}
}

// String implements fmt.Stringer.
func (s *StoreGCService) String() string {
	return "store-gc"
}
