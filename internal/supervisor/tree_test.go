// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDefaultTreeConfig(t *testing.T) {
	config := DefaultTreeConfig()

	if config.FailureThreshold != 5.0 {
		t.Errorf("expected FailureThreshold 5.0, got %f", config.FailureThreshold)
	}
	if config.FailureDecay != 30.0 {
		t.Errorf("expected FailureDecay 30.0, got %f", config.FailureDecay)
	}
	if config.FailureBackoff != 15*time.Second {
		t.Errorf("expected FailureBackoff 15s, got %v", config.FailureBackoff)
	}
	if config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected ShutdownTimeout 10s, got %v", config.ShutdownTimeout)
	}
}

func TestSupervisorTreeConstruction(t *testing.T) {
	t.Run("zero config takes defaults", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.Root() == nil {
			t.Fatal("root supervisor should not be nil")
		}
		if tree.config != DefaultTreeConfig() {
			t.Errorf("config = %+v, want defaults", tree.config)
		}
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
			FailureThreshold: 2,
			ShutdownTimeout:  time.Second,
		})
		if tree.config.FailureThreshold != 2 || tree.config.ShutdownTimeout != time.Second {
			t.Errorf("config = %+v", tree.config)
		}
		if tree.config.FailureDecay != 30.0 {
			t.Errorf("FailureDecay = %v, want default", tree.config.FailureDecay)
		}
	})
}

func TestSupervisorTreeLifecycle(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  50 * time.Millisecond,
		ShutdownTimeout: 500 * time.Millisecond,
	})

	monitor := newStubService("store-monitor")
	gc := newStubService("store-gc")
	server := newStubService("http-server")
	tree.AddDataService(monitor)
	tree.AddDataService(gc)
	tree.AddAPIService(server)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	monitor.waitStarts(t, 1)
	gc.waitStarts(t, 1)
	server.waitStarts(t, 1)

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport: %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTreeFailureIsolation(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  500 * time.Millisecond,
	})

	flaky := newStubService("store-gc")
	flaky.fails = 3
	server := newStubService("http-server")
	tree.AddDataService(flaky)
	tree.AddAPIService(server)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	flaky.waitStarts(t, 4)
	server.waitStarts(t, 1)
	if got := server.starts.Load(); got != 1 {
		t.Errorf("api service restarted by data-layer failures: %d starts", got)
	}

	cancel()
	<-errCh
}

func TestSupervisorTreeDoNotRestart(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  10 * time.Millisecond,
		ShutdownTimeout: 500 * time.Millisecond,
	})

	misconfigured := newStubService("store-monitor")
	misconfigured.err = suture.ErrDoNotRestart
	tree.AddDataService(misconfigured)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	<-tree.ServeBackground(ctx)

	if got := misconfigured.starts.Load(); got != 1 {
		t.Errorf("starts = %d, want 1", got)
	}
}

func TestSupervisorTreeRemoveDataService(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: 500 * time.Millisecond})

	svc := newStubService("store-gc")
	token := tree.AddDataService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)
	svc.waitStarts(t, 1)

	if err := tree.RemoveDataService(token); err != nil {
		t.Errorf("RemoveDataService: %v", err)
	}

	cancel()
	<-errCh
}
