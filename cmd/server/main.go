// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/agora/internal/api"
	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/i18n"
	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/metrics"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/supervisor"
	"github.com/tomtom215/agora/internal/supervisor/services"
	"github.com/tomtom215/agora/internal/validation"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "agora",
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("store_backend", cfg.Store.Backend).
		Msg("Starting Agora with supervisor tree")

	bundle, err := i18n.NewBundle(i18n.Config{
		DefaultLocale: cfg.I18n.DefaultLocale,
		Supported:     cfg.I18n.Locales,
	})
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	logging.Info().Strs("locales", bundle.Locales()).Msg("Translations loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	cols, err := store.OpenCollections(ctx, backend)
	if err != nil {
		return fmt.Errorf("open collections: %w", err)
	}
	logging.Info().Str("backend", backend.Name()).Msg("Store initialized successfully")

	formatter := validation.NewFormatter(bundle)
	responder := api.NewResponder(bundle)
	invoker := validation.NewInvoker(formatter, responder.Error,
		validation.WithAttachValidated(cfg.Validation.AttachValidated),
		validation.WithFailureLogging(cfg.Validation.LogFailures),
		validation.WithMaxBodyBytes(cfg.Validation.MaxBodyBytes),
	)

	handler := api.NewHandler(api.HandlerDeps{
		Collections: cols,
		Backend:     backend,
		Config:      cfg,
		Invoker:     invoker,
		Formatter:   formatter,
		Responder:   responder,
		Version:     version,
	})
	router := api.NewRouter(handler, responder, invoker, bundle, api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Store.HealthInterval > 0 {
		tree.AddDataService(services.NewStoreMonitorService(backend, cfg.Store.HealthInterval))
		logging.Info().Dur("interval", cfg.Store.HealthInterval).Msg("Store monitor added to supervisor tree")
	}
	if badger, ok := backend.(*store.BadgerBackend); ok && cfg.Store.Badger.GCInterval > 0 {
		tree.AddDataService(services.NewStoreGCService(badger, cfg.Store.Badger.GCInterval, cfg.Store.Badger.GCRatio))
		logging.Info().Dur("interval", cfg.Store.Badger.GCInterval).Msg("Badger GC added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	err = <-tree.ServeBackground(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
