// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package logging provides centralized zerolog-based structured logging for Agora.
//
// JSON output is used in production and console output in development. The
// global logger is configured once from main:
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Info().Str("source", "body").Msg("validation failed")
//
// Ctx adds the request_id and correlation_id stored by the request ID
// middleware. SlogHandler bridges slog-based libraries (suture) into the
// same output. SanitizeValue and friends mask user data before it reaches
// a log line.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
