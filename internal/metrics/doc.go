// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: Requests in flight (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Validation Metrics:
  - validation_requests_total: Validated request sources (counter)
    Labels: source, result
  - validation_issues_total: Formatted issues (counter)
    Labels: source, code, severity
  - validation_duration_seconds: Validation latency per source (histogram)
  - i18n_translation_misses_total: Translation fallbacks (counter)

Store Metrics:
  - store_operation_duration_seconds: Document store latency (histogram)
    Labels: backend, operation, collection
  - store_operation_errors_total: Document store errors (counter)
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total: MongoDB circuit breaker

# Usage

	start := time.Now()
	err := repo.Insert(ctx, doc)
	metrics.RecordStoreOperation("mongo", "insert", "users", time.Since(start), "")

# Thread Safety

All metric operations are thread-safe and can be called concurrently.
*/
package metrics
