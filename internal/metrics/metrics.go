// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Validation Metrics
	ValidationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_requests_total",
			Help: "Total number of validated request sources",
		},
		[]string{"source", "result"}, // result: "passed", "failed", "error"
	)

	ValidationIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_issues_total",
			Help: "Total number of formatted validation issues",
		},
		[]string{"source", "code", "severity"},
	)

	ValidationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "validation_duration_seconds",
			Help:    "Time spent extracting, validating and formatting a request",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
		[]string{"source"},
	)

	// Translation Metrics
	TranslationMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18n_translation_misses_total",
			Help: "Translation lookups that fell back to the default locale or the fallback text",
		},
		[]string{"locale", "namespace"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation", "collection"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of document store errors",
		},
		[]string{"backend", "operation", "collection", "error_type"},
	)

	StoreUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_up",
			Help: "Whether the last store health check succeeded (1) or not (0)",
		},
		[]string{"backend"},
	)

	StoreGCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_gc_duration_seconds",
			Help:    "Duration of store garbage collection runs",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60},
		},
		[]string{"backend", "result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordValidation records the outcome of validating one request source.
// result is "passed", "failed" or "error".
func RecordValidation(source, result string, duration time.Duration) {
	ValidationRequests.WithLabelValues(source, result).Inc()
	ValidationDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordValidationIssue counts one formatted issue.
func RecordValidationIssue(source, code, severity string) {
	ValidationIssues.WithLabelValues(source, code, severity).Inc()
}

// RecordTranslationMiss counts a lookup that did not hit the requested locale.
func RecordTranslationMiss(locale, namespace string) {
	TranslationMisses.WithLabelValues(locale, namespace).Inc()
}

// RecordStoreOperation records a document store operation. errorType is
// empty on success.
func RecordStoreOperation(backend, operation, collection string, duration time.Duration, errorType string) {
	StoreOperationDuration.WithLabelValues(backend, operation, collection).Observe(duration.Seconds())
	if errorType != "" {
		StoreOperationErrors.WithLabelValues(backend, operation, collection, errorType).Inc()
	}
}

// SetStoreUp records the outcome of a store health check.
func SetStoreUp(backend string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	StoreUp.WithLabelValues(backend).Set(v)
}

// RecordStoreGC records one garbage collection run.
func RecordStoreGC(backend string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreGCDuration.WithLabelValues(backend, result).Observe(duration.Seconds())
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetAppInfo publishes the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
