// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package middleware provides infrastructure HTTP middleware shared by the
API router.

Key Components:

  - RequestID: assigns every request an ID, echoes it in X-Request-ID and
    stores it with a correlation ID in the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
    labelled by chi route pattern

Both are plain func(http.Handler) http.Handler and compose with chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Access the request ID in a handler:

	func handler(w http.ResponseWriter, r *http.Request) {
	    logging.Ctx(r.Context()).Info().Msg("handling request") // carries request_id
	    id := middleware.GetRequestID(r.Context())
	    _ = id
	}

Label Cardinality:

PrometheusMetrics never uses the raw URL path as a label. Requests that
match no route (404s from probing clients) share the "unmatched" label.

See Also:

  - internal/api: router wiring
  - internal/metrics: collector definitions
*/
package middleware
