// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/models"
)

// readyTimeout bounds the store ping of the readiness check.
const readyTimeout = 2 * time.Second

// HealthLive handles liveness check requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.responder.Success(w, r, models.HealthStatus{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness check requests (Kubernetes-style)
// Returns 200 OK only if the document store answers a ping
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	storeCheck := "ok"
	if h.backend == nil {
		storeCheck = "not configured"
	} else if err := h.backend.Ping(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("backend", h.backend.Name()).Msg("Readiness check failed")
		storeCheck = "unavailable"
	}

	health := models.HealthStatus{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Checks:  map[string]string{"store": storeCheck},
	}
	if storeCheck != "ok" {
		health.Status = "not_ready"
		h.responder.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}
	h.responder.Success(w, r, health)
}
