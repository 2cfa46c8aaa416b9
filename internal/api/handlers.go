// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/validation"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by resource:
//   - handlers.go: Handler struct, constructor, shared helpers (this file)
//   - handlers_users.go: registration, lookup and profile updates
//   - handlers_posts.go: post creation and listing
//   - handlers_social.go: messages, groups and events
//   - handlers_payments.go: idempotent payments
//   - handlers_health.go: liveness and readiness checks
type Handler struct {
	store     *store.Collections
	backend   store.Backend
	config    *config.Config
	invoker   *validation.Invoker
	formatter *validation.Formatter
	responder *Responder
	startTime time.Time
	version   string
}

// HandlerDeps are the collaborators of a Handler.
type HandlerDeps struct {
	Collections *store.Collections
	Backend     store.Backend
	Config      *config.Config
	Invoker     *validation.Invoker
	Formatter   *validation.Formatter
	Responder   *Responder
	Version     string
}

// NewHandler creates a new API handler with all required dependencies.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		store:     deps.Collections,
		backend:   deps.Backend,
		config:    deps.Config,
		invoker:   deps.Invoker,
		formatter: deps.Formatter,
		responder: deps.Responder,
		startTime: time.Now(),
		version:   deps.Version,
	}
}

// input returns the validated value of source. Values are normally
// attached by the validation middleware; when attaching is disabled the
// source is parsed again.
func input[T any](h *Handler, r *http.Request, source validation.Source, schema validation.Schema) (T, error) {
	var zero T
	if v, ok := validation.ValidatedAs[T](r.Context(), source); ok {
		return v, nil
	}
	out, err := h.invoker.Parse(r, source, schema)
	if err != nil {
		return zero, fmt.Errorf("parse %s: %w", source, err)
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("parse %s: got %T, want %T", source, out, zero)
	}
	return v, nil
}

// exists reports whether a document with id is stored in repo.
func exists[T store.Document](ctx context.Context, repo store.Repository[T], id string) (bool, error) {
	_, err := repo.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// missingUsers returns the fields whose user ids are not stored.
// fields maps body field names to user ids.
func (h *Handler) missingUsers(ctx context.Context, fields map[string]string) ([]string, error) {
	var missing []string
	for _, field := range sortedKeys(fields) {
		ok, err := exists(ctx, h.store.Users, fields[field])
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, field)
		}
	}
	return missing, nil
}

// unknownReferences builds the 422 error for body fields that point at
// documents which do not exist.
func (h *Handler) unknownReferences(ctx context.Context, fields map[string]string, missing []string) error {
	payload := make(map[string]any, len(fields))
	for k, v := range fields {
		payload[k] = v
	}
	issues := make(validation.Issues, 0, len(missing))
	for _, field := range missing {
		issues = append(issues, validation.Issue{
			Code:    validation.CodeCustom,
			Path:    []string{field},
			Message: "Referenced document does not exist",
			Meta:    validation.CustomMeta{Params: map[string]any{"rule": "exists"}},
		})
	}
	res := h.formatter.Format(ctx, issues, validation.SourceBody, payload)
	return validation.NewFailedError(res, validation.SourceBody)
}

// checkUsers rejects the request when any referenced user is missing.
// It reports whether the handler may continue.
func (h *Handler) checkUsers(w http.ResponseWriter, r *http.Request, fields map[string]string) bool {
	missing, err := h.missingUsers(r.Context(), fields)
	if err != nil {
		h.responder.Error(w, r, err)
		return false
	}
	if len(missing) > 0 {
		h.responder.Error(w, r, h.unknownReferences(r.Context(), fields, missing))
		return false
	}
	return true
}
