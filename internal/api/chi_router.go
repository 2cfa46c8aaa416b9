// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/agora/internal/i18n"
	"github.com/tomtom215/agora/internal/middleware"
	"github.com/tomtom215/agora/internal/validation"
)

// Router wires handlers, validation middleware and the shared
// middleware stack into a chi mux.
type Router struct {
	handler       *Handler
	responder     *Responder
	invoker       *validation.Invoker
	chiMiddleware *ChiMiddleware
	locales       *i18n.Bundle
}

// NewRouter creates a Router. When mwConfig has no limit handler the
// rate limiter answers with the JSON error envelope.
func NewRouter(handler *Handler, responder *Responder, invoker *validation.Invoker, locales *i18n.Bundle, mwConfig *ChiMiddlewareConfig) *Router {
	if mwConfig == nil {
		mwConfig = DefaultChiMiddlewareConfig()
	}
	if mwConfig.RateLimitOnLimit == nil {
		mwConfig.RateLimitOnLimit = rateLimitedHandler(responder)
	}
	return &Router{
		handler:       handler,
		responder:     responder,
		invoker:       invoker,
		chiMiddleware: NewChiMiddleware(mwConfig),
		locales:       locales,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Set before any Route so sub-routers inherit them.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		router.responder.Error(w, req, ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		router.responder.Error(w, req, ErrMethodNotAllowed)
	})

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(router.locales.Middleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)

		// Health checks are not rate limited.
		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			router.routes(r)
		})
	})

	return r
}

// routes registers the resource endpoints with their request schemas.
func (router *Router) routes(r chi.Router) {
	iv := router.invoker
	h := router.handler

	r.Route("/users", func(r chi.Router) {
		r.With(iv.Validate(validation.SourceBody, createUserSchema)).
			Post("/", h.CreateUser)
		r.With(iv.Validate(validation.SourceParams, userIDSchema)).
			Get("/{id}", h.GetUser)
		r.With(iv.ValidateSources(map[validation.Source]validation.Schema{
			validation.SourceParams: userIDSchema,
			validation.SourceBody:   updateProfileSchema,
		})).Patch("/{id}/profile", h.UpdateProfile)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(iv.Validate(validation.SourceBody, createPostSchema)).
			Post("/", h.CreatePost)
		r.With(iv.Validate(validation.SourceQuery, listPostsSchema)).
			Get("/", h.ListPosts)
	})

	r.With(iv.Validate(validation.SourceBody, sendMessageSchema)).
		Post("/messages", h.SendMessage)
	r.With(iv.Validate(validation.SourceBody, createGroupSchema)).
		Post("/groups", h.CreateGroup)
	r.With(iv.Validate(validation.SourceBody, createEventSchema)).
		Post("/events", h.CreateEvent)
	r.With(iv.ValidateSources(map[validation.Source]validation.Schema{
		validation.SourceBody:    paymentSchema,
		validation.SourceHeaders: paymentHeaderSchema,
	})).Post("/payments", h.CreatePayment)
}
