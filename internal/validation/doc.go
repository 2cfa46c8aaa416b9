// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

// Package validation turns schema failures into localized, client-facing
// field errors.
//
// A request passes through three stages:
//
//   - A Schema parses one request source (body, query, params, headers
//     or cookies). StructSchema decodes into a Go type with mapstructure
//     and applies go-playground/validator tags; JSONSchema checks generic
//     JSON against a compiled JSON Schema document. Both report failures
//     as Issues, one Issue per rule failure.
//   - A Formatter renders the issues. Each Issue gets a translation key
//     (ResolveKey), a severity (Classify), a localized message and a list
//     of localized suggestions. Issues on the same path get distinct keys
//     such as "username" and "username[1]", and the Summary counts errors
//     per code and severity.
//   - An Invoker wires both into chi middleware. It writes a *FailedError
//     (422) or *BadRequestError (400) through the configured responder and
//     stores parsed values in the request context on success.
//
// # Usage
//
//	type CreatePostRequest struct {
//	    Content string   `json:"content" validate:"required,min=1,max=5000"`
//	    Tags    []string `json:"tags" validate:"max=10,dive,min=1,max=30"`
//	}
//
//	iv := validation.NewInvoker(validation.NewFormatter(bundle), api.WriteError)
//	r.With(iv.Validate(validation.SourceBody, validation.Struct[CreatePostRequest]())).
//	    Post("/posts", h.CreatePost)
//
//	func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
//	    req, _ := validation.ValidatedAs[CreatePostRequest](r.Context(), validation.SourceBody)
//	    ...
//	}
//
// # Wire Codes
//
// Issue codes and string subtypes use the names clients already know
// (invalid_type, too_small, invalid_string with subtype email, ...), so a
// client can switch on Code without parsing messages.
//
// # Thread Safety
//
// The validator singleton, compiled schemas, Formatter and Invoker are
// safe for concurrent use.
package validation
