// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"net/http"

	"github.com/tomtom215/agora/internal/validation"
)

// Error codes used in API responses
const (
	ErrCodeBadRequest         = validation.ErrCodeBadRequest
	ErrCodeValidationFailed   = validation.ErrCodeValidationFailed
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL"
)

// Common API errors
var (
	ErrRouteNotFound    = NewError(http.StatusNotFound, ErrCodeNotFound)
	ErrMethodNotAllowed = NewError(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
	ErrRateLimited      = NewError(http.StatusTooManyRequests, ErrCodeRateLimited)
	errInternal         = NewError(http.StatusInternalServerError, ErrCodeInternal)
)

// Error is an error raised by a handler. Its message is always the
// catalog entry "errors.<Code>" in the request locale.
type Error struct {
	Status int
	Code   string
	Fields map[string]validation.FieldError
	Meta   map[string]any
}

// NewError returns an Error without field details.
func NewError(status int, code string) *Error {
	return &Error{Status: status, Code: code}
}

func (e *Error) Error() string {
	return http.StatusText(e.Status) + " (" + e.Code + ")"
}

// StatusCode returns the HTTP status for the error.
func (e *Error) StatusCode() int { return e.Status }

// ErrorCode returns the machine-readable error code.
func (e *Error) ErrorCode() string { return e.Code }

// TranslationKey returns the catalog key of the message.
func (e *Error) TranslationKey() string { return "errors." + e.Code }

// FieldErrors returns per-field details, if any.
func (e *Error) FieldErrors() map[string]validation.FieldError { return e.Fields }

// Metadata returns envelope metadata, if any.
func (e *Error) Metadata() map[string]any { return e.Meta }

// fieldConflict renders a formatted result as 409 Conflict, keeping the
// per-field errors so clients can point at the taken value.
func fieldConflict(res validation.Result, source validation.Source) *Error {
	return &Error{
		Status: http.StatusConflict,
		Code:   ErrCodeConflict,
		Fields: res.Errors,
		Meta: map[string]any{
			"summary": res.Summary,
			"source":  source,
		},
	}
}

// Interfaces recognized by Responder.Error.
type (
	statusError interface {
		error
		StatusCode() int
		ErrorCode() string
		TranslationKey() string
	}

	fieldErrorsProvider interface {
		FieldErrors() map[string]validation.FieldError
	}

	metadataProvider interface {
		Metadata() map[string]any
	}
)
