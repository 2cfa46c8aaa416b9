// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried by the typed errors.
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeBadRequest       = "BAD_REQUEST"
)

// FailedError is returned when a schema rejects request input.
// It always maps to 422 Unprocessable Entity.
type FailedError struct {
	Message string
	Errors  map[string]FieldError
	Summary Summary
	Source  Source
}

// NewFailedError wraps a formatting result for source.
func NewFailedError(res Result, source Source) *FailedError {
	return &FailedError{
		Message: res.Message,
		Errors:  res.Errors,
		Summary: res.Summary,
		Source:  source,
	}
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("validation failed for %s: %d error(s)", e.Source, e.Summary.TotalErrors)
}

// StatusCode returns the HTTP status for the error.
func (e *FailedError) StatusCode() int { return http.StatusUnprocessableEntity }

// ErrorCode returns the machine-readable error code.
func (e *FailedError) ErrorCode() string { return ErrCodeValidationFailed }

// TranslationKey returns the catalog key of the message.
func (e *FailedError) TranslationKey() string { return MessageKeyFailed }

// FieldErrors returns the formatted issues keyed by unique path.
func (e *FailedError) FieldErrors() map[string]FieldError { return e.Errors }

// Metadata returns the envelope metadata (summary and source).
func (e *FailedError) Metadata() map[string]any {
	return map[string]any{
		"summary": e.Summary,
		"source":  e.Source,
	}
}

// Client-facing reasons of a BadRequestError.
const (
	ReasonMalformedJSON  = "malformed_json"
	ReasonBodyTooLarge   = "body_too_large"
	ReasonUnreadableBody = "unreadable_body"
	ReasonInvalidRequest = "invalid_request"
)

// BadRequestError is returned for failures that are not schema issues,
// such as an unreadable body. It always maps to 400 Bad Request.
// Message is for logs only; clients see Reason.
type BadRequestError struct {
	Message string
	Reason  string
	Err     error
}

// NewBadRequestError wraps err and classifies it into a fixed reason.
func NewBadRequestError(err error) *BadRequestError {
	return &BadRequestError{Message: err.Error(), Reason: reasonFor(err), Err: err}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrMalformedJSON):
		return ReasonMalformedJSON
	case errors.Is(err, ErrBodyTooLarge):
		return ReasonBodyTooLarge
	case errors.Is(err, ErrBodyUnreadable):
		return ReasonUnreadableBody
	default:
		return ReasonInvalidRequest
	}
}

func (e *BadRequestError) Error() string { return e.Message }

// Unwrap returns the wrapped error.
func (e *BadRequestError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status for the error.
func (e *BadRequestError) StatusCode() int { return http.StatusBadRequest }

// ErrorCode returns the machine-readable error code.
func (e *BadRequestError) ErrorCode() string { return ErrCodeBadRequest }

// TranslationKey returns the catalog key of the message.
func (e *BadRequestError) TranslationKey() string { return "errors.BAD_REQUEST" }

// Metadata returns the envelope metadata. Decoder text never leaves the
// server.
func (e *BadRequestError) Metadata() map[string]any {
	reason := e.Reason
	if reason == "" {
		reason = ReasonInvalidRequest
	}
	return map[string]any{"reason": reason}
}
