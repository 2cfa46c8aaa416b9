// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agora/internal/i18n"
	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/validation"
)

// Responder writes success and error envelopes. Error messages are
// localized through tr in the locale stored on the request context.
type Responder struct {
	tr  validation.Translator
	now func() time.Time
}

// NewResponder creates a Responder rendering messages through tr.
func NewResponder(tr validation.Translator) *Responder {
	return &Responder{
		tr:  tr,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Success writes a 200 OK response with data.
func (rs *Responder) Success(w http.ResponseWriter, r *http.Request, data interface{}) {
	rs.JSON(w, r, http.StatusOK, data)
}

// Created writes a 201 Created response with data.
func (rs *Responder) Created(w http.ResponseWriter, r *http.Request, data interface{}) {
	rs.JSON(w, r, http.StatusCreated, data)
}

// JSON writes a success envelope with an arbitrary status code.
func (rs *Responder) JSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	writeJSON(w, statusCode, &models.APIResponse{
		Status:    models.StatusSuccess,
		Data:      data,
		RequestID: logging.RequestIDFromContext(r.Context()),
		Timestamp: rs.now(),
	})
}

// Error writes err as an error envelope. It has the signature of
// validation.ErrorResponder so the invoker can hand its failures here.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	statusCode, body := rs.envelope(r, err)

	log := logging.Ctx(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", statusCode).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", statusCode).Str("code", body.Code).Msg("Request rejected")
	}

	if statusCode == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
		w.Header().Set("Retry-After", "60")
	}
	writeJSON(w, statusCode, body)
}

// envelope builds the error body for err. Unknown errors become a
// generic 500 and never leak their text.
func (rs *Responder) envelope(r *http.Request, err error) (int, *models.APIError) {
	ctx := r.Context()

	var se statusError
	if !errors.As(err, &se) {
		se = errInternal
	}
	statusCode := se.StatusCode()

	body := &models.APIError{
		Status:         models.StatusError,
		TranslationKey: se.TranslationKey(),
		Code:           se.ErrorCode(),
		StatusCode:     statusCode,
		RequestID:      logging.RequestIDFromContext(ctx),
		Timestamp:      rs.now(),
	}

	var failed *validation.FailedError
	if errors.As(err, &failed) && failed.Message != "" {
		body.Message = failed.Message
	} else {
		body.Message = rs.tr.ResolveMessage(ctx, i18n.MessageRequest{
			TranslationKey:  body.TranslationKey,
			FallbackMessage: http.StatusText(statusCode),
		})
	}

	if se == errInternal {
		return statusCode, body
	}

	var fp fieldErrorsProvider
	if errors.As(err, &fp) {
		if fields := fp.FieldErrors(); len(fields) > 0 {
			body.Errors = fields
		}
	}
	var mp metadataProvider
	if errors.As(err, &mp) {
		if md := mp.Metadata(); len(md) > 0 {
			body.Metadata = md
		}
	}
	return statusCode, body
}

// writeJSON writes JSON response with proper headers
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
