// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import (
	"time"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the success envelope used by every endpoint.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"id": "0190c3a2-...", "username": "ada_l"},
//	  "requestId": "9b2d0c1e-...",
//	  "timestamp": "2026-03-01T12:00:00Z"
//	}
type APIResponse struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// APIError is the error envelope. Errors and Metadata are only present for
// validation failures.
//
// Example validation failure:
//
//	{
//	  "status": "error",
//	  "message": "Validation failed with 1 error",
//	  "translationKey": "errors.VALIDATION_FAILED",
//	  "code": "VALIDATION_FAILED",
//	  "statusCode": 422,
//	  "errors": {
//	    "password": {
//	      "message": "Password must be at least 8 characters long",
//	      "code": "too_small",
//	      "severity": "medium",
//	      "suggestions": ["Use at least 8 characters"]
//	    }
//	  },
//	  "metadata": {"source": "body", "summary": {"totalErrors": 1, ...}},
//	  "requestId": "9b2d0c1e-...",
//	  "timestamp": "2026-03-01T12:00:00Z"
//	}
type APIError struct {
	Status         string         `json:"status"`
	Message        string         `json:"message"`
	TranslationKey string         `json:"translationKey,omitempty"`
	Code           string         `json:"code"`
	StatusCode     int            `json:"statusCode"`
	Errors         interface{}    `json:"errors,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	RequestID      string         `json:"requestId,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// ListResponse wraps a page of results.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Uptime  float64           `json:"uptimeSeconds"`
	Checks  map[string]string `json:"checks,omitempty"`
}
