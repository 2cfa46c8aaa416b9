// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string, so sorting by id sorts by
// creation time.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
