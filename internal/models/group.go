// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "time"

// Group privacy values.
const (
	PrivacyOpen   = "open"
	PrivacyClosed = "closed"
	PrivacySecret = "secret"
)

// Group is a community users can join.
type Group struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Privacy     string    `json:"privacy" bson:"privacy"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	OwnerID     string    `json:"ownerId" bson:"ownerId"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// DocumentID implements store.Document.
func (g Group) DocumentID() string { return g.ID }
