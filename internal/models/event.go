// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "time"

// Event is a scheduled gathering, optionally tied to a group.
type Event struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	GroupID   string    `json:"groupId,omitempty" bson:"groupId,omitempty"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	StartsAt  time.Time `json:"startsAt" bson:"startsAt"`
	EndsAt    time.Time `json:"endsAt" bson:"endsAt"`
	Capacity  int       `json:"capacity" bson:"capacity"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// DocumentID implements store.Document.
func (e Event) DocumentID() string { return e.ID }
