// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "time"

// Post visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// Post is a status update on a user's timeline.
type Post struct {
	ID         string    `json:"id" bson:"_id"`
	AuthorID   string    `json:"authorId" bson:"authorId"`
	Content    string    `json:"content" bson:"content"`
	Visibility string    `json:"visibility" bson:"visibility"`
	Tags       []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// DocumentID implements store.Document.
func (p Post) DocumentID() string { return p.ID }
