// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID          string    `json:"id" bson:"_id"`
	SenderID    string    `json:"senderId" bson:"senderId"`
	RecipientID string    `json:"recipientId" bson:"recipientId"`
	Body        string    `json:"body" bson:"body"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// DocumentID implements store.Document.
func (m Message) DocumentID() string { return m.ID }
