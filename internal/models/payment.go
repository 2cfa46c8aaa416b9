// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Payment is a tip or purchase between users. IdempotencyKey is unique so
// a retried request cannot create a second payment.
type Payment struct {
	ID             string    `json:"id" bson:"_id"`
	PayerID        string    `json:"payerId" bson:"payerId"`
	RecipientID    string    `json:"recipientId,omitempty" bson:"recipientId,omitempty"`
	Amount         float64   `json:"amount" bson:"amount"`
	Currency       string    `json:"currency" bson:"currency"`
	Method         string    `json:"method" bson:"method"`
	Note           string    `json:"note,omitempty" bson:"note,omitempty"`
	IdempotencyKey string    `json:"idempotencyKey" bson:"idempotencyKey"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// DocumentID implements store.Document.
func (p Payment) DocumentID() string { return p.ID }
