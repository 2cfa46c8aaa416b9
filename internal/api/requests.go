// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	_ "embed"
	"time"

	"github.com/tomtom215/agora/internal/validation"
)

// CreateUserRequest is the registration body.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30,username"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=128,password_strength"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02,past_date,min_age=13"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// UserIDParams identifies a user in the URL.
type UserIDParams struct {
	ID string `json:"id" validate:"required,uuid"`
}

// UpdateProfileRequest patches profile fields. Absent fields are left
// unchanged; an empty string clears the field.
type UpdateProfileRequest struct {
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Website  *string `json:"website" validate:"omitempty,max=200,url"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	Cover    *string `json:"cover" validate:"omitempty,url"`
}

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	AuthorID   string   `json:"authorId" validate:"required,uuid"`
	Content    string   `json:"content" validate:"required,min=1,max=5000"`
	Visibility string   `json:"visibility" validate:"required,oneof=public friends private"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=30"`
}

// ListPostsQuery pages through posts.
type ListPostsQuery struct {
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset   int    `json:"offset" validate:"min=0"`
	AuthorID string `json:"authorId" validate:"omitempty,uuid"`
}

// SendMessageRequest is the body of POST /messages.
type SendMessageRequest struct {
	SenderID    string `json:"senderId" validate:"required,uuid"`
	RecipientID string `json:"recipientId" validate:"required,uuid,nefield=SenderID"`
	Body        string `json:"body" validate:"required,min=1,max=2000"`
}

// CreateGroupRequest is the body of POST /groups.
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=80"`
	Privacy     string `json:"privacy" validate:"required,oneof=open closed secret"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	OwnerID     string `json:"ownerId" validate:"required,uuid"`
}

// CreateEventRequest is the body of POST /events. Times are RFC 3339.
type CreateEventRequest struct {
	Title    string    `json:"title" validate:"required,min=3,max=120"`
	GroupID  string    `json:"groupId,omitempty" validate:"omitempty,uuid"`
	Location string    `json:"location,omitempty" validate:"max=100"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
	Capacity int       `json:"capacity" validate:"required,min=1,max=10000"`
}

// CreatePaymentRequest is the body of POST /payments. It is validated
// by the JSON Schema in schemas/payment.schema.json and then decoded.
type CreatePaymentRequest struct {
	PayerID     string  `json:"payerId"`
	RecipientID string  `json:"recipientId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Note        string  `json:"note"`
}

// PaymentHeaders are the headers POST /payments requires. Header names
// are lower-cased by the invoker.
type PaymentHeaders struct {
	IdempotencyKey string `json:"idempotency-key" validate:"required,uuid"`
}

//go:embed schemas/payment.schema.json
var paymentSchemaDoc []byte

// Request schemas, built once and shared by every request.
var (
	createUserSchema    = validation.Struct[CreateUserRequest](validation.Strict())
	userIDSchema        = validation.Struct[UserIDParams]()
	updateProfileSchema = validation.Struct[UpdateProfileRequest](validation.Strict())
	createPostSchema    = validation.Struct[CreatePostRequest](validation.Strict())
	listPostsSchema     = validation.Struct[ListPostsQuery](validation.WeakTyping(), validation.Strict())
	sendMessageSchema   = validation.Struct[SendMessageRequest](validation.Strict())
	createGroupSchema   = validation.Struct[CreateGroupRequest](validation.Strict())
	createEventSchema   = validation.Struct[CreateEventRequest](validation.Strict())
	paymentSchema       = validation.MustCompileJSONSchema("payment.schema.json", paymentSchemaDoc)
	paymentHeaderSchema = validation.Struct[PaymentHeaders](validation.WeakTyping())
)
