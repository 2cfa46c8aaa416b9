// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package models

import "time"

// Collection names.
const (
	CollectionUsers    = "users"
	CollectionPosts    = "posts"
	CollectionMessages = "messages"
	CollectionGroups   = "groups"
	CollectionEvents   = "events"
	CollectionPayments = "payments"
)

// User is a registered account.
//
// PasswordHash is persisted but never rendered to clients; handlers return
// User.Public() instead of the document itself.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"passwordHash" bson:"passwordHash"`
	DateOfBirth  string    `json:"dateOfBirth" bson:"dateOfBirth"` // YYYY-MM-DD
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Profile      Profile   `json:"profile" bson:"profile"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Profile is the user-editable part of an account.
type Profile struct {
	Bio      string `json:"bio,omitempty" bson:"bio,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Avatar   string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Cover    string `json:"cover,omitempty" bson:"cover,omitempty"`
}

// PublicUser is the client view of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentID implements store.Document.
func (u User) DocumentID() string { return u.ID }

// Public returns the fields safe to show to other users.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
	}
}
