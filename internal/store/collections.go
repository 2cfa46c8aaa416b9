// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package store

import (
	"context"
	"fmt"

	"github.com/tomtom215/agora/internal/models"
)

// Collections groups the repositories the API works with.
type Collections struct {
	Users    Repository[models.User]
	Posts    Repository[models.Post]
	Messages Repository[models.Message]
	Groups   Repository[models.Group]
	Events   Repository[models.Event]
	Payments Repository[models.Payment]
}

// OpenCollections creates every repository with its indexes on b.
func OpenCollections(ctx context.Context, b Backend) (*Collections, error) {
	var (
		c   Collections
		err error
	)

	c.Users, err = NewRepository(ctx, b, models.CollectionUsers,
		Index[models.User]{Field: "username", Unique: true, Value: func(u models.User) string { return u.Username }},
		Index[models.User]{Field: "email", Unique: true, Value: func(u models.User) string { return u.Email }},
	)
	if err != nil {
		return nil, fmt.Errorf("open users: %w", err)
	}

	c.Posts, err = NewRepository(ctx, b, models.CollectionPosts,
		Index[models.Post]{Field: "authorId", Value: func(p models.Post) string { return p.AuthorID }},
	)
	if err != nil {
		return nil, fmt.Errorf("open posts: %w", err)
	}

	c.Messages, err = NewRepository(ctx, b, models.CollectionMessages,
		Index[models.Message]{Field: "senderId", Value: func(m models.Message) string { return m.SenderID }},
		Index[models.Message]{Field: "recipientId", Value: func(m models.Message) string { return m.RecipientID }},
	)
	if err != nil {
		return nil, fmt.Errorf("open messages: %w", err)
	}

	c.Groups, err = NewRepository(ctx, b, models.CollectionGroups,
		Index[models.Group]{Field: "ownerId", Value: func(g models.Group) string { return g.OwnerID }},
	)
	if err != nil {
		return nil, fmt.Errorf("open groups: %w", err)
	}

	c.Events, err = NewRepository(ctx, b, models.CollectionEvents,
		Index[models.Event]{Field: "groupId", Value: func(e models.Event) string { return e.GroupID }},
	)
	if err != nil {
		return nil, fmt.Errorf("open events: %w", err)
	}

	c.Payments, err = NewRepository(ctx, b, models.CollectionPayments,
		Index[models.Payment]{Field: "idempotencyKey", Unique: true, Value: func(p models.Payment) string { return p.IdempotencyKey }},
		Index[models.Payment]{Field: "payerId", Value: func(p models.Payment) string { return p.PayerID }},
	)
	if err != nil {
		return nil, fmt.Errorf("open payments: %w", err)
	}

	return &c, nil
}
