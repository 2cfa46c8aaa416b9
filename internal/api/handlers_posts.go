// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/validation"
)

// CreatePost publishes a post for an existing author.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, err := input[CreatePostRequest](h, r, validation.SourceBody, createPostSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	if !h.checkUsers(w, r, map[string]string{"authorId": req.AuthorID}) {
		return
	}

	post := models.Post{
		ID:         models.NewID(),
		AuthorID:   req.AuthorID,
		Content:    req.Content,
		Visibility: req.Visibility,
		Tags:       req.Tags,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.store.Posts.Insert(r.Context(), post); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, r, post)
}

// ListPosts pages through posts in creation order, optionally filtered
// by author.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q, err := input[ListPostsQuery](h, r, validation.SourceQuery, listPostsSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	opts := store.ListOptions{Limit: q.Limit, Offset: q.Offset}
	if opts.Limit == 0 {
		opts.Limit = store.DefaultListLimit
	}
	if q.AuthorID != "" {
		opts.Field, opts.Value = "authorId", q.AuthorID
	}

	posts, err := h.store.Posts.List(r.Context(), opts)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Success(w, r, models.ListResponse[models.Post]{
		Items:  posts,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}
