// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/validation"
)

// CreateUser registers a user.
//
// Username and email must be unused. A taken value is reported as 409
// with a field error per taken field (USERNAME_TAKEN, EMAIL_ALREADY_EXISTS).
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := input[CreateUserRequest](h, r, validation.SourceBody, createUserSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	req.Email = normalizeEmail(req.Email)

	taken, err := h.takenFields(ctx, req.Username, req.Email)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	if len(taken) > 0 {
		h.responder.Error(w, r, h.conflict(ctx, req, taken))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost())
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           models.NewID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		DateOfBirth:  req.DateOfBirth,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.store.Users.Insert(ctx, user); err != nil {
		// A concurrent registration won the unique index.
		h.responder.Error(w, r, err)
		return
	}

	logging.Ctx(ctx).Info().
		Str("user_id", user.ID).
		Str("username", logging.SanitizeUsername(user.Username)).
		Msg("User registered")
	h.responder.Created(w, r, user.Public())
}

// takenFields returns the registration fields already used by another user.
func (h *Handler) takenFields(ctx context.Context, username, email string) ([]string, error) {
	var taken []string
	for _, f := range []struct{ field, value string }{
		{"username", username},
		{"email", email},
	} {
		found, err := h.store.Users.List(ctx, store.ListOptions{Limit: 1, Field: f.field, Value: f.value})
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			taken = append(taken, f.field)
		}
	}
	return taken, nil
}

// conflict formats taken fields as custom issues. The resolver maps them
// to USERNAME_TAKEN and EMAIL_ALREADY_EXISTS.
func (h *Handler) conflict(ctx context.Context, req CreateUserRequest, taken []string) error {
	issues := make(validation.Issues, 0, len(taken))
	for _, field := range taken {
		issues = append(issues, validation.Issue{
			Code:    validation.CodeCustom,
			Path:    []string{field},
			Message: "Already in use",
			Meta:    validation.CustomMeta{Params: map[string]any{"rule": "unique"}},
		})
	}
	payload := map[string]any{"username": req.Username, "email": req.Email}
	return fieldConflict(h.formatter.Format(ctx, issues, validation.SourceBody, payload), validation.SourceBody)
}

func (h *Handler) bcryptCost() int {
	if h.config != nil && h.config.Security.BcryptCost != 0 {
		return h.config.Security.BcryptCost
	}
	return bcrypt.DefaultCost
}

// GetUser returns the public view of a user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	params, err := input[UserIDParams](h, r, validation.SourceParams, userIDSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	user, err := h.store.Users.Get(r.Context(), params.ID)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Success(w, r, user.Public())
}

// UpdateProfile patches the profile of a user. The id comes from the
// URL and the changes from the body; both are validated together.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := input[UserIDParams](h, r, validation.SourceParams, userIDSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	req, err := input[UpdateProfileRequest](h, r, validation.SourceBody, updateProfileSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	user, err := h.store.Users.Get(ctx, params.ID)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	req.apply(&user.Profile)
	user.UpdatedAt = time.Now().UTC()
	if err := h.store.Users.Replace(ctx, user); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Success(w, r, user.Public())
}

func (req UpdateProfileRequest) apply(p *models.Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Bio, req.Bio)
	set(&p.Website, req.Website)
	set(&p.Location, req.Location)
	set(&p.Avatar, req.Avatar)
	set(&p.Cover, req.Cover)
}
