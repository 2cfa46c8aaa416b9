// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/validation"
)

// SendMessage stores a direct message between two existing users.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	req, err := input[SendMessageRequest](h, r, validation.SourceBody, sendMessageSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	if !h.checkUsers(w, r, map[string]string{"senderId": req.SenderID, "recipientId": req.RecipientID}) {
		return
	}

	msg := models.Message{
		ID:          models.NewID(),
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.Messages.Insert(r.Context(), msg); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, r, msg)
}

// CreateGroup creates a group owned by an existing user.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	req, err := input[CreateGroupRequest](h, r, validation.SourceBody, createGroupSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	if !h.checkUsers(w, r, map[string]string{"ownerId": req.OwnerID}) {
		return
	}

	group := models.Group{
		ID:          models.NewID(),
		Name:        req.Name,
		Privacy:     req.Privacy,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.Groups.Insert(r.Context(), group); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, r, group)
}

// CreateEvent schedules an event, optionally inside an existing group.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := input[CreateEventRequest](h, r, validation.SourceBody, createEventSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	if req.GroupID != "" {
		ok, err := exists(ctx, h.store.Groups, req.GroupID)
		if err != nil {
			h.responder.Error(w, r, err)
			return
		}
		if !ok {
			fields := map[string]string{"groupId": req.GroupID}
			h.responder.Error(w, r, h.unknownReferences(ctx, fields, []string{"groupId"}))
			return
		}
	}

	event := models.Event{
		ID:        models.NewID(),
		Title:     req.Title,
		GroupID:   req.GroupID,
		Location:  req.Location,
		StartsAt:  req.StartsAt.UTC(),
		EndsAt:    req.EndsAt.UTC(),
		Capacity:  req.Capacity,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Events.Insert(ctx, event); err != nil {
		h.responder.Error(w, r, err)
		return
	}
	h.responder.Created(w, r, event)
}
