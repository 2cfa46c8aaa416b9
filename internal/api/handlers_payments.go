// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/validation"
)

// CreatePayment records a payment. The Idempotency-Key header makes the
// call safe to retry: replaying a key returns the stored payment with
// 200 instead of creating a second one. A key reused by another payer
// is a conflict.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	headers, err := input[PaymentHeaders](h, r, validation.SourceHeaders, paymentHeaderSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	body, err := input[map[string]any](h, r, validation.SourceBody, paymentSchema)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	req, err := decodePayment(body)
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}

	prior, err := h.store.Payments.List(ctx, store.ListOptions{Limit: 1, Field: "idempotencyKey", Value: headers.IdempotencyKey})
	if err != nil {
		h.responder.Error(w, r, err)
		return
	}
	if len(prior) > 0 {
		if prior[0].PayerID != req.PayerID {
			h.responder.Error(w, r, store.ErrDuplicate)
			return
		}
		logging.Ctx(ctx).Debug().Str("payment_id", prior[0].ID).Msg("Idempotent payment replay")
		h.responder.Success(w, r, prior[0])
		return
	}

	refs := map[string]string{"payerId": req.PayerID}
	if req.RecipientID != "" {
		refs["recipientId"] = req.RecipientID
	}
	if !h.checkUsers(w, r, refs) {
		return
	}

	payment := models.Payment{
		ID:             models.NewID(),
		PayerID:        req.PayerID,
		RecipientID:    req.RecipientID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Method:         req.Method,
		Note:           req.Note,
		IdempotencyKey: headers.IdempotencyKey,
		Status:         models.PaymentPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.store.Payments.Insert(ctx, payment); err != nil {
		h.responder.Error(w, r, err)
		return
	}

	logging.Ctx(ctx).Info().
		Str("payment_id", payment.ID).
		Str("currency", payment.Currency).
		Msg("Payment recorded")
	h.responder.Created(w, r, payment)
}

// decodePayment copies a schema-validated body into the typed request.
func decodePayment(body map[string]any) (CreatePaymentRequest, error) {
	var req CreatePaymentRequest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &req,
		TagName: "json",
	})
	if err != nil {
		return req, fmt.Errorf("build payment decoder: %w", err)
	}
	if err := dec.Decode(body); err != nil {
		return req, fmt.Errorf("decode payment: %w", err)
	}
	return req, nil
}
