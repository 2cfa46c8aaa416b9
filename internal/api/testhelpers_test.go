// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/i18n"
	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/validation"
)

// testEnv is a fully wired router over an in-memory store.
type testEnv struct {
	t       *testing.T
	router  http.Handler
	cols    *store.Collections
	backend store.Backend
}

type envOption func(*envOptions)

type envOptions struct {
	mw      *ChiMiddlewareConfig
	attach  bool
	backend store.Backend
}

func withMiddleware(fn func(*ChiMiddlewareConfig)) envOption {
	return func(o *envOptions) { fn(o.mw) }
}

func withoutAttach() envOption {
	return func(o *envOptions) { o.attach = false }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	o := &envOptions{mw: DefaultChiMiddlewareConfig(), attach: true}
	o.mw.RateLimitDisabled = true
	for _, opt := range opts {
		opt(o)
	}

	badger, err := store.OpenBadger(config.BadgerConfig{InMemory: true})
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = badger.Close(ctx) })
	cols, err := store.OpenCollections(ctx, badger)
	if err != nil {
		t.Fatalf("open collections: %v", err)
	}

	var backend store.Backend = badger
	if o.backend != nil {
		backend = o.backend
	}

	bundle, err := i18n.NewBundle(i18n.Config{DefaultLocale: "en", Supported: []string{"en", "es", "fr"}})
	if err != nil {
		t.Fatalf("new bundle: %v", err)
	}

	cfg := &config.Config{Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost}}
	formatter := validation.NewFormatter(bundle)
	responder := NewResponder(bundle)
	invoker := validation.NewInvoker(formatter, responder.Error, validation.WithAttachValidated(o.attach))

	handler := NewHandler(HandlerDeps{
		Collections: cols,
		Backend:     backend,
		Config:      cfg,
		Invoker:     invoker,
		Formatter:   formatter,
		Responder:   responder,
		Version:     "test",
	})
	router := NewRouter(handler, responder, invoker, bundle, o.mw)

	return &testEnv{t: t, router: router.SetupChi(), cols: cols, backend: backend}
}

// do sends a request. body may be a string (sent verbatim) or any value
// (JSON encoded).
func (e *testEnv) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createUser registers a user through the API and returns its id.
func (e *testEnv) createUser(username, email string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/v1/users", validUser(username, email), nil)
	if w.Code != http.StatusCreated {
		e.t.Fatalf("create user %s: status %d: %s", username, w.Code, w.Body.String())
	}
	var user models.PublicUser
	decodeData(e.t, w, &user)
	return user.ID
}

func validUser(username, email string) map[string]any {
	return map[string]any{
		"username":    username,
		"email":       email,
		"password":    "Str0ngPassw0rd",
		"dateOfBirth": "1990-04-12",
	}
}

// response is the union of the success and error envelopes.
type response struct {
	Status         string                    `json:"status"`
	Data           json.RawMessage           `json:"data"`
	Message        string                    `json:"message"`
	TranslationKey string                    `json:"translationKey"`
	Code           string                    `json:"code"`
	StatusCode     int                       `json:"statusCode"`
	Errors         map[string]map[string]any `json:"errors"`
	Metadata       map[string]any            `json:"metadata"`
	RequestID      string                    `json:"requestId"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	resp := decode(t, w)
	if resp.Status != models.StatusSuccess {
		t.Fatalf("status = %q, want success: %s", resp.Status, w.Body.String())
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

// expectError asserts the error envelope and returns it.
func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) response {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d: %s", w.Code, status, w.Body.String())
	}
	resp := decode(t, w)
	if resp.Status != models.StatusError {
		t.Errorf("envelope status = %q, want error", resp.Status)
	}
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
	if resp.StatusCode != status {
		t.Errorf("statusCode = %d, want %d", resp.StatusCode, status)
	}
	if resp.Message == "" {
		t.Error("message is empty")
	}
	return resp
}

// fieldCode returns errors[field].code.
func fieldCode(resp response, field string) string {
	fe, ok := resp.Errors[field]
	if !ok {
		return ""
	}
	s, _ := fe["code"].(string)
	return s
}

func fieldKey(resp response, field string) string {
	fe, ok := resp.Errors[field]
	if !ok {
		return ""
	}
	s, _ := fe["translationKey"].(string)
	return s
}
