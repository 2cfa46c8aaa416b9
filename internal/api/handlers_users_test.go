// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/agora/internal/models"
	"github.com/tomtom215/agora/internal/store"
	"github.com/tomtom215/agora/internal/validation"
)

func TestCreateUser_Success(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := validUser("ada_l", "Ada@Example.com")
	body["phone"] = "+14155550123"
	w := env.do(http.MethodPost, "/api/v1/users", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "passwordHash") || strings.Contains(w.Body.String(), "Str0ng") {
		t.Error("response leaks password material")
	}

	var user models.PublicUser
	decodeData(t, w, &user)
	if user.Username != "ada_l" {
		t.Errorf("username = %q, want ada_l", user.Username)
	}

	stored, err := env.cols.Users.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("stored user: %v", err)
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized ada@example.com", stored.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ngPassw0rd")); err != nil {
		t.Errorf("password hash does not match: %v", err)
	}
}

func TestCreateUser_ValidationFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/users", map[string]any{
		"username":    "ad",
		"email":       "not-an-email",
		"password":    "short",
		"dateOfBirth": "1990-04-12",
	}, nil)
	resp := expectError(t, w, http.StatusUnprocessableEntity, ErrCodeValidationFailed)

	if resp.TranslationKey != "errors.VALIDATION_FAILED" {
		t.Errorf("translationKey = %q", resp.TranslationKey)
	}
	if resp.Message != "Validation failed with 3 errors" {
		t.Errorf("message = %q", resp.Message)
	}

	tests := []struct {
		field string
		code  string
		key   string
	}{
		{"username", "too_small", "USERNAME_TOO_SHORT"},
		{"email", "invalid_string", "EMAIL_INVALID_FORMAT"},
		{"password", "too_small", "PASSWORD_WEAK"},
	}
	for _, tt := range tests {
		if got := fieldCode(resp, tt.field); got != tt.code {
			t.Errorf("errors[%s].code = %q, want %q", tt.field, got, tt.code)
		}
		if got := fieldKey(resp, tt.field); got != tt.key {
			t.Errorf("errors[%s].translationKey = %q, want %q", tt.field, got, tt.key)
		}
	}

	if resp.Metadata["source"] != "body" {
		t.Errorf("metadata.source = %v, want body", resp.Metadata["source"])
	}
	summary, ok := resp.Metadata["summary"].(map[string]any)
	if !ok {
		t.Fatalf("metadata.summary missing: %v", resp.Metadata)
	}
	if summary["totalErrors"] != float64(3) {
		t.Errorf("summary.totalErrors = %v, want 3", summary["totalErrors"])
	}
	if resp.RequestID == "" {
		t.Error("requestId missing")
	}
}

func TestCreateUser_RequiredAndUnknownFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := validUser("grace", "grace@example.com")
	delete(body, "password")
	body["isAdmin"] = true

	resp := expectError(t, env.do(http.MethodPost, "/api/v1/users", body, nil),
		http.StatusUnprocessableEntity, ErrCodeValidationFailed)
	if got := fieldCode(resp, "password"); got != "invalid_type" {
		t.Errorf("errors[password].code = %q, want invalid_type", got)
	}
	if got := fieldKey(resp, "password"); got != "PASSWORD_REQUIRED" {
		t.Errorf("errors[password].translationKey = %q, want PASSWORD_REQUIRED", got)
	}

	var unknown bool
	for _, fe := range resp.Errors {
		if fe["code"] == "unrecognized_keys" {
			unknown = true
		}
	}
	if !unknown {
		t.Errorf("expected an unrecognized_keys error, got %v", resp.Errors)
	}
}

func TestCreateUser_Underage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := validUser("young_one", "young@example.com")
	body["dateOfBirth"] = "2024-01-01"
	resp := expectError(t, env.do(http.MethodPost, "/api/v1/users", body, nil),
		http.StatusUnprocessableEntity, ErrCodeValidationFailed)
	if got := fieldKey(resp, "dateOfBirth"); got != "AGE_REQUIREMENT" {
		t.Errorf("errors[dateOfBirth].translationKey = %q, want AGE_REQUIREMENT", got)
	}
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp := expectError(t, env.do(http.MethodPost, "/api/v1/users", `{"username": `, nil),
		http.StatusBadRequest, ErrCodeBadRequest)
	if len(resp.Errors) != 0 {
		t.Errorf("bad request must not carry field errors: %v", resp.Errors)
	}
	if resp.Metadata["reason"] != validation.ReasonMalformedJSON {
		t.Errorf("metadata = %v, want reason %q", resp.Metadata, validation.ReasonMalformedJSON)
	}
	if strings.Contains(fmt.Sprint(resp.Metadata), "unexpected end of JSON input") {
		t.Errorf("metadata leaks decoder text: %v", resp.Metadata)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createUser("linus", "linus@example.com")

	tests := []struct {
		name   string
		body   map[string]any
		fields map[string]string
	}{
		{
			name:   "username taken",
			body:   validUser("linus", "other@example.com"),
			fields: map[string]string{"username": "USERNAME_TAKEN"},
		},
		{
			name:   "email taken ignoring case",
			body:   validUser("torvalds", "LINUS@example.com"),
			fields: map[string]string{"email": "EMAIL_ALREADY_EXISTS"},
		},
		{
			name:   "both taken",
			body:   validUser("linus", "linus@example.com"),
			fields: map[string]string{"username": "USERNAME_TAKEN", "email": "EMAIL_ALREADY_EXISTS"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := expectError(t, env.do(http.MethodPost, "/api/v1/users", tt.body, nil),
				http.StatusConflict, ErrCodeConflict)
			if len(resp.Errors) != len(tt.fields) {
				t.Errorf("errors = %v, want %d entries", resp.Errors, len(tt.fields))
			}
			for field, key := range tt.fields {
				if got := fieldKey(resp, field); got != key {
					t.Errorf("errors[%s].translationKey = %q, want %q", field, got, key)
				}
			}
		})
	}
}

func TestCreateUser_SpanishLocale(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.createUser("maria", "maria@example.com")

	w := env.do(http.MethodPost, "/api/v1/users", validUser("maria", "otra@example.com"),
		map[string]string{"Accept-Language": "es-MX,es;q=0.9,en;q=0.5"})
	resp := expectError(t, w, http.StatusConflict, ErrCodeConflict)
	msg, _ := resp.Errors["username"]["message"].(string)
	if msg != "Este nombre de usuario ya está en uso" {
		t.Errorf("errors[username].message = %q", msg)
	}
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.createUser("hopper", "hopper@example.com")

	t.Run("found", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/users/"+id, nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var user models.PublicUser
		decodeData(t, w, &user)
		if user.ID != id || user.Username != "hopper" {
			t.Errorf("user = %+v", user)
		}
	})

	t.Run("not found", func(t *testing.T) {
		resp := expectError(t, env.do(http.MethodGet, "/api/v1/users/"+models.NewID(), nil, nil),
			http.StatusNotFound, ErrCodeNotFound)
		if resp.Message != "The requested resource was not found" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := expectError(t, env.do(http.MethodGet, "/api/v1/users/not-a-uuid", nil, nil),
			http.StatusUnprocessableEntity, ErrCodeValidationFailed)
		if resp.Metadata["source"] != "params" {
			t.Errorf("metadata.source = %v, want params", resp.Metadata["source"])
		}
		if got := fieldKey(resp, "id"); got != "INVALID_UUID" {
			t.Errorf("errors[id].translationKey = %q, want INVALID_UUID", got)
		}
		if loc := resp.Errors["id"]["location"]; loc != "params" {
			t.Errorf("errors[id].location = %v, want params", loc)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.createUser("margaret", "margaret@example.com")

	t.Run("partial update", func(t *testing.T) {
		w := env.do(http.MethodPatch, "/api/v1/users/"+id+"/profile", map[string]any{
			"bio":     "Apollo guidance software",
			"website": "https://example.com/margaret",
		}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var user models.PublicUser
		decodeData(t, w, &user)
		if user.Profile.Bio != "Apollo guidance software" {
			t.Errorf("bio = %q", user.Profile.Bio)
		}

		w = env.do(http.MethodPatch, "/api/v1/users/"+id+"/profile", map[string]any{"location": "Boston"}, nil)
		decodeData(t, w, &user)
		if user.Profile.Bio != "Apollo guidance software" || user.Profile.Location != "Boston" {
			t.Errorf("absent fields must be kept: %+v", user.Profile)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		resp := expectError(t, env.do(http.MethodPatch, "/api/v1/users/"+id+"/profile", map[string]any{
			"bio":     strings.Repeat("x", 501),
			"website": "not a url",
		}, nil), http.StatusUnprocessableEntity, ErrCodeValidationFailed)
		if got := fieldKey(resp, "bio"); got != "BIO_LENGTH" {
			t.Errorf("errors[bio].translationKey = %q, want BIO_LENGTH", got)
		}
		if got := fieldKey(resp, "website"); got != "WEBSITE_INVALID_URL" {
			t.Errorf("errors[website].translationKey = %q, want WEBSITE_INVALID_URL", got)
		}
	})

	t.Run("invalid id is reported before the body", func(t *testing.T) {
		resp := expectError(t, env.do(http.MethodPatch, "/api/v1/users/nope/profile", map[string]any{"bio": "ok"}, nil),
			http.StatusUnprocessableEntity, ErrCodeValidationFailed)
		if resp.Metadata["source"] != "params" {
			t.Errorf("metadata.source = %v, want params", resp.Metadata["source"])
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		expectError(t, env.do(http.MethodPatch, "/api/v1/users/"+models.NewID()+"/profile", map[string]any{"bio": "ok"}, nil),
			http.StatusNotFound, ErrCodeNotFound)
	})
}

func TestHandlers_ReparseWithoutAttach(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, withoutAttach())

	id := env.createUser("reparse", "reparse@example.com")
	w := env.do(http.MethodGet, "/api/v1/users/"+id, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	found, err := env.cols.Users.List(context.Background(), store.ListOptions{Field: "username", Value: "reparse"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].ID != id {
		t.Errorf("found = %+v, want the registered user", found)
	}
}
