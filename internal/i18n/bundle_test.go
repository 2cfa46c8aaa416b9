// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package i18n

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := NewBundle(Config{DefaultLocale: "en", Supported: []string{"en", "es", "fr"}})
	require.NoError(t, err)
	return b
}

func TestNewBundle_Defaults(t *testing.T) {
	t.Parallel()

	// Embedded catalogs, whose templates use named {{placeholders}}.
	b, err := NewBundle(Config{})
	require.NoError(t, err)
	assert.Equal(t, "en", b.DefaultLocale())
	assert.Equal(t, []string{"en"}, b.Locales())

	assert.True(t, b.Exists("en", "errors.VALIDATION_FAILED"))
	assert.Equal(t, "Validation failed with 1 error",
		b.Translate(context.Background(), "errors.VALIDATION_FAILED", map[string]any{"count": 1}))
}

func TestNewBundle_NamedPlaceholders(t *testing.T) {
	t.Parallel()

	b, err := NewBundle(Config{Catalogs: fstest.MapFS{
		"en.json": {Data: []byte(`{"validation": {"X": "{{field}} must be one of {{options}} {literal}"}}`)},
	}})
	require.NoError(t, err)

	got := b.Translate(context.Background(), "validation.X", map[string]any{"field": "color", "options": "red, blue"})
	assert.Equal(t, "color must be one of red, blue {literal}", got)
}

func TestNewBundle_UnsupportedLocale(t *testing.T) {
	t.Parallel()

	_, err := NewBundle(Config{DefaultLocale: "en", Supported: []string{"en", "tlh"}})
	require.ErrorIs(t, err, ErrUnsupportedLocale)

	_, err = NewBundle(Config{DefaultLocale: "xx"})
	require.ErrorIs(t, err, ErrUnsupportedLocale)
}

func TestNewBundle_BadCatalog(t *testing.T) {
	t.Parallel()

	_, err := NewBundle(Config{Catalogs: fstest.MapFS{
		"en.json": {Data: []byte(`{"errors": {"X": 3}}`)},
	}})
	require.Error(t, err)

	_, err = NewBundle(Config{Catalogs: fstest.MapFS{}})
	require.Error(t, err)
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	b := newTestBundle(t)

	tests := []struct {
		name   string
		locale string
		key    string
		values map[string]any
		want   string
	}{
		{
			name:   "english with interpolation",
			locale: "en",
			key:    "suggestions.min_length",
			values: map[string]any{"min": 3},
			want:   "Enter at least 3 characters",
		},
		{
			name:   "spanish",
			locale: "es",
			key:    "suggestions.field_required",
			want:   "Este campo es obligatorio",
		},
		{
			name:   "french",
			locale: "fr",
			key:    "suggestions.field_required",
			want:   "Ce champ est obligatoire",
		},
		{
			name:   "no locale uses default",
			locale: "",
			key:    "suggestions.email_format",
			want:   "Use the format name@example.com",
		},
		{
			name:   "missing key returns key",
			locale: "en",
			key:    "suggestions.does_not_exist",
			want:   "suggestions.does_not_exist",
		},
		{
			name:   "missing value renders empty",
			locale: "en",
			key:    "suggestions.max_length",
			want:   "Enter at most  characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := WithLocale(context.Background(), tt.locale)
			assert.Equal(t, tt.want, b.Translate(ctx, tt.key, tt.values))
		})
	}
}

func TestTranslate_FallsBackToDefaultLocale(t *testing.T) {
	t.Parallel()

	b, err := NewBundle(Config{
		DefaultLocale: "en",
		Supported:     []string{"en", "es"},
		Catalogs: fstest.MapFS{
			"en.json": {Data: []byte(`{"errors": {"ONLY_EN": "english only"}}`)},
			"es.json": {Data: []byte(`{"errors": {}}`)},
		},
	})
	require.NoError(t, err)

	ctx := WithLocale(context.Background(), "es")
	assert.Equal(t, "english only", b.Translate(ctx, "errors.ONLY_EN", nil))
}

func TestTranslate_Plurals(t *testing.T) {
	t.Parallel()
	b := newTestBundle(t)

	tests := []struct {
		locale string
		count  int
		want   string
	}{
		{"en", 1, "Validation failed with 1 error"},
		{"en", 3, "Validation failed with 3 errors"},
		{"es", 1, "La validación falló con 1 error"},
		{"es", 2, "La validación falló con 2 errores"},
		{"fr", 1, "La validation a échoué avec 1 erreur"},
		{"fr", 5, "La validation a échoué avec 5 erreurs"},
	}

	for _, tt := range tests {
		ctx := WithLocale(context.Background(), tt.locale)
		got := b.Translate(ctx, "errors.VALIDATION_FAILED", map[string]any{"count": tt.count})
		assert.Equal(t, tt.want, got, "%s/%d", tt.locale, tt.count)
	}
}

func TestResolveMessage(t *testing.T) {
	t.Parallel()
	b := newTestBundle(t)
	ctx := WithLocale(context.Background(), "en")

	tests := []struct {
		name string
		req  MessageRequest
		want string
	}{
		{
			name: "translation wins",
			req: MessageRequest{
				TranslationKey:  "validation.BIO_LENGTH",
				FallbackMessage: "String must contain at most 500 character(s)",
				Values:          map[string]any{"max": 500},
			},
			want: "Bio must be at most 500 characters",
		},
		{
			name: "prefer fallback",
			req: MessageRequest{
				TranslationKey:  "validation.BIO_LENGTH",
				FallbackMessage: "custom {{field}}",
				Values:          map[string]any{"field": "bio"},
				PreferFallback:  true,
			},
			want: "custom bio",
		},
		{
			name: "prefer fallback with empty fallback uses translation",
			req: MessageRequest{
				TranslationKey: "validation.PASSWORD_REQUIRED",
				PreferFallback: true,
			},
			want: "Password is required",
		},
		{
			name: "missing key uses fallback",
			req:  MessageRequest{TranslationKey: "validation.NOPE", FallbackMessage: "Invalid input"},
			want: "Invalid input",
		},
		{
			name: "missing key and fallback returns key",
			req:  MessageRequest{TranslationKey: "validation.NOPE"},
			want: "validation.NOPE",
		},
		{
			name: "no key",
			req:  MessageRequest{FallbackMessage: "plain"},
			want: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, b.ResolveMessage(ctx, tt.req))
		})
	}
}

func TestExists(t *testing.T) {
	t.Parallel()
	b := newTestBundle(t)

	assert.True(t, b.Exists("en", "validation.EMAIL_INVALID_FORMAT"))
	assert.True(t, b.Exists("fr", "errors.VALIDATION_FAILED"))
	assert.False(t, b.Exists("en", "validation.MISSING"))
	assert.False(t, b.Exists("de", "validation.EMAIL_INVALID_FORMAT"))
}

// TestCatalogsShareKeys keeps the embedded catalogs in sync.
func TestCatalogsShareKeys(t *testing.T) {
	t.Parallel()

	keysOf := func(name string) map[string]string {
		raw, err := fs.ReadFile(embeddedCatalogs, "locales/"+name)
		require.NoError(t, err)
		var tree map[string]any
		require.NoError(t, json.Unmarshal(raw, &tree))
		out := map[string]string{}
		require.NoError(t, flatten("", tree, out))
		return out
	}

	en := keysOf("en.json")
	for _, other := range []string{"es.json", "fr.json"} {
		cat := keysOf(other)
		for k := range en {
			assert.Contains(t, cat, k, "%s is missing %s", other, k)
		}
		for k := range cat {
			assert.Contains(t, en, k, "%s has extra key %s", other, k)
		}
	}
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		values   map[string]any
		want     string
	}{
		{"no placeholders", "hello", nil, "hello"},
		{"single", "min {{min}}", map[string]any{"min": 8}, "min 8"},
		{"spaces inside braces", "{{ field }}!", map[string]any{"field": "bio"}, "bio!"},
		{"string slice", "one of {{options}}", map[string]any{"options": []string{"a", "b"}}, "one of a, b"},
		{"any slice", "{{keys}}", map[string]any{"keys": []any{"x", 1}}, "x, 1"},
		{"missing", "[{{nope}}]", map[string]any{}, "[]"},
		{"repeated", "{{a}}{{a}}", map[string]any{"a": "z"}, "zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Interpolate(tt.template, tt.values))
		})
	}
}
