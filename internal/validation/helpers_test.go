// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/agora/internal/i18n"
)

// keyTranslator renders every key as itself so tests can assert which
// catalog entries were requested.
type keyTranslator struct{}

func (keyTranslator) Translate(_ context.Context, key string, _ map[string]any) string {
	return key
}

func (keyTranslator) ResolveMessage(_ context.Context, req i18n.MessageRequest) string {
	return req.TranslationKey
}

// panicTranslator panics for field messages only.
type panicTranslator struct{ keyTranslator }

func (panicTranslator) ResolveMessage(_ context.Context, req i18n.MessageRequest) string {
	if strings.HasPrefix(req.TranslationKey, validationNamespace) {
		panic("catalog exploded")
	}
	return req.TranslationKey
}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

// testBundle returns the embedded catalogs with en, es and fr enabled.
func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	bundleOnce.Do(func() {
		bundle, bundleErr = i18n.NewBundle(i18n.Config{
			DefaultLocale: "en",
			Supported:     []string{"en", "es", "fr"},
		})
	})
	if bundleErr != nil {
		t.Fatalf("NewBundle() error = %v", bundleErr)
	}
	return bundle
}

func enCtx() context.Context {
	return i18n.WithLocale(context.Background(), "en")
}
