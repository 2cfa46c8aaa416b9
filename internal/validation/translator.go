// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"

	"github.com/tomtom215/agora/internal/i18n"
)

// Translator is the translation service the pipeline renders messages
// and hints through. *i18n.Bundle satisfies it. Implementations must not
// panic and must fall back to the supplied message when a key is missing.
type Translator interface {
	Translate(ctx context.Context, key string, values map[string]any) string
	ResolveMessage(ctx context.Context, req i18n.MessageRequest) string
}
