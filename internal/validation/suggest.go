// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"
	"strings"
)

const suggestionNamespace = "suggestions."

// hint is one suggestion key with its interpolation values.
type hint struct {
	key    string
	values map[string]any
}

// Suggester produces localized remediation hints for an issue.
type Suggester struct {
	tr Translator
}

// NewSuggester returns a Suggester that renders hints through tr.
func NewSuggester(tr Translator) *Suggester {
	return &Suggester{tr: tr}
}

// Suggest returns the localized hints for issue, in display order.
// The result is never nil.
func (s *Suggester) Suggest(ctx context.Context, issue Issue) []string {
	hints := selectHints(issue)
	out := make([]string, 0, len(hints))
	for _, h := range hints {
		out = append(out, s.tr.Translate(ctx, suggestionNamespace+h.key, h.values))
	}
	return out
}

// selectHints decides which hint keys apply to issue. It does no
// translation so it can be tested on its own.
func selectHints(issue Issue) []hint {
	field := strings.ToLower(issue.Field())

	switch issue.Code {
	case CodeInvalidString:
		return stringHints(issue.Subtype, field)
	case CodeTooSmall:
		return tooSmallHints(issue, field)
	case CodeTooBig:
		return tooBigHints(issue, field)
	case CodeInvalidType:
		expected := "value"
		if m, ok := issue.Meta.(TypeMeta); ok && m.Expected != "" {
			expected = m.Expected
		}
		return []hint{{key: "expected_type", values: map[string]any{"expected": expected}}}
	case CodeInvalidEnumValue:
		if m, ok := issue.Meta.(EnumMeta); ok && len(m.Options) > 0 {
			return []hint{{key: "enum_options", values: map[string]any{"options": strings.Join(m.Options, ", ")}}}
		}
		return []hint{{key: "enum_generic"}}
	case CodeInvalidDate:
		if strings.Contains(field, "birth") {
			return []hint{{key: "birth_date_format"}}
		}
		return []hint{{key: "date_format"}}
	case CodeCustom, CodeInvalidLiteral, CodeInvalidUnion, CodeInvalidDiscriminator,
		CodeUnrecognizedKeys, CodeInvalidArguments, CodeInvalidReturnType,
		CodeInvalidIntersection, CodeNotMultipleOf, CodeNotFinite:
		return []hint{{key: "validation_failed"}}
	default:
		return []hint{{key: "field_required"}}
	}
}

func stringHints(subtype Subtype, field string) []hint {
	switch subtype {
	case SubtypeEmail:
		return []hint{{key: "email_format"}}
	case SubtypeURL:
		return []hint{{key: "url_format"}}
	case SubtypeUUID:
		return []hint{{key: "uuid_format"}}
	}
	switch {
	case strings.Contains(field, "phone"), strings.Contains(field, "mobile"):
		return []hint{{key: "phone_format"}}
	case strings.Contains(field, "date"), strings.Contains(field, "birth"):
		return []hint{{key: "date_format"}}
	}
	return nil
}

// Fields whose size bounds are always string lengths. Their hints apply
// even when the bound carries no type.
var (
	minLengthFields = map[string]bool{"password": true, "username": true}
	maxLengthFields = map[string]bool{"bio": true, "website": true, "location": true}
)

func tooSmallHints(issue Issue, field string) []hint {
	bound, _ := issue.Meta.(BoundMeta)
	values := map[string]any{"min": bound.Limit}

	stringBound := bound.Type == SizeString || (bound.Type == "" && minLengthFields[field])
	if !stringBound {
		return []hint{{key: "min_value", values: values}}
	}
	switch field {
	case "password":
		return []hint{
			{key: "password_min_length", values: values},
			{key: "password_complexity"},
		}
	case "username":
		return []hint{{key: "username_min_length", values: values}}
	default:
		return []hint{{key: "min_length", values: values}}
	}
}

func tooBigHints(issue Issue, field string) []hint {
	bound, _ := issue.Meta.(BoundMeta)
	values := map[string]any{"max": bound.Limit}

	stringBound := bound.Type == SizeString || (bound.Type == "" && maxLengthFields[field])
	if !stringBound {
		return []hint{{key: "max_value", values: values}}
	}
	switch field {
	case "bio":
		return []hint{{key: "bio_max_length", values: values}}
	case "website":
		return []hint{{key: "website_max_length", values: values}}
	case "location":
		return []hint{{key: "location_max_length", values: values}}
	default:
		return []hint{{key: "max_length", values: values}}
	}
}
