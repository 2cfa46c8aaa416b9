// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/agora/internal/i18n"
)

const (
	// rootKey is the error key used for object-level issues.
	rootKey = "__root__"

	// noValue is the display value of object-level issues.
	noValue = "N/A"

	validationNamespace = "validation."

	// MessageKeyFailed is the catalog key of the envelope message.
	MessageKeyFailed = "errors.VALIDATION_FAILED"
)

// FieldError is the client-facing rendering of one Issue.
type FieldError struct {
	Message        string         `json:"message"`
	TranslationKey string         `json:"translationKey"`
	Path           []string       `json:"path"`
	Code           Code           `json:"code"`
	Location       Source         `json:"location"`
	Type           string         `json:"type"`
	Details        map[string]any `json:"details"`
	Severity       Severity       `json:"severity"`
	Suggestions    []string       `json:"suggestions"`
}

// Result is the output of one formatting pass.
type Result struct {
	Message string                `json:"message"`
	Errors  map[string]FieldError `json:"errors"`
	Summary Summary               `json:"summary"`
}

// Formatter turns schema issues into localized field errors.
// It holds no per-request state and is safe for concurrent use.
type Formatter struct {
	tr        Translator
	suggester *Suggester
}

// NewFormatter returns a Formatter rendering through tr.
func NewFormatter(tr Translator) *Formatter {
	return &Formatter{tr: tr, suggester: NewSuggester(tr)}
}

// Format renders issues in input order. Repeated paths get distinct keys
// (path, path[1], path[2], ...). payload is the original input of source,
// used to show the offending value in messages; it may be nil.
func (f *Formatter) Format(ctx context.Context, issues []Issue, source Source, payload any) Result {
	errs := make(map[string]FieldError, len(issues))
	seen := make(map[string]int, len(issues))
	sb := newSummaryBuilder()

	for _, issue := range issues {
		pathKey := joinPath(issue.Path)
		n := seen[pathKey]
		seen[pathKey] = n + 1

		key := pathKey
		if n > 0 {
			key = fmt.Sprintf("%s[%d]", pathKey, n)
		}

		fe := f.formatIssue(ctx, issue, source, payload)
		errs[key] = fe
		sb.add(pathKey, fe)
	}

	summary := sb.build()
	message := f.tr.ResolveMessage(ctx, i18n.MessageRequest{
		TranslationKey:  MessageKeyFailed,
		FallbackMessage: "Validation failed",
		Values:          map[string]any{"count": summary.TotalErrors},
	})

	return Result{Message: message, Errors: errs, Summary: summary}
}

// formatIssue renders a single issue. A panic while rendering one issue
// yields a minimal error built from the issue itself so the rest of the
// pass is unaffected.
func (f *Formatter) formatIssue(ctx context.Context, issue Issue, source Source, payload any) (fe FieldError) {
	translationKey := ResolveKey(issue.Code, issue.Subtype, issue.Path)
	details := issue.details()

	defer func() {
		if r := recover(); r != nil {
			fe = FieldError{
				Message:        fallbackMessage(issue),
				TranslationKey: translationKey,
				Path:           clonePath(issue.Path),
				Code:           issue.Code,
				Location:       source,
				Type:           valueType(issue),
				Details:        details,
				Severity:       Classify(issue.Code, issue.Path),
				Suggestions:    []string{},
			}
		}
	}()

	values := interpolationValues(issue, details, payload)
	message := f.tr.ResolveMessage(ctx, i18n.MessageRequest{
		TranslationKey:  validationNamespace + translationKey,
		FallbackMessage: fallbackMessage(issue),
		Values:          values,
	})

	return FieldError{
		Message:        message,
		TranslationKey: translationKey,
		Path:           clonePath(issue.Path),
		Code:           issue.Code,
		Location:       source,
		Type:           valueType(issue),
		Details:        details,
		Severity:       Classify(issue.Code, issue.Path),
		Suggestions:    f.suggester.Suggest(ctx, issue),
	}
}

// interpolationValues builds the values passed to message templates.
// minimum and maximum are exposed as min and max.
func interpolationValues(issue Issue, details map[string]any, payload any) map[string]any {
	field := issue.Field()
	if field == "" {
		field = "root"
	}
	values := map[string]any{
		"field": field,
		"value": DisplayValue(payload, issue.Path),
		"path":  strings.Join(issue.Path, "."),
	}
	for k, v := range details {
		switch k {
		case "message", "path", "code", "fatal":
			continue
		case "minimum":
			values["min"] = v
		case "maximum":
			values["max"] = v
		default:
			values[k] = v
		}
	}
	return values
}

func fallbackMessage(issue Issue) string {
	if issue.Message != "" {
		return issue.Message
	}
	if field := issue.Field(); field != "" {
		return field + " is invalid"
	}
	return "Invalid input"
}

// valueType reports the kind of value the rule applied to, when the
// metadata says so, and the code otherwise.
func valueType(issue Issue) string {
	switch m := issue.Meta.(type) {
	case BoundMeta:
		if m.Type != "" {
			return string(m.Type)
		}
	case TypeMeta:
		if m.Expected != "" {
			return m.Expected
		}
	}
	if issue.Code == CodeInvalidString {
		return "string"
	}
	return string(issue.Code)
}

func joinPath(path []string) string {
	if len(path) == 0 {
		return rootKey
	}
	return strings.Join(path, ".")
}

func clonePath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}

// DisplayValue returns the value found at path inside payload as a string.
// It falls back to the last path segment when the value is missing or
// null, and to "N/A" for an empty path. It never panics.
func DisplayValue(payload any, path []string) (out string) {
	if len(path) == 0 {
		return noValue
	}
	fallback := path[len(path)-1]

	defer func() {
		if recover() != nil {
			out = fallback
		}
	}()

	v, ok := lookup(payload, path)
	if !ok || v == nil {
		return fallback
	}
	return stringify(v)
}

// lookup walks payload along path. Map keys and slice indexes are both
// given as strings.
func lookup(payload any, path []string) (any, bool) {
	cur := payload
	for _, seg := range path {
		switch node := cur.(type) {
		case nil:
			return nil, false
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			v, ok := reflectStep(node, seg)
			if !ok {
				return nil, false
			}
			cur = v
		}
	}
	return cur, true
}

func reflectStep(node any, seg string) (any, bool) {
	rv := reflect.ValueOf(node)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
