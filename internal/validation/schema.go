// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Schema validates raw request data. On success Parse returns the parsed
// value; on failure it returns Issues. Any other error is treated as a
// pipeline failure rather than a validation failure.
type Schema interface {
	Parse(ctx context.Context, input any) (any, error)
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc func(ctx context.Context, input any) (any, error)

// Parse implements Schema.
func (f SchemaFunc) Parse(ctx context.Context, input any) (any, error) {
	return f(ctx, input)
}

// StructSchema decodes generic input into T with mapstructure and then
// applies T's `validate` tags.
type StructSchema[T any] struct {
	weak   bool
	strict bool
}

// StructOption configures a StructSchema.
type StructOption func(*structOptions)

type structOptions struct {
	weak   bool
	strict bool
}

// WeakTyping converts strings to numbers and booleans while decoding.
// Use it for query, params and headers, which only carry strings.
func WeakTyping() StructOption {
	return func(o *structOptions) { o.weak = true }
}

// Strict reports keys that T does not declare as unrecognized_keys.
func Strict() StructOption {
	return func(o *structOptions) { o.strict = true }
}

// Struct returns a schema for T.
func Struct[T any](opts ...StructOption) *StructSchema[T] {
	var o structOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &StructSchema[T]{weak: o.weak, strict: o.strict}
}

// Parse implements Schema. The returned value has type T.
func (s *StructSchema[T]) Parse(ctx context.Context, input any) (any, error) {
	var out T

	obj, ok := input.(map[string]any)
	if !ok {
		return nil, Issues{{
			Code:    CodeInvalidType,
			Message: "Expected object, received " + jsonKind(input),
			Meta:    TypeMeta{Expected: "object", Received: jsonKind(input)},
		}}
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		Metadata:         &md,
		TagName:          "json",
		WeaklyTypedInput: s.weak,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}

	var issues Issues
	if err := dec.Decode(obj); err != nil {
		var derr *mapstructure.Error
		if !errors.As(err, &derr) {
			return nil, fmt.Errorf("decode input: %w", err)
		}
		issues = append(issues, decodeIssues(derr.Errors)...)
	}

	if s.strict && len(md.Unused) > 0 {
		keys := append([]string(nil), md.Unused...)
		sort.Strings(keys)
		issues = append(issues, Issue{
			Code:    CodeUnrecognizedKeys,
			Message: "Unrecognized key(s) in object: " + strings.Join(keys, ", "),
			Meta:    KeysMeta{Keys: keys},
		})
	}

	if err := GetValidator().StructCtx(ctx, &out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate input: %w", err)
		}
		issues = append(issues, fieldIssues(verrs, issues)...)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// fieldIssues converts validator errors, skipping fields that already
// failed to decode.
func fieldIssues(verrs validator.ValidationErrors, decoded Issues) Issues {
	failed := make(map[string]struct{}, len(decoded))
	for _, is := range decoded {
		failed[strings.Join(is.Path, ".")] = struct{}{}
	}

	out := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		is := issueFromFieldError(fe)
		if _, dup := failed[strings.Join(is.Path, ".")]; dup {
			continue
		}
		out = append(out, is)
	}
	return out
}

// issueFromFieldError maps one validator tag failure onto the issue codes.
func issueFromFieldError(fe validator.FieldError) Issue {
	is := Issue{
		Path:    namespacePath(fe.Namespace()),
		Message: defaultMessage(fe),
	}

	switch tag := fe.Tag(); tag {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		is.Code = CodeInvalidType
		is.Meta = TypeMeta{Expected: typeName(fe.Type()), Received: "undefined"}

	case "min", "gte":
		is.Code = CodeTooSmall
		is.Meta = BoundMeta{Limit: paramNumber(fe.Param()), Type: sizeType(fe), Inclusive: true}
	case "gt":
		is.Code = CodeTooSmall
		is.Meta = BoundMeta{Limit: paramNumber(fe.Param()), Type: sizeType(fe)}
	case "max", "lte":
		is.Code = CodeTooBig
		is.Meta = BoundMeta{Limit: paramNumber(fe.Param()), Type: sizeType(fe), Inclusive: true}
	case "lt":
		is.Code = CodeTooBig
		is.Meta = BoundMeta{Limit: paramNumber(fe.Param()), Type: sizeType(fe)}
	case "len":
		is.Code = CodeTooBig
		if measure(fe.Value()) < paramFloat(fe.Param()) {
			is.Code = CodeTooSmall
		}
		is.Meta = BoundMeta{Limit: paramNumber(fe.Param()), Type: sizeType(fe), Inclusive: true, Exact: true}

	case "oneof":
		is.Code = CodeInvalidEnumValue
		is.Meta = EnumMeta{Options: strings.Fields(fe.Param()), Received: fe.Value()}

	default:
		if sub, ok := tagSubtypes[tag]; ok {
			is.Code = CodeInvalidString
			is.Subtype = sub
			if fe.Param() != "" {
				is.Meta = StringMeta{Pattern: fe.Param()}
			} else if p, ok := tagPatterns[tag]; ok {
				is.Meta = StringMeta{Pattern: p}
			}
			return is
		}
		is.Code = CodeCustom
		params := map[string]any{"rule": tag}
		if fe.Param() != "" {
			params["param"] = fe.Param()
		}
		is.Meta = CustomMeta{Params: params}
	}
	return is
}

// tagSubtypes maps string-format tags onto invalid_string subtypes.
var tagSubtypes = map[string]Subtype{
	"email":             SubtypeEmail,
	"url":               SubtypeURL,
	"http_url":          SubtypeURL,
	"https_url":         SubtypeURL,
	"uri":               SubtypeURL,
	"uuid":              SubtypeUUID,
	"uuid4":             SubtypeUUID,
	"uuid_rfc4122":      SubtypeUUID,
	"ulid":              SubtypeULID,
	"base64":            SubtypeBase64,
	"base64url":         SubtypeBase64,
	"ip":                SubtypeIP,
	"ipv4":              SubtypeIP,
	"ipv6":              SubtypeIP,
	"datetime":          SubtypeDatetime,
	"e164":              SubtypeRegex,
	"alphanum":          SubtypeRegex,
	"username":          SubtypeRegex,
	"password_strength": SubtypeRegex,
	"contains":          SubtypeIncludes,
	"startswith":        SubtypeStartsWith,
	"endswith":          SubtypeEndsWith,
}

// tagPatterns documents the regex behind parameterless regex tags.
var tagPatterns = map[string]string{
	"e164":     `^\+[1-9]?[0-9]{7,14}$`,
	"alphanum": `^[a-zA-Z0-9]+$`,
	"username": usernamePattern.String(),
}

// namespacePath turns "CreatePostRequest.tags[2]" into ["tags", "2"].
func namespacePath(ns string) []string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	} else {
		return nil
	}
	return splitPath(ns)
}

// splitPath splits dotted paths with bracketed indexes into segments.
func splitPath(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.NewReplacer("[", ".", "]", "").Replace(s)
	parts := strings.Split(s, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sizeType(fe validator.FieldError) SizeType {
	if fe.Type() == reflect.TypeOf(time.Time{}) {
		return SizeDate
	}
	switch fe.Kind() {
	case reflect.String:
		return SizeString
	case reflect.Slice, reflect.Array, reflect.Map:
		return SizeArray
	default:
		return SizeNumber
	}
}

// typeName reports a Go type with JSON vocabulary.
func typeName(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Time{}) {
		return "date"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return t.Kind().String()
	}
}

// jsonKind reports the JSON kind of a decoded value.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return typeName(reflect.TypeOf(v))
	}
}

// paramNumber returns an int when the tag param is integral.
func paramNumber(p string) any {
	if n, err := strconv.Atoi(p); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(p, 64); err == nil {
		return f
	}
	return p
}

func paramFloat(p string) float64 {
	f, _ := strconv.ParseFloat(p, 64)
	return f
}

// measure returns the length of strings and collections and the value of
// numbers, as the len tag compares them.
func measure(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return float64(len([]rune(rv.String())))
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return 0
	}
}

var (
	unconvertiblePattern = regexp.MustCompile(`^'([^']*)' expected type '([^']*)', got unconvertible type '([^']*)'`)
	cannotParsePattern   = regexp.MustCompile(`^cannot parse '([^']*)' as (\w+)`)
	expectedPattern      = regexp.MustCompile(`^'([^']*)' expected (?:a |an )?(\w+)`)
	hookPattern          = regexp.MustCompile(`^error decoding '([^']*)': (.*)$`)
	sourceArrayPattern   = regexp.MustCompile(`^'([^']*)': source data must be an array or slice, got (\w+)`)
)

// decodeIssues maps mapstructure's flattened messages onto issues.
func decodeIssues(msgs []string) Issues {
	out := make(Issues, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, decodeIssue(msg))
	}
	return out
}

func decodeIssue(msg string) Issue {
	if m := unconvertiblePattern.FindStringSubmatch(msg); m != nil {
		return typeIssue(m[1], goTypeName(m[2]), goTypeName(m[3]))
	}
	if m := cannotParsePattern.FindStringSubmatch(msg); m != nil {
		return typeIssue(m[1], goTypeName(m[2]), "string")
	}
	if m := sourceArrayPattern.FindStringSubmatch(msg); m != nil {
		return typeIssue(m[1], "array", goTypeName(m[2]))
	}
	if m := hookPattern.FindStringSubmatch(msg); m != nil {
		if strings.Contains(m[2], "parsing time") {
			return Issue{Code: CodeInvalidDate, Path: splitPath(m[1]), Message: "Invalid date"}
		}
		return Issue{Code: CodeCustom, Path: splitPath(m[1]), Message: m[2]}
	}
	if m := expectedPattern.FindStringSubmatch(msg); m != nil {
		return typeIssue(m[1], goTypeName(m[2]), "unknown")
	}
	return Issue{Code: CodeCustom, Message: msg}
}

func typeIssue(field, expected, received string) Issue {
	return Issue{
		Code:    CodeInvalidType,
		Path:    splitPath(field),
		Message: fmt.Sprintf("Expected %s, received %s", expected, received),
		Meta:    TypeMeta{Expected: expected, Received: received},
	}
}

// goTypeName maps Go type names from decoder messages to JSON vocabulary.
func goTypeName(name string) string {
	switch {
	case name == "string":
		return "string"
	case name == "bool":
		return "boolean"
	case strings.HasPrefix(name, "int"), strings.HasPrefix(name, "uint"), strings.HasPrefix(name, "float"):
		return "number"
	case strings.HasPrefix(name, "[]"), name == "slice", name == "array":
		return "array"
	case strings.HasPrefix(name, "map"), name == "struct":
		return "object"
	case name == "time.Time":
		return "date"
	default:
		return name
	}
}
