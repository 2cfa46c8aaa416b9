// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JSONSchema validates generic JSON values against a compiled JSON Schema
// document. Parse returns the input unchanged on success.
type JSONSchema struct {
	name   string
	schema *jsonschema.Schema
}

var schemaPrinter = message.NewPrinter(language.English)

// CompileJSONSchema compiles doc, registered under name. Formats are
// asserted, not just annotated.
func CompileJSONSchema(name string, doc []byte) (*JSONSchema, error) {
	// Keep schema numbers as decimals so multipleOf 0.01 is exact.
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema %s: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(name, parsed); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	sch, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &JSONSchema{name: name, schema: sch}, nil
}

// MustCompileJSONSchema is CompileJSONSchema for package-level schemas.
func MustCompileJSONSchema(name string, doc []byte) *JSONSchema {
	s, err := CompileJSONSchema(name, doc)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse implements Schema.
func (s *JSONSchema) Parse(_ context.Context, input any) (any, error) {
	err := s.schema.Validate(normalize(input))
	if err == nil {
		return input, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("validate against %s: %w", s.name, err)
	}
	issues := schemaIssues(verr, nil)
	if len(issues) == 0 {
		issues = Issues{{Code: CodeCustom, Message: verr.Error()}}
	}
	return nil, issues
}

// normalize round-trips values that did not come from a JSON decoder so
// the validator only sees JSON types, and turns float64 into decimal
// numbers. jsonschema compares encoding/json Numbers exactly, so 19.99
// stays a multiple of 0.01.
func normalize(input any) any {
	switch input.(type) {
	case nil, string, bool, float64, map[string]any, []any:
		return decimals(input)
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return input
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return input
	}
	return decimals(out)
}

func decimals(v any) any {
	switch t := v.(type) {
	case float64:
		return stdjson.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = decimals(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = decimals(e)
		}
		return out
	default:
		return v
	}
}

// schemaIssues flattens the error tree into leaf issues, depth first.
func schemaIssues(e *jsonschema.ValidationError, out Issues) Issues {
	if len(e.Causes) > 0 {
		for _, c := range e.Causes {
			out = schemaIssues(c, out)
		}
		return out
	}
	return append(out, kindIssues(e)...)
}

func kindIssues(e *jsonschema.ValidationError) Issues {
	path := append([]string(nil), e.InstanceLocation...)
	msg := e.ErrorKind.LocalizedString(schemaPrinter)
	is := Issue{Path: path, Message: msg}

	switch k := e.ErrorKind.(type) {
	case *kind.Required:
		out := make(Issues, 0, len(k.Missing))
		for _, m := range k.Missing {
			out = append(out, Issue{
				Code:    CodeInvalidType,
				Path:    append(append([]string(nil), path...), m),
				Message: "Required",
				Meta:    TypeMeta{Expected: "value", Received: "undefined"},
			})
		}
		return out
	case *kind.Type:
		is.Code = CodeInvalidType
		is.Meta = TypeMeta{Expected: strings.Join(k.Want, " | "), Received: k.Got}
	case *kind.MinLength:
		is.Code = CodeTooSmall
		is.Meta = BoundMeta{Limit: k.Want, Type: SizeString, Inclusive: true}
	case *kind.MaxLength:
		is.Code = CodeTooBig
		is.Meta = BoundMeta{Limit: k.Want, Type: SizeString, Inclusive: true}
	case *kind.MinItems:
		is.Code = CodeTooSmall
		is.Meta = BoundMeta{Limit: k.Want, Type: SizeArray, Inclusive: true}
	case *kind.MaxItems:
		is.Code = CodeTooBig
		is.Meta = BoundMeta{Limit: k.Want, Type: SizeArray, Inclusive: true}
	case *kind.Minimum:
		is.Code = CodeTooSmall
		is.Meta = BoundMeta{Limit: ratNumber(k.Want), Type: SizeNumber, Inclusive: true}
	case *kind.ExclusiveMinimum:
		is.Code = CodeTooSmall
		is.Meta = BoundMeta{Limit: ratNumber(k.Want), Type: SizeNumber}
	case *kind.Maximum:
		is.Code = CodeTooBig
		is.Meta = BoundMeta{Limit: ratNumber(k.Want), Type: SizeNumber, Inclusive: true}
	case *kind.ExclusiveMaximum:
		is.Code = CodeTooBig
		is.Meta = BoundMeta{Limit: ratNumber(k.Want), Type: SizeNumber}
	case *kind.MultipleOf:
		is.Code = CodeNotMultipleOf
		is.Meta = MultipleMeta{MultipleOf: ratNumber(k.Want)}
	case *kind.Enum:
		is.Code = CodeInvalidEnumValue
		opts := make([]string, len(k.Want))
		for i, w := range k.Want {
			opts[i] = fmt.Sprint(w)
		}
		is.Meta = EnumMeta{Options: opts, Received: k.Got}
	case *kind.Const:
		is.Code = CodeInvalidLiteral
		is.Meta = CustomMeta{Params: map[string]any{"expected": k.Want}}
	case *kind.Format:
		is.Code = CodeInvalidString
		is.Subtype = formatSubtype(k.Want)
		if is.Subtype == SubtypeRegex {
			is.Meta = StringMeta{Pattern: k.Want}
		}
	case *kind.Pattern:
		is.Code = CodeInvalidString
		is.Subtype = SubtypeRegex
		is.Meta = StringMeta{Pattern: k.Want}
	case *kind.AdditionalProperties:
		is.Code = CodeUnrecognizedKeys
		is.Meta = KeysMeta{Keys: append([]string(nil), k.Properties...)}
	default:
		is.Code = CodeCustom
		is.Meta = CustomMeta{Params: map[string]any{"keyword": strings.Join(e.ErrorKind.KeywordPath(), "/")}}
	}
	return Issues{is}
}

// formatSubtype maps JSON Schema formats onto string subtypes.
func formatSubtype(format string) Subtype {
	switch format {
	case "email", "idn-email":
		return SubtypeEmail
	case "uri", "iri", "uri-reference", "iri-reference":
		return SubtypeURL
	case "uuid":
		return SubtypeUUID
	case "date-time", "date", "time":
		return SubtypeDatetime
	case "ipv4", "ipv6":
		return SubtypeIP
	default:
		return SubtypeRegex
	}
}

// ratNumber returns integral limits as int and the rest as float64.
func ratNumber(r *big.Rat) any {
	if r == nil {
		return nil
	}
	if r.IsInt() && r.Num().IsInt64() {
		return int(r.Num().Int64())
	}
	f, _ := r.Float64()
	return f
}
