// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"fmt"
	"strings"
)

// Code is the kind of rule failure reported for one field.
// Wire names match the codes emitted by zod so that clients written
// against the previous backend keep working.
type Code string

// Known issue codes.
const (
	CodeInvalidType          Code = "invalid_type"
	CodeInvalidLiteral       Code = "invalid_literal"
	CodeCustom               Code = "custom"
	CodeInvalidUnion         Code = "invalid_union"
	CodeInvalidDiscriminator Code = "invalid_union_discriminator"
	CodeInvalidEnumValue     Code = "invalid_enum_value"
	CodeUnrecognizedKeys     Code = "unrecognized_keys"
	CodeInvalidArguments     Code = "invalid_arguments"
	CodeInvalidReturnType    Code = "invalid_return_type"
	CodeInvalidDate          Code = "invalid_date"
	CodeInvalidString        Code = "invalid_string"
	CodeTooSmall             Code = "too_small"
	CodeTooBig               Code = "too_big"
	CodeInvalidIntersection  Code = "invalid_intersection_types"
	CodeNotMultipleOf        Code = "not_multiple_of"
	CodeNotFinite            Code = "not_finite"
)

// KnownCodes lists every code the pipeline has explicit rules for.
var KnownCodes = []Code{
	CodeInvalidType, CodeInvalidLiteral, CodeCustom, CodeInvalidUnion,
	CodeInvalidDiscriminator, CodeInvalidEnumValue, CodeUnrecognizedKeys,
	CodeInvalidArguments, CodeInvalidReturnType, CodeInvalidDate,
	CodeInvalidString, CodeTooSmall, CodeTooBig, CodeInvalidIntersection,
	CodeNotMultipleOf, CodeNotFinite,
}

// Subtype distinguishes the failing format of an invalid_string issue.
type Subtype string

// Known string subtypes.
const (
	SubtypeNone       Subtype = ""
	SubtypeEmail      Subtype = "email"
	SubtypeURL        Subtype = "url"
	SubtypeUUID       Subtype = "uuid"
	SubtypeCUID       Subtype = "cuid"
	SubtypeCUID2      Subtype = "cuid2"
	SubtypeRegex      Subtype = "regex"
	SubtypeDatetime   Subtype = "datetime"
	SubtypeIP         Subtype = "ip"
	SubtypeEmoji      Subtype = "emoji"
	SubtypeULID       Subtype = "ulid"
	SubtypeBase64     Subtype = "base64"
	SubtypeNanoID     Subtype = "nanoid"
	SubtypeIncludes   Subtype = "includes"
	SubtypeStartsWith Subtype = "startsWith"
	SubtypeEndsWith   Subtype = "endsWith"
)

// KnownSubtypes lists the string subtypes with a dedicated translation key.
var KnownSubtypes = []Subtype{
	SubtypeEmail, SubtypeURL, SubtypeUUID, SubtypeCUID, SubtypeCUID2,
	SubtypeRegex, SubtypeDatetime, SubtypeIP, SubtypeEmoji, SubtypeULID,
	SubtypeBase64, SubtypeNanoID, SubtypeIncludes, SubtypeStartsWith,
	SubtypeEndsWith,
}

// SizeType is the kind of value a too_small/too_big bound applies to.
type SizeType string

const (
	SizeString SizeType = "string"
	SizeNumber SizeType = "number"
	SizeArray  SizeType = "array"
	SizeSet    SizeType = "set"
	SizeDate   SizeType = "date"
	SizeBigInt SizeType = "bigint"
)

// Issue is one rule failure for one field path, as produced by a schema
// adapter. Rule-specific data lives in Meta, whose concrete type is fixed
// by the code family.
type Issue struct {
	Code    Code
	Path    []string
	Message string
	// Subtype is only read when Code is CodeInvalidString.
	Subtype Subtype
	Meta    Meta
}

// String renders the issue the way it appears in logs.
func (i Issue) String() string {
	path := strings.Join(i.Path, ".")
	if path == "" {
		path = rootKey
	}
	return fmt.Sprintf("%s at %s", i.Code, path)
}

// Field returns the last path segment, or "" for object-level issues.
func (i Issue) Field() string {
	if len(i.Path) == 0 {
		return ""
	}
	return i.Path[len(i.Path)-1]
}

// details returns the raw metadata map, never nil.
func (i Issue) details() map[string]any {
	out := map[string]any{}
	if i.Code == CodeInvalidString && i.Subtype != SubtypeNone {
		out["validation"] = string(i.Subtype)
	}
	if i.Meta == nil {
		return out
	}
	for k, v := range i.Meta.Details(i.Code) {
		out[k] = v
	}
	return out
}

// Meta is the closed set of rule-specific metadata variants.
type Meta interface {
	// Details returns the raw metadata using the schema library's names
	// (minimum, maximum, expected, options, ...).
	Details(code Code) map[string]any
	meta()
}

// TypeMeta accompanies invalid_type issues.
type TypeMeta struct {
	Expected string
	Received string
}

func (TypeMeta) meta() {}

// Details implements Meta.
func (m TypeMeta) Details(Code) map[string]any {
	return map[string]any{"expected": m.Expected, "received": m.Received}
}

// BoundMeta accompanies too_small and too_big issues.
type BoundMeta struct {
	Limit     any
	Type      SizeType
	Inclusive bool
	Exact     bool
}

func (BoundMeta) meta() {}

// Details implements Meta. The limit is reported as minimum or maximum
// depending on the code.
func (m BoundMeta) Details(code Code) map[string]any {
	name := "minimum"
	if code == CodeTooBig {
		name = "maximum"
	}
	return map[string]any{
		name:        m.Limit,
		"type":      string(m.Type),
		"inclusive": m.Inclusive,
		"exact":     m.Exact,
	}
}

// EnumMeta accompanies invalid_enum_value issues.
type EnumMeta struct {
	Options  []string
	Received any
}

func (EnumMeta) meta() {}

// Details implements Meta.
func (m EnumMeta) Details(Code) map[string]any {
	opts := make([]string, len(m.Options))
	copy(opts, m.Options)
	return map[string]any{"options": opts, "received": m.Received}
}

// StringMeta carries extra data for invalid_string issues, such as the
// regex or the required prefix.
type StringMeta struct {
	Pattern string
}

func (StringMeta) meta() {}

// Details implements Meta.
func (m StringMeta) Details(Code) map[string]any {
	if m.Pattern == "" {
		return nil
	}
	return map[string]any{"pattern": m.Pattern}
}

// KeysMeta accompanies unrecognized_keys issues.
type KeysMeta struct {
	Keys []string
}

func (KeysMeta) meta() {}

// Details implements Meta.
func (m KeysMeta) Details(Code) map[string]any {
	keys := make([]string, len(m.Keys))
	copy(keys, m.Keys)
	return map[string]any{"keys": keys}
}

// MultipleMeta accompanies not_multiple_of issues.
type MultipleMeta struct {
	MultipleOf any
}

func (MultipleMeta) meta() {}

// Details implements Meta.
func (m MultipleMeta) Details(Code) map[string]any {
	return map[string]any{"multipleOf": m.MultipleOf}
}

// CustomMeta carries free-form params from custom rules.
type CustomMeta struct {
	Params map[string]any
}

func (CustomMeta) meta() {}

// Details implements Meta.
func (m CustomMeta) Details(Code) map[string]any {
	out := make(map[string]any, len(m.Params))
	for k, v := range m.Params {
		out[k] = v
	}
	return out
}

// Issues is the error a Schema returns when input fails validation.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return "validation failed"
	}
	const maxShown = 3
	parts := make([]string, 0, maxShown)
	for i, it := range iss {
		if i == maxShown {
			parts = append(parts, fmt.Sprintf("... (total %d)", len(iss)))
			break
		}
		parts = append(parts, it.String())
	}
	return strings.Join(parts, "; ")
}
