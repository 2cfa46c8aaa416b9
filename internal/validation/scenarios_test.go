// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/agora/internal/i18n"
)

// The tests in this file render through keyTranslator, so they check the
// pipeline decisions without depending on catalog contents.

func TestScenario_PasswordTooShort(t *testing.T) {
	t.Parallel()
	f := NewFormatter(keyTranslator{})

	issues := []Issue{{
		Code: CodeTooSmall,
		Path: []string{"password"},
		Meta: BoundMeta{Limit: 8, Type: SizeString, Inclusive: true},
	}}
	res := f.Format(context.Background(), issues, SourceBody, map[string]any{"password": "abc"})

	fe, ok := res.Errors["password"]
	if !ok {
		t.Fatalf("Errors has no password key: %v", res.Errors)
	}
	if fe.Severity != SeverityHigh {
		t.Errorf("Severity = %s, want high", fe.Severity)
	}
	if fe.TranslationKey != "PASSWORD_WEAK" {
		t.Errorf("TranslationKey = %s, want PASSWORD_WEAK", fe.TranslationKey)
	}
	if fe.Message != "validation.PASSWORD_WEAK" {
		t.Errorf("Message = %q, want catalog key validation.PASSWORD_WEAK", fe.Message)
	}
	want := []string{"suggestions.password_min_length", "suggestions.password_complexity"}
	if !reflect.DeepEqual(fe.Suggestions, want) {
		t.Errorf("Suggestions = %v, want %v", fe.Suggestions, want)
	}
	if res.Message != MessageKeyFailed {
		t.Errorf("envelope message = %q, want %s", res.Message, MessageKeyFailed)
	}
}

func TestScenario_EmailFormat(t *testing.T) {
	t.Parallel()
	f := NewFormatter(keyTranslator{})

	issues := []Issue{{Code: CodeInvalidString, Subtype: SubtypeEmail, Path: []string{"email"}}}
	fe := f.Format(context.Background(), issues, SourceBody, nil).Errors["email"]

	if fe.TranslationKey != "EMAIL_INVALID_FORMAT" {
		t.Errorf("TranslationKey = %s, want EMAIL_INVALID_FORMAT", fe.TranslationKey)
	}
	if fe.Severity != SeverityHigh {
		t.Errorf("Severity = %s, want high", fe.Severity)
	}
	if !reflect.DeepEqual(fe.Suggestions, []string{"suggestions.email_format"}) {
		t.Errorf("Suggestions = %v", fe.Suggestions)
	}
}

func TestScenario_RepeatedUsername(t *testing.T) {
	t.Parallel()
	f := NewFormatter(keyTranslator{})

	issues := []Issue{
		{Code: CodeTooSmall, Path: []string{"username"}, Meta: BoundMeta{Limit: 3, Type: SizeString}},
		{Code: CodeTooBig, Path: []string{"username"}, Meta: BoundMeta{Limit: 30, Type: SizeString}},
	}
	res := f.Format(context.Background(), issues, SourceBody, nil)

	if _, ok := res.Errors["username"]; !ok {
		t.Errorf("missing key username: %v", res.Errors)
	}
	if got := res.Errors["username[1]"].Code; got != CodeTooBig {
		t.Errorf("username[1] code = %s, want too_big", got)
	}
	if len(res.Errors) != 2 {
		t.Errorf("len(Errors) = %d, want 2", len(res.Errors))
	}
	if res.Summary.FieldCount != 1 || res.Summary.TotalErrors != 2 {
		t.Errorf("Summary = %+v, want fieldCount 1 and totalErrors 2", res.Summary)
	}
}

func TestScenario_RootIssue(t *testing.T) {
	t.Parallel()
	f := NewFormatter(valueTranslator{})

	res := f.Format(context.Background(), []Issue{{Code: CodeCustom}}, SourceBody, map[string]any{"a": 1})

	fe, ok := res.Errors[rootKey]
	if !ok {
		t.Fatalf("Errors has no %s key: %v", rootKey, res.Errors)
	}
	if fe.Message != "root="+noValue {
		t.Errorf("Message = %q, want display value %s", fe.Message, noValue)
	}
}

func TestScenario_BioTooLongWithoutMeta(t *testing.T) {
	t.Parallel()
	f := NewFormatter(keyTranslator{})

	fe := f.Format(context.Background(), []Issue{{Code: CodeTooBig, Path: []string{"bio"}}}, SourceBody, nil).Errors["bio"]

	if fe.TranslationKey != "BIO_LENGTH" {
		t.Errorf("TranslationKey = %s, want BIO_LENGTH", fe.TranslationKey)
	}
	if !reflect.DeepEqual(fe.Suggestions, []string{"suggestions.bio_max_length"}) {
		t.Errorf("Suggestions = %v, want the bio length hint", fe.Suggestions)
	}
}

func TestScenario_UnknownCode(t *testing.T) {
	t.Parallel()
	f := NewFormatter(keyTranslator{})

	fe := f.Format(context.Background(), []Issue{{Code: Code("brand_new"), Path: []string{"nickname"}}}, SourceBody, nil).Errors["nickname"]

	if fe.Severity != SeverityLow {
		t.Errorf("Severity = %s, want low", fe.Severity)
	}
	if fe.TranslationKey != KeyUnknownValidation {
		t.Errorf("TranslationKey = %s, want %s", fe.TranslationKey, KeyUnknownValidation)
	}
	if !reflect.DeepEqual(fe.Suggestions, []string{"suggestions.field_required"}) {
		t.Errorf("Suggestions = %v", fe.Suggestions)
	}
}

// valueTranslator renders field messages as "field=value" so tests can
// see the interpolation values the formatter built.
type valueTranslator struct{ keyTranslator }

func (valueTranslator) ResolveMessage(_ context.Context, req i18n.MessageRequest) string {
	if strings.HasPrefix(req.TranslationKey, validationNamespace) {
		return i18n.Interpolate("{{field}}={{value}}", req.Values)
	}
	return req.TranslationKey
}

func TestFormat_MismatchedMetaAndOpaquePayload(t *testing.T) {
	t.Parallel()
	f := NewFormatter(valueTranslator{})

	type profile struct{ Bio string }
	links := []string{"a", "b"}
	payload := map[string]any{
		"profile": &profile{Bio: "hidden"},
		"avatar":  map[int]string{1: "a"},
		"links":   &links,
		"nilptr":  (*profile)(nil),
		"sizes":   map[SizeType]int{SizeString: 3},
	}

	issues := []Issue{
		{Code: CodeTooSmall, Path: []string{"profile", "bio"}, Meta: EnumMeta{Options: []string{"x"}}},
		{Code: CodeTooBig, Path: []string{"avatar", "1"}, Meta: BoundMeta{Limit: make(chan int)}},
		{Code: CodeInvalidType, Path: []string{"links", "1"}, Meta: BoundMeta{Limit: 3}},
		{Code: CodeInvalidEnumValue, Path: []string{"nilptr", "bio"}, Meta: TypeMeta{}},
		{Code: CodeCustom, Path: []string{"sizes", "string"}},
	}
	res := f.Format(context.Background(), issues, SourceBody, payload)

	want := map[string]string{
		"profile.bio":  "bio=bio",
		"avatar.1":     "1=1",
		"links.1":      "1=b",
		"nilptr.bio":   "bio=bio",
		"sizes.string": "string=3",
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("len(Errors) = %d, want %d: %v", len(res.Errors), len(want), res.Errors)
	}
	for key, msg := range want {
		fe, ok := res.Errors[key]
		if !ok {
			t.Errorf("missing key %s", key)
			continue
		}
		if fe.Message != msg {
			t.Errorf("%s Message = %q, want %q", key, fe.Message, msg)
		}
		if fe.Suggestions == nil {
			t.Errorf("%s Suggestions is nil", key)
		}
	}

	if got := res.Errors["profile.bio"].Suggestions; !reflect.DeepEqual(got, []string{"suggestions.min_value"}) {
		t.Errorf("profile.bio Suggestions = %v", got)
	}
	if got := res.Errors["nilptr.bio"].Suggestions; !reflect.DeepEqual(got, []string{"suggestions.enum_generic"}) {
		t.Errorf("nilptr.bio Suggestions = %v", got)
	}
}
