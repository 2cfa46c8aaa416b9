// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// singleton validator instance
var (
	validate     *validator.Validate
	defaultTrans ut.Translator
	validateOnce sync.Once
)

// DateLayout is the wire format of calendar dates (dateOfBirth).
const DateLayout = "2006-01-02"

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// GetValidator returns the singleton validator instance.
// Field names are reported by their json tag, and English default
// messages are registered for every built-in and custom tag.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)

		english := en.New()
		uni := ut.New(english, english)
		defaultTrans, _ = uni.GetTranslator("en")
		_ = entranslations.RegisterDefaultTranslations(validate, defaultTrans)

		for _, cv := range customValidators {
			_ = validate.RegisterValidation(cv.tag, cv.fn)
			_ = validate.RegisterTranslation(cv.tag, defaultTrans,
				registerMessage(cv.tag, cv.message), translateMessage(cv.tag))
		}
	})

	return validate
}

// defaultMessage renders the library's English message for fe.
func defaultMessage(fe validator.FieldError) string {
	GetValidator()
	return fe.Translate(defaultTrans)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

type customValidator struct {
	tag     string
	fn      validator.Func
	message string
}

// customValidators are the application-specific tags.
var customValidators = []customValidator{
	{tag: "username", fn: isUsername, message: "{0} may only contain letters, numbers and underscores"},
	{tag: "password_strength", fn: isStrongPassword, message: "{0} must contain an uppercase letter, a lowercase letter and a digit"},
	{tag: "past_date", fn: isPastDate, message: "{0} must be a date in the past"},
	{tag: "min_age", fn: hasMinAge, message: "{0} does not meet the minimum age"},
}

func registerMessage(tag, text string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, text, true)
	}
}

func translateMessage(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

func isUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func isStrongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// isPastDate accepts YYYY-MM-DD strings strictly before today (UTC).
func isPastDate(fl validator.FieldLevel) bool {
	d, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		// format errors are reported by the datetime tag
		return true
	}
	return d.Before(today())
}

// hasMinAge accepts YYYY-MM-DD strings at least param years ago.
func hasMinAge(fl validator.FieldLevel) bool {
	d, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	years, err := strconv.Atoi(fl.Param())
	if err != nil {
		years = defaultMinAge
	}
	return !d.After(today().AddDate(-years, 0, 0))
}

const defaultMinAge = 13

var today = func() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
