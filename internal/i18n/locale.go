// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package i18n

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

type contextKey string

const localeKey contextKey = "locale"

const (
	// LocaleQueryParam overrides the locale for one request.
	LocaleQueryParam = "lang"

	// LocaleCookie persists the user's locale choice.
	LocaleCookie = "lang"
)

// WithLocale returns a context carrying locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleFromContext returns the request locale, or "" when unset.
func LocaleFromContext(ctx context.Context) string {
	loc, _ := ctx.Value(localeKey).(string)
	return loc
}

// Match returns the supported locale closest to the given preferences
// (locale names or Accept-Language values), or the default locale.
func (b *Bundle) Match(prefs ...string) string {
	_, idx := language.MatchStrings(b.matcher, prefs...)
	if idx < 0 || idx >= len(b.locales) {
		return b.defaultLocale
	}
	return b.locales[idx]
}

// Middleware resolves the request locale from the lang query parameter,
// the lang cookie and Accept-Language, in that order, and stores it in
// the request context.
func (b *Bundle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := b.requestLocale(r)
		w.Header().Set("Content-Language", locale)
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
	})
}

func (b *Bundle) requestLocale(r *http.Request) string {
	var prefs []string
	if q := strings.TrimSpace(r.URL.Query().Get(LocaleQueryParam)); q != "" {
		prefs = append(prefs, q)
	}
	if c, err := r.Cookie(LocaleCookie); err == nil && c.Value != "" {
		prefs = append(prefs, c.Value)
	}
	if len(prefs) > 0 {
		// explicit choices win outright when supported
		for _, p := range prefs {
			if loc, ok := b.exact(p); ok {
				return loc
			}
		}
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		prefs = append(prefs, al)
	}
	return b.Match(prefs...)
}

// exact reports a supported locale whose base language equals pref's.
func (b *Bundle) exact(pref string) (string, bool) {
	tag, err := language.Parse(pref)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for i, t := range b.tags {
		if tb, _ := t.Base(); tb == base {
			return b.locales[i], true
		}
	}
	return "", false
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Interpolate replaces {{name}} placeholders with values. Missing values
// render as the empty string; slices are joined with ", ".
func Interpolate(template string, values map[string]any) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		return display(values[name])
	})
}

func display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = display(p)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
