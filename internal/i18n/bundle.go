// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/goccy/go-json"
	"golang.org/x/text/language"

	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/metrics"
)

//go:embed locales/*.json
var embeddedCatalogs embed.FS

// DefaultLocale is used when neither the request nor the config names one.
const DefaultLocale = "en"

// pluralSuffixes are the catalog key suffixes for cardinal plural forms.
var pluralSuffixes = map[locales.PluralRule]string{
	locales.PluralRuleZero:  "_zero",
	locales.PluralRuleOne:   "_one",
	locales.PluralRuleTwo:   "_two",
	locales.PluralRuleFew:   "_few",
	locales.PluralRuleMany:  "_many",
	locales.PluralRuleOther: "_other",
}

// ErrUnsupportedLocale is returned for locales without a plural-rule table.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Config configures a Bundle.
type Config struct {
	// DefaultLocale is the fallback locale. It must be in Supported.
	DefaultLocale string

	// Supported lists the enabled locales, e.g. ["en", "es", "fr"].
	Supported []string

	// Catalogs overrides the embedded catalogs (tests). Files are named
	// <locale>.json at the root of the FS.
	Catalogs fs.FS
}

// MessageRequest asks for a message that may or may not have a catalog
// entry.
type MessageRequest struct {
	TranslationKey  string
	FallbackMessage string
	Values          map[string]any

	// PreferFallback makes a non-empty FallbackMessage win over an
	// existing translation.
	PreferFallback bool
}

// Bundle holds the flattened catalog of every supported locale plus a
// universal-translator per locale for its plural rules. Catalogs use named
// {{name}} placeholders, which ut cannot store, so templates live in
// catalogs. Both are read-only after construction, so a Bundle is safe for
// concurrent use.
type Bundle struct {
	uni           *ut.UniversalTranslator
	catalogs      map[string]map[string]string
	defaultLocale string
	locales       []string
	tags          []language.Tag
	matcher       language.Matcher
}

var knownLocales = map[string]func() locales.Translator{
	"en": en.New,
	"es": es.New,
	"fr": fr.New,
}

// NewBundle loads the catalogs for cfg.Supported.
func NewBundle(cfg Config) (*Bundle, error) {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = DefaultLocale
	}
	if len(cfg.Supported) == 0 {
		cfg.Supported = []string{cfg.DefaultLocale}
	}
	if cfg.Catalogs == nil {
		sub, err := fs.Sub(embeddedCatalogs, "locales")
		if err != nil {
			return nil, fmt.Errorf("open embedded catalogs: %w", err)
		}
		cfg.Catalogs = sub
	}

	fallback, ok := knownLocales[cfg.DefaultLocale]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, cfg.DefaultLocale)
	}

	// The default locale leads so the matcher falls back to it.
	ordered := []string{cfg.DefaultLocale}
	for _, loc := range cfg.Supported {
		if loc != cfg.DefaultLocale {
			ordered = append(ordered, loc)
		}
	}

	supported := make([]locales.Translator, 0, len(ordered))
	tags := make([]language.Tag, 0, len(ordered))
	for _, loc := range ordered {
		newLocale, ok := knownLocales[loc]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, loc)
		}
		supported = append(supported, newLocale())
		tags = append(tags, language.Make(loc))
	}

	b := &Bundle{
		uni:           ut.New(fallback(), supported...),
		catalogs:      make(map[string]map[string]string, len(ordered)),
		defaultLocale: cfg.DefaultLocale,
		locales:       ordered,
		tags:          tags,
		matcher:       language.NewMatcher(tags),
	}

	for _, loc := range ordered {
		n, err := b.load(cfg.Catalogs, loc)
		if err != nil {
			return nil, err
		}
		logging.Debug().Str("locale", loc).Int("entries", n).Msg("Loaded translation catalog")
	}
	return b, nil
}

// load stores the flattened entries of <loc>.json.
func (b *Bundle) load(catalogs fs.FS, loc string) (int, error) {
	raw, err := fs.ReadFile(catalogs, path.Clean(loc+".json"))
	if err != nil {
		return 0, fmt.Errorf("read catalog %s: %w", loc, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return 0, fmt.Errorf("parse catalog %s: %w", loc, err)
	}

	entries := map[string]string{}
	if err := flatten("", tree, entries); err != nil {
		return 0, fmt.Errorf("catalog %s: %w", loc, err)
	}

	b.catalogs[loc] = entries
	return len(entries), nil
}

// flatten joins nested objects with dots. Leaves must be strings.
func flatten(prefix string, node map[string]any, out map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case string:
			out[key] = t
		case map[string]any:
			if err := flatten(key, t, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %s: expected string or object, got %T", key, v)
		}
	}
	return nil
}

// DefaultLocale returns the fallback locale.
func (b *Bundle) DefaultLocale() string { return b.defaultLocale }

// Locales returns the supported locales, default first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.locales))
	copy(out, b.locales)
	return out
}

// Exists reports whether key has an entry for locale, ignoring plural
// suffixes.
func (b *Bundle) Exists(locale, key string) bool {
	catalog, found := b.catalogs[locale]
	if !found {
		return false
	}
	if _, ok := catalog[key]; ok {
		return true
	}
	_, ok := catalog[key+pluralSuffixes[locales.PluralRuleOther]]
	return ok
}

// Translate renders key in the context locale, falling back to the
// default locale and finally to the key itself.
func (b *Bundle) Translate(ctx context.Context, key string, values map[string]any) string {
	if text, ok := b.lookup(LocaleFromContext(ctx), key, values); ok {
		return Interpolate(text, values)
	}
	return key
}

// ResolveMessage renders req in the context locale. The translation is
// used when it exists unless PreferFallback is set with a non-empty
// fallback; otherwise the fallback is interpolated, and an empty fallback
// yields the key. It never panics.
func (b *Bundle) ResolveMessage(ctx context.Context, req MessageRequest) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Ctx(ctx).Error().Interface("panic", r).Str("key", req.TranslationKey).Msg("Message resolution panicked")
			out = req.FallbackMessage
			if out == "" {
				out = req.TranslationKey
			}
		}
	}()

	if req.TranslationKey != "" && !(req.PreferFallback && req.FallbackMessage != "") {
		if text, ok := b.lookup(LocaleFromContext(ctx), req.TranslationKey, req.Values); ok {
			return Interpolate(text, req.Values)
		}
	}
	if req.FallbackMessage != "" {
		return Interpolate(req.FallbackMessage, req.Values)
	}
	return req.TranslationKey
}

// lookup finds the raw template for key in locale, then in the default
// locale.
func (b *Bundle) lookup(locale, key string, values map[string]any) (string, bool) {
	if locale == "" {
		locale = b.defaultLocale
	}
	if text, ok := b.lookupIn(locale, key, values); ok {
		return text, true
	}
	if locale != b.defaultLocale {
		metrics.RecordTranslationMiss(locale, namespace(key))
		if text, ok := b.lookupIn(b.defaultLocale, key, values); ok {
			return text, true
		}
	}
	metrics.RecordTranslationMiss(b.defaultLocale, namespace(key))
	return "", false
}

func (b *Bundle) lookupIn(locale, key string, values map[string]any) (string, bool) {
	catalog, found := b.catalogs[locale]
	if !found {
		return "", false
	}
	if count, ok := countValue(values); ok {
		if trans, ok := b.uni.GetTranslator(locale); ok {
			rule := trans.CardinalPluralRule(count, 0)
			for _, suffix := range []string{pluralSuffixes[rule], pluralSuffixes[locales.PluralRuleOther]} {
				if text, ok := catalog[key+suffix]; ok {
					return text, true
				}
			}
		}
	}
	text, ok := catalog[key]
	return text, ok
}

// countValue returns values["count"] as a float64 when it is numeric.
func countValue(values map[string]any) (float64, bool) {
	switch n := values["count"].(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func namespace(key string) string {
	if i := strings.IndexByte(key, '.'); i > 0 {
		return key[:i]
	}
	return "root"
}
