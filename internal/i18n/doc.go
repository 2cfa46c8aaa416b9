// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package i18n translates API messages.

Catalogs are embedded JSON files (locales/<locale>.json) whose nested
objects are flattened into dotted keys:

	{"validation": {"BIO_LENGTH": "Bio must be at most {{max}} characters"}}

becomes validation.BIO_LENGTH. Three namespaces are used: validation.* for
field errors, suggestions.* for remediation hints and errors.* for
envelope messages.

Entries are registered with go-playground/universal-translator, one
translator per locale. Plural forms use the _one/_other (_few, _many, ...)
suffixes and are selected with the locale's cardinal plural rule whenever a
numeric "count" value is passed.

Lookups fall back to the default locale and then to the key (Translate) or
the caller's fallback text (ResolveMessage). The request locale is chosen
by Bundle.Middleware from ?lang, the lang cookie and Accept-Language.
*/
package i18n
