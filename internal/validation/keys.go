// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

// Translation keys. These are catalog keys under the "validation." namespace.
const (
	KeyUnknownValidation = "UNKNOWN_VALIDATION"
	KeyFormatInvalid     = "FORMAT_INVALID"
	KeyPasswordWeak      = "PASSWORD_WEAK"
	KeyBioLength         = "BIO_LENGTH"
	KeyWebsiteLength     = "WEBSITE_LENGTH"
	KeyLocationLength    = "LOCATION_LENGTH"
)

// fieldKeys holds bespoke keys for fields the product cares about.
// Keyed by exact field name, then by code.
var fieldKeys = map[string]map[Code]string{
	"email": {
		CodeInvalidString: "EMAIL_INVALID_FORMAT",
		CodeInvalidType:   "EMAIL_REQUIRED",
		CodeTooBig:        "EMAIL_TOO_LONG",
		CodeCustom:        "EMAIL_ALREADY_EXISTS",
	},
	"password": {
		CodeTooSmall:      KeyPasswordWeak,
		CodeTooBig:        "PASSWORD_TOO_LONG",
		CodeInvalidString: "PASSWORD_COMPLEXITY",
		CodeInvalidType:   "PASSWORD_REQUIRED",
		CodeCustom:        "PASSWORD_MISMATCH",
	},
	"username": {
		CodeTooSmall:      "USERNAME_TOO_SHORT",
		CodeTooBig:        "USERNAME_TOO_LONG",
		CodeInvalidString: "USERNAME_INVALID_CHARS",
		CodeInvalidType:   "USERNAME_REQUIRED",
		CodeCustom:        "USERNAME_TAKEN",
	},
	"phone": {
		CodeInvalidString: "PHONE_INVALID_FORMAT",
		CodeTooSmall:      "PHONE_INVALID_FORMAT",
		CodeTooBig:        "PHONE_INVALID_FORMAT",
	},
	"dateOfBirth": {
		CodeInvalidDate:   "DATE_OF_BIRTH_INVALID",
		CodeInvalidString: "DATE_OF_BIRTH_INVALID",
		CodeCustom:        "AGE_REQUIREMENT",
		CodeTooBig:        "DATE_OF_BIRTH_FUTURE",
	},
	"bio": {
		CodeTooBig: KeyBioLength,
	},
	"website": {
		CodeInvalidString: "WEBSITE_INVALID_URL",
		CodeTooBig:        KeyWebsiteLength,
	},
	"location": {
		CodeTooBig: KeyLocationLength,
	},
	"avatar": {
		CodeInvalidString: "AVATAR_INVALID_URL",
	},
	"cover": {
		CodeInvalidString: "COVER_INVALID_URL",
	},
}

var subtypeKeys = map[Subtype]string{
	SubtypeEmail:      "INVALID_EMAIL",
	SubtypeURL:        "INVALID_URL",
	SubtypeUUID:       "INVALID_UUID",
	SubtypeCUID:       "INVALID_CUID",
	SubtypeCUID2:      "INVALID_CUID",
	SubtypeRegex:      "INVALID_FORMAT_PATTERN",
	SubtypeDatetime:   "INVALID_DATETIME",
	SubtypeIP:         "INVALID_IP",
	SubtypeEmoji:      "INVALID_EMOJI",
	SubtypeULID:       "INVALID_ULID",
	SubtypeBase64:     "INVALID_BASE64",
	SubtypeNanoID:     "INVALID_NANOID",
	SubtypeIncludes:   "MUST_INCLUDE",
	SubtypeStartsWith: "MUST_START_WITH",
	SubtypeEndsWith:   "MUST_END_WITH",
}

// sizeFieldKeys are consulted for too_big on free-text profile fields even
// when the field override table has no entry.
var sizeFieldKeys = map[string]string{
	"bio":      KeyBioLength,
	"website":  KeyWebsiteLength,
	"location": KeyLocationLength,
}

var generalKeys = map[Code]string{
	CodeInvalidType:          "TYPE_MISMATCH",
	CodeInvalidLiteral:       "INVALID_LITERAL",
	CodeCustom:               "CUSTOM_VALIDATION",
	CodeInvalidUnion:         "INVALID_UNION",
	CodeInvalidDiscriminator: "INVALID_DISCRIMINATOR",
	CodeInvalidEnumValue:     "INVALID_ENUM",
	CodeUnrecognizedKeys:     "UNRECOGNIZED_KEYS",
	CodeInvalidArguments:     "INVALID_ARGUMENTS",
	CodeInvalidReturnType:    "INVALID_RETURN_TYPE",
	CodeInvalidDate:          "INVALID_DATE",
	CodeInvalidString:        KeyFormatInvalid,
	CodeTooSmall:             "MIN_VALUE",
	CodeTooBig:               "MAX_LENGTH",
	CodeInvalidIntersection:  "INVALID_INTERSECTION",
	CodeNotMultipleOf:        "NOT_MULTIPLE_OF",
	CodeNotFinite:            "NOT_FINITE",
}

// ResolveKey picks the translation key for an issue. Tiers are tried in
// order and the first hit wins:
//
//  1. field-specific overrides (by last path segment, then code)
//  2. string subtype table (invalid_string only)
//  3. size special cases for password/bio/website/location
//  4. general per-code table, then KeyUnknownValidation
func ResolveKey(code Code, subtype Subtype, path []string) string {
	field := ""
	if len(path) > 0 {
		field = path[len(path)-1]
	}

	if key, ok := fieldKeys[field][code]; ok {
		return key
	}

	if code == CodeInvalidString {
		return resolveStringKey(subtype, field)
	}

	switch code {
	case CodeTooSmall:
		if field == "password" {
			return KeyPasswordWeak
		}
	case CodeTooBig:
		if key, ok := sizeFieldKeys[field]; ok {
			return key
		}
	}

	if key, ok := generalKeys[code]; ok {
		return key
	}
	return KeyUnknownValidation
}

func resolveStringKey(subtype Subtype, field string) string {
	if key, ok := subtypeKeys[subtype]; ok {
		return key
	}
	if key, ok := fieldKeys[field][CodeInvalidString]; ok {
		return key
	}
	return KeyFormatInvalid
}
