// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package logging

import "strings"

// Values of these keys are never logged verbatim.
var secretKeys = map[string]bool{
	"password":        true,
	"confirmpassword": true,
	"token":           true,
	"secret":          true,
	"authorization":   true,
	"cookie":          true,
	"idempotency-key": true,
	"cardnumber":      true,
	"cvv":             true,
}

// SanitizeEmail masks the local part of an address.
// Example: "john.doe@example.com" -> "jo***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// SanitizeUsername keeps the first two characters.
// Example: "johndoe" -> "jo***"
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

// SanitizeValue masks value according to the field it came from. Secret
// fields are fully masked and email-like values keep their domain.
func SanitizeValue(key, value string) string {
	if value == "" {
		return ""
	}
	if secretKeys[strings.ToLower(key)] {
		return "***"
	}
	if strings.Contains(value, "@") && strings.Contains(value, ".") {
		return SanitizeEmail(value)
	}
	if len(value) > 64 {
		return value[:64] + "..."
	}
	return value
}
