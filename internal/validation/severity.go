// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import "strings"

// Severity is a coarse urgency tier attached to a formatted field error.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// sensitiveFields are always reported as high severity, whatever the rule.
var sensitiveFields = map[string]struct{}{
	"password": {},
	"email":    {},
	"username": {},
}

var criticalCodes = map[Code]struct{}{
	CodeInvalidType: {},
	CodeCustom:      {},
}

var commonCodes = map[Code]struct{}{
	CodeInvalidString:    {},
	CodeTooSmall:         {},
	CodeTooBig:           {},
	CodeInvalidEnumValue: {},
}

// Classify maps an issue code and field path to a severity tier.
// Sensitive fields win over the code; unknown codes are low.
func Classify(code Code, path []string) Severity {
	if len(path) > 0 {
		if _, ok := sensitiveFields[strings.ToLower(path[len(path)-1])]; ok {
			return SeverityHigh
		}
	}
	if _, ok := criticalCodes[code]; ok {
		return SeverityHigh
	}
	if _, ok := commonCodes[code]; ok {
		return SeverityMedium
	}
	return SeverityLow
}
