// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

// SeverityBreakdown counts formatted errors per severity tier.
type SeverityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Summary aggregates one formatting pass.
type Summary struct {
	TotalErrors       int               `json:"totalErrors"`
	FieldCount        int               `json:"fieldCount"`
	SeverityBreakdown SeverityBreakdown `json:"severityBreakdown"`
	ErrorTypes        map[Code]int      `json:"errorTypes"`
	AffectedFields    []string          `json:"affectedFields"`
}

type summaryBuilder struct {
	s      Summary
	fields map[string]struct{}
}

func newSummaryBuilder() *summaryBuilder {
	return &summaryBuilder{
		s: Summary{
			ErrorTypes:     map[Code]int{},
			AffectedFields: []string{},
		},
		fields: map[string]struct{}{},
	}
}

// add records one formatted error under its un-suffixed path key.
func (b *summaryBuilder) add(pathKey string, fe FieldError) {
	b.s.TotalErrors++
	b.s.ErrorTypes[fe.Code]++

	switch fe.Severity {
	case SeverityHigh:
		b.s.SeverityBreakdown.High++
	case SeverityMedium:
		b.s.SeverityBreakdown.Medium++
	default:
		b.s.SeverityBreakdown.Low++
	}

	if _, ok := b.fields[pathKey]; !ok {
		b.fields[pathKey] = struct{}{}
		b.s.AffectedFields = append(b.s.AffectedFields, pathKey)
	}
}

func (b *summaryBuilder) build() Summary {
	b.s.FieldCount = len(b.fields)
	return b.s
}
