// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// Source names the part of a request a schema is applied to.
type Source string

const (
	SourceBody    Source = "body"
	SourceQuery   Source = "query"
	SourceParams  Source = "params"
	SourceHeaders Source = "headers"
	SourceCookies Source = "cookies"
)

// sourceOrder is the order multi-source validation runs in.
var sourceOrder = []Source{SourceBody, SourceQuery, SourceParams, SourceHeaders, SourceCookies}

// IsKnown reports whether s is one of the request sources.
func (s Source) IsKnown() bool {
	for _, known := range sourceOrder {
		if s == known {
			return true
		}
	}
	return false
}

// ErrUnknownSource is returned when a schema targets an unsupported source.
var ErrUnknownSource = errors.New("unknown request source")

// Body read failures. NewBadRequestError maps them to client reasons.
var (
	ErrBodyUnreadable = errors.New("unreadable request body")
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrMalformedJSON  = errors.New("malformed JSON body")
)

// extract returns the raw data of source as generic JSON-like values:
// objects are map[string]any, repeated query values are []any.
func extract(r *http.Request, source Source, maxBody int64) (any, error) {
	switch source {
	case SourceBody:
		return readBody(r, maxBody)
	case SourceQuery:
		out := map[string]any{}
		for k, vs := range r.URL.Query() {
			out[k] = collapse(vs)
		}
		return out, nil
	case SourceParams:
		out := map[string]any{}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, k := range rctx.URLParams.Keys {
				if k == "*" || i >= len(rctx.URLParams.Values) {
					continue
				}
				out[k] = rctx.URLParams.Values[i]
			}
		}
		return out, nil
	case SourceHeaders:
		out := map[string]any{}
		for k, vs := range r.Header {
			out[strings.ToLower(k)] = collapse(vs)
		}
		return out, nil
	case SourceCookies:
		out := map[string]any{}
		for _, c := range r.Cookies() {
			out[c.Name] = c.Value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

// readBody decodes a JSON body and puts the bytes back so handlers can
// read it again. An empty body decodes to an empty object.
func readBody(r *http.Request, maxBody int64) (any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return map[string]any{}, nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyUnreadable, err)
	}
	_ = r.Body.Close()
	if int64(len(raw)) > maxBody {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, maxBody)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return data, nil
}

func collapse(vs []string) any {
	if len(vs) == 1 {
		return vs[0]
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
