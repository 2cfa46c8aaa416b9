// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package validation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/agora/internal/logging"
	"github.com/tomtom215/agora/internal/metrics"
)

// DefaultMaxBodyBytes bounds the JSON body read for validation.
const DefaultMaxBodyBytes int64 = 1 << 20

// ErrorResponder writes err as an HTTP response. FailedError and
// BadRequestError are the only errors the invoker passes to it.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Invoker runs schemas against request sources and either attaches the
// parsed values to the request context or hands a typed error to the
// responder.
type Invoker struct {
	formatter   *Formatter
	onError     ErrorResponder
	attach      bool
	maxBody     int64
	logFailures bool
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithAttachValidated controls whether parsed values are stored in the
// request context. Default: true.
func WithAttachValidated(attach bool) InvokerOption {
	return func(iv *Invoker) { iv.attach = attach }
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) InvokerOption {
	return func(iv *Invoker) {
		if n > 0 {
			iv.maxBody = n
		}
	}
}

// WithFailureLogging controls the info-level log line written for every
// rejected request. Default: true.
func WithFailureLogging(enabled bool) InvokerOption {
	return func(iv *Invoker) { iv.logFailures = enabled }
}

// NewInvoker returns an Invoker formatting failures with f.
func NewInvoker(f *Formatter, onError ErrorResponder, opts ...InvokerOption) *Invoker {
	iv := &Invoker{
		formatter:   f,
		onError:     onError,
		attach:      true,
		maxBody:     DefaultMaxBodyBytes,
		logFailures: true,
	}
	for _, opt := range opts {
		opt(iv)
	}
	return iv
}

// Validate returns middleware applying schema to one request source.
func (iv *Invoker) Validate(source Source, schema Schema) func(http.Handler) http.Handler {
	mustKnow(source)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, err := iv.Check(r, source, schema)
			if err != nil {
				iv.onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ValidateSources returns middleware applying several schemas. Sources
// run in the order body, query, params, headers, cookies and the first
// failing source is reported alone. It panics on an unknown source.
func (iv *Invoker) ValidateSources(schemas map[Source]Schema) func(http.Handler) http.Handler {
	for src := range schemas {
		mustKnow(src)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, err := iv.CheckSources(r, schemas)
			if err != nil {
				iv.onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Check validates one source of r. On success the returned request
// carries the parsed value (see Validated); on failure r is returned
// unchanged with a *FailedError or *BadRequestError.
func (iv *Invoker) Check(r *http.Request, source Source, schema Schema) (*http.Request, error) {
	start := time.Now()
	ctx := r.Context()

	raw, out, err := iv.run(r, source, schema)
	if err != nil {
		var issues Issues
		if !errors.As(err, &issues) {
			return r, iv.badRequest(ctx, source, start, err)
		}
		return r, iv.fail(ctx, issues, source, raw, start)
	}

	iv.pass(ctx, []Source{source}, start)
	if iv.attach {
		r = r.WithContext(context.WithValue(ctx, validatedKey(source), out))
	}
	return r, nil
}

// CheckSources is the non-middleware form of ValidateSources.
func (iv *Invoker) CheckSources(r *http.Request, schemas map[Source]Schema) (*http.Request, error) {
	start := time.Now()
	ctx := r.Context()
	parsed := make(map[Source]any, len(schemas))
	checked := make([]Source, 0, len(schemas))

	for _, src := range sourceOrder {
		schema, ok := schemas[src]
		if !ok {
			continue
		}
		raw, out, err := iv.run(r, src, schema)
		if err != nil {
			var issues Issues
			if !errors.As(err, &issues) {
				return r, iv.badRequest(ctx, src, start, err)
			}
			rooted := rootIssues(src, issues)
			failed := failedSource(rooted)
			return r, iv.fail(ctx, sourceIssues(rooted, failed), failed, raw, start)
		}
		parsed[src] = out
		checked = append(checked, src)
	}

	iv.pass(ctx, checked, start)
	if iv.attach {
		for src, out := range parsed {
			ctx = context.WithValue(ctx, validatedKey(src), out)
		}
		r = r.WithContext(ctx)
	}
	return r, nil
}

// Parse runs schema against one source of r and returns the parsed value
// without attaching it, logging or recording metrics. Handlers use it to
// read input when WithAttachValidated(false) is in effect.
func (iv *Invoker) Parse(r *http.Request, source Source, schema Schema) (any, error) {
	_, out, err := iv.run(r, source, schema)
	return out, err
}

// run extracts and parses one source, returning the raw data too.
func (iv *Invoker) run(r *http.Request, source Source, schema Schema) (raw, out any, err error) {
	raw, err = extract(r, source, iv.maxBody)
	if err != nil {
		return nil, nil, err
	}
	out, err = schema.Parse(r.Context(), raw)
	return raw, out, err
}

func (iv *Invoker) fail(ctx context.Context, issues Issues, source Source, payload any, start time.Time) error {
	res := iv.formatter.Format(ctx, issues, source, payload)
	metrics.RecordValidation(string(source), "failed", time.Since(start))
	for _, fe := range res.Errors {
		metrics.RecordValidationIssue(string(source), string(fe.Code), string(fe.Severity))
	}

	if iv.logFailures {
		logging.Ctx(ctx).Info().
			Str("source", string(source)).
			Int("error_count", res.Summary.TotalErrors).
			Strs("fields", res.Summary.AffectedFields).
			Int("high_severity", res.Summary.SeverityBreakdown.High).
			Msg("Request validation failed")
	}
	return NewFailedError(res, source)
}

func (iv *Invoker) badRequest(ctx context.Context, source Source, start time.Time, err error) error {
	metrics.RecordValidation(string(source), "error", time.Since(start))
	logging.Ctx(ctx).Warn().Err(err).Str("source", string(source)).Msg("Request validation could not run")
	return NewBadRequestError(err)
}

func (iv *Invoker) pass(ctx context.Context, sources []Source, start time.Time) {
	elapsed := time.Since(start)
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
		metrics.RecordValidation(string(s), "passed", elapsed)
	}
	logging.Ctx(ctx).Debug().Strs("sources", names).Dur("elapsed", elapsed).Msg("Request validation passed")
}

// rootIssues prefixes every issue path with the source name.
func rootIssues(source Source, issues Issues) Issues {
	out := make(Issues, len(issues))
	for i, is := range issues {
		is.Path = append([]string{string(source)}, is.Path...)
		out[i] = is
	}
	return out
}

// failedSource reads the source back from the first issue's path root,
// defaulting to the body.
func failedSource(issues Issues) Source {
	if len(issues) == 0 || len(issues[0].Path) == 0 {
		return SourceBody
	}
	if s := Source(issues[0].Path[0]); s.IsKnown() {
		return s
	}
	return SourceBody
}

// sourceIssues keeps the issues rooted at source and strips the root.
func sourceIssues(issues Issues, source Source) Issues {
	out := make(Issues, 0, len(issues))
	for _, is := range issues {
		if len(is.Path) == 0 || Source(is.Path[0]) != source {
			continue
		}
		is.Path = is.Path[1:]
		out = append(out, is)
	}
	return out
}

func mustKnow(source Source) {
	if !source.IsKnown() {
		panic(fmt.Errorf("validation: %w: %q", ErrUnknownSource, source))
	}
}

type validatedKey Source

// Validated returns the parsed value attached for source.
func Validated(ctx context.Context, source Source) (any, bool) {
	v := ctx.Value(validatedKey(source))
	return v, v != nil
}

// ValidatedAs returns the parsed value for source as T.
//
//	req, ok := validation.ValidatedAs[CreatePostRequest](r.Context(), validation.SourceBody)
func ValidatedAs[T any](ctx context.Context, source Source) (T, bool) {
	v, ok := ctx.Value(validatedKey(source)).(T)
	return v, ok
}
