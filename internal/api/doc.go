// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package api provides the HTTP surface of the social backend: the chi
router, the resource handlers and the JSON envelope writer.

Every route that accepts input is guarded by validation middleware built
from a request schema. Handlers only run once their input has passed and
read the parsed values back from the request context:

	r.With(router.invoker.Validate(validation.SourceBody, createPostSchema)).
	    Post("/posts", router.handler.CreatePost)

Envelopes:

Successful responses are wrapped in models.APIResponse:

	{"status": "success", "data": {...}, "requestId": "...", "timestamp": "..."}

Errors are written by Responder.Error, which is also the error responder
of the validation invoker. It accepts any error and dispatches on the
methods it implements:

  - StatusCode, ErrorCode, TranslationKey: status line, code and message key
  - FieldErrors: per-field validation errors
  - Metadata: envelope metadata (validation summary and source)

Anything else is logged and rendered as a generic 500 so internal details
never reach the client. Messages are localized through the i18n bundle
using the locale negotiated by i18n.Bundle.Middleware.

Route Map:

	POST  /api/v1/users               body
	GET   /api/v1/users/{id}          params
	PATCH /api/v1/users/{id}/profile  params + body
	POST  /api/v1/posts               body
	GET   /api/v1/posts               query
	POST  /api/v1/messages            body
	POST  /api/v1/groups              body
	POST  /api/v1/events              body
	POST  /api/v1/payments            body (JSON Schema) + headers
	GET   /api/v1/health/live
	GET   /api/v1/health/ready
	GET   /metrics
*/
package api
