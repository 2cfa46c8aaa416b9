// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package models defines the documents stored by Agora and the JSON envelopes
returned by the API.

Documents:

  - User: account with bcrypt password hash and editable Profile
  - Post: timeline entry with visibility and tags
  - Message: direct message between two users
  - Group and Event: community spaces and their scheduled events
  - Payment: tip or purchase guarded by a unique idempotency key

Every document implements store.Document through DocumentID and carries
both json and bson tags, so the same struct is written to BadgerDB (as
JSON) and to MongoDB (as BSON). Ids come from NewID and are UUIDv7
strings, which sort in creation order.

Envelopes:

  - APIResponse: {"status": "success", "data": ...}
  - APIError: {"status": "error", "code": ..., "errors": {...}}
  - ListResponse: a page of items with limit and offset
  - HealthStatus: liveness and readiness check body

User documents must never be rendered directly; use User.Public.
*/
package models
