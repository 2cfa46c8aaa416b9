// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

/*
Package services provides suture.Service implementations for the Agora
server.

HTTPServerService adapts the ListenAndServe/Shutdown lifecycle of
*http.Server to suture's Serve(ctx) pattern and drains in-flight requests
on cancellation.

StoreMonitorService pings the document store on an interval and exports
the store_up gauge. It never fails on an unreachable store; readiness
health checks report that separately.

StoreGCService runs value log garbage collection for the badger backend.
A collection error is returned so the supervisor applies backoff.

Every service implements fmt.Stringer so suture event logs name it.
*/
package services
