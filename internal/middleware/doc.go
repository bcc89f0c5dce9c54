// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, request ID
tracking, and Prometheus metrics integration. These components work alongside
the auth middleware to create the request pipeline assembled in
internal/api/router.go.

Key Components:

  - Compression: Gzip compression for responses of any size
  - Request ID: UUID-based request tracking
  - Prometheus Metrics: HTTP request/response instrumentation

Middleware Stack:

The router wraps handlers in this order (outermost first):

	middleware.RequestID(
	    middleware.PrometheusMetrics(
	        middleware.Compression(
	            handler,
	        ),
	    ),
	)

Usage Example - Compression:

	import "github.com/stremin/accountengine/internal/middleware"

	http.HandleFunc("/api/v1/data",
	    middleware.Compression(handler),
	)

	// Responses of any size are automatically compressed
	// Accept-Encoding: gzip header is required

Usage Example - Request ID:

	http.HandleFunc("/api/v1/logs",
	    middleware.RequestID(handler),
	)

	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := r.Context().Value(middleware.RequestIDKey).(string)
	    log.Printf("[%s] Processing request", requestID)
	}

Compression Details:

The compression middleware:
  - Only compresses responses when the client sends Accept-Encoding: gzip
  - Skips WebSocket upgrade requests
  - Pools gzip writers to reduce allocations

Thread Safety:

All middleware components are thread-safe:
  - Compression uses a sync.Pool of per-request gzip writers
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/auth: bearer-token gate middleware
  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
