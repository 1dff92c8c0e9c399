// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers for the
Forkcast API.

# Middleware

  - WithLogging: request start/completion logging via slog
  - WithMetrics: response status recording into the metrics collector
  - RateLimiter.Middleware: per-client token bucket (X-User-ID or IP)
  - CORS: cross-origin headers and preflight handling

# Helpers

JSONResponse, ErrorResponse, and ParseJSONBody keep the handlers free
of encoding boilerplate; GetClientIP resolves the caller address behind
proxies.
*/
package middleware
