// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the Forkcast HTTP routes using Go 1.22+ method
routing.

Every API route runs behind logging, status-code metrics, and the
per-client rate limiter. The SSE feed and the operational endpoints
(/health, /metrics) are exempt.
*/
package router
