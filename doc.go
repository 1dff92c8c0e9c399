// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Forkcast API server.

Forkcast lets a small group pick a restaurant together: one person
opens a session, the rest join with a 6-character code, everyone
submits what they are craving, the host sources a shortlist, the group
votes, and the winner is pushed to every participant over server-sent
events.

# Starting the Server

The server runs out of the box against a local sqlite file:

	go run .

Or against postgres:

	STORE_DRIVER=postgres STORE_DSN=postgres://... go run .

# Configuration

Optional settings:

  - PORT (-p): server port (default: 4117)
  - STORE_DRIVER (-t): postgres, sqlite, or memory (default: sqlite)
  - STORE_DSN (-d): store connection string
  - SEARCH_URL (-search-url): restaurant search API (fixtures when unset)
  - SEARCH_API_KEY (-search-key): search API bearer key

# Architecture

The server uses a handler-based architecture with dependency injection:

  - session: the coordination core (state machine, registry, ledger, tally)
  - store: document store adapter (sql or memory) with change subscriptions
  - sourcing: candidate search with fixture fallback
  - identity: anonymous user id issuance
  - handlers: HTTP request handlers (sessions, votes, SSE feed)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - metrics: Prometheus collectors
  - models: domain and request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
