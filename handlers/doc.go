// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Forkcast API.

# Handler Types

Each handler is a struct with store and collaborator dependencies:

  - SessionHandler: session lifecycle, joining, preferences
  - VoteHandler: vote toggling and listing
  - FeedHandler: the server-sent-events change feed
  - IdentityHandler: anonymous user id issuance

Handlers are created via constructor functions that accept a
store.Adapter plus collaborators:

	sessionHandler := handlers.NewSessionHandler(st, ids, searcher, collector)

# Session Lifecycle

Sessions progress through three states: open → voting → finished

	POST /sessions                  → CreateSession (host + code allocated)
	POST /sessions/{code}/join      → JoinSession
	POST /sessions/{code}/preference → SubmitPreference (open only)
	POST /sessions/{code}/start     → StartVoting (host only; sources candidates)
	POST /sessions/{code}/votes/{candidate} → ToggleVote (voting only)
	POST /sessions/{code}/finish    → FinishVoting (host only; resolves winner)

All session operations require the X-User-ID header; phase transitions
additionally require the caller to be the session host.

# Realtime Feed

GET /sessions/{code}/events streams full-snapshot change events for
the session, its participant list, and its vote list. The feed opens
with a replay of current state, so clients reconnect freely.
*/
package handlers
