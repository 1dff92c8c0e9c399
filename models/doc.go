// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and response types for the
Forkcast API.

# Domain Types

A Session is one instance of the group decision process, identified by a
6-character shareable code. It owns its Participants (one per user, with
their submitted craving), the Candidate shortlist set by the host when
voting starts, and the resolved Winner once finished.

A Vote is a single (user, candidate) endorsement; a user may hold any
number of them at once (multi-select voting).

# Status Values

Sessions move forward only:

	open → voting → finished

StatusOpen accepts joins and preference edits, StatusVoting accepts vote
toggles, StatusFinished is immutable history.
*/
package models
