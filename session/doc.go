// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session is the coordination core of Forkcast: the session state
machine, the participant registry, the vote ledger, and winner
resolution.

# Components

Each component takes a store.Adapter at construction; there is no
shared singleton, and no in-process lock is ever held across a store
round trip. Correctness under concurrent clients comes entirely from
the store's per-key semantics.

  - Registry: Join, SubmitPreference, List
  - Ledger: ToggleVote, List
  - Machine: Create, StartVoting, Finish
  - Tally / Resolve: pure functions over the current vote set

# Lifecycle

	open --StartVoting(host)--> voting --Finish(host)--> finished

Transitions are forward-only and host-gated. Racing transitions settle
by the store's last-write-wins rule: at most one transition's payload
survives, and callers get no read-your-writes guarantee.

# Winner Resolution

Resolve is deterministic. Zero votes elect the first candidate on the
shortlist; otherwise the highest count wins and ties break to the
lowest index in the session's stored candidate order.

# Accepted Races

ToggleVote is a read-then-act pair over the shared store and is not
atomic against a concurrent toggle of the same key by the same user.
The net effect is a best-effort toggle; human double-clicks are the
only realistic trigger and clients debounce on their side.
*/
package session
