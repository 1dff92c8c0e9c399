// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the document store that all Forkcast components
read and write through, plus its per-key subscription feed. It is the
only shared mutable state in the system: clients never call each other,
they observe each other's writes.

# Adapter

Adapter is a keyed JSON document store with create, shallow merge-update,
delete, point read, prefix list, and subscribe. Two implementations:

  - SQLStore: database/sql over postgres (lib/pq) or sqlite
    (modernc.org/sqlite), one document table.
  - MemStore: maps behind a mutex, for the "memory" driver and tests.

# Consistency Contract

The adapter promises per-key write ordering for a single writer and
eventual delivery of changes to subscribers. It does NOT promise
cross-key ordering, multi-key transactions, or read-your-writes across
clients. Callers that read-then-write (vote toggling) accept the
resulting races; see the session package.

# Subscriptions

Subscribe returns a channel feed that replays every matching document
and then streams live changes. Each Change carries a full document
snapshot; consumers replace their observed state, never patch it. A
closed or lagging subscription can simply resubscribe.
*/
package store
