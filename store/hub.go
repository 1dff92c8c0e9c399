// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"strings"
	"sync"
)

// subscriberBuffer is the live-change headroom beyond the initial
// replay. A subscriber that falls further behind misses intermediate
// snapshots, which the eventually-consistent contract permits.
const subscriberBuffer = 64

// Subscription is a change feed for one collection/prefix. C first
// delivers a replay of every matching document, then live changes.
// Close detaches the subscription and closes C. Resubscribing replays
// again, so a dropped consumer can always catch back up.
type Subscription struct {
	C <-chan Change

	once   sync.Once
	detach func()
}

func (s *Subscription) Close() {
	s.once.Do(s.detach)
}

// hub fans committed writes out to subscribers. Registration and replay
// happen under the same mutex as publication, so a subscriber never
// permanently misses a write; at worst it sees the same snapshot twice,
// which full-replacement semantics make harmless.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]*hubSub
}

type hubSub struct {
	collection string
	prefix     string
	ch         chan Change
}

func newHub() *hub {
	return &hub{subs: make(map[int]*hubSub)}
}

// subscribe registers a subscriber and seeds its channel with the
// replay returned by the callback. The callback runs with the hub
// locked, so no publish can interleave between replay and registration.
func (h *hub) subscribe(collection, prefix string, replay func() ([]Change, error)) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	initial, err := replay()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, len(initial)+subscriberBuffer)
	for _, c := range initial {
		ch <- c
	}

	id := h.next
	h.next++
	h.subs[id] = &hubSub{collection: collection, prefix: prefix, ch: ch}

	return &Subscription{
		C: ch,
		detach: func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		},
	}, nil
}

func (h *hub) publish(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.subs {
		if s.collection != c.Key.Collection || !strings.HasPrefix(c.Key.ID, s.prefix) {
			continue
		}
		select {
		case s.ch <- c:
		default:
			// Subscriber buffer full; it keeps its place in the feed
			// and the skipped snapshot is superseded by the next one.
		}
	}
}
