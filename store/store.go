// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
)

// Collections used by the application. Participant and vote ids are
// scoped under their session code ("CODE/userID", "CODE/userID/candID")
// so a prefix query selects everything belonging to one session.
const (
	Sessions     = "sessions"
	Participants = "participants"
	Votes        = "votes"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrExists      = errors.New("document already exists")
	ErrUnavailable = errors.New("store unavailable")
)

// Key identifies a document within a collection.
type Key struct {
	Collection string
	ID         string
}

func (k Key) String() string {
	return k.Collection + "/" + k.ID
}

// Document is one raw stored record.
type Document struct {
	Key  Key
	Body []byte
}

// Change is one snapshot delivered to subscribers. Body is the full
// post-write document, never a delta; consumers replace their observed
// state wholesale. Deleted changes carry no body.
type Change struct {
	Key     Key
	Body    []byte
	Deleted bool
}

// Adapter is the document store boundary. Implementations guarantee
// per-key write ordering for a single writer and eventual delivery of
// changes to subscribers — nothing more. There are no multi-key
// transactions and no read-your-writes guarantee across clients.
type Adapter interface {
	Create(ctx context.Context, key Key, value any) error
	MergeUpdate(ctx context.Context, key Key, partial map[string]any) error
	Delete(ctx context.Context, key Key) error
	Get(ctx context.Context, key Key, out any) error
	List(ctx context.Context, collection, prefix string) ([]Document, error)
	Subscribe(ctx context.Context, collection, prefix string) (*Subscription, error)
}

// unavailable wraps a driver error so callers can errors.Is against
// ErrUnavailable without losing the cause.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
