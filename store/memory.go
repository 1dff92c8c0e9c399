// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-memory Adapter with the same subscription semantics
// as SQLStore. It backs the "memory" driver for local development and
// most of the core tests. Everything is lost on process exit.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte // collection -> id -> body
	hub  *hub
}

func NewMemStore() *MemStore {
	return &MemStore{
		docs: make(map[string]map[string][]byte),
		hub:  newHub(),
	}
}

func (m *MemStore) Create(ctx context.Context, key Key, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}

	m.mu.Lock()
	coll := m.docs[key.Collection]
	if coll == nil {
		coll = make(map[string][]byte)
		m.docs[key.Collection] = coll
	}
	if _, ok := coll[key.ID]; ok {
		m.mu.Unlock()
		return ErrExists
	}
	coll[key.ID] = body
	m.mu.Unlock()

	m.hub.publish(Change{Key: key, Body: body})
	return nil
}

func (m *MemStore) MergeUpdate(ctx context.Context, key Key, partial map[string]any) error {
	m.mu.Lock()
	body, ok := m.docs[key.Collection][key.ID]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	merged, err := mergeBody(body, partial)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("document %s: %w", key, err)
	}
	m.docs[key.Collection][key.ID] = merged
	m.mu.Unlock()

	m.hub.publish(Change{Key: key, Body: merged})
	return nil
}

func (m *MemStore) Delete(ctx context.Context, key Key) error {
	m.mu.Lock()
	if _, ok := m.docs[key.Collection][key.ID]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.docs[key.Collection], key.ID)
	m.mu.Unlock()

	m.hub.publish(Change{Key: key, Deleted: true})
	return nil
}

func (m *MemStore) Get(ctx context.Context, key Key, out any) error {
	m.mu.RLock()
	body, ok := m.docs[key.Collection][key.ID]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", key, err)
	}
	return nil
}

func (m *MemStore) List(ctx context.Context, collection, prefix string) ([]Document, error) {
	m.mu.RLock()
	docs := m.snapshot(collection, prefix)
	m.mu.RUnlock()
	return docs, nil
}

func (m *MemStore) Subscribe(ctx context.Context, collection, prefix string) (*Subscription, error) {
	return m.hub.subscribe(collection, prefix, func() ([]Change, error) {
		m.mu.RLock()
		docs := m.snapshot(collection, prefix)
		m.mu.RUnlock()

		replay := make([]Change, len(docs))
		for i, d := range docs {
			replay[i] = Change{Key: d.Key, Body: d.Body}
		}
		return replay, nil
	})
}

// snapshot copies matching documents in id order. Callers hold m.mu.
func (m *MemStore) snapshot(collection, prefix string) []Document {
	coll := m.docs[collection]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		body := make([]byte, len(coll[id]))
		copy(body, coll[id])
		docs = append(docs, Document{
			Key:  Key{Collection: collection, ID: id},
			Body: body,
		})
	}
	return docs
}
