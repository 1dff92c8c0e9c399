// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLStore implements Adapter over database/sql. It runs against both
// postgres (lib/pq) and sqlite (modernc.org/sqlite); $1 placeholders
// are valid in both drivers, so every statement is shared.
type SQLStore struct {
	db  *sql.DB
	hub *hub
}

// NewSQLStore creates the schema if needed and returns a ready store.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if err := createSchema(db); err != nil {
		return nil, err
	}
	return &SQLStore{db: db, hub: newHub()}, nil
}

const schema = `
-- Documents
CREATE TABLE IF NOT EXISTS document (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    body TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_document_collection ON document(collection);
`

// createSchema creates the document table. Safe to call multiple
// times - uses IF NOT EXISTS.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLStore) Create(ctx context.Context, key Key, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document (collection, id, body, updated_at)
		VALUES ($1, $2, $3, $4)
	`, key.Collection, key.ID, string(body), time.Now())

	if err != nil {
		// Unique-violation error strings differ between pq and sqlite;
		// a post-insert existence check works for both.
		if s.exists(ctx, key) {
			return ErrExists
		}
		return unavailable(err)
	}

	s.hub.publish(Change{Key: key, Body: body})
	return nil
}

func (s *SQLStore) MergeUpdate(ctx context.Context, key Key, partial map[string]any) error {
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM document WHERE collection = $1 AND id = $2
	`, key.Collection, key.ID).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(err)
	}

	merged, err := mergeBody([]byte(body), partial)
	if err != nil {
		return fmt.Errorf("document %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE document
		SET body = $1, updated_at = $2
		WHERE collection = $3 AND id = $4
	`, string(merged), time.Now(), key.Collection, key.ID)
	if err != nil {
		return unavailable(err)
	}

	s.hub.publish(Change{Key: key, Body: merged})
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key Key) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM document WHERE collection = $1 AND id = $2
	`, key.Collection, key.ID)
	if err != nil {
		return unavailable(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	s.hub.publish(Change{Key: key, Deleted: true})
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key Key, out any) error {
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM document WHERE collection = $1 AND id = $2
	`, key.Collection, key.ID).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(err)
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, collection, prefix string) ([]Document, error) {
	// Ids are codes, uuids, and slashes; no LIKE metacharacters to escape.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, body FROM document
		WHERE collection = $1 AND id LIKE $2
		ORDER BY id
	`, collection, prefix+"%")
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, unavailable(err)
		}
		docs = append(docs, Document{
			Key:  Key{Collection: collection, ID: id},
			Body: []byte(body),
		})
	}
	return docs, rows.Err()
}

func (s *SQLStore) Subscribe(ctx context.Context, collection, prefix string) (*Subscription, error) {
	return s.hub.subscribe(collection, prefix, func() ([]Change, error) {
		docs, err := s.List(ctx, collection, prefix)
		if err != nil {
			return nil, err
		}
		replay := make([]Change, len(docs))
		for i, d := range docs {
			replay[i] = Change{Key: d.Key, Body: d.Body}
		}
		return replay, nil
	})
}

func (s *SQLStore) exists(ctx context.Context, key Key) bool {
	var found bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM document WHERE collection = $1 AND id = $2)
	`, key.Collection, key.ID).Scan(&found)
	return err == nil && found
}

// mergeBody applies a shallow merge of partial onto the stored JSON body.
func mergeBody(body []byte, partial map[string]any) ([]byte, error) {
	merged := make(map[string]any)
	if err := json.Unmarshal(body, &merged); err != nil {
		return nil, fmt.Errorf("corrupt body: %w", err)
	}
	for k, v := range partial {
		merged[k] = v
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged body: %w", err)
	}
	return out, nil
}
