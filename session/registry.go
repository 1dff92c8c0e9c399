// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/store"
)

// Registry owns the participant records of a session: who joined and
// what they are craving.
type Registry struct {
	store store.Adapter
}

func NewRegistry(st store.Adapter) *Registry {
	return &Registry{store: st}
}

// Join registers userID as a participant. Re-joining with the same name
// is an idempotent no-op returning the existing record; a different
// name fails with ErrAlreadyJoined. Joining is allowed in any phase so
// latecomers can still watch the vote.
func (r *Registry) Join(ctx context.Context, sessionID, userID, name string) (models.Participant, error) {
	if err := r.sessionExists(ctx, sessionID); err != nil {
		return models.Participant{}, err
	}

	key := ParticipantKey(sessionID, userID)

	var existing models.Participant
	err := r.store.Get(ctx, key, &existing)
	if err == nil {
		if existing.Name != name {
			return models.Participant{}, ErrAlreadyJoined
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Participant{}, err
	}

	p := models.Participant{
		SessionID: sessionID,
		UserID:    userID,
		Name:      name,
		JoinedAt:  time.Now(),
	}
	if err := r.store.Create(ctx, key, p); err != nil {
		if errors.Is(err, store.ErrExists) {
			// Lost a create race against another connection of the
			// same user; the stored record is authoritative.
			if getErr := r.store.Get(ctx, key, &existing); getErr == nil {
				if existing.Name != name {
					return models.Participant{}, ErrAlreadyJoined
				}
				return existing, nil
			}
		}
		return models.Participant{}, err
	}
	return p, nil
}

// SubmitPreference overwrites the participant's craving text.
// Last write wins; concurrent edits by the same user are not merged.
func (r *Registry) SubmitPreference(ctx context.Context, sessionID, userID, text string) error {
	sess, err := r.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != models.StatusOpen {
		return ErrSessionNotOpen
	}

	key := ParticipantKey(sessionID, userID)
	var p models.Participant
	if err := r.store.Get(ctx, key, &p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotAParticipant
		}
		return err
	}

	return r.store.MergeUpdate(ctx, key, map[string]any{"preference": text})
}

// List returns the session's participants in join order.
func (r *Registry) List(ctx context.Context, sessionID string) ([]models.Participant, error) {
	docs, err := r.store.List(ctx, store.Participants, ScopePrefix(sessionID))
	if err != nil {
		return nil, err
	}

	ps := make([]models.Participant, 0, len(docs))
	for _, d := range docs {
		var p models.Participant
		if err := json.Unmarshal(d.Body, &p); err != nil {
			return nil, fmt.Errorf("failed to decode participant %s: %w", d.Key, err)
		}
		ps = append(ps, p)
	}

	// The store lists by id; join time with user id as tie-break gives
	// a stable total order across store implementations.
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].JoinedAt.Equal(ps[j].JoinedAt) {
			return ps[i].JoinedAt.Before(ps[j].JoinedAt)
		}
		return ps[i].UserID < ps[j].UserID
	})
	return ps, nil
}

func (r *Registry) getSession(ctx context.Context, sessionID string) (models.Session, error) {
	var sess models.Session
	if err := r.store.Get(ctx, SessionKey(sessionID), &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return sess, nil
}

func (r *Registry) sessionExists(ctx context.Context, sessionID string) error {
	_, err := r.getSession(ctx, sessionID)
	return err
}
