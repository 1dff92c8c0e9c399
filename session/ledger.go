// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/store"
)

// Toggle outcomes.
const (
	Added   = "added"
	Removed = "removed"
)

// Ledger owns the set of (voter, candidate) vote facts for a session.
type Ledger struct {
	store store.Adapter
}

func NewLedger(st store.Adapter) *Ledger {
	return &Ledger{store: st}
}

// ToggleVote flips the (user, candidate) vote fact and reports which
// way it went. The read-then-act pair is not atomic against a
// concurrent toggle of the same key: a double-click racing itself can
// land as a single add. That outcome is accepted — the UI debounces,
// and the tally tolerates the rare miss.
func (l *Ledger) ToggleVote(ctx context.Context, sessionID, userID, candidateID string) (string, error) {
	sess, err := l.getSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.Status != models.StatusVoting {
		return "", ErrSessionNotVoting
	}
	if !onShortlist(sess.Candidates, candidateID) {
		return "", ErrUnknownCandidate
	}

	key := VoteKey(sessionID, userID, candidateID)

	var existing models.Vote
	err = l.store.Get(ctx, key, &existing)
	switch {
	case err == nil:
		if err := l.store.Delete(ctx, key); err != nil && !errors.Is(err, store.ErrNotFound) {
			return "", err
		}
		return Removed, nil

	case errors.Is(err, store.ErrNotFound):
		v := models.Vote{
			SessionID:   sessionID,
			UserID:      userID,
			CandidateID: candidateID,
			CastAt:      time.Now(),
		}
		if err := l.store.Create(ctx, key, v); err != nil {
			if errors.Is(err, store.ErrExists) {
				// A concurrent toggle created the same fact; the net
				// state is what this caller wanted.
				return Added, nil
			}
			return "", err
		}
		return Added, nil

	default:
		return "", err
	}
}

// List returns the session's current votes. Set semantics: the keyed
// store makes duplicates impossible by construction.
func (l *Ledger) List(ctx context.Context, sessionID string) ([]models.Vote, error) {
	docs, err := l.store.List(ctx, store.Votes, ScopePrefix(sessionID))
	if err != nil {
		return nil, err
	}

	votes := make([]models.Vote, 0, len(docs))
	for _, d := range docs {
		var v models.Vote
		if err := json.Unmarshal(d.Body, &v); err != nil {
			return nil, fmt.Errorf("failed to decode vote %s: %w", d.Key, err)
		}
		votes = append(votes, v)
	}
	return votes, nil
}

func (l *Ledger) getSession(ctx context.Context, sessionID string) (models.Session, error) {
	var sess models.Session
	if err := l.store.Get(ctx, SessionKey(sessionID), &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return sess, nil
}

func onShortlist(candidates []models.Candidate, candidateID string) bool {
	for _, c := range candidates {
		if c.ID == candidateID {
			return true
		}
	}
	return false
}
