// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/forkcast/identity"
	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/store"
)

// codeAttempts bounds optimistic session-code allocation before giving
// up with ErrDuplicateID. 36^6 codes make even one retry rare.
const codeAttempts = 5

// Machine drives the session lifecycle: open → voting → finished,
// forward only. Phase transitions are host-gated. Under racing
// transitions the store's last-write-wins semantics mean at most one
// transition's payload survives; a caller must not assume its own call
// won merely because it returned without error.
type Machine struct {
	store  store.Adapter
	ledger *Ledger
}

func NewMachine(st store.Adapter) *Machine {
	return &Machine{store: st, ledger: NewLedger(st)}
}

// Create opens a new session under a fresh 6-character code and
// registers hostName as its host participant.
func (m *Machine) Create(ctx context.Context, hostID, hostName, location string) (models.Session, error) {
	var lastErr error
	for i := 0; i < codeAttempts; i++ {
		code, err := identity.NewSessionCode()
		if err != nil {
			return models.Session{}, err
		}

		sess := models.Session{
			ID:         code,
			HostID:     hostID,
			Location:   location,
			Status:     models.StatusOpen,
			Candidates: []models.Candidate{},
			CreatedAt:  time.Now(),
		}
		err = m.store.Create(ctx, SessionKey(code), sess)
		if errors.Is(err, store.ErrExists) {
			lastErr = ErrDuplicateID
			continue
		}
		if err != nil {
			return models.Session{}, err
		}

		host := models.Participant{
			SessionID: code,
			UserID:    hostID,
			Name:      hostName,
			IsHost:    true,
			JoinedAt:  time.Now(),
		}
		if err := m.store.Create(ctx, ParticipantKey(code, hostID), host); err != nil {
			return models.Session{}, err
		}
		return sess, nil
	}
	return models.Session{}, lastErr
}

// StartVoting moves an open session to the voting phase with the given
// shortlist. The caller must always pass a non-empty candidate list;
// fallback selection on an empty search result is the sourcing
// collaborator's job, not the engine's.
func (m *Machine) StartVoting(ctx context.Context, sessionID, actingUserID string, candidates []models.Candidate) error {
	sess, err := m.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.HostID != actingUserID {
		return ErrNotHost
	}
	if sess.Status != models.StatusOpen {
		return ErrWrongPhase
	}
	if len(candidates) == 0 {
		return ErrNoCandidates
	}

	return m.store.MergeUpdate(ctx, SessionKey(sessionID), map[string]any{
		"status":     models.StatusVoting,
		"candidates": candidates,
	})
}

// Finish resolves the winner from the current votes, stores it, and
// moves the session to finished. Finished sessions are immutable
// history; starting over means creating a brand-new session.
func (m *Machine) Finish(ctx context.Context, sessionID, actingUserID string) (models.Candidate, error) {
	sess, err := m.getSession(ctx, sessionID)
	if err != nil {
		return models.Candidate{}, err
	}
	if sess.HostID != actingUserID {
		return models.Candidate{}, ErrNotHost
	}
	if sess.Status != models.StatusVoting {
		return models.Candidate{}, ErrWrongPhase
	}

	votes, err := m.ledger.List(ctx, sessionID)
	if err != nil {
		return models.Candidate{}, err
	}

	winner, err := Resolve(sess.Candidates, votes)
	if err != nil {
		return models.Candidate{}, err
	}

	err = m.store.MergeUpdate(ctx, SessionKey(sessionID), map[string]any{
		"status": models.StatusFinished,
		"winner": winner,
	})
	if err != nil {
		return models.Candidate{}, err
	}
	return winner, nil
}

func (m *Machine) getSession(ctx context.Context, sessionID string) (models.Session, error) {
	var sess models.Session
	if err := m.store.Get(ctx, SessionKey(sessionID), &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return sess, nil
}
