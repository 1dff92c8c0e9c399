package session

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/forkcast/store"
)

func TestToggleVoteRoundTrip(t *testing.T) {
	st := store.NewMemStore()
	m := NewMachine(st)
	l := NewLedger(st)
	code := seedVoting(t, st, m, "host-1", candidates("A", "B"))

	outcome, err := l.ToggleVote(context.Background(), code, "host-1", "A")
	if err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	if outcome != Added {
		t.Errorf("Expected added, got %s", outcome)
	}

	outcome, err = l.ToggleVote(context.Background(), code, "host-1", "A")
	if err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	if outcome != Removed {
		t.Errorf("Expected removed, got %s", outcome)
	}

	// Toggle twice nets to no vote.
	votes, err := l.List(context.Background(), code)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("Expected empty ledger, got %d votes", len(votes))
	}
}

func TestToggleVoteMultiSelect(t *testing.T) {
	st := store.NewMemStore()
	m := NewMachine(st)
	l := NewLedger(st)
	code := seedVoting(t, st, m, "host-1", candidates("A", "B", "C"))

	// One voter may approve several candidates.
	for _, cand := range []string{"A", "B", "C"} {
		if _, err := l.ToggleVote(context.Background(), code, "host-1", cand); err != nil {
			t.Fatalf("ToggleVote(%s) failed: %v", cand, err)
		}
	}

	votes, err := l.List(context.Background(), code)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(votes) != 3 {
		t.Errorf("Expected 3 votes, got %d", len(votes))
	}

	counts := Tally(votes)
	for _, cand := range []string{"A", "B", "C"} {
		if counts[cand] != 1 {
			t.Errorf("Expected 1 vote for %s, got %d", cand, counts[cand])
		}
	}
}

func TestToggleVoteUnknownCandidate(t *testing.T) {
	st := store.NewMemStore()
	m := NewMachine(st)
	l := NewLedger(st)
	code := seedVoting(t, st, m, "host-1", candidates("A"))

	if _, err := l.ToggleVote(context.Background(), code, "host-1", "Z"); !errors.Is(err, ErrUnknownCandidate) {
		t.Errorf("Expected ErrUnknownCandidate, got %v", err)
	}
}

func TestToggleVoteWrongPhase(t *testing.T) {
	st := store.NewMemStore()
	m := NewMachine(st)
	l := NewLedger(st)

	sess, err := m.Create(context.Background(), "host-1", "Alex", "Atlanta, GA")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Open session: no shortlist to vote on yet.
	if _, err := l.ToggleVote(context.Background(), sess.ID, "host-1", "A"); !errors.Is(err, ErrSessionNotVoting) {
		t.Errorf("Expected ErrSessionNotVoting on open session, got %v", err)
	}

	if err := m.StartVoting(context.Background(), sess.ID, "host-1", candidates("A")); err != nil {
		t.Fatalf("StartVoting failed: %v", err)
	}
	if _, err := m.Finish(context.Background(), sess.ID, "host-1"); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	// Finished session: the ledger is frozen.
	if _, err := l.ToggleVote(context.Background(), sess.ID, "host-1", "A"); !errors.Is(err, ErrSessionNotVoting) {
		t.Errorf("Expected ErrSessionNotVoting on finished session, got %v", err)
	}
}

func TestToggleVoteSessionNotFound(t *testing.T) {
	l := NewLedger(store.NewMemStore())

	if _, err := l.ToggleVote(context.Background(), "NOPE99", "host-1", "A"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestListVotesScopedToSession(t *testing.T) {
	st := store.NewMemStore()
	m := NewMachine(st)
	l := NewLedger(st)

	a := seedVoting(t, st, m, "host-a", candidates("A"))
	b := seedVoting(t, st, m, "host-b", candidates("A"))

	if _, err := l.ToggleVote(context.Background(), a, "host-a", "A"); err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}
	if _, err := l.ToggleVote(context.Background(), b, "host-b", "A"); err != nil {
		t.Fatalf("ToggleVote failed: %v", err)
	}

	votes, err := l.List(context.Background(), a)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(votes) != 1 || votes[0].SessionID != a {
		t.Errorf("List leaked votes across sessions: %+v", votes)
	}
}
