package session

import (
	"testing"

	"github.com/danielhkuo/forkcast/models"
)

func candidates(ids ...string) []models.Candidate {
	out := make([]models.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Candidate{ID: id, Name: "Restaurant " + id})
	}
	return out
}

func votes(candidateIDs ...string) []models.Vote {
	out := make([]models.Vote, 0, len(candidateIDs))
	for i, id := range candidateIDs {
		out = append(out, models.Vote{
			SessionID:   "ABC123",
			UserID:      "user-" + string(rune('a'+i)),
			CandidateID: id,
		})
	}
	return out
}

func TestTallyCounts(t *testing.T) {
	vs := votes("A", "B", "A", "C", "A")

	counts := Tally(vs)

	if counts["A"] != 3 || counts["B"] != 1 || counts["C"] != 1 {
		t.Errorf("Unexpected tally: %v", counts)
	}
	if _, ok := counts["D"]; ok {
		t.Error("Tally materialized a candidate with no votes")
	}
}

func TestTallyOrderIndependent(t *testing.T) {
	forward := votes("A", "B", "A", "C", "B", "A")
	reversed := make([]models.Vote, len(forward))
	for i, v := range forward {
		reversed[len(forward)-1-i] = v
	}

	a := Tally(forward)
	b := Tally(reversed)

	if len(a) != len(b) {
		t.Fatalf("Tally size differs: %d vs %d", len(a), len(b))
	}
	for id, n := range a {
		if b[id] != n {
			t.Errorf("Count for %s differs: %d vs %d", id, n, b[id])
		}
	}
}

func TestResolveZeroVotes(t *testing.T) {
	cands := candidates("C", "B", "A")

	winner, err := Resolve(cands, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if winner.ID != "C" {
		t.Errorf("Expected first candidate C, got %s", winner.ID)
	}
}

func TestResolveHighestCountWins(t *testing.T) {
	cands := candidates("A", "B", "C")
	vs := votes("B", "B", "C")

	winner, err := Resolve(cands, vs)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if winner.ID != "B" {
		t.Errorf("Expected B with 2 votes, got %s", winner.ID)
	}
}

// Ties break to the lowest index in the stored candidate order, so the
// winner never depends on vote arrival order.
func TestResolveTieBreak(t *testing.T) {
	cands := candidates("C", "B", "A")
	vs := votes("A", "A", "B", "B", "C")

	first, err := Resolve(cands, vs)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first.ID != "B" {
		t.Errorf("Expected B (lowest index at max count), got %s", first.ID)
	}

	// Deterministic: identical inputs, identical winner.
	second, err := Resolve(cands, vs)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Resolve not deterministic: %s then %s", first.ID, second.ID)
	}
}

func TestResolveIgnoresStaleVotes(t *testing.T) {
	cands := candidates("A", "B")
	// Votes for a candidate not on the shortlist never elect it.
	vs := votes("Z", "Z", "Z", "B")

	winner, err := Resolve(cands, vs)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if winner.ID != "B" {
		t.Errorf("Expected B, got %s", winner.ID)
	}
}

func TestResolveNoCandidates(t *testing.T) {
	if _, err := Resolve(nil, votes("A")); err != ErrNoCandidates {
		t.Errorf("Expected ErrNoCandidates, got %v", err)
	}
}
