package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/session"
	"github.com/danielhkuo/forkcast/store"
	"github.com/danielhkuo/forkcast/testutil"
)

// runFeed serves the event stream until cancel fires and returns the
// raw SSE body.
func runFeed(t *testing.T, mux *http.ServeMux, code string, during func()) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	req := testutil.MakeRequest("GET", "/sessions/"+code+"/events", nil, nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		mux.ServeHTTP(w, req)
		close(done)
	}()

	// Give the handler time to subscribe and drain the replay.
	time.Sleep(100 * time.Millisecond)
	during()
	time.Sleep(100 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Feed did not stop on context cancel")
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %s", ct)
	}
	return w.Body.String()
}

// feedEvents parses the data payloads for one SSE event kind.
func feedEvents(t *testing.T, body, kind string) []feedEvent {
	t.Helper()

	var events []feedEvent
	blocks := strings.Split(body, "\n\n")
	for _, block := range blocks {
		if !strings.Contains(block, "event: "+kind+"\n") {
			continue
		}
		for _, line := range strings.Split(block, "\n") {
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var ev feedEvent
				if err := json.Unmarshal([]byte(data), &ev); err != nil {
					t.Fatalf("Failed to decode event payload: %v", err)
				}
				events = append(events, ev)
			}
		}
	}
	return events
}

func TestFeedReplayAndLive(t *testing.T) {
	st, mux := setupMux(t)
	hostID := testutil.NewUserID()
	code := testutil.CreateTestSession(t, st, hostID, models.StatusVoting, testutil.Candidates(2))

	voter := testutil.NewUserID()
	body := runFeed(t, mux, code, func() {
		testutil.CastTestVote(t, st, code, voter, "cand-a")
	})

	// Replay: the session document arrives before any live change.
	sessions := feedEvents(t, body, "session")
	if len(sessions) == 0 {
		t.Fatal("No session event in stream")
	}
	var sess models.Session
	if err := json.Unmarshal(sessions[0].Body, &sess); err != nil {
		t.Fatalf("Failed to decode session body: %v", err)
	}
	if sess.ID != code || sess.Status != models.StatusVoting {
		t.Errorf("Unexpected session snapshot: %+v", sess)
	}

	// Replay also covers participants that existed before subscribing.
	if parts := feedEvents(t, body, "participant"); len(parts) == 0 {
		t.Error("No participant event in stream")
	}

	// Live: the vote cast mid-stream shows up.
	votes := feedEvents(t, body, "vote")
	if len(votes) == 0 {
		t.Fatal("No vote event in stream")
	}
	var vote models.Vote
	if err := json.Unmarshal(votes[0].Body, &vote); err != nil {
		t.Fatalf("Failed to decode vote body: %v", err)
	}
	if vote.CandidateID != "cand-a" || vote.UserID != voter {
		t.Errorf("Unexpected vote snapshot: %+v", vote)
	}
}

func TestFeedDeliversDeletes(t *testing.T) {
	st, mux := setupMux(t)
	hostID := testutil.NewUserID()
	code := testutil.CreateTestSession(t, st, hostID, models.StatusVoting, testutil.Candidates(2))

	voter := testutil.NewUserID()
	testutil.CastTestVote(t, st, code, voter, "cand-a")

	body := runFeed(t, mux, code, func() {
		if err := st.Delete(context.Background(), session.VoteKey(code, voter, "cand-a")); err != nil {
			t.Errorf("Delete failed: %v", err)
		}
	})

	votes := feedEvents(t, body, "vote")
	if len(votes) < 2 {
		t.Fatalf("Expected replay plus deletion, got %d vote events", len(votes))
	}
	last := votes[len(votes)-1]
	if !last.Deleted {
		t.Errorf("Expected deletion event, got %+v", last)
	}
	if len(last.Body) != 0 {
		t.Errorf("Deletion event carried a body: %s", last.Body)
	}
}

func TestFeedScopedToSession(t *testing.T) {
	st, mux := setupMux(t)
	hostID := testutil.NewUserID()
	code := testutil.CreateTestSession(t, st, hostID, models.StatusVoting, testutil.Candidates(2))
	other := testutil.CreateTestSession(t, st, testutil.NewUserID(), models.StatusVoting, testutil.Candidates(2))

	body := runFeed(t, mux, code, func() {
		testutil.CastTestVote(t, st, other, testutil.NewUserID(), "cand-a")
	})

	for _, ev := range feedEvents(t, body, "vote") {
		if !strings.HasPrefix(ev.Key, code+"/") {
			t.Errorf("Feed leaked event for key %s", ev.Key)
		}
	}
}

func TestFeedUnknownSession(t *testing.T) {
	_, mux := setupMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/sessions/NOPE99/events", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestFeedLiveSessionUpdate(t *testing.T) {
	st := store.NewMemStore()
	mux := setupMuxWith(t, st, nil)

	hostID := testutil.NewUserID()
	code := testutil.CreateTestSession(t, st, hostID, models.StatusOpen, nil)

	body := runFeed(t, mux, code, func() {
		if err := st.MergeUpdate(context.Background(), session.SessionKey(code), map[string]any{"status": models.StatusVoting}); err != nil {
			t.Errorf("MergeUpdate failed: %v", err)
		}
	})

	sessions := feedEvents(t, body, "session")
	if len(sessions) < 2 {
		t.Fatalf("Expected replay plus live update, got %d session events", len(sessions))
	}
	var sess models.Session
	if err := json.Unmarshal(sessions[len(sessions)-1].Body, &sess); err != nil {
		t.Fatalf("Failed to decode session body: %v", err)
	}
	if sess.Status != models.StatusVoting {
		t.Errorf("Live session update not delivered: %+v", sess)
	}
}
