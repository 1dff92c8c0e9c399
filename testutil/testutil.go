// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/forkcast/cliparse"
	"github.com/danielhkuo/forkcast/identity"
	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/session"
	"github.com/danielhkuo/forkcast/store"
)

// SetupSQLStore returns a SQLStore over an in-memory sqlite database.
func SetupSQLStore(t *testing.T) *store.SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A :memory: DSN gets a separate database per pooled connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	st, err := store.NewSQLStore(db)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        4117,
		StoreDriver: "memory",
		RateLimit:   1000,
		RateBurst:   1000,
	}
}

// NewUserID returns a fresh user id of the shape identity.Issue emits.
func NewUserID() string {
	return uuid.NewString()
}

// CreateTestSession writes a session document directly and returns its
// code. status should be "open", "voting", or "finished"; voting and
// finished sessions get the supplied candidates.
func CreateTestSession(t *testing.T, st store.Adapter, hostID, status string, candidates []models.Candidate) string {
	t.Helper()

	code, err := identity.NewSessionCode()
	if err != nil {
		t.Fatalf("Failed to generate session code: %v", err)
	}
	sess := models.Session{
		ID:         code,
		HostID:     hostID,
		Location:   "Atlanta, GA",
		Status:     status,
		Candidates: candidates,
		CreatedAt:  time.Now(),
	}
	if candidates == nil {
		sess.Candidates = []models.Candidate{}
	}

	if err := st.Create(context.Background(), session.SessionKey(code), sess); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	host := models.Participant{
		SessionID: code,
		UserID:    hostID,
		Name:      "TestHost",
		IsHost:    true,
		JoinedAt:  time.Now(),
	}
	if err := st.Create(context.Background(), session.ParticipantKey(code, hostID), host); err != nil {
		t.Fatalf("Failed to create test host: %v", err)
	}

	return code
}

// JoinTestParticipant writes a participant record directly.
func JoinTestParticipant(t *testing.T, st store.Adapter, code, userID, name string) {
	t.Helper()

	p := models.Participant{
		SessionID: code,
		UserID:    userID,
		Name:      name,
		JoinedAt:  time.Now(),
	}
	if err := st.Create(context.Background(), session.ParticipantKey(code, userID), p); err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}
}

// CastTestVote writes a vote record directly.
func CastTestVote(t *testing.T, st store.Adapter, code, userID, candidateID string) {
	t.Helper()

	v := models.Vote{
		SessionID:   code,
		UserID:      userID,
		CandidateID: candidateID,
		CastAt:      time.Now(),
	}
	if err := st.Create(context.Background(), session.VoteKey(code, userID, candidateID), v); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// Candidates returns n distinct test candidates.
func Candidates(n int) []models.Candidate {
	out := make([]models.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Candidate{
			ID:   "cand-" + string(rune('a'+i)),
			Name: "Restaurant " + string(rune('A'+i)),
		})
	}
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
