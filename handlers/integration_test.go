package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/sourcing"
	"github.com/danielhkuo/forkcast/store"
	"github.com/danielhkuo/forkcast/testutil"
)

// TestFullSessionFlow walks a whole evening: Alex opens a session for
// Atlanta, two friends join, everyone says what they want, the host
// starts the vote on the fixture shortlist, votes come in, and the
// group gets a winner. Runs against both store implementations.
func TestFullSessionFlow(t *testing.T) {
	stores := map[string]store.Adapter{
		"memory": store.NewMemStore(),
		"sql":    testutil.SetupSQLStore(t),
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			mux := setupMuxWith(t, st, nil)

			do := func(method, path string, body any, userID string) *httptest.ResponseRecorder {
				t.Helper()
				var headers map[string]string
				if userID != "" {
					headers = userHeader(userID)
				}
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
				return w
			}

			// Everyone grabs an identity.
			var alex, blair, casey models.IdentityResponse
			for _, id := range []*models.IdentityResponse{&alex, &blair, &casey} {
				w := do("POST", "/identity", nil, "")
				testutil.AssertStatus(t, w, http.StatusCreated)
				testutil.AssertJSON(t, w, id)
			}

			// Alex opens the session.
			w := do("POST", "/sessions", models.CreateSessionRequest{
				HostName: "Alex",
				Location: "Atlanta, GA",
			}, alex.UserID)
			testutil.AssertStatus(t, w, http.StatusCreated)
			var created models.CreateSessionResponse
			testutil.AssertJSON(t, w, &created)
			code := created.SessionID

			// Blair and Casey join with the shared code.
			for _, p := range []struct{ id, name string }{
				{blair.UserID, "Blair"},
				{casey.UserID, "Casey"},
			} {
				w := do("POST", "/sessions/"+code+"/join", models.JoinSessionRequest{Name: p.name}, p.id)
				testutil.AssertStatus(t, w, http.StatusOK)
			}

			// Everyone submits a craving.
			for _, p := range []struct{ id, text string }{
				{alex.UserID, "spicy ramen"},
				{blair.UserID, "tacos"},
				{casey.UserID, "anything cheap"},
			} {
				w := do("POST", "/sessions/"+code+"/preference", models.SubmitPreferenceRequest{Text: p.text}, p.id)
				testutil.AssertStatus(t, w, http.StatusNoContent)
			}

			// Only the host can start the vote.
			w = do("POST", "/sessions/"+code+"/start", nil, blair.UserID)
			testutil.AssertStatus(t, w, http.StatusForbidden)

			w = do("POST", "/sessions/"+code+"/start", nil, alex.UserID)
			testutil.AssertStatus(t, w, http.StatusNoContent)

			// The shortlist came from fixtures (no search configured).
			w = do("GET", "/sessions/"+code, nil, "")
			var state models.SessionStateResponse
			testutil.AssertJSON(t, w, &state)
			if state.Session.Status != models.StatusVoting {
				t.Fatalf("Expected voting status, got %s", state.Session.Status)
			}
			fixtures := sourcing.Fixtures()
			if len(state.Session.Candidates) != len(fixtures) {
				t.Fatalf("Expected %d candidates, got %d", len(fixtures), len(state.Session.Candidates))
			}

			// Preferences can no longer change.
			w = do("POST", "/sessions/"+code+"/preference", models.SubmitPreferenceRequest{Text: "pizza"}, casey.UserID)
			testutil.AssertStatus(t, w, http.StatusConflict)

			// Votes: two for the second candidate, one for the first.
			favorite := state.Session.Candidates[1].ID
			other := state.Session.Candidates[0].ID
			for _, v := range []struct{ id, cand string }{
				{alex.UserID, favorite},
				{blair.UserID, favorite},
				{casey.UserID, other},
			} {
				w := do("POST", "/sessions/"+code+"/votes/"+v.cand, nil, v.id)
				testutil.AssertStatus(t, w, http.StatusOK)
			}

			// Blair flip-flops once; the net vote stands.
			do("POST", "/sessions/"+code+"/votes/"+other, nil, blair.UserID)
			do("POST", "/sessions/"+code+"/votes/"+other, nil, blair.UserID)

			w = do("GET", "/sessions/"+code+"/votes", nil, "")
			var votes models.VoteListResponse
			testutil.AssertJSON(t, w, &votes)
			if votes.Tally[favorite] != 2 || votes.Tally[other] != 1 {
				t.Fatalf("Unexpected tally: %+v", votes.Tally)
			}

			// The host calls it.
			w = do("POST", "/sessions/"+code+"/finish", nil, alex.UserID)
			testutil.AssertStatus(t, w, http.StatusOK)
			var finish models.FinishVotingResponse
			testutil.AssertJSON(t, w, &finish)
			if finish.Winner.ID != favorite {
				t.Errorf("Expected winner %s, got %s", favorite, finish.Winner.ID)
			}

			// Final state is immutable history with the winner stored.
			w = do("GET", "/sessions/"+code, nil, "")
			testutil.AssertJSON(t, w, &state)
			if state.Session.Status != models.StatusFinished {
				t.Errorf("Expected finished status, got %s", state.Session.Status)
			}
			if state.Session.Winner == nil || state.Session.Winner.ID != favorite {
				t.Errorf("Winner not stored: %+v", state.Session.Winner)
			}
			if len(state.Participants) != 3 {
				t.Errorf("Expected 3 participants, got %d", len(state.Participants))
			}

			w = do("POST", "/sessions/"+code+"/votes/"+favorite, nil, casey.UserID)
			testutil.AssertStatus(t, w, http.StatusConflict)
		})
	}
}
