// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/forkcast/identity"
	"github.com/danielhkuo/forkcast/metrics"
	"github.com/danielhkuo/forkcast/middleware"
	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/session"
	"github.com/danielhkuo/forkcast/sourcing"
	"github.com/danielhkuo/forkcast/store"
)

type SessionHandler struct {
	store    store.Adapter
	machine  *session.Machine
	registry *session.Registry
	ledger   *session.Ledger
	searcher sourcing.Searcher
	ids      *identity.Provider
	metrics  *metrics.Collector
}

func NewSessionHandler(st store.Adapter, ids *identity.Provider, searcher sourcing.Searcher, mc *metrics.Collector) *SessionHandler {
	return &SessionHandler{
		store:    st,
		machine:  session.NewMachine(st),
		registry: session.NewRegistry(st),
		ledger:   session.NewLedger(st),
		searcher: searcher,
		ids:      ids,
		metrics:  mc,
	}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.ids)
	if !ok {
		return
	}

	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.HostName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "host_name is required")
		return
	}
	if req.Location == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "location is required")
		return
	}

	sess, err := h.machine.Create(r.Context(), userID, req.HostName, req.Location)
	if err != nil {
		writeCoreError(w, err, "Failed to create session")
		return
	}

	h.metrics.RecordSessionCreated()
	slog.Info("session created", "session_id", sess.ID, "host", req.HostName, "location", req.Location)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: sess.ID,
	})
}

// GetSession handles GET /sessions/{code}
// Returns the session document plus participants, votes, and tally.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session code is required")
		return
	}

	var sess models.Session
	if err := h.store.Get(r.Context(), session.SessionKey(code), &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		writeCoreError(w, err, "Failed to load session")
		return
	}

	participants, err := h.registry.List(r.Context(), code)
	if err != nil {
		writeCoreError(w, err, "Failed to load participants")
		return
	}

	votes, err := h.ledger.List(r.Context(), code)
	if err != nil {
		writeCoreError(w, err, "Failed to load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionStateResponse{
		Session:      sess,
		Participants: participants,
		Votes:        votes,
		Tally:        session.Tally(votes),
	})
}

// JoinSession handles POST /sessions/{code}/join
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	userID, ok := requireUser(w, r, h.ids)
	if !ok {
		return
	}

	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.registry.Join(r.Context(), code, userID, req.Name)
	if err != nil {
		writeCoreError(w, err, "Failed to join session")
		return
	}

	slog.Info("participant joined", "session_id", code, "name", req.Name)

	middleware.JSONResponse(w, http.StatusOK, models.JoinSessionResponse{Participant: p})
}

// SubmitPreference handles POST /sessions/{code}/preference
func (h *SessionHandler) SubmitPreference(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	userID, ok := requireUser(w, r, h.ids)
	if !ok {
		return
	}

	var req models.SubmitPreferenceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.registry.SubmitPreference(r.Context(), code, userID, req.Text); err != nil {
		writeCoreError(w, err, "Failed to submit preference")
		return
	}

	slog.Info("preference submitted", "session_id", code)

	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants handles GET /sessions/{code}/participants
func (h *SessionHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session code is required")
		return
	}

	participants, err := h.registry.List(r.Context(), code)
	if err != nil {
		writeCoreError(w, err, "Failed to load participants")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}

// StartVoting handles POST /sessions/{code}/start
// The host triggers candidate sourcing: everyone's preferences become
// search terms against the session location, fixtures fill in when the
// search comes up short, and the engine flips the session to voting.
func (h *SessionHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	userID, ok := requireUser(w, r, h.ids)
	if !ok {
		return
	}

	var sess models.Session
	if err := h.store.Get(r.Context(), session.SessionKey(code), &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		writeCoreError(w, err, "Failed to load session")
		return
	}

	// Cheap prechecks before paying for a search round trip. The
	// engine re-checks; these can race and that is fine.
	if sess.HostID != userID {
		writeCoreError(w, session.ErrNotHost, "")
		return
	}
	if sess.Status != models.StatusOpen {
		writeCoreError(w, session.ErrWrongPhase, "")
		return
	}

	participants, err := h.registry.List(r.Context(), code)
	if err != nil {
		writeCoreError(w, err, "Failed to load participants")
		return
	}

	var terms []string
	for _, p := range participants {
		if p.Preference != "" {
			terms = append(terms, p.Preference)
		}
	}

	candidates := sourcing.SourceOrFallback(r.Context(), h.searcher, sess.Location, terms)

	if err := h.machine.StartVoting(r.Context(), code, userID, candidates); err != nil {
		writeCoreError(w, err, "Failed to start voting")
		return
	}

	slog.Info("voting started", "session_id", code, "candidates", len(candidates))

	w.WriteHeader(http.StatusNoContent)
}

// FinishVoting handles POST /sessions/{code}/finish
func (h *SessionHandler) FinishVoting(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	userID, ok := requireUser(w, r, h.ids)
	if !ok {
		return
	}

	winner, err := h.machine.Finish(r.Context(), code, userID)
	if err != nil {
		writeCoreError(w, err, "Failed to finish voting")
		return
	}

	h.metrics.RecordSessionFinished()
	slog.Info("session finished", "session_id", code, "winner", winner.Name)

	middleware.JSONResponse(w, http.StatusOK, models.FinishVotingResponse{Winner: winner})
}
