// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/forkcast/identity"
	"github.com/danielhkuo/forkcast/metrics"
	"github.com/danielhkuo/forkcast/middleware"
	"github.com/danielhkuo/forkcast/models"
	"github.com/danielhkuo/forkcast/session"
	"github.com/danielhkuo/forkcast/store"
)

type VoteHandler struct {
	store   store.Adapter
	ledger  *session.Ledger
	ids     *identity.Provider
	metrics *metrics.Collector
}

func NewVoteHandler(st store.Adapter, ids *identity.Provider, mc *metrics.Collector) *VoteHandler {
	return &VoteHandler{
		store:   st,
		ledger:  session.NewLedger(st),
		ids:     ids,
		metrics: mc,
	}
}

// ToggleVote handles POST /sessions/{code}/votes/{candidate}
// Adds the vote if absent, removes it if present.
func (h *VoteHandler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	candidateID := r.PathValue("candidate")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	userID, ok := requireUser(w, r, h.ids)
	if !ok {
		return
	}

	applied, err := h.ledger.ToggleVote(r.Context(), code, userID, candidateID)
	if err != nil {
		writeCoreError(w, err, "Failed to toggle vote")
		return
	}

	h.metrics.RecordVoteToggled(applied)
	slog.Info("vote toggled", "session_id", code, "candidate_id", candidateID, "applied", applied)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleVoteResponse{Applied: applied})
}

// ListVotes handles GET /sessions/{code}/votes
func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session code is required")
		return
	}

	votes, err := h.ledger.List(r.Context(), code)
	if err != nil {
		writeCoreError(w, err, "Failed to load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteListResponse{
		Votes: votes,
		Tally: session.Tally(votes),
	})
}
