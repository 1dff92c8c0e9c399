// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/forkcast/middleware"
	"github.com/danielhkuo/forkcast/session"
	"github.com/danielhkuo/forkcast/store"
)

// writeCoreError maps core errors onto HTTP statuses. Anything
// unrecognized is logged and hidden behind the fallback message.
func writeCoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrNotAParticipant):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not a participant of this session")
	case errors.Is(err, session.ErrNotHost):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the host may do this")
	case errors.Is(err, session.ErrAlreadyJoined):
		middleware.ErrorResponse(w, http.StatusConflict, "Already joined under a different name")
	case errors.Is(err, session.ErrSessionNotOpen),
		errors.Is(err, session.ErrSessionNotVoting),
		errors.Is(err, session.ErrWrongPhase):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrUnknownCandidate),
		errors.Is(err, session.ErrNoCandidates):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable")
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
