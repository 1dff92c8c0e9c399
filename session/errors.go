// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "errors"

// Business-rule failures returned by the core. Handlers map these onto
// HTTP statuses. None of them leaves a partial write behind: every
// operation is a single store mutation, so a failed call is always
// safely retriable.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotAParticipant  = errors.New("not a participant of this session")
	ErrAlreadyJoined    = errors.New("already joined under a different name")
	ErrSessionNotOpen   = errors.New("session is not open")
	ErrSessionNotVoting = errors.New("session is not in the voting phase")
	ErrWrongPhase       = errors.New("operation not allowed in the current phase")
	ErrNotHost          = errors.New("only the host may do this")
	ErrUnknownCandidate = errors.New("candidate is not on the shortlist")
	ErrNoCandidates     = errors.New("candidate list is empty")
	ErrDuplicateID      = errors.New("could not allocate a unique session code")
)
