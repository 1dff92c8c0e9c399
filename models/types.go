// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status constants
const (
	StatusOpen     = "open"
	StatusVoting   = "voting"
	StatusFinished = "finished"
)

// Request types

type CreateSessionRequest struct {
	HostName string `json:"host_name"`
	Location string `json:"location"`
}

type JoinSessionRequest struct {
	Name string `json:"name"`
}

type SubmitPreferenceRequest struct {
	Text string `json:"text"`
}

// Response types

type IdentityResponse struct {
	UserID string `json:"user_id"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type JoinSessionResponse struct {
	Participant Participant `json:"participant"`
}

type ToggleVoteResponse struct {
	Applied string `json:"applied"` // "added" or "removed"
}

type FinishVotingResponse struct {
	Winner Candidate `json:"winner"`
}

type SessionStateResponse struct {
	Session      Session        `json:"session"`
	Participants []Participant  `json:"participants"`
	Votes        []Vote         `json:"votes"`
	Tally        map[string]int `json:"tally"`
}

type VoteListResponse struct {
	Votes []Vote         `json:"votes"`
	Tally map[string]int `json:"tally"`
}

// Domain types

type Session struct {
	ID         string      `json:"id"`
	HostID     string      `json:"host_id"`
	Location   string      `json:"location"`
	Status     string      `json:"status"`
	Candidates []Candidate `json:"candidates"`
	Winner     *Candidate  `json:"winner,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Candidate carries the sourcing collaborator's display attributes
// through unmodified; the core only ever looks at ID.
type Candidate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	PriceTier   string  `json:"price_tier"`
	Address     string  `json:"address"`
	Subtitle    string  `json:"subtitle,omitempty"`
}

type Participant struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Preference string    `json:"preference"`
	IsHost     bool      `json:"is_host"`
	JoinedAt   time.Time `json:"joined_at"`
}

type Vote struct {
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
