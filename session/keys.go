// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/forkcast/store"

// SessionKey addresses the session document for a code.
func SessionKey(code string) store.Key {
	return store.Key{Collection: store.Sessions, ID: code}
}

// ParticipantKey addresses one user's participant record in a session.
func ParticipantKey(code, userID string) store.Key {
	return store.Key{Collection: store.Participants, ID: code + "/" + userID}
}

// VoteKey addresses one (user, candidate) vote fact. Presence of the
// document means "this user currently votes for this candidate".
func VoteKey(code, userID, candidateID string) store.Key {
	return store.Key{Collection: store.Votes, ID: code + "/" + userID + "/" + candidateID}
}

// ScopePrefix selects every participant or vote belonging to a session.
func ScopePrefix(code string) string {
	return code + "/"
}
