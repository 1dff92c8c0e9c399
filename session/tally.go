// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/forkcast/models"

// Tally counts votes per candidate. Candidates without votes are simply
// absent; callers treat a missing entry as zero.
func Tally(votes []models.Vote) map[string]int {
	counts := make(map[string]int, len(votes))
	for _, v := range votes {
		counts[v.CandidateID]++
	}
	return counts
}

// Resolve picks the winner. With no votes at all, the first candidate
// on the shortlist wins. Otherwise the highest vote count wins, and
// ties go to the candidate with the lowest index in the session's
// stored candidate order — an explicit rule, so identical inputs always
// produce the same winner.
func Resolve(candidates []models.Candidate, votes []models.Vote) (models.Candidate, error) {
	if len(candidates) == 0 {
		return models.Candidate{}, ErrNoCandidates
	}
	if len(votes) == 0 {
		return candidates[0], nil
	}

	counts := Tally(votes)

	winner := candidates[0]
	best := -1
	for _, c := range candidates {
		// Strict > keeps the earliest candidate at the max count.
		if n := counts[c.ID]; n > best {
			best = n
			winner = c
		}
	}
	return winner, nil
}
