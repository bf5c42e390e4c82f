package leaderboard

import (
	"fmt"
	"sort"

	"octofit-tracker/internal/database"
)

// TiePolicy controls how entries with equal total points are ordered before
// ranks are assigned.
type TiePolicy string

const (
	// TieStableInsertion keeps ties in the order the entries were created.
	// This matches the historical behavior of ranking over an unordered
	// store scan.
	TieStableInsertion TiePolicy = "stable-insertion"

	// TieByUserID orders ties by user identifier ascending, giving an
	// ordering that is deterministic across backends and runs.
	TieByUserID TiePolicy = "by-id"

	// TieByRecency orders ties most-recently-updated first.
	TieByRecency TiePolicy = "by-recency"
)

// ParseTiePolicy validates a policy string from configuration
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch TiePolicy(s) {
	case TieStableInsertion, TieByUserID, TieByRecency:
		return TiePolicy(s), nil
	}
	return "", fmt.Errorf("unknown tie policy %q", s)
}

// Ranking is one entry's assigned position
type Ranking struct {
	EntryID string
	UserID  database.UserID
	Rank    int
}

// Rerank assigns rank 1..N across all entries, highest total points first.
// The sort is stable: entries with equal points keep their relative order
// after the tie policy's pre-ordering is applied. The input is not modified.
// An empty input produces an empty result.
func Rerank(entries []*database.LeaderboardEntry, policy TiePolicy) []Ranking {
	ordered := make([]*database.LeaderboardEntry, len(entries))
	copy(ordered, entries)

	switch policy {
	case TieByUserID:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].UserID < ordered[j].UserID
		})
	case TieByRecency:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].UpdatedAt.After(ordered[j].UpdatedAt)
		})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalPoints > ordered[j].TotalPoints
	})

	rankings := make([]Ranking, len(ordered))
	for i, e := range ordered {
		rankings[i] = Ranking{EntryID: e.ID, UserID: e.UserID, Rank: i + 1}
	}
	return rankings
}
