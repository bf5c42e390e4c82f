package leaderboard

import (
	"testing"
	"time"

	"octofit-tracker/internal/database"
)

func entry(id string, userID database.UserID, points int) *database.LeaderboardEntry {
	return &database.LeaderboardEntry{ID: id, UserID: userID, TotalPoints: points}
}

func TestRerankAssignsDenseRanks(t *testing.T) {
	entries := []*database.LeaderboardEntry{
		entry("e1", "u1", 500),
		entry("e2", "u2", 1200),
		entry("e3", "u3", 950),
		entry("e4", "u4", 0),
		entry("e5", "u5", 950),
	}

	rankings := Rerank(entries, TieStableInsertion)
	if len(rankings) != len(entries) {
		t.Fatalf("Expected %d rankings, got %d", len(entries), len(rankings))
	}

	// Ranks must be a permutation of 1..N
	seen := make(map[int]bool)
	for _, r := range rankings {
		if r.Rank < 1 || r.Rank > len(entries) {
			t.Errorf("Rank %d out of range 1..%d", r.Rank, len(entries))
		}
		if seen[r.Rank] {
			t.Errorf("Duplicate rank %d", r.Rank)
		}
		seen[r.Rank] = true
	}

	// Higher points must always rank ahead of lower points
	points := map[string]int{}
	rank := map[string]int{}
	for _, e := range entries {
		points[e.ID] = e.TotalPoints
	}
	for _, r := range rankings {
		rank[r.EntryID] = r.Rank
	}
	for _, a := range entries {
		for _, b := range entries {
			if points[a.ID] > points[b.ID] && rank[a.ID] >= rank[b.ID] {
				t.Errorf("Entry %s (%d points) ranked %d, behind %s (%d points) at %d",
					a.ID, points[a.ID], rank[a.ID], b.ID, points[b.ID], rank[b.ID])
			}
		}
	}

	if rank["e2"] != 1 {
		t.Errorf("Expected e2 at rank 1, got %d", rank["e2"])
	}
}

func TestRerankEmpty(t *testing.T) {
	rankings := Rerank(nil, TieStableInsertion)
	if len(rankings) != 0 {
		t.Errorf("Expected empty result for empty input, got %d rankings", len(rankings))
	}
}

func TestRerankSingleEntry(t *testing.T) {
	rankings := Rerank([]*database.LeaderboardEntry{entry("e1", "u1", 0)}, TieStableInsertion)
	if len(rankings) != 1 || rankings[0].Rank != 1 {
		t.Errorf("Expected single entry at rank 1, got %+v", rankings)
	}
}

func TestRerankDoesNotModifyInput(t *testing.T) {
	entries := []*database.LeaderboardEntry{
		entry("e1", "u1", 100),
		entry("e2", "u2", 300),
	}
	Rerank(entries, TieStableInsertion)
	if entries[0].ID != "e1" || entries[1].ID != "e2" {
		t.Error("Expected input slice order to be preserved")
	}
}

func TestRerankTiePolicies(t *testing.T) {
	now := time.Now()
	tied := func() []*database.LeaderboardEntry {
		a := entry("e1", "u-c", 500)
		a.UpdatedAt = now.Add(-2 * time.Hour)
		b := entry("e2", "u-a", 500)
		b.UpdatedAt = now.Add(-1 * time.Hour)
		c := entry("e3", "u-b", 500)
		c.UpdatedAt = now
		return []*database.LeaderboardEntry{a, b, c}
	}

	tests := []struct {
		name   string
		policy TiePolicy
		want   []string // entry IDs in rank order
	}{
		{"stable insertion keeps input order", TieStableInsertion, []string{"e1", "e2", "e3"}},
		{"by-id orders by user id", TieByUserID, []string{"e2", "e3", "e1"}},
		{"by-recency favors latest update", TieByRecency, []string{"e3", "e2", "e1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rankings := Rerank(tied(), tt.policy)
			for i, wantID := range tt.want {
				if rankings[i].EntryID != wantID {
					t.Errorf("Rank %d: expected %s, got %s", i+1, wantID, rankings[i].EntryID)
				}
				if rankings[i].Rank != i+1 {
					t.Errorf("Expected rank %d, got %d", i+1, rankings[i].Rank)
				}
			}
		})
	}
}

// Ties must never cross a points boundary regardless of policy
func TestRerankTieBreakOnlyWithinEqualPoints(t *testing.T) {
	entries := []*database.LeaderboardEntry{
		entry("low", "u-a", 100),
		entry("high", "u-z", 900),
	}
	for _, policy := range []TiePolicy{TieStableInsertion, TieByUserID, TieByRecency} {
		rankings := Rerank(entries, policy)
		if rankings[0].EntryID != "high" || rankings[1].EntryID != "low" {
			t.Errorf("Policy %s: expected high before low, got %+v", policy, rankings)
		}
	}
}

func TestParseTiePolicy(t *testing.T) {
	for _, valid := range []string{"stable-insertion", "by-id", "by-recency"} {
		if _, err := ParseTiePolicy(valid); err != nil {
			t.Errorf("Expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseTiePolicy("coin-flip"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}
