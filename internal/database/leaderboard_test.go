package database

import (
	"errors"
	"testing"
)

func TestCreateAndGetLeaderboardEntry(t *testing.T) {
	db := openTestDB(t)

	entry := &LeaderboardEntry{
		UserID:          "user-1",
		TotalPoints:     950,
		TotalActivities: 3,
	}
	if err := db.CreateLeaderboardEntry(entry); err != nil {
		t.Fatalf("Failed to create leaderboard entry: %v", err)
	}
	if entry.ID == "" {
		t.Error("Expected entry ID to be assigned")
	}
	if entry.UpdatedAt.IsZero() {
		t.Error("Expected updated_at to be set")
	}

	retrieved, err := db.GetLeaderboardEntry(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get leaderboard entry: %v", err)
	}
	if retrieved.TotalPoints != 950 || retrieved.TotalActivities != 3 {
		t.Errorf("Expected totals 950/3, got %d/%d", retrieved.TotalPoints, retrieved.TotalActivities)
	}

	byUser, err := db.GetLeaderboardEntryByUser("user-1")
	if err != nil {
		t.Fatalf("Failed to get leaderboard entry by user: %v", err)
	}
	if byUser.ID != entry.ID {
		t.Errorf("Expected entry %s, got %s", entry.ID, byUser.ID)
	}
}

func TestCreateLeaderboardEntryOnePerUser(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateLeaderboardEntry(&LeaderboardEntry{UserID: "user-1"}); err != nil {
		t.Fatalf("Failed to create leaderboard entry: %v", err)
	}

	err := db.CreateLeaderboardEntry(&LeaderboardEntry{UserID: "user-1"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	n, err := db.CountLeaderboardEntries()
	if err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 entry after failed create, got %d", n)
	}
}

func TestListLeaderboardOrdering(t *testing.T) {
	db := openTestDB(t)

	users := []UserID{"user-a", "user-b", "user-c"}
	points := []int{500, 1200, 950}
	for i, user := range users {
		entry := &LeaderboardEntry{UserID: user, TotalPoints: points[i]}
		if err := db.CreateLeaderboardEntry(entry); err != nil {
			t.Fatalf("Failed to create leaderboard entry: %v", err)
		}
	}

	entries, err := db.ListLeaderboard()
	if err != nil {
		t.Fatalf("Failed to list leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].TotalPoints > entries[i-1].TotalPoints {
			t.Errorf("Expected descending points, got %d before %d",
				entries[i-1].TotalPoints, entries[i].TotalPoints)
		}
	}

	byInsertion, err := db.ListLeaderboardByInsertion()
	if err != nil {
		t.Fatalf("Failed to list leaderboard by insertion: %v", err)
	}
	wantOrder := []UserID{"user-a", "user-b", "user-c"}
	for i, e := range byInsertion {
		if e.UserID != wantOrder[i] {
			t.Errorf("Expected insertion order %v, got %s at position %d", wantOrder, e.UserID, i)
		}
	}
}

func TestUpdateLeaderboardTotalsAndRank(t *testing.T) {
	db := openTestDB(t)

	entry := &LeaderboardEntry{UserID: "user-1", TotalPoints: 100, TotalActivities: 1}
	if err := db.CreateLeaderboardEntry(entry); err != nil {
		t.Fatalf("Failed to create leaderboard entry: %v", err)
	}

	if err := db.UpdateLeaderboardTotals(entry.ID, 400, 2); err != nil {
		t.Fatalf("Failed to update totals: %v", err)
	}
	if err := db.UpdateLeaderboardRank(entry.ID, 1); err != nil {
		t.Fatalf("Failed to update rank: %v", err)
	}

	retrieved, err := db.GetLeaderboardEntry(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get leaderboard entry: %v", err)
	}
	if retrieved.TotalPoints != 400 || retrieved.TotalActivities != 2 {
		t.Errorf("Expected totals 400/2, got %d/%d", retrieved.TotalPoints, retrieved.TotalActivities)
	}
	if retrieved.Rank != 1 {
		t.Errorf("Expected rank 1, got %d", retrieved.Rank)
	}
	if retrieved.UpdatedAt.Before(entry.UpdatedAt) {
		t.Error("Expected updated_at to be refreshed")
	}

	t.Run("unknown id", func(t *testing.T) {
		if err := db.UpdateLeaderboardRank("no-such-entry", 5); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteAllLeaderboardEntries(t *testing.T) {
	db := openTestDB(t)

	for _, user := range []UserID{"user-a", "user-b"} {
		if err := db.CreateLeaderboardEntry(&LeaderboardEntry{UserID: user}); err != nil {
			t.Fatalf("Failed to create leaderboard entry: %v", err)
		}
	}

	if err := db.DeleteAllLeaderboardEntries(); err != nil {
		t.Fatalf("Failed to delete all entries: %v", err)
	}

	entries, err := db.ListLeaderboard()
	if err != nil {
		t.Fatalf("Failed to list leaderboard: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty leaderboard after delete all, got %d entries", len(entries))
	}
}
