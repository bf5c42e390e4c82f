package database

import (
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesSchema(t *testing.T) {
	db := openTestDB(t)

	// All five tables must exist and be empty
	counts := map[string]func() (int, error){
		"users":       db.CountUsers,
		"teams":       db.CountTeams,
		"activities":  db.CountActivities,
		"leaderboard": db.CountLeaderboardEntries,
		"workouts":    db.CountWorkouts,
	}
	for table, count := range counts {
		n, err := count()
		if err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("Expected empty %s table, got %d rows", table, n)
		}
	}
}

func TestHealth(t *testing.T) {
	db := openTestDB(t)
	if err := db.Health(); err != nil {
		t.Errorf("Expected healthy database, got %v", err)
	}
}
