package metrics

import (
	"context"
	"log/slog"
	"time"
)

// DB interface for entity count queries
type DB interface {
	CountUsers() (int, error)
	CountTeams() (int, error)
	CountActivities() (int, error)
	CountLeaderboardEntries() (int, error)
	CountWorkouts() (int, error)
}

// StartEntityCountCollector starts a background goroutine that periodically
// collects per-entity row counts from the database
func StartEntityCountCollector(ctx context.Context, db DB, interval time.Duration) {
	logger := slog.Default()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect once immediately
	collectEntityCounts(db, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Entity count collector stopping")
			return
		case <-ticker.C:
			collectEntityCounts(db, logger)
		}
	}
}

func collectEntityCounts(db DB, logger *slog.Logger) {
	counts := []struct {
		entity string
		fn     func() (int, error)
	}{
		{EntityUsers, db.CountUsers},
		{EntityTeams, db.CountTeams},
		{EntityActivities, db.CountActivities},
		{EntityLeaderboard, db.CountLeaderboardEntries},
		{EntityWorkouts, db.CountWorkouts},
	}

	for _, c := range counts {
		n, err := c.fn()
		if err != nil {
			logger.Error("Failed to count entity rows", "entity", c.entity, "error", err)
			continue
		}
		EntityRows.WithLabelValues(c.entity).Set(float64(n))
	}
}
