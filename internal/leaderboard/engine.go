package leaderboard

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"octofit-tracker/internal/database"
	"octofit-tracker/internal/metrics"
)

// Totals holds a user's aggregated activity statistics
type Totals struct {
	Points     int `json:"total_points"`
	Activities int `json:"total_activities"`
}

// Engine computes leaderboard state from activity records.
//
// Aggregation and ranking are read-then-write sequences; the mutex
// serializes them so concurrent recomputes cannot lose updates. Entries are
// only recomputed through RefreshUser and RerankAll: any write path that
// creates or deletes activities must call RefreshUser for the affected user,
// otherwise that user's entry goes stale.
type Engine struct {
	db     *database.DB
	policy TiePolicy
	logger *slog.Logger

	mu sync.Mutex
}

// NewEngine creates an engine using the given tie policy
func NewEngine(db *database.DB, policy TiePolicy) *Engine {
	return &Engine{
		db:     db,
		policy: policy,
		logger: slog.Default(),
	}
}

// Aggregate computes a user's totals from their current activity set.
// It has no side effects; a user with no activities yields zero totals.
func (e *Engine) Aggregate(userID database.UserID) (Totals, error) {
	points, activities, err := e.db.ActivityTotals(userID)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to aggregate user %s: %w", userID, err)
	}
	return Totals{Points: points, Activities: activities}, nil
}

// RefreshUser recomputes one user's totals, persists them into the user's
// leaderboard entry (creating it if absent), and re-ranks all entries.
func (e *Engine) RefreshUser(userID database.UserID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()

	totals, err := e.Aggregate(userID)
	if err != nil {
		metrics.LeaderboardRecomputesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	entry, err := e.db.GetLeaderboardEntryByUser(userID)
	switch {
	case err == nil:
		err = e.db.UpdateLeaderboardTotals(entry.ID, totals.Points, totals.Activities)
	case errors.Is(err, database.ErrNotFound):
		err = e.db.CreateLeaderboardEntry(&database.LeaderboardEntry{
			UserID:          userID,
			TotalPoints:     totals.Points,
			TotalActivities: totals.Activities,
		})
	}
	if err != nil {
		metrics.LeaderboardRecomputesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return fmt.Errorf("failed to persist totals for user %s: %w", userID, err)
	}

	err = e.rerankLocked()
	e.observe(start, err)
	return err
}

// RerankAll re-ranks every leaderboard entry by total points descending.
// Ranks are a dense 1..N assignment; ranking must be re-run whenever any
// entry's totals change.
func (e *Engine) RerankAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	err := e.rerankLocked()
	e.observe(start, err)
	return err
}

// rerankLocked reads all entries, computes ranks, and writes back each rank
// that changed. A failed write leaves that entry stale; later entries are
// still written, and the joined error reports every failure.
func (e *Engine) rerankLocked() error {
	entries, err := e.db.ListLeaderboardByInsertion()
	if err != nil {
		return fmt.Errorf("failed to load leaderboard for ranking: %w", err)
	}

	current := make(map[string]int, len(entries))
	for _, entry := range entries {
		current[entry.ID] = entry.Rank
	}

	var errs []error
	for _, r := range Rerank(entries, e.policy) {
		if current[r.EntryID] == r.Rank {
			continue
		}
		if err := e.db.UpdateLeaderboardRank(r.EntryID, r.Rank); err != nil {
			e.logger.Error("Failed to persist rank", "entry_id", r.EntryID, "rank", r.Rank, "error", err)
			errs = append(errs, err)
		}
	}

	metrics.LeaderboardSize.Set(float64(len(entries)))
	return errors.Join(errs...)
}

func (e *Engine) observe(start time.Time, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.LeaderboardRecomputesTotal.WithLabelValues(result).Inc()
	metrics.LeaderboardRecomputeDuration.Observe(time.Since(start).Seconds())
}
