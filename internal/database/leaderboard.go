package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry holds one user's derived totals and rank.
//
// total_points and total_activities are a materialized view over the user's
// activities: they record what the entry was computed from, and UpdatedAt
// records when. An entry is stale if activities were written after UpdatedAt
// without a recompute.
type LeaderboardEntry struct {
	ID              string    `json:"id"`
	UserID          UserID    `json:"user_id"`
	TotalPoints     int       `json:"total_points"`
	TotalActivities int       `json:"total_activities"`
	Rank            int       `json:"rank"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateLeaderboardEntry inserts a new entry. Returns ErrConflict if the
// user already has one (at most one entry per user).
func (db *DB) CreateLeaderboardEntry(e *LeaderboardEntry) error {
	if e.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	e.ID = uuid.NewString()
	e.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.conn.Exec(`
		INSERT INTO leaderboard (id, user_id, total_points, total_activities, rank, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.UserID, e.TotalPoints, e.TotalActivities, e.Rank, e.UpdatedAt.Unix())

	if err := mapUniqueErr(err, "leaderboard entry for user "+string(e.UserID)); err != nil {
		return fmt.Errorf("failed to create leaderboard entry: %w", err)
	}
	return nil
}

// GetLeaderboardEntry retrieves an entry by ID
func (db *DB) GetLeaderboardEntry(id string) (*LeaderboardEntry, error) {
	row := db.conn.QueryRow(`
		SELECT id, user_id, total_points, total_activities, rank, updated_at
		FROM leaderboard WHERE id = ?
	`, id)

	e, err := scanLeaderboardEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("leaderboard entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return e, nil
}

// GetLeaderboardEntryByUser retrieves the entry for a user
func (db *DB) GetLeaderboardEntryByUser(userID UserID) (*LeaderboardEntry, error) {
	row := db.conn.QueryRow(`
		SELECT id, user_id, total_points, total_activities, rank, updated_at
		FROM leaderboard WHERE user_id = ?
	`, userID)

	e, err := scanLeaderboardEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("leaderboard entry for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return e, nil
}

// ListLeaderboard returns all entries in rank order (highest points first)
func (db *DB) ListLeaderboard() ([]*LeaderboardEntry, error) {
	return db.listLeaderboard("ORDER BY total_points DESC, rank")
}

// ListLeaderboardByInsertion returns all entries in the order they were
// created. This is the input order for ranking under the stable-insertion
// tie policy.
func (db *DB) ListLeaderboardByInsertion() ([]*LeaderboardEntry, error) {
	return db.listLeaderboard("ORDER BY rowid")
}

func (db *DB) listLeaderboard(order string) ([]*LeaderboardEntry, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, total_points, total_activities, rank, updated_at
		FROM leaderboard ` + order)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*LeaderboardEntry
	for rows.Next() {
		e, err := scanLeaderboardEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}
	return entries, nil
}

// UpdateLeaderboardTotals replaces an entry's derived totals and refreshes
// its update time
func (db *DB) UpdateLeaderboardTotals(id string, totalPoints, totalActivities int) error {
	result, err := db.conn.Exec(`
		UPDATE leaderboard
		SET total_points = ?, total_activities = ?, updated_at = ?
		WHERE id = ?
	`, totalPoints, totalActivities, time.Now().Unix(), id)

	if err != nil {
		return fmt.Errorf("failed to update leaderboard totals: %w", err)
	}
	return requireRow(result, "leaderboard entry "+id)
}

// UpdateLeaderboardRank assigns an entry's rank and refreshes its update time
func (db *DB) UpdateLeaderboardRank(id string, rank int) error {
	result, err := db.conn.Exec(`
		UPDATE leaderboard SET rank = ?, updated_at = ?
		WHERE id = ?
	`, rank, time.Now().Unix(), id)

	if err != nil {
		return fmt.Errorf("failed to update leaderboard rank: %w", err)
	}
	return requireRow(result, "leaderboard entry "+id)
}

// DeleteLeaderboardEntry removes an entry by ID
func (db *DB) DeleteLeaderboardEntry(id string) error {
	result, err := db.conn.Exec(`DELETE FROM leaderboard WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leaderboard entry: %w", err)
	}
	return requireRow(result, "leaderboard entry "+id)
}

// DeleteAllLeaderboardEntries removes every entry
func (db *DB) DeleteAllLeaderboardEntries() error {
	if _, err := db.conn.Exec(`DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	return nil
}

// CountLeaderboardEntries returns the number of entries
func (db *DB) CountLeaderboardEntries() (int, error) {
	return db.count("leaderboard")
}

func requireRow(result sql.Result, what string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func scanLeaderboardEntry(s scanner) (*LeaderboardEntry, error) {
	var e LeaderboardEntry
	var updatedAt int64
	if err := s.Scan(&e.ID, &e.UserID, &e.TotalPoints, &e.TotalActivities,
		&e.Rank, &updatedAt); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &e, nil
}
