package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity represents a single exercise session
type Activity struct {
	ID           string    `json:"id"`
	UserID       UserID    `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Duration     int       `json:"duration"` // minutes
	Distance     *float64  `json:"distance"` // km, nil for non-distance types
	Calories     int       `json:"calories"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityFilter narrows ListActivities. Zero value matches everything.
type ActivityFilter struct {
	UserID UserID
}

// CreateActivity inserts a new activity, assigning its identifier and
// creation time. The user reference is not checked against the users table.
func (db *DB) CreateActivity(a *Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.conn.Exec(`
		INSERT INTO activities (id, user_id, activity_type, duration, distance, calories, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.ActivityType, a.Duration, a.Distance, a.Calories,
		a.Date.Unix(), a.CreatedAt.Unix())

	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetActivity retrieves an activity by ID
func (db *DB) GetActivity(id string) (*Activity, error) {
	row := db.conn.QueryRow(`
		SELECT id, user_id, activity_type, duration, distance, calories, date, created_at
		FROM activities WHERE id = ?
	`, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// ListActivities returns activities matching the filter, most recent first
func (db *DB) ListActivities(filter ActivityFilter) ([]*Activity, error) {
	query := `
		SELECT id, user_id, activity_type, duration, distance, calories, date, created_at
		FROM activities
	`
	var args []any
	if filter.UserID != "" {
		query += " WHERE user_id = ?"
		args = append(args, filter.UserID)
	}
	query += " ORDER BY date DESC, id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}
	return activities, nil
}

// UpdateActivity replaces an activity's mutable fields
func (db *DB) UpdateActivity(a *Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}

	result, err := db.conn.Exec(`
		UPDATE activities
		SET user_id = ?, activity_type = ?, duration = ?, distance = ?, calories = ?, date = ?
		WHERE id = ?
	`, a.UserID, a.ActivityType, a.Duration, a.Distance, a.Calories, a.Date.Unix(), a.ID)

	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("activity %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

// DeleteActivity removes an activity by ID
func (db *DB) DeleteActivity(id string) error {
	result, err := db.conn.Exec(`DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAllActivities removes every activity
func (db *DB) DeleteAllActivities() error {
	if _, err := db.conn.Exec(`DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	return nil
}

// CountActivities returns the number of activities
func (db *DB) CountActivities() (int, error) {
	return db.count("activities")
}

// ActivityTotals sums calories and counts activities for one user.
// A user with no activities yields zero totals, not an error.
func (db *DB) ActivityTotals(userID UserID) (points, activities int, err error) {
	err = db.conn.QueryRow(`
		SELECT COALESCE(SUM(calories), 0), COUNT(*)
		FROM activities WHERE user_id = ?
	`, userID).Scan(&points, &activities)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total activities: %w", err)
	}
	return points, activities, nil
}

func validateActivity(a *Activity) error {
	if a.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if a.ActivityType == "" {
		return fmt.Errorf("%w: activity_type is required", ErrValidation)
	}
	if a.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if a.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrValidation)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	return nil
}

func scanActivity(s scanner) (*Activity, error) {
	var a Activity
	var distance sql.NullFloat64
	var date, createdAt int64
	if err := s.Scan(&a.ID, &a.UserID, &a.ActivityType, &a.Duration, &distance,
		&a.Calories, &date, &createdAt); err != nil {
		return nil, err
	}
	if distance.Valid {
		a.Distance = &distance.Float64
	}
	a.Date = time.Unix(date, 0).UTC()
	a.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &a, nil
}
