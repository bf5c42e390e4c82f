package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Workout represents a suggested workout routine. DifficultyLevel is free
// text; by convention one of Beginner, Intermediate, Advanced.
type Workout struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DifficultyLevel string    `json:"difficulty_level"`
	Duration        int       `json:"duration"` // minutes
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateWorkout inserts a new workout, assigning its identifier and
// creation time
func (db *DB) CreateWorkout(w *Workout) error {
	if err := validateWorkout(w); err != nil {
		return err
	}

	w.ID = uuid.NewString()
	w.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.conn.Exec(`
		INSERT INTO workouts (id, name, description, difficulty_level, duration, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.Name, w.Description, w.DifficultyLevel, w.Duration, w.Category, w.CreatedAt.Unix())

	if err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

// GetWorkout retrieves a workout by ID
func (db *DB) GetWorkout(id string) (*Workout, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, description, difficulty_level, duration, category, created_at
		FROM workouts WHERE id = ?
	`, id)

	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return w, nil
}

// ListWorkouts returns all workouts in creation order
func (db *DB) ListWorkouts() ([]*Workout, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, description, difficulty_level, duration, category, created_at
		FROM workouts ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workouts: %w", err)
	}
	return workouts, nil
}

// UpdateWorkout replaces a workout's mutable fields
func (db *DB) UpdateWorkout(w *Workout) error {
	if err := validateWorkout(w); err != nil {
		return err
	}

	result, err := db.conn.Exec(`
		UPDATE workouts
		SET name = ?, description = ?, difficulty_level = ?, duration = ?, category = ?
		WHERE id = ?
	`, w.Name, w.Description, w.DifficultyLevel, w.Duration, w.Category, w.ID)

	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	return requireRow(result, "workout "+w.ID)
}

// DeleteWorkout removes a workout by ID
func (db *DB) DeleteWorkout(id string) error {
	result, err := db.conn.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return requireRow(result, "workout "+id)
}

// DeleteAllWorkouts removes every workout
func (db *DB) DeleteAllWorkouts() error {
	if _, err := db.conn.Exec(`DELETE FROM workouts`); err != nil {
		return fmt.Errorf("failed to delete workouts: %w", err)
	}
	return nil
}

// CountWorkouts returns the number of workouts
func (db *DB) CountWorkouts() (int, error) {
	return db.count("workouts")
}

func validateWorkout(w *Workout) error {
	if w.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if w.DifficultyLevel == "" {
		return fmt.Errorf("%w: difficulty_level is required", ErrValidation)
	}
	if w.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if w.Category == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}

func scanWorkout(s scanner) (*Workout, error) {
	var w Workout
	var createdAt int64
	if err := s.Scan(&w.ID, &w.Name, &w.Description, &w.DifficultyLevel,
		&w.Duration, &w.Category, &createdAt); err != nil {
		return nil, err
	}
	w.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &w, nil
}
