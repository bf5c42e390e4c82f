package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Team represents a named group of users
type Team struct {
	ID          TeamID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTeam inserts a new team, assigning its identifier and creation time.
// Returns ErrConflict if the name is already taken.
func (db *DB) CreateTeam(t *Team) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	t.ID = TeamID(uuid.NewString())
	t.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.conn.Exec(`
		INSERT INTO teams (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`, t.ID, t.Name, t.Description, t.CreatedAt.Unix())

	if err := mapUniqueErr(err, "team name "+t.Name); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetTeam retrieves a team by ID
func (db *DB) GetTeam(id TeamID) (*Team, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, description, created_at
		FROM teams WHERE id = ?
	`, id)

	t, err := scanTeam(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// ListTeams returns all teams in creation order
func (db *DB) ListTeams() ([]*Team, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, description, created_at
		FROM teams ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam replaces a team's mutable fields
func (db *DB) UpdateTeam(t *Team) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	result, err := db.conn.Exec(`
		UPDATE teams SET name = ?, description = ?
		WHERE id = ?
	`, t.Name, t.Description, t.ID)

	if err := mapUniqueErr(err, "team name "+t.Name); err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("team %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// DeleteTeam removes a team by ID. Users referencing the team keep their
// team_id; the reference dangles.
func (db *DB) DeleteTeam(id TeamID) error {
	result, err := db.conn.Exec(`DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAllTeams removes every team
func (db *DB) DeleteAllTeams() error {
	if _, err := db.conn.Exec(`DELETE FROM teams`); err != nil {
		return fmt.Errorf("failed to delete teams: %w", err)
	}
	return nil
}

// CountTeams returns the number of teams
func (db *DB) CountTeams() (int, error) {
	return db.count("teams")
}

func scanTeam(s scanner) (*Team, error) {
	var t Team
	var createdAt int64
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &createdAt); err != nil {
		return nil, err
	}
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &t, nil
}
