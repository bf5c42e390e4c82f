package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserID identifies a user. It is stored as a plain string on referencing
// rows and is not enforced as a foreign key.
type UserID string

// TeamID identifies a team. A user's TeamID may reference a team that no
// longer exists; resolve it with GetTeam, which reports ErrNotFound.
type TeamID string

// User represents a person tracked by the app
type User struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	TeamID    TeamID    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser inserts a new user, assigning its identifier and creation time.
// Returns ErrConflict if the email is already taken.
func (db *DB) CreateUser(u *User) error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	u.ID = UserID(uuid.NewString())
	u.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := db.conn.Exec(`
		INSERT INTO users (id, email, name, team_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, nullString(string(u.TeamID)), u.CreatedAt.Unix())

	if err := mapUniqueErr(err, "user email "+u.Email); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(id UserID) (*User, error) {
	row := db.conn.QueryRow(`
		SELECT id, email, name, team_id, created_at
		FROM users WHERE id = ?
	`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users in creation order
func (db *DB) ListUsers() ([]*User, error) {
	rows, err := db.conn.Query(`
		SELECT id, email, name, team_id, created_at
		FROM users ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces a user's mutable fields. The identifier and creation
// time are immutable.
func (db *DB) UpdateUser(u *User) error {
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	result, err := db.conn.Exec(`
		UPDATE users SET email = ?, name = ?, team_id = ?
		WHERE id = ?
	`, u.Email, u.Name, nullString(string(u.TeamID)), u.ID)

	if err := mapUniqueErr(err, "user email "+u.Email); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

// DeleteUser removes a user by ID. The user's activities and leaderboard
// entry are left in place (no cascade).
func (db *DB) DeleteUser(id UserID) error {
	result, err := db.conn.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAllUsers removes every user
func (db *DB) DeleteAllUsers() error {
	if _, err := db.conn.Exec(`DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}

// CountUsers returns the number of users
func (db *DB) CountUsers() (int, error) {
	return db.count("users")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*User, error) {
	var u User
	var teamID sql.NullString
	var createdAt int64
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &teamID, &createdAt); err != nil {
		return nil, err
	}
	u.TeamID = TeamID(teamID.String)
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
