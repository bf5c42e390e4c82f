package database

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned for operations on an unknown identifier
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a create violates a uniqueness constraint
	ErrConflict = errors.New("already exists")

	// ErrValidation is returned when a required field is missing or invalid
	ErrValidation = errors.New("validation failed")
)

// mapUniqueErr translates SQLite UNIQUE constraint failures into ErrConflict
// so callers can match with errors.Is without knowing the driver.
func mapUniqueErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", ErrConflict, what)
	}
	return err
}
