package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"octofit-tracker/internal/database"
)

// errorResponse is the JSON body for all error statuses
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("Failed to encode response", "error", err)
	}
}

// writeError maps store errors onto HTTP statuses:
// ErrValidation 400, ErrNotFound 404, ErrConflict 409, anything else 500.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, database.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, database.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrConflict):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		slog.Default().Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", database.ErrValidation, err)
	}
	return nil
}
