package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"octofit-tracker/internal/database"
	"octofit-tracker/internal/leaderboard"
)

// LeaderboardHandler serves the /api/leaderboard collection
type LeaderboardHandler struct {
	db     *database.DB
	engine *leaderboard.Engine
	logger *slog.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(db *database.DB, engine *leaderboard.Engine) *LeaderboardHandler {
	return &LeaderboardHandler{db: db, engine: engine, logger: slog.Default()}
}

// HandleList handles GET /api/leaderboard/, highest total points first
func (h *LeaderboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.ListLeaderboard()
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*database.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleCreate handles POST /api/leaderboard/
func (h *LeaderboardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var e database.LeaderboardEntry
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, err)
		return
	}
	if err := h.db.CreateLeaderboardEntry(&e); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Leaderboard entry created", "id", e.ID, "user_id", e.UserID)
	writeJSON(w, http.StatusCreated, &e)
}

// HandleGet handles GET /api/leaderboard/{id}/
func (h *LeaderboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.db.GetLeaderboardEntry(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// HandleUpdate handles PUT /api/leaderboard/{id}/ by re-deriving the
// entry's totals from the user's activities rather than trusting the
// submitted numbers (totals are derived state, not authored state).
func (h *LeaderboardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	e, err := h.db.GetLeaderboardEntry(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.RefreshUser(e.UserID); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.db.GetLeaderboardEntry(e.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/leaderboard/{id}/
func (h *LeaderboardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteLeaderboardEntry(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
