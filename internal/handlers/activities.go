package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"octofit-tracker/internal/database"
	"octofit-tracker/internal/leaderboard"
)

// ActivitiesHandler serves the /api/activities collection. Writes invoke
// the leaderboard engine for the affected user so derived totals and ranks
// stay consistent with the activity set.
type ActivitiesHandler struct {
	db     *database.DB
	engine *leaderboard.Engine
	logger *slog.Logger
}

// NewActivitiesHandler creates a new activities handler
func NewActivitiesHandler(db *database.DB, engine *leaderboard.Engine) *ActivitiesHandler {
	return &ActivitiesHandler{db: db, engine: engine, logger: slog.Default()}
}

// HandleList handles GET /api/activities/ with an optional user_id filter
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := database.ActivityFilter{
		UserID: database.UserID(r.URL.Query().Get("user_id")),
	}
	activities, err := h.db.ListActivities(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if activities == nil {
		activities = []*database.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleCreate handles POST /api/activities/
func (h *ActivitiesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var a database.Activity
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, err)
		return
	}
	if err := h.db.CreateActivity(&a); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Activity created", "id", a.ID, "user_id", a.UserID, "type", a.ActivityType)
	h.refresh(a.UserID)
	writeJSON(w, http.StatusCreated, &a)
}

// HandleGet handles GET /api/activities/{id}/
func (h *ActivitiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.db.GetActivity(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleUpdate handles PUT /api/activities/{id}/
func (h *ActivitiesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	before, err := h.db.GetActivity(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var a database.Activity
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, err)
		return
	}
	a.ID = id
	if err := h.db.UpdateActivity(&a); err != nil {
		writeError(w, err)
		return
	}

	h.refresh(a.UserID)
	if before.UserID != a.UserID {
		h.refresh(before.UserID)
	}

	updated, err := h.db.GetActivity(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/activities/{id}/
func (h *ActivitiesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	a, err := h.db.GetActivity(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.db.DeleteActivity(id); err != nil {
		writeError(w, err)
		return
	}
	h.refresh(a.UserID)
	w.WriteHeader(http.StatusNoContent)
}

// refresh recomputes the user's leaderboard entry after an activity write.
// The activity write already succeeded; a failed recompute leaves the entry
// stale rather than failing the request, and the next recompute repairs it.
func (h *ActivitiesHandler) refresh(userID database.UserID) {
	if err := h.engine.RefreshUser(userID); err != nil {
		h.logger.Error("Failed to refresh leaderboard", "user_id", userID, "error", err)
	}
}
