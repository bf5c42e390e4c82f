package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"octofit-tracker/internal/database"
)

// WorkoutsHandler serves the /api/workouts collection
type WorkoutsHandler struct {
	db     *database.DB
	logger *slog.Logger
}

// NewWorkoutsHandler creates a new workouts handler
func NewWorkoutsHandler(db *database.DB) *WorkoutsHandler {
	return &WorkoutsHandler{db: db, logger: slog.Default()}
}

// HandleList handles GET /api/workouts/
func (h *WorkoutsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.db.ListWorkouts()
	if err != nil {
		writeError(w, err)
		return
	}
	if workouts == nil {
		workouts = []*database.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

// HandleCreate handles POST /api/workouts/
func (h *WorkoutsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var wk database.Workout
	if err := decodeJSON(r, &wk); err != nil {
		writeError(w, err)
		return
	}
	if err := h.db.CreateWorkout(&wk); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Workout created", "id", wk.ID, "name", wk.Name)
	writeJSON(w, http.StatusCreated, &wk)
}

// HandleGet handles GET /api/workouts/{id}/
func (h *WorkoutsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	wk, err := h.db.GetWorkout(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

// HandleUpdate handles PUT /api/workouts/{id}/
func (h *WorkoutsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var wk database.Workout
	if err := decodeJSON(r, &wk); err != nil {
		writeError(w, err)
		return
	}
	wk.ID = mux.Vars(r)["id"]
	if err := h.db.UpdateWorkout(&wk); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.db.GetWorkout(wk.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/workouts/{id}/
func (h *WorkoutsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteWorkout(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
