package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"octofit-tracker/internal/database"
)

// TeamsHandler serves the /api/teams collection
type TeamsHandler struct {
	db     *database.DB
	logger *slog.Logger
}

// NewTeamsHandler creates a new teams handler
func NewTeamsHandler(db *database.DB) *TeamsHandler {
	return &TeamsHandler{db: db, logger: slog.Default()}
}

// HandleList handles GET /api/teams/
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.db.ListTeams()
	if err != nil {
		writeError(w, err)
		return
	}
	if teams == nil {
		teams = []*database.Team{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleCreate handles POST /api/teams/
func (h *TeamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var t database.Team
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, err)
		return
	}
	if err := h.db.CreateTeam(&t); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("Team created", "id", t.ID, "name", t.Name)
	writeJSON(w, http.StatusCreated, &t)
}

// HandleGet handles GET /api/teams/{id}/
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.db.GetTeam(database.TeamID(mux.Vars(r)["id"]))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleUpdate handles PUT /api/teams/{id}/
func (h *TeamsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var t database.Team
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, err)
		return
	}
	t.ID = database.TeamID(mux.Vars(r)["id"])
	if err := h.db.UpdateTeam(&t); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.db.GetTeam(t.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/teams/{id}/. Users referencing the team
// are not touched; their team reference dangles.
func (h *TeamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteTeam(database.TeamID(mux.Vars(r)["id"])); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
