package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"octofit-tracker/internal/database"
)

// UsersHandler serves the /api/users collection
type UsersHandler struct {
	db     *database.DB
	logger *slog.Logger
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(db *database.DB) *UsersHandler {
	return &UsersHandler{db: db, logger: slog.Default()}
}

// HandleList handles GET /api/users/
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers()
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []*database.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleCreate handles POST /api/users/
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var u database.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, err)
		return
	}
	if err := h.db.CreateUser(&u); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("User created", "id", u.ID, "email", u.Email)
	writeJSON(w, http.StatusCreated, &u)
}

// HandleGet handles GET /api/users/{id}/
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.db.GetUser(database.UserID(mux.Vars(r)["id"]))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// HandleUpdate handles PUT /api/users/{id}/
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var u database.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, err)
		return
	}
	u.ID = database.UserID(mux.Vars(r)["id"])
	if err := h.db.UpdateUser(&u); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.db.GetUser(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/users/{id}/
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteUser(database.UserID(mux.Vars(r)["id"])); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
