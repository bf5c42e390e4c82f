package handlers

import (
	"net/http"
)

// HandleAPIRoot handles GET /api/, the discovery document listing every
// collection endpoint
func HandleAPIRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"users":       "/api/users/",
		"teams":       "/api/teams/",
		"activities":  "/api/activities/",
		"leaderboard": "/api/leaderboard/",
		"workouts":    "/api/workouts/",
	})
}
