package handlers

import (
	"log"
	"net/http"

	"MysteryMessage/server/internal/models"
)

func (h *Handlers) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if !usernamePattern.MatchString(username) {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Username must be 3-30 characters of letters, digits or underscores"})
		return
	}

	available, err := h.users.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		log.Printf("Error checking username %s: %v", username, err)
		writeError(w, err)
		return
	}

	if !available {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Username is already taken."})
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Message: "Username is unique."})
}
