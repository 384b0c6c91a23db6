package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserById(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching user profile: %v", err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
