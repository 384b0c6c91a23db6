package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"MysteryMessage/server/internal/models"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Invalid request"})
		return
	}

	token, err := h.users.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Identifier, err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
