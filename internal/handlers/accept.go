package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"MysteryMessage/server/internal/models"
)

func (h *Handlers) SetAcceptMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		AcceptMessages bool `json:"acceptMessages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Invalid request"})
		return
	}

	updated, err := h.users.SetAccepting(r.Context(), userID, req.AcceptMessages)
	if err != nil {
		log.Printf("Error updating settings for user %d: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{
		Success:            true,
		Message:            "User settings updated successfully",
		IsAcceptingMessage: &updated,
	})
}

func (h *Handlers) GetAcceptMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accepting, err := h.users.GetAccepting(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching settings for user %d: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{
		Success:            true,
		IsAcceptingMessage: &accepting,
	})
}
