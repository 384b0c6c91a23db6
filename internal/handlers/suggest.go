package handlers

import (
	"log"
	"net/http"

	"MysteryMessage/server/internal/models"
)

func (h *Handlers) SuggestMessages(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.suggester.Suggest(r.Context())
	if err != nil {
		log.Printf("Error fetching suggestions: %v", err)
		writeJSON(w, http.StatusBadGateway, models.ApiResponse{Success: false, Message: "Failed to fetch suggestions"})
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Suggestions: suggestions})
}
