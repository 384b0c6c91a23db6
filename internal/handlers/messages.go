package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"MysteryMessage/server/internal/models"
	"MysteryMessage/server/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Content  string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Invalid request"})
		return
	}

	if n := utf8.RuneCountInString(req.Content); n < services.MinContentLength || n > services.MaxContentLength {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Content must be between 1 and 300 characters"})
		return
	}

	if _, err := h.messages.Submit(r.Context(), req.Username, req.Content, time.Now()); err != nil {
		log.Printf("Error posting message to %s: %v", req.Username, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.ApiResponse{Success: true, Message: "Message posted successfully"})
}

func (h *Handlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messages, err := h.messages.GetMessages(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching messages for user %d: %v", userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Messages: messages})
}

func (h *Handlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messageID := chi.URLParam(r, "message_id")
	if messageID == "" {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Message id is required"})
		return
	}

	if err := h.messages.DeleteMessage(r.Context(), userID, messageID); err != nil {
		log.Printf("Error deleting message %s for user %d: %v", messageID, userID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Message: "Message deleted"})
}
