package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/mail"
	"regexp"
	"time"

	"MysteryMessage/server/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

const minPasswordLength = 8

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Invalid request: %v", err)
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Invalid request"})
		return
	}

	if !usernamePattern.MatchString(req.Username) {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Username must be 3-30 characters of letters, digits or underscores"})
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Please provide a valid email address"})
		return
	}
	if len(req.Password) < minPasswordLength {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Password must be at least 8 characters long"})
		return
	}

	if err := h.users.Register(r.Context(), req.Username, req.Email, req.Password, time.Now()); err != nil {
		log.Printf("Error registering user %s: %v", req.Username, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.ApiResponse{
		Success: true,
		Message: "User registered successfully. Please verify your email address",
	})
}
