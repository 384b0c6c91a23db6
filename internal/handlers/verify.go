package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"MysteryMessage/server/internal/models"
)

func (h *Handlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, models.ApiResponse{Success: false, Message: "Invalid request"})
		return
	}

	// The verify page links here with the username in the path, so it may
	// arrive percent-encoded.
	if decoded, err := url.QueryUnescape(req.Username); err == nil {
		req.Username = decoded
	}

	if err := h.users.VerifyCode(r.Context(), req.Username, req.Code, time.Now()); err != nil {
		log.Printf("Verification failed for %s: %v", req.Username, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ApiResponse{Success: true, Message: "Email verified successfully"})
}
