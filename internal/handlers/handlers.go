// Package handlers holds the HTTP layer: thin request decoders around the
// services, all responding with the shared JSON envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"MysteryMessage/server/internal/appMiddleware"
	"MysteryMessage/server/internal/models"
	"MysteryMessage/server/internal/services"
	"MysteryMessage/server/internal/suggest"
)

type Handlers struct {
	users     *services.UserService
	messages  *services.MessageService
	suggester suggest.Suggester
}

func New(users *services.UserService, messages *services.MessageService, suggester suggest.Suggester) *Handlers {
	return &Handlers{
		users:     users,
		messages:  messages,
		suggester: suggester,
	}
}

func writeJSON(w http.ResponseWriter, status int, resp models.ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), models.ApiResponse{Success: false, Message: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrUsernameTaken),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrInvalidContent):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrCodeInvalid),
		errors.Is(err, models.ErrCodeExpired),
		errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrNotVerified):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotAccepting):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// userIDFromContext extracts the account id placed by the auth middleware.
func userIDFromContext(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value(appMiddleware.UserIDKey).(int)
	return userID, ok
}
