package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MysteryMessage/server/internal/appMiddleware"
	"MysteryMessage/server/internal/models"
	"MysteryMessage/server/internal/services"
	"MysteryMessage/server/internal/storage"
	"MysteryMessage/server/internal/verification"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type stubSender struct{}

func (stubSender) SendVerification(context.Context, string, string, string) error { return nil }

type stubSuggester struct {
	text string
	err  error
}

func (s stubSuggester) Suggest(context.Context) (string, error) { return s.text, s.err }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := storage.NewMemory()
	issuer := verification.NewIssuerWithRand(func(int) int { return 23456 })
	userService := services.NewUserService(store, stubSender{}, issuer, testSecret)
	messageService := services.NewMessageService(store)
	h := New(userService, messageService, stubSuggester{text: "q1||q2||q3"})

	r := chi.NewRouter()
	r.Post("/api/sign-up", h.Register)
	r.Post("/api/sign-in", h.Login)
	r.Post("/api/verify-code", h.VerifyCode)
	r.Get("/api/check-username-unique", h.CheckUsername)
	r.Post("/api/send-message", h.SendMessage)
	r.Post("/api/suggest-messages", h.SuggestMessages)
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.AuthMiddleware(testSecret))
		r.Get("/api/accept-messages", h.GetAcceptMessages)
		r.Post("/api/accept-messages", h.SetAcceptMessages)
		r.Get("/api/get-messages", h.GetMessages)
		r.Delete("/api/delete-message/{message_id}", h.DeleteMessage)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token, body string) (*http.Response, models.ApiResponse) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope models.ApiResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp, envelope
}

func signIn(t *testing.T, srv *httptest.Server, identifier, password string) string {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/sign-in",
		strings.NewReader(`{"identifier":"`+identifier+`","password":"`+password+`"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestSignUpFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/sign-up", "",
		`{"username":"alice","email":"a@x.com","password":"password1"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, envelope.Success)

	// Wrong code first.
	resp, envelope = doJSON(t, http.MethodPost, srv.URL+"/api/verify-code", "",
		`{"username":"alice","code":"000000"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, envelope.Success)

	resp, envelope = doJSON(t, http.MethodPost, srv.URL+"/api/verify-code", "",
		`{"username":"alice","code":"123456"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)

	// Once verified, the username is gone.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/check-username-unique?username=alice", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, envelope = doJSON(t, http.MethodPost, srv.URL+"/api/sign-up", "",
		`{"username":"alice","email":"b@y.com","password":"password2"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.ErrUsernameTaken.Error(), envelope.Message)
}

func TestSignUpValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "short username", body: `{"username":"al","email":"a@x.com","password":"password1"}`},
		{name: "bad username characters", body: `{"username":"al ice!","email":"a@x.com","password":"password1"}`},
		{name: "bad email", body: `{"username":"alice","email":"not-an-email","password":"password1"}`},
		{name: "short password", body: `{"username":"alice","email":"a@x.com","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/sign-up", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, envelope.Success)
		})
	}
}

func TestMessageLifecycle(t *testing.T) {
	srv := newTestServer(t)

	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/sign-up", "",
		`{"username":"alice","email":"a@x.com","password":"password1"}`)
	_, _ = doJSON(t, http.MethodPost, srv.URL+"/api/verify-code", "",
		`{"username":"alice","code":"123456"}`)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/send-message", "",
		`{"username":"alice","content":"hello there"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/send-message", "",
		`{"username":"ghost","content":"hello"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	token := signIn(t, srv, "a@x.com", "password1")

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/get-messages", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, envelope.Messages, 1)
	assert.Equal(t, "hello there", envelope.Messages[0].Content)

	// Owner switches intake off; the public link stops working.
	resp, envelope = doJSON(t, http.MethodPost, srv.URL+"/api/accept-messages", token,
		`{"acceptMessages":false}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, envelope.IsAcceptingMessage)
	assert.False(t, *envelope.IsAcceptingMessage)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/send-message", "",
		`{"username":"alice","content":"hello again"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/accept-messages", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, envelope.IsAcceptingMessage)
	assert.False(t, *envelope.IsAcceptingMessage)

	// Delete the one received message.
	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/get-messages", token, "")
	require.Len(t, envelope.Messages, 1)
	msgID := envelope.Messages[0].ID

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/delete-message/"+msgID, token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/delete-message/"+msgID, token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/get-messages", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, envelope.Messages)
}

func TestGetMessagesRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/get-messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSuggestMessages(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/suggest-messages", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
	assert.Equal(t, "q1||q2||q3", envelope.Suggestions)
}
