package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"MysteryMessage/server/internal/appMiddleware"
	"MysteryMessage/server/internal/config"
	"MysteryMessage/server/internal/db"
	"MysteryMessage/server/internal/email"
	"MysteryMessage/server/internal/handlers"
	"MysteryMessage/server/internal/services"
	"MysteryMessage/server/internal/storage"
	"MysteryMessage/server/internal/suggest"
	"MysteryMessage/server/internal/verification"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %s\n", err)
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %s\n", err)
	}

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %s\n", err)
	}
	defer pool.Close()

	accounts := storage.NewPostgresAccounts(pool)
	sender := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	issuer := verification.NewIssuer()

	userService := services.NewUserService(accounts, sender, issuer, []byte(cfg.JWTSecret))
	messageService := services.NewMessageService(accounts)
	suggester := suggest.NewOpenAISuggester(cfg.OpenAIAPIKey)

	h := handlers.New(userService, messageService, suggester)

	r := chi.NewRouter()

	r.Use(appMiddleware.CorsMiddleware)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/sign-up", h.Register)
	r.Post("/api/sign-in", h.Login)
	r.Post("/api/verify-code", h.VerifyCode)
	r.Get("/api/check-username-unique", h.CheckUsername)
	r.Post("/api/send-message", h.SendMessage)
	r.Post("/api/suggest-messages", h.SuggestMessages)

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.AuthMiddleware([]byte(cfg.JWTSecret)))
		r.Get("/api/profile", h.GetProfile)
		r.Get("/api/accept-messages", h.GetAcceptMessages)
		r.Post("/api/accept-messages", h.SetAcceptMessages)
		r.Get("/api/get-messages", h.GetMessages)
		r.Delete("/api/delete-message/{message_id}", h.DeleteMessage)
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server started on %s\n", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %s\n", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Stopping the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %s\n", err)
	}
	log.Println("Server has been successfully stopped")
}
