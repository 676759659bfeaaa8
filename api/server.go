package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rpupo63/blog-auth-backend/config"
	"github.com/rpupo63/blog-auth-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, database database.Database, opts ...RouterOption) (Server, error) {
	if len(cfg.Auth.JWTSecret) == 0 {
		return Server{}, config.ErrMissingSecret
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	startupTime := time.Now()

	opts = append([]RouterOption{withStartupTime(startupTime)}, opts...)
	router := newRouter(cfg, database, opts...)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	startupTime time.Time
	notifier    auth.WelcomeNotifier
	tokenOpts   []auth.TokenOption
}

type RouterOption func(*router)

// WithWelcomeNotifier sends new accounts to n after signup.
func WithWelcomeNotifier(n auth.WelcomeNotifier) RouterOption {
	return func(r *router) {
		r.notifier = n
	}
}

// WithTokenOptions configures the token service the router builds.
func WithTokenOptions(opts ...auth.TokenOption) RouterOption {
	return func(r *router) {
		r.tokenOpts = append(r.tokenOpts, opts...)
	}
}

func withStartupTime(startupTime time.Time) RouterOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(cfg config.Config, database database.Database, opts ...RouterOption) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, router.tokenOpts...)
	credentials := auth.NewCredentialStore(database.UserRepo())

	var accountOpts []auth.AccountOption
	if router.notifier != nil {
		accountOpts = append(accountOpts, auth.WithWelcomeNotifier(router.notifier))
	}
	accounts := auth.NewAccountService(credentials, tokens, accountOpts...)

	handlers := initializeHandlers(database, credentials, accounts, router.startupTime)
	authMiddleware := newAuthMiddleware(tokens, database.UserRepo())

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(requestLogger(cfg)))

	chiRouter.Use(CORSCheckMiddleware(cfg.AcceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AcceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !allowsAnyOrigin(cfg.AcceptedOrigins),
		MaxAge:           300,
	}))

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// allowsAnyOrigin reports whether origins contains the wildcard. Credentialed
// requests are only allowed for an explicit origin list.
func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// requestLogger writes colored console lines in development and JSON otherwise.
func requestLogger(cfg config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Str("component", "http").Logger()
	}
	return log.With().Str("component", "http").Logger()
}

// Start serves until the server is shut down. A graceful shutdown is not an error.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
