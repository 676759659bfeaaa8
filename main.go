package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/blog-auth-backend/api"
	"github.com/rpupo63/blog-auth-backend/config"
	"github.com/rpupo63/blog-auth-backend/database"
	"github.com/rpupo63/blog-auth-backend/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using process environment")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context) error {
	log.Info().Msg("Initializing app...")

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log.Info().Str("dbType", cfg.Database.Type).Str("env", cfg.Environment).Msg("configuration loaded")

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	mailer := services.NewMailer(cfg.Mail)
	if !mailer.Enabled() {
		log.Warn().Msg("RESEND_API_KEY or RESEND_FROM_EMAIL missing, welcome emails are disabled")
	}
	defer mailer.Wait()

	server, err := api.NewServer(cfg, database.New(db), api.WithWelcomeNotifier(mailer))
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		return server.ShutdownGracefully(shutdownTimeout)
	})

	return g.Wait()
}
