package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpupo63/blog-auth-backend/config"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rpupo63/blog-auth-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	userRepo     *UserRepo
	blogPostRepo *BlogPostRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:     NewUserRepo(db),
		blogPostRepo: NewBlogPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

// Open connects to the configured dialect and verifies the connection.
func Open(cfg config.Database) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	gormLog := log.With().Str("component", "gorm").Logger()
	newLogger := logger.New(
		&gormLog,
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	gormConfig := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
		// Posts and comments reference users through read-only projections;
		// integrity is kept by the repositories.
		DisableForeignKeyConstraintWhenMigrating: true,
		IgnoreRelationshipsWhenMigrating:         true,
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case "postgres", "supa":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Type, err)
	}

	if cfg.Type == "sqlite" {
		// sqlite allows a single writer; one connection keeps writes serialized.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.ReplicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{DSN: cfg.ReplicaDSN, PreferSimpleProtocol: true})},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables and unique indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&models.User{}, &models.BlogPost{}, &models.Comment{})
}

// translate maps driver and gorm errors onto the errs sentinels.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", entity, errs.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), errs.IsDuplicateKey(err):
		return fmt.Errorf("%s: %w: %v", entity, errs.ErrUniqueConstraintViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %v", entity, errs.ErrForeignKeyConstraint, err)
	}
	return err
}
