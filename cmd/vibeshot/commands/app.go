package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/afero"

	"github.com/vibeshot/core/internal/adapters/repository"
	"github.com/vibeshot/core/internal/application/services"
	"github.com/vibeshot/core/internal/application/store"
	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/imaging"
	"github.com/vibeshot/core/internal/infrastructure/config"
	"github.com/vibeshot/core/internal/infrastructure/logger"
	"github.com/vibeshot/core/internal/ports"
)

// app wires config, logging, storage and services for one command
// invocation. The session persists between invocations through the store.
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	store  *store.Store
	auth   *services.AuthService
	posts  *services.PostService
	feed   *services.FeedService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	var kv ports.KV
	switch cfg.Storage.Driver {
	case "sqlite":
		kv, err = repository.NewSQLiteKV(cfg.Storage.DBPath)
	default:
		kv, err = repository.NewFileKV(afero.NewOsFs(), cfg.Storage.Dir, cfg.Storage.MaxBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	st := store.New(kv, appLogger)
	if err := st.Load(ctx); err != nil {
		kv.Close()
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	compressor := imaging.NewCompressor(cfg.Image)

	return &app{
		cfg:    cfg,
		logger: appLogger,
		store:  st,
		auth:   services.NewAuthService(st, appLogger),
		posts:  services.NewPostService(st, compressor, appLogger),
		feed:   services.NewFeedService(st, cfg.Feed, appLogger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warnw("Failed to close storage", "error", err)
	}
	_ = a.logger.Close()
}

// cmdContext is the root context for one command invocation.
func cmdContext() context.Context {
	return context.Background()
}

// fatal prints a user-facing message for known failure reasons and exits.
func fatal(err error) {
	switch {
	case errors.Is(err, entities.ErrAuthRequired):
		log.Fatal("Login required. Run: vibeshot login")
	case errors.Is(err, entities.ErrEmailTaken):
		log.Fatal("That email is already registered.")
	case errors.Is(err, entities.ErrInvalidCredentials):
		log.Fatal("Incorrect email or password.")
	case errors.Is(err, entities.ErrStorageFull):
		log.Fatal("Storage full! Post smaller images or delete old data.")
	case errors.Is(err, entities.ErrImageDecode):
		log.Fatal("Could not read that image file.")
	case errors.Is(err, entities.ErrEmptyCaption):
		log.Fatal("A caption is required.")
	case errors.Is(err, entities.ErrEmptyComment):
		log.Fatal("Comment text is required.")
	case errors.Is(err, entities.ErrPostNotFound):
		log.Fatal("No such post.")
	case errors.Is(err, entities.ErrUserNotFound):
		log.Fatal("No such user.")
	default:
		log.Fatalf("Error: %v", err)
	}
}
