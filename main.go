package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stylesuggest/config"
	"stylesuggest/config/database"
	"stylesuggest/internal/suggestion/model"
	"stylesuggest/internal/suggestion/repository"
	"stylesuggest/pkg/logger"
	"stylesuggest/router"
	"stylesuggest/socket"
)

func main() {
	cfg, err := config.Load()
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	if err != nil {
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}
	if !cfg.EnvFileLoaded {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openRepository(ctx, cfg)
	defer closeRepo()

	// The hub's event loop runs until shutdown.
	hub := socket.NewHub()
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(repo, hub, cfg.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Sugar.Infof("Suggestion store listening on :%s (backend=%s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("Graceful shutdown failed: %v", err)
	}
}

func openRepository(ctx context.Context, cfg config.Config) (repository.Repository, func()) {
	if cfg.StoreBackend == config.BackendPostgres {
		db, err := database.Connect(ctx, cfg.DB.DSN())
		if err != nil {
			logger.Sugar.Fatalf("Could not connect to database: %v", err)
		}
		repo := repository.NewPostgresRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			logger.Sugar.Fatalf("Could not prepare database: %v", err)
		}
		return repo, func() { db.Close() }
	}

	var seed []model.Suggestion
	if cfg.SeedSuggestions {
		seed = model.DefaultSeed()
	}
	return repository.NewMemoryRepository(seed...), func() {}
}
