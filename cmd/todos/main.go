package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mplata/go-todos/internal/auth"
	"github.com/mplata/go-todos/internal/books"
	"github.com/mplata/go-todos/internal/config"
	"github.com/mplata/go-todos/internal/httpapi"
	"github.com/mplata/go-todos/internal/metrics"
	"github.com/mplata/go-todos/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Migrate(ctx, db); err != nil {
		return err
	}

	users := store.NewUsersRepository(db)
	todos := store.NewTodosRepository(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.SigningKey), cfg.TokenTTL, logger)
	authenticator := auth.NewAuthenticator(users, hasher, tokens, logger)
	collector := metrics.NewCollector()

	app := httpapi.New(httpapi.Deps{
		Auth:      authenticator,
		Tokens:    tokens,
		Users:     users,
		Todos:     todos,
		Catalog:   books.NewCatalog(),
		Hasher:    hasher,
		Collector: collector,
		Logger:    logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
