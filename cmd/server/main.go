// Command server runs the hywep notification-registration portal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hywep/alerts/internal/app"
	"github.com/hywep/alerts/internal/config"
	"github.com/hywep/alerts/internal/database"
	"github.com/hywep/alerts/internal/users"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dynamo, err := database.NewDynamoDB(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("connecting to dynamodb: %w", err)
	}
	store := users.NewDynamoStore(dynamo, cfg.Store.TableName, cfg.Store.EmailIndex)

	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer rdb.Close()

	a := app.New(cfg, store, rdb)
	a.RegisterRoutes()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting",
			slog.Int("port", cfg.Port),
			slog.String("stage", cfg.Stage),
		)
		errCh <- a.Echo.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// setupLogging configures the process-wide slog default: human-readable
// text in dev, JSON in prod.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Production() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
