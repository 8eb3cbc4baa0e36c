package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fantasy-war-room/internal/app"
	"fantasy-war-room/internal/config"
	"fantasy-war-room/internal/platform/logging"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.App.LogLevel).With(
		"service", cfg.App.Name,
		"env", cfg.App.Env,
	)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		"version", cfg.App.Version,
		"draft_id", cfg.Draft.ID,
		"teams", cfg.Draft.NumTeams,
		"slot", cfg.Draft.MySlot,
	)

	if err := app.New(cfg, logger).Run(ctx); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
