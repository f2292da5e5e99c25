package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/csvedit/internal/cli"
	"github.com/JonMunkholm/csvedit/internal/config"
	"github.com/JonMunkholm/csvedit/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Values already in the environment win over .env.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("error", "text")
		slog.Error("failed to load configuration", "error", err)
		os.Exit(cli.ExitError)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New(cfg, os.Stdin, os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}
