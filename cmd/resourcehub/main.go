package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/resourcehub/internal/config"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logger logging.Logger
	if zl, err := logging.New(cfg.LogLevel, cfg.PrettyLog); err == nil {
		defer func() { _ = zl.Sync() }()
		logger = zl
	} else {
		logger = logging.NewTextLogger(os.Stderr, slog.LevelInfo)
		logger.Warn(ctx, "zap unavailable, using text logger", "error", err)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "resourcehub stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
