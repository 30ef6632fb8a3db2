package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"GameStore/internal/browse"
	"GameStore/internal/config"
	"GameStore/internal/listing"
	"GameStore/internal/searchsync"
	"GameStore/pkg/kit"
)

func main() {
	service := "browse"
	cfg := config.LoadBrowse()

	// Logs go to LOG_FILE only; stdout belongs to the view.
	log := zap.NewNop()
	if cfg.LogFile != "" {
		log = kit.NewFileLogger(service, cfg.LogFile).With(zap.String("session", uuid.NewString()))
	}
	defer func() { _ = log.Sync() }()

	start := searchsync.Home()
	if len(os.Args) > 1 {
		start = searchsync.ParseLocation(os.Args[1])
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _ = os.Stdout.WriteString(browse.Help())

	c := &browse.Console{
		Out:          os.Stdout,
		Fetcher:      listing.NewClient(cfg.CatalogURL, cfg.FetchTimeout),
		Debounce:     cfg.Debounce,
		FetchTimeout: cfg.FetchTimeout,
		Log:          log,
	}
	if err := c.Run(ctx, os.Stdin, start); err != nil {
		log.Error("browse stopped", zap.Error(err))
		os.Exit(1)
	}
}
