package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/music-catalog/internal/config"
	"github.com/handiism/music-catalog/internal/library"
	"github.com/handiism/music-catalog/internal/logging"
	"github.com/handiism/music-catalog/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	settings.ApplyEnv()
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.LogFile == "" {
		settings.LogFile = config.DefaultLogFile()
	}

	logger, err := logging.New(settings.ToLogConfig(), false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	events := tui.NewEvents(64)
	lib, err := library.Open(settings, events.Send, library.WithLogger(logger))
	if err != nil {
		return err
	}
	return tui.Run(ctx, lib, events, false)
}
