// ABOUTME: Entry point for the tonegen melody player
// ABOUTME: Parses CLI flags and plays a melody file or the built-in march
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/harperreed/tonegen/internal/app"
	"github.com/harperreed/tonegen/internal/config"
	"github.com/harperreed/tonegen/internal/logging"
	"github.com/harperreed/tonegen/internal/version"
	"github.com/harperreed/tonegen/pkg/melody"
)

var (
	overrides   = config.BindFlags(flag.CommandLine)
	melodyFile  = flag.String("melody", "", "YAML melody file (default: built-in Imperial March)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	cfg, err := overrides.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	useTUI := cfg.UIEnabled()

	// TUI mode logs only to file; streaming mode logs to both
	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: !useTUI,
	})
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	tune := melody.ImperialMarch()
	if *melodyFile != "" {
		tune, err = melody.LoadFile(*melodyFile)
		if err != nil {
			logger.Fatal("failed to load melody", zap.String("path", *melodyFile), zap.Error(err))
		}
	}

	logger.Info("starting tonegen",
		zap.String("version", version.Version),
		zap.String("backend", cfg.Device.Backend),
		zap.Bool("tui", useTUI))

	player := app.New(cfg, logger)
	if err := player.Start(); err != nil {
		logger.Fatal("failed to start player", zap.Error(err))
	}

	// Handle shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = player.PlayMelody(ctx, tune)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("playback interrupted")
	case err != nil:
		logger.Error("playback failed", zap.Error(err))
	default:
		logger.Info("melody finished", zap.String("title", tune.Title))
	}

	// Keep the final screen up until the user quits
	if useTUI && err == nil {
		select {
		case <-player.Quit():
		case <-ctx.Done():
		}
	}

	if err := player.Stop(); err != nil {
		logger.Error("error stopping player", zap.Error(err))
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		_ = logger.Sync()
		os.Exit(1)
	}
}
