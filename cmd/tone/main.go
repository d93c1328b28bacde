// ABOUTME: Single tone command
// ABOUTME: Plays one sine tone at a given frequency and duration and exits
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/harperreed/tonegen/internal/app"
	"github.com/harperreed/tonegen/internal/config"
	"github.com/harperreed/tonegen/internal/logging"
	"github.com/harperreed/tonegen/pkg/tone"
)

func main() {
	overrides := config.BindFlags(flag.CommandLine)
	freq := flag.Float64("freq", 440, "Tone frequency in Hz")
	ms := flag.Int("ms", 500, "Tone duration in milliseconds")
	flag.Parse()

	cfg, err := overrides.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	useTUI := cfg.UIEnabled()

	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: !useTUI,
	})
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	player := app.New(cfg, logger)
	if err := player.Start(); err != nil {
		logger.Fatal("failed to start player", zap.Error(err))
	}

	err = player.PlayTone(*freq, *ms)
	if err == nil {
		logger.Info("tone played",
			zap.Float64("freq", *freq),
			zap.Int("ms", *ms),
			zap.Int("iterations", tone.Iterations(*ms)))
	}

	// Keep the final screen up until the user quits
	if useTUI {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-player.Quit():
		case <-ctx.Done():
		}
		stop()
	}

	if err := player.Stop(); err != nil {
		logger.Error("error stopping player", zap.Error(err))
	}

	if err != nil {
		_ = logger.Sync()
		os.Exit(1)
	}
}
