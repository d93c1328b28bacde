// ABOUTME: Output device factory
// ABOUTME: Opens the configured playback backend with the configured sample format
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/harperreed/tonegen/internal/config"
	"github.com/harperreed/tonegen/pkg/audio/output"
)

// OpenDevice creates and opens the backend named in cfg
func OpenDevice(cfg config.DeviceConfig, logger *zap.Logger) (output.Device, error) {
	format := cfg.Format()

	switch cfg.Backend {
	case "oto":
		out := output.NewOto(logger)
		if err := out.Open(format); err != nil {
			return nil, fmt.Errorf("opening oto output: %w", err)
		}
		return out, nil
	case "malgo":
		out := output.NewMalgo(logger)
		if err := out.Open(format); err != nil {
			return nil, fmt.Errorf("opening malgo output: %w", err)
		}
		return out, nil
	case "portaudio":
		out := output.NewPortAudio(logger)
		if err := out.Open(format); err != nil {
			return nil, fmt.Errorf("opening portaudio output: %w", err)
		}
		return out, nil
	case "wav":
		out := output.NewWAV(cfg.WAVPath, logger)
		if err := out.Open(format); err != nil {
			return nil, fmt.Errorf("opening wav output: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", output.ErrUnknownBackend, cfg.Backend)
	}
}
