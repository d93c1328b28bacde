//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/tonegen/pkg/audio"
)

var errPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output
func NewPortAudio(logger *zap.Logger) *PortAudio {
	return &PortAudio{}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format) error {
	return errPortAudioDisabled
}

// Format returns the zero format
func (p *PortAudio) Format() audio.Format {
	return audio.Format{}
}

// PlayBuffer always fails
func (p *PortAudio) PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error {
	return errPortAudioDisabled
}

// Close releases resources
func (p *PortAudio) Close() error {
	return nil
}
