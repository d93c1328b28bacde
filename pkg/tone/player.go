// ABOUTME: Tone player
// ABOUTME: Schedules unit-buffer loops on a device and blocks for each tone's duration
package tone

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/tonegen/pkg/audio"
	"github.com/harperreed/tonegen/pkg/audio/output"
	"github.com/harperreed/tonegen/pkg/audio/synth"
)

// ErrInvalidRequest is returned for negative durations or non-positive frequencies
var ErrInvalidRequest = errors.New("invalid tone request")

// unitMs is the length of the synthesized buffer
const unitMs = 1000

// Request is a single tone to play
type Request struct {
	FrequencyHz float64
	DurationMs  int
}

// Validate checks the request invariants
func (r Request) Validate() error {
	if r.FrequencyHz <= 0 || math.IsNaN(r.FrequencyHz) || math.IsInf(r.FrequencyHz, 0) {
		return fmt.Errorf("%w: frequency %v Hz", ErrInvalidRequest, r.FrequencyHz)
	}
	if r.DurationMs < 0 {
		return fmt.Errorf("%w: duration %d ms", ErrInvalidRequest, r.DurationMs)
	}
	return nil
}

// Duration returns the request length as a time.Duration
func (r Request) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// Event describes a tone that has been submitted to the device
type Event struct {
	Request
	Iterations  int
	RepeatCount int
	Format      audio.Format
}

// PlayerConfig holds player configuration
type PlayerConfig struct {
	// Device receives the synthesized buffers
	Device output.Device

	// Logger for playback events (default: no-op)
	Logger *zap.Logger

	// Sleep blocks the caller after each submission (default: time.Sleep)
	Sleep func(time.Duration)

	// OnTone is called after a tone has been submitted, before the wait
	OnTone func(Event)

	// OnError is called when a tone fails
	OnError func(error)
}

// Player plays tones sequentially on one device
type Player struct {
	config PlayerConfig
	format audio.Format
	logger *zap.Logger
}

// NewPlayer creates a player bound to the device's current format
func NewPlayer(config PlayerConfig) (*Player, error) {
	if config.Device == nil {
		return nil, fmt.Errorf("tone player requires an output device")
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Sleep == nil {
		config.Sleep = time.Sleep
	}

	return &Player{
		config: config,
		format: config.Device.Format(),
		logger: config.Logger.Named("tone"),
	}, nil
}

// Format returns the sample format tones are synthesized in
func (p *Player) Format() audio.Format {
	return p.format
}

// Iterations returns how many one-second buffers cover durationMs.
// Zero and negative durations need none.
func Iterations(durationMs int) int {
	if durationMs <= 0 {
		return 0
	}
	return (durationMs + unitMs - 1) / unitMs
}

// Play sounds a tone and blocks until its duration has elapsed.
// Format errors are returned unchanged and nothing is submitted, even for
// zero-length tones.
func (p *Player) Play(frequencyHz float64, durationMs int) error {
	req := Request{FrequencyHz: frequencyHz, DurationMs: durationMs}
	if err := req.Validate(); err != nil {
		p.fail(err)
		return err
	}

	// An unusable format fails even when there is nothing to play
	if err := p.format.Validate(); err != nil {
		p.fail(err)
		return err
	}

	iterations := Iterations(durationMs)
	if iterations == 0 {
		p.logger.Debug("zero-length tone, skipping", zap.Float64("freq", frequencyHz))
		return nil
	}

	buf, err := synth.Synthesize(frequencyHz, p.format)
	if err != nil {
		p.fail(err)
		return err
	}

	event := Event{
		Request:     req,
		Iterations:  iterations,
		RepeatCount: output.RepeatCount(iterations),
		Format:      p.format,
	}

	if err := p.config.Device.PlayBuffer(buf, event.RepeatCount, req.Duration()); err != nil {
		err = fmt.Errorf("failed to submit tone: %w", err)
		p.fail(err)
		return err
	}

	p.logger.Debug("tone submitted",
		zap.Float64("freq", frequencyHz),
		zap.Int("ms", durationMs),
		zap.Int("repeat", event.RepeatCount))

	if p.config.OnTone != nil {
		p.config.OnTone(event)
	}

	p.config.Sleep(req.Duration())
	return nil
}

// Rest blocks for durationMs without sounding anything
func (p *Player) Rest(durationMs int) error {
	if durationMs < 0 {
		err := fmt.Errorf("%w: rest %d ms", ErrInvalidRequest, durationMs)
		p.fail(err)
		return err
	}

	d := time.Duration(durationMs) * time.Millisecond
	if sw, ok := p.config.Device.(output.SilenceWriter); ok {
		if err := sw.WriteSilence(d); err != nil {
			err = fmt.Errorf("failed to write rest: %w", err)
			p.fail(err)
			return err
		}
	}

	p.config.Sleep(d)
	return nil
}

// fail logs err once and reports it to OnError
func (p *Player) fail(err error) {
	p.logger.Warn("tone failed", zap.Stringer("format", p.format), zap.Error(err))
	if p.config.OnError != nil {
		p.config.OnError(err)
	}
}

// PlayTone plays one tone on device with a default player
func PlayTone(device output.Device, frequencyHz float64, durationMs int) error {
	p, err := NewPlayer(PlayerConfig{Device: device})
	if err != nil {
		return err
	}
	return p.Play(frequencyHz, durationMs)
}
