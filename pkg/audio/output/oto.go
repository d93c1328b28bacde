// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays looped unit buffers through an oto player per submission
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/harperreed/tonegen/pkg/audio"
	"github.com/harperreed/tonegen/pkg/audio/encode"
)

// Oto output implementation using oto library
type Oto struct {
	logger  *zap.Logger
	otoCtx  *oto.Context
	player  *oto.Player
	encoder *encode.PCMEncoder
	format  audio.Format
	ready   bool
	mu      sync.Mutex
}

// NewOto creates a new Oto output
func NewOto(logger *zap.Logger) *Oto {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Oto{logger: logger}
}

// otoFormat maps a sample format to the oto formats it supports
func otoFormat(format audio.Format) (oto.Format, error) {
	switch {
	case format.BitDepth == 16 && format.Signed:
		return oto.FormatSignedInt16LE, nil
	case format.BitDepth == 8 && !format.Signed:
		return oto.FormatUnsignedInt8, nil
	default:
		// oto has no signed 8-bit or unsigned 16-bit sample type
		return 0, &audio.FormatError{Field: "oto_sample_type", Value: format.BitDepth}
	}
}

// Open initializes the output device
func (o *Oto) Open(format audio.Format) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := format.Validate(); err != nil {
		return err
	}

	// oto allows only one context per process
	if o.otoCtx != nil {
		if format != o.format {
			return fmt.Errorf("oto context already open as %s, cannot reopen as %s", o.format, format)
		}
		if !o.ready {
			if err := o.otoCtx.Resume(); err != nil {
				return fmt.Errorf("failed to resume oto context: %w", err)
			}
			o.ready = true
		}
		o.logger.Info("audio output already initialized with same format, reusing context")
		return nil
	}

	sampleType, err := otoFormat(format)
	if err != nil {
		return err
	}

	encoder, err := encode.NewPCM(format)
	if err != nil {
		return err
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       sampleType,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.encoder = encoder
	o.format = format
	o.ready = true

	o.logger.Info("audio output initialized",
		zap.String("backend", "oto"),
		zap.Stringer("format", format))

	return nil
}

// Format returns the opened sample format
func (o *Oto) Format() audio.Format {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.format
}

// PlayBuffer starts a new oto player reading the looped buffer
func (o *Oto) PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.ready {
		return ErrNotOpen
	}
	if err := checkBuffer(o.format, buf); err != nil {
		return err
	}

	data, err := o.encoder.Encode(buf.Samples)
	if err != nil {
		return fmt.Errorf("failed to encode buffer: %w", err)
	}

	if o.player != nil && o.player.IsPlaying() {
		o.player.Pause()
	}

	reader := newLoopReader(data, repeatCount+1, durationBytes(o.format, maxDuration))
	o.player = o.otoCtx.NewPlayer(reader)
	o.player.Play()

	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		o.player.Pause()
		o.player = nil
	}
	if o.otoCtx != nil && o.ready {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
		o.ready = false
		o.logger.Info("audio output closed", zap.String("backend", "oto"))
	}
	return nil
}
