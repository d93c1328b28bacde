//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using PortAudio stream callbacks
package output

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"

	"github.com/harperreed/tonegen/pkg/audio"
	"github.com/harperreed/tonegen/pkg/audio/encode"
)

// PortAudio output implementation
type PortAudio struct {
	logger  *zap.Logger
	stream  *portaudio.Stream
	encoder *encode.PCMEncoder
	format  audio.Format
	silence []byte
	scratch []byte

	// initialized is set between Initialize and Terminate
	initialized bool

	mu      sync.Mutex
	current *loopReader
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio(logger *zap.Logger) *PortAudio {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortAudio{logger: logger}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format) error {
	if err := format.Validate(); err != nil {
		return err
	}

	encoder, err := encode.NewPCM(format)
	if err != nil {
		return err
	}
	p.encoder = encoder
	p.format = format
	p.silence = encoder.Silence(1)

	var callback interface{}
	switch {
	case format.BitDepth == 16 && format.Signed:
		callback = func(out []int16) {
			data := p.read(len(out) * 2)
			for i := range out {
				out[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
			}
		}
	case format.BitDepth == 8 && format.Signed:
		callback = func(out []int8) {
			data := p.read(len(out))
			for i := range out {
				out[i] = int8(data[i])
			}
		}
	case format.BitDepth == 8:
		callback = func(out []uint8) {
			copy(out, p.read(len(out)))
		}
	default:
		// portaudio has no unsigned 16-bit sample type
		return &audio.FormatError{Field: "portaudio_sample_type", Value: format.BitDepth}
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	p.initialized = true

	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), 0, callback)
	if err != nil {
		p.terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		p.terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	p.logger.Info("audio output initialized",
		zap.String("backend", "portaudio"),
		zap.Stringer("format", format))
	return nil
}

// read drains n bytes from the current submission, padded with silence
func (p *PortAudio) read(n int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cap(p.scratch) < n {
		p.scratch = make([]byte, n)
	}
	buf := p.scratch[:n]
	fill(p.current, buf, p.silence)
	if p.current != nil && p.current.Len() == 0 {
		p.current = nil
	}
	return buf
}

// Format returns the opened sample format
func (p *PortAudio) Format() audio.Format {
	return p.format
}

// PlayBuffer queues the looped buffer for the stream callback
func (p *PortAudio) PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error {
	if p.stream == nil {
		return ErrNotOpen
	}
	if err := checkBuffer(p.format, buf); err != nil {
		return err
	}

	data, err := p.encoder.Encode(buf.Samples)
	if err != nil {
		return fmt.Errorf("failed to encode buffer: %w", err)
	}

	reader := newLoopReader(data, repeatCount+1, durationBytes(p.format, maxDuration))
	p.mu.Lock()
	p.current = reader
	p.mu.Unlock()
	return nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			return err
		}
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
		p.logger.Info("audio output closed", zap.String("backend", "portaudio"))
	}
	return p.terminate()
}

// terminate pairs a successful Initialize; it is a no-op otherwise
func (p *PortAudio) terminate() error {
	if !p.initialized {
		return nil
	}
	p.initialized = false
	return portaudio.Terminate()
}
