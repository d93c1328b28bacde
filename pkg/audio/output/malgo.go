// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Feeds looped unit buffers to a miniaudio playback callback
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"go.uber.org/zap"

	"github.com/harperreed/tonegen/pkg/audio"
	"github.com/harperreed/tonegen/pkg/audio/encode"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	logger   *zap.Logger
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	encoder  *encode.PCMEncoder
	format   audio.Format
	silence  []byte
	ready    bool

	mu sync.Mutex

	// streamMu guards current, which the device callback drains
	current  *loopReader
	streamMu sync.Mutex
}

// NewMalgo creates a new Malgo output
func NewMalgo(logger *zap.Logger) *Malgo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Malgo{logger: logger}
}

// malgoFormat maps a sample format to a miniaudio format
func malgoFormat(format audio.Format) (malgo.FormatType, error) {
	switch {
	case format.BitDepth == 16 && format.Signed:
		return malgo.FormatS16, nil
	case format.BitDepth == 8 && !format.Signed:
		return malgo.FormatU8, nil
	default:
		return malgo.FormatUnknown, &audio.FormatError{Field: "malgo_sample_type", Value: format.BitDepth}
	}
}

// Open initializes the output device with specified format
func (m *Malgo) Open(format audio.Format) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := format.Validate(); err != nil {
		return err
	}

	if m.device != nil && m.format == format {
		m.logger.Info("audio output already initialized with same format, reusing device")
		return nil
	}

	// If format changed, reinitialize
	if m.device != nil {
		m.logger.Info("format change detected, reinitializing device",
			zap.Stringer("from", m.format),
			zap.Stringer("to", format))
		m.closeDevice()
	}

	sampleType, err := malgoFormat(format)
	if err != nil {
		return err
	}

	encoder, err := encode.NewPCM(format)
	if err != nil {
		return err
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = sampleType
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutputSample, pInputSamples []byte, frameCount uint32) {
			m.dataCallback(pOutputSample)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	m.encoder = encoder
	m.silence = encoder.Silence(1)
	m.format = format

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.device = device
	m.ready = true

	m.logger.Info("audio output initialized",
		zap.String("backend", "malgo"),
		zap.Stringer("format", format))

	return nil
}

// Format returns the opened sample format
func (m *Malgo) Format() audio.Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.format
}

// PlayBuffer swaps in a new looped reader for the callback to drain
func (m *Malgo) PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return ErrNotOpen
	}
	if err := checkBuffer(m.format, buf); err != nil {
		return err
	}

	data, err := m.encoder.Encode(buf.Samples)
	if err != nil {
		return fmt.Errorf("failed to encode buffer: %w", err)
	}

	reader := newLoopReader(data, repeatCount+1, durationBytes(m.format, maxDuration))

	m.streamMu.Lock()
	m.current = reader
	m.streamMu.Unlock()
	return nil
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(pOutput []byte) {
	m.streamMu.Lock()
	defer m.streamMu.Unlock()

	fill(m.current, pOutput, m.silence)
	if m.current != nil && m.current.Len() == 0 {
		m.current = nil
	}
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeDevice()

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			m.logger.Warn("malgo context uninit error", zap.Error(err))
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

// closeDevice stops and uninitializes the device (must hold m.mu)
func (m *Malgo) closeDevice() {
	if m.device == nil {
		return
	}
	if err := m.device.Stop(); err != nil {
		m.logger.Warn("device stop error", zap.Error(err))
	}
	m.device.Uninit()
	m.device = nil
	m.ready = false

	m.streamMu.Lock()
	m.current = nil
	m.streamMu.Unlock()
	m.logger.Info("audio output closed", zap.String("backend", "malgo"))
}
