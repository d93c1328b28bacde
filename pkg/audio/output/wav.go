// ABOUTME: WAV file output implementation
// ABOUTME: Renders submitted tones and gaps into a PCM WAV file using go-audio
package output

import (
	"fmt"
	"os"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"

	"github.com/harperreed/tonegen/pkg/audio"
)

// WAV output renders playback into a file instead of a sound card.
// Each submission is written in full before PlayBuffer returns.
type WAV struct {
	logger  *zap.Logger
	path    string
	file    *os.File
	encoder *wav.Encoder
	format  audio.Format
	frames  int
	mu      sync.Mutex
}

// NewWAV creates a WAV output that writes to path on Open
func NewWAV(path string, logger *zap.Logger) *WAV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WAV{path: path, logger: logger}
}

// Open creates the file and writes the header.
// WAV stores 8-bit PCM unsigned and 16-bit PCM signed.
func (w *WAV) Open(format audio.Format) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := format.Validate(); err != nil {
		return err
	}
	if format.Signed != (format.BitDepth == 16) {
		return &audio.FormatError{Field: "wav_sample_type", Value: format.BitDepth}
	}
	if w.encoder != nil {
		return fmt.Errorf("wav output already open: %s", w.path)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	w.file = f
	w.encoder = wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, 1)
	w.format = format

	w.logger.Info("audio output initialized",
		zap.String("backend", "wav"),
		zap.String("path", w.path),
		zap.Stringer("format", format))
	return nil
}

// Format returns the opened sample format
func (w *WAV) Format() audio.Format {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.format
}

// PlayBuffer appends the looped buffer to the file
func (w *WAV) PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.encoder == nil {
		return ErrNotOpen
	}
	if err := checkBuffer(w.format, buf); err != nil {
		return err
	}

	frames := buf.Frames() * (repeatCount + 1)
	if limit := durationFrames(w.format, maxDuration); limit > 0 && limit < frames {
		frames = limit
	}

	data := make([]int, frames*w.format.Channels)
	for i := range data {
		data[i] = int(buf.Samples[i%len(buf.Samples)])
	}
	return w.write(data)
}

// WriteSilence appends d worth of zero-amplitude frames
func (w *WAV) WriteSilence(d time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.encoder == nil {
		return ErrNotOpen
	}

	data := make([]int, durationFrames(w.format, d)*w.format.Channels)
	silence := int(w.format.Silence())
	for i := range data {
		data[i] = silence
	}
	return w.write(data)
}

func (w *WAV) write(data []int) error {
	if len(data) == 0 {
		return nil
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: w.format.Channels,
			SampleRate:  w.format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: w.format.BitDepth,
	}
	if err := w.encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write wav frames: %w", err)
	}
	w.frames += len(data) / w.format.Channels
	return nil
}

// Frames returns the number of frames written so far
func (w *WAV) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Close finalizes the WAV headers and closes the file
func (w *WAV) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.encoder == nil {
		return nil
	}

	err := w.encoder.Close()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	w.encoder = nil
	w.file = nil

	if err != nil {
		return fmt.Errorf("failed to finalize wav file: %w", err)
	}
	w.logger.Info("audio output closed",
		zap.String("backend", "wav"),
		zap.String("path", w.path),
		zap.Int("frames", w.frames))
	return nil
}
