// ABOUTME: Audio type definitions
// ABOUTME: Defines device sample formats and quantized sample buffers
package audio

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedFormat is returned when a format has a bit depth or channel
// layout that cannot be synthesized or played.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// FormatError describes which field of a Format is unsupported
type FormatError struct {
	Field string
	Value int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s=%d", ErrUnsupportedFormat, e.Field, e.Value)
}

// Is reports ErrUnsupportedFormat so callers can use errors.Is
func (e *FormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Format describes the sample format an output device expects
type Format struct {
	SampleRate int  // Hz
	BitDepth   int  // 8 or 16
	Signed     bool // signed or unsigned integer samples
	Channels   int  // 1 (mono) or 2 (stereo)
}

// Validate checks that the format is one of the supported layouts
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return &FormatError{Field: "sample_rate", Value: f.SampleRate}
	}
	if f.BitDepth != 8 && f.BitDepth != 16 {
		return &FormatError{Field: "bit_depth", Value: f.BitDepth}
	}
	if f.Channels != 1 && f.Channels != 2 {
		return &FormatError{Field: "channels", Value: f.Channels}
	}
	return nil
}

// Range returns the smallest and largest sample value the format can hold.
// Widths outside 1..32 bits hold only zero.
func (f Format) Range() (min, max int32) {
	if !f.widthOK() {
		return 0, 0
	}
	if f.Signed {
		peak := int32(1) << (f.BitDepth - 1)
		return -peak, peak - 1
	}
	return 0, int32(1)<<f.BitDepth - 1
}

// Silence returns the sample value that represents zero amplitude
func (f Format) Silence() int32 {
	if f.Signed || !f.widthOK() {
		return 0
	}
	return int32(1) << (f.BitDepth - 1)
}

func (f Format) widthOK() bool {
	return f.BitDepth >= 1 && f.BitDepth <= 32
}

// BytesPerSample returns the container width of one sample
func (f Format) BytesPerSample() int {
	return f.BitDepth / 8
}

// FrameSize returns the number of bytes in one interleaved frame
func (f Format) FrameSize() int {
	return f.BytesPerSample() * f.Channels
}

// BytesPerSecond returns the byte rate of the encoded stream
func (f Format) BytesPerSecond() int {
	return f.FrameSize() * f.SampleRate
}

func (f Format) String() string {
	sign := "u"
	if f.Signed {
		sign = "s"
	}
	return fmt.Sprintf("%dHz %s%d %dch", f.SampleRate, sign, f.BitDepth, f.Channels)
}

// Buffer holds quantized PCM samples, interleaved when stereo.
// Values already lie within Format.Range().
type Buffer struct {
	Samples []int32
	Format  Format
}

// Frames returns the number of sample frames in the buffer
func (b Buffer) Frames() int {
	if b.Format.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// Duration returns how long the buffer plays once
func (b Buffer) Duration() time.Duration {
	if b.Format.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.Format.SampleRate)
}
