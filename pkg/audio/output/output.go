// ABOUTME: Audio output interface definition
// ABOUTME: Common device interface plus the repeat-count adapter shared by backends
package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/tonegen/pkg/audio"
)

var (
	// ErrNotOpen is returned when a device is used before Open or after Close
	ErrNotOpen = errors.New("output not initialized")

	// ErrUnknownBackend is returned by callers selecting a backend by name
	ErrUnknownBackend = errors.New("unknown output backend")
)

// Device represents an audio output device that plays buffers asynchronously
type Device interface {
	// Format returns the sample format the device was opened with
	Format() audio.Format

	// PlayBuffer queues buf for playback and returns immediately.
	// The buffer plays once plus repeatCount more times, cut off after
	// maxDuration when maxDuration is positive. A new submission replaces
	// whatever is still playing.
	PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error

	// Close releases output resources
	Close() error
}

// SilenceWriter is implemented by devices that need gaps written explicitly,
// such as file renderers where wall-clock time does not pass.
type SilenceWriter interface {
	WriteSilence(d time.Duration) error
}

// RepeatCount converts a total play count into the device convention, where
// 0 means play once.
func RepeatCount(iterations int) int {
	if iterations < 1 {
		return 0
	}
	return iterations - 1
}

// checkBuffer rejects buffers synthesized for a different format than the device's
func checkBuffer(device audio.Format, buf audio.Buffer) error {
	if buf.Format != device {
		return fmt.Errorf("buffer format %s does not match device format %s", buf.Format, device)
	}
	if len(buf.Samples) == 0 {
		return fmt.Errorf("empty buffer")
	}
	return nil
}

// durationBytes returns the number of whole frames of d in bytes, or 0 for no limit
func durationBytes(format audio.Format, d time.Duration) int {
	if d <= 0 {
		return 0
	}
	frames := int(d * time.Duration(format.SampleRate) / time.Second)
	return frames * format.FrameSize()
}

// durationFrames returns the number of whole frames of d, or 0 for no limit
func durationFrames(format audio.Format, d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d * time.Duration(format.SampleRate) / time.Second)
}
