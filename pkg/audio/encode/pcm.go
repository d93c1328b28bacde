// ABOUTME: PCM audio encoder
// ABOUTME: Encodes quantized samples to 8-bit or 16-bit little-endian PCM bytes
package encode

import (
	"encoding/binary"

	"github.com/harperreed/tonegen/pkg/audio"
)

var _ Encoder = (*PCMEncoder)(nil)

// PCMEncoder encodes samples into native-width little-endian PCM
type PCMEncoder struct {
	format audio.Format
}

// NewPCM creates a new PCM encoder for the given format
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &PCMEncoder{format: format}, nil
}

// Encode converts samples to PCM bytes.
// Samples must already be quantized to the encoder's format.
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	output := make([]byte, len(samples)*e.format.BytesPerSample())
	e.put(output, samples)
	return output, nil
}

func (e *PCMEncoder) put(output []byte, samples []int32) {
	switch {
	case e.format.BitDepth == 8 && e.format.Signed:
		for i, sample := range samples {
			output[i] = byte(int8(sample))
		}
	case e.format.BitDepth == 8:
		for i, sample := range samples {
			output[i] = uint8(sample)
		}
	case e.format.Signed:
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(output[i*2:], uint16(int16(sample)))
		}
	default:
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(output[i*2:], uint16(sample))
		}
	}
}

// Silence returns n frames of zero-amplitude PCM for the encoder's format
func (e *PCMEncoder) Silence(frames int) []byte {
	samples := make([]int32, frames*e.format.Channels)
	silence := e.format.Silence()
	for i := range samples {
		samples[i] = silence
	}
	output := make([]byte, len(samples)*e.format.BytesPerSample())
	e.put(output, samples)
	return output
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
