// ABOUTME: Sine wave synthesizer
// ABOUTME: Generates, quantizes and interleaves a one-second sine buffer
package synth

import (
	"math"

	"github.com/harperreed/tonegen/pkg/audio"
)

// Synthesize returns one second of sin(2*pi*f*t) at the format's sample rate,
// quantized to the format's width and duplicated across channels.
func Synthesize(frequencyHz float64, format audio.Format) (audio.Buffer, error) {
	if err := format.Validate(); err != nil {
		return audio.Buffer{}, err
	}

	omega := 2 * math.Pi * frequencyHz / float64(format.SampleRate)

	mono := make([]int32, format.SampleRate)
	for k := range mono {
		mono[k] = Quantize(math.Sin(omega*float64(k)), format)
	}

	return audio.Buffer{
		Samples: Interleave(mono, format.Channels),
		Format:  format,
	}, nil
}

// Quantize scales a value in [-1, 1] into the integer range of format.
// Widths outside 1..32 bits quantize to zero.
func Quantize(raw float64, format audio.Format) int32 {
	peak := math.Ldexp(1, format.BitDepth-1)

	var v float64
	if format.Signed {
		v = peak * raw
	} else {
		v = peak * (raw + 1)
	}

	min, max := format.Range()
	v = math.Round(v)
	if v > float64(max) {
		return max
	}
	if v < float64(min) {
		return min
	}
	return int32(v)
}

// Interleave copies each mono sample into every channel slot of its frame
func Interleave(mono []int32, channels int) []int32 {
	if channels <= 1 {
		return mono
	}

	out := make([]int32, len(mono)*channels)
	for i, s := range mono {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = s
		}
	}
	return out
}
