// ABOUTME: Sine synthesis package
// ABOUTME: Builds one-second quantized sine buffers for a device format
// Package synth generates the unit buffer played by the tone player: one
// second of a pure sine wave, quantized to the device's sample format.
//
// Signed formats are scaled by 2^(bits-1) around zero. Unsigned formats are
// offset by one before scaling so the waveform is centered on the PCM
// midpoint (128 for 8-bit, 32768 for 16-bit). Values are rounded to the
// nearest integer and clamped into the container range.
//
// Example:
//
//	buf, err := synth.Synthesize(440, format)
//	if errors.Is(err, audio.ErrUnsupportedFormat) {
//	    // 24-bit and other widths are rejected
//	}
package synth
