// ABOUTME: Audio encoding package
// ABOUTME: Provides the Encoder interface and the PCM implementation
// Package encode turns quantized samples into the byte layout an output
// device consumes.
//
// Example:
//
//	enc, err := encode.NewPCM(format)
//	data, err := enc.Encode(buf.Samples)
package encode
