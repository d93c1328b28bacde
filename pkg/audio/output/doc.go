// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Device interface and oto, malgo, PortAudio and WAV backends
// Package output provides the asynchronous playback devices the tone player
// submits unit buffers to.
//
// PlayBuffer follows the "play once plus repeatCount loops" convention; use
// RepeatCount to convert a total play count into it.
//
// Example:
//
//	out := output.NewOto(logger)
//	err := out.Open(audio.Format{SampleRate: 44100, BitDepth: 16, Signed: true, Channels: 2})
//	err = out.PlayBuffer(buf, output.RepeatCount(2), 1500*time.Millisecond)
package output
