// ABOUTME: Tone playback package
// ABOUTME: Turns (frequency, duration) requests into looped, blocking playback
// Package tone plays single sine tones on an output device, one at a time.
//
// Play synthesizes a one-second unit buffer, submits it to the device with
// enough repeats to cover the requested duration, and then blocks for the
// duration so consecutive calls never overlap. A zero duration is a no-op.
//
// Example:
//
//	player, err := tone.NewPlayer(tone.PlayerConfig{Device: out})
//	err = player.Play(440, 500) // A4 for half a second
package tone
