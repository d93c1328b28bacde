// ABOUTME: Tests for the tone player
// ABOUTME: Uses a recording device to verify scheduling, blocking and error paths
package tone

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/harperreed/tonegen/pkg/audio"
)

type submission struct {
	buf         audio.Buffer
	repeatCount int
	maxDuration time.Duration
}

// recordingDevice captures submissions instead of playing them
type recordingDevice struct {
	format      audio.Format
	submissions []submission
	silences    []time.Duration
	err         error
}

func (d *recordingDevice) Format() audio.Format { return d.format }

func (d *recordingDevice) PlayBuffer(buf audio.Buffer, repeatCount int, maxDuration time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.submissions = append(d.submissions, submission{buf, repeatCount, maxDuration})
	return nil
}

func (d *recordingDevice) Close() error { return nil }

// silentDevice also records explicit gaps
type silentDevice struct {
	recordingDevice
}

func (d *silentDevice) WriteSilence(dur time.Duration) error {
	d.silences = append(d.silences, dur)
	return nil
}

var s16Stereo = audio.Format{SampleRate: 8000, BitDepth: 16, Signed: true, Channels: 2}

func newTestPlayer(t *testing.T, dev *recordingDevice, slept *[]time.Duration) *Player {
	t.Helper()
	p, err := NewPlayer(PlayerConfig{
		Device: dev,
		Sleep:  func(d time.Duration) { *slept = append(*slept, d) },
	})
	if err != nil {
		t.Fatalf("NewPlayer() failed: %v", err)
	}
	return p
}

func TestIterations(t *testing.T) {
	tests := []struct {
		durationMs int
		expected   int
	}{
		{0, 0},
		{1, 1},
		{999, 1},
		{1000, 1},
		{1500, 2},
		{2000, 2},
		{2001, 3},
	}

	for _, tt := range tests {
		if got := Iterations(tt.durationMs); got != tt.expected {
			t.Errorf("Iterations(%d): expected %d, got %d", tt.durationMs, tt.expected, got)
		}
	}
}

func TestPlaySubmitsLoopedBuffer(t *testing.T) {
	tests := []struct {
		durationMs     int
		expectedRepeat int
	}{
		{500, 0},
		{1000, 0},
		{1500, 1},
		{2001, 2},
	}

	for _, tt := range tests {
		dev := &recordingDevice{format: s16Stereo}
		var slept []time.Duration
		p := newTestPlayer(t, dev, &slept)

		if err := p.Play(440, tt.durationMs); err != nil {
			t.Fatalf("Play(440, %d) failed: %v", tt.durationMs, err)
		}

		if len(dev.submissions) != 1 {
			t.Fatalf("expected 1 submission, got %d", len(dev.submissions))
		}
		sub := dev.submissions[0]
		if sub.repeatCount != tt.expectedRepeat {
			t.Errorf("%dms: expected repeat count %d, got %d", tt.durationMs, tt.expectedRepeat, sub.repeatCount)
		}
		wantDur := time.Duration(tt.durationMs) * time.Millisecond
		if sub.maxDuration != wantDur {
			t.Errorf("%dms: expected max duration %v, got %v", tt.durationMs, wantDur, sub.maxDuration)
		}
		if len(sub.buf.Samples) != 2*s16Stereo.SampleRate {
			t.Errorf("expected one second of stereo samples, got %d", len(sub.buf.Samples))
		}
		if len(slept) != 1 || slept[0] != wantDur {
			t.Errorf("expected to sleep %v once, got %v", wantDur, slept)
		}
	}
}

func TestPlayBlocksForDuration(t *testing.T) {
	dev := &recordingDevice{format: s16Stereo}
	p, err := NewPlayer(PlayerConfig{Device: dev})
	if err != nil {
		t.Fatalf("NewPlayer() failed: %v", err)
	}

	start := time.Now()
	if err := p.Play(440, 500); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 500*time.Millisecond {
		t.Errorf("expected Play to block at least 500ms, returned after %v", elapsed)
	}
}

func TestPlayUnsupportedFormat(t *testing.T) {
	tests := []struct {
		name       string
		durationMs int
	}{
		{"zero", 0},
		{"short", 1},
		{"half second", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			dev := &recordingDevice{format: audio.Format{SampleRate: 48000, BitDepth: 24, Signed: true, Channels: 2}}

			var slept []time.Duration
			var reported error
			p, err := NewPlayer(PlayerConfig{
				Device:  dev,
				Logger:  zap.New(core),
				Sleep:   func(d time.Duration) { slept = append(slept, d) },
				OnError: func(err error) { reported = err },
			})
			if err != nil {
				t.Fatalf("NewPlayer() failed: %v", err)
			}

			err = p.Play(440, tt.durationMs)
			if !errors.Is(err, audio.ErrUnsupportedFormat) {
				t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
			}
			var fe *audio.FormatError
			if !errors.As(err, &fe) || fe.Value != 24 {
				t.Errorf("expected unchanged format error for 24-bit, got %v", err)
			}
			if len(dev.submissions) != 0 {
				t.Errorf("expected no submissions, got %d", len(dev.submissions))
			}
			if len(slept) != 0 {
				t.Errorf("expected no wait after failure, got %v", slept)
			}
			if reported != err {
				t.Errorf("expected OnError to receive %v, got %v", err, reported)
			}
			if logs.Len() != 1 {
				t.Errorf("expected 1 warning logged, got %d", logs.Len())
			}
		})
	}
}

func TestPlayZeroDurationIsNoop(t *testing.T) {
	dev := &recordingDevice{format: s16Stereo}
	var slept []time.Duration
	p := newTestPlayer(t, dev, &slept)

	if err := p.Play(440, 0); err != nil {
		t.Fatalf("Play(440, 0) failed: %v", err)
	}
	if len(dev.submissions) != 0 || len(slept) != 0 {
		t.Errorf("expected no submission and no wait, got %d submissions, %v slept", len(dev.submissions), slept)
	}
}

func TestPlayInvalidRequest(t *testing.T) {
	tests := []struct {
		name       string
		freq       float64
		durationMs int
	}{
		{"negative duration", 440, -1},
		{"zero frequency", 0, 500},
		{"negative frequency", -440, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &recordingDevice{format: s16Stereo}
			var slept []time.Duration
			p := newTestPlayer(t, dev, &slept)

			if err := p.Play(tt.freq, tt.durationMs); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
			if len(dev.submissions) != 0 {
				t.Errorf("expected no submissions, got %d", len(dev.submissions))
			}
		})
	}
}

func TestPlayDeviceError(t *testing.T) {
	deviceErr := errors.New("device unplugged")
	dev := &recordingDevice{format: s16Stereo, err: deviceErr}
	var slept []time.Duration
	p := newTestPlayer(t, dev, &slept)

	err := p.Play(440, 250)
	if !errors.Is(err, deviceErr) {
		t.Fatalf("expected wrapped device error, got %v", err)
	}
	if len(slept) != 0 {
		t.Errorf("expected no wait after failed submission, got %v", slept)
	}
}

func TestPlayCallsOnTone(t *testing.T) {
	dev := &recordingDevice{format: s16Stereo}
	var events []Event
	p, err := NewPlayer(PlayerConfig{
		Device: dev,
		Sleep:  func(time.Duration) {},
		OnTone: func(e Event) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("NewPlayer() failed: %v", err)
	}

	if err := p.Play(523, 1500); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.FrequencyHz != 523 || e.DurationMs != 1500 || e.Iterations != 2 || e.RepeatCount != 1 {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Format != s16Stereo {
		t.Errorf("expected event format %v, got %v", s16Stereo, e.Format)
	}
}

func TestRest(t *testing.T) {
	dev := &silentDevice{recordingDevice{format: s16Stereo}}
	var slept []time.Duration
	p, err := NewPlayer(PlayerConfig{
		Device: dev,
		Sleep:  func(d time.Duration) { slept = append(slept, d) },
	})
	if err != nil {
		t.Fatalf("NewPlayer() failed: %v", err)
	}

	if err := p.Rest(150); err != nil {
		t.Fatalf("Rest() failed: %v", err)
	}
	if len(dev.silences) != 1 || dev.silences[0] != 150*time.Millisecond {
		t.Errorf("expected 150ms of silence written, got %v", dev.silences)
	}
	if len(slept) != 1 || slept[0] != 150*time.Millisecond {
		t.Errorf("expected 150ms sleep, got %v", slept)
	}
	if err := p.Rest(-5); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for negative rest, got %v", err)
	}
}

func TestNewPlayerRequiresDevice(t *testing.T) {
	if _, err := NewPlayer(PlayerConfig{}); err == nil {
		t.Error("expected error without a device")
	}
}

func TestPlayTone(t *testing.T) {
	dev := &recordingDevice{format: audio.Format{SampleRate: 8000, BitDepth: 8, Signed: false, Channels: 1}}
	if err := PlayTone(dev, 440, 10); err != nil {
		t.Fatalf("PlayTone() failed: %v", err)
	}
	if len(dev.submissions) != 1 {
		t.Errorf("expected 1 submission, got %d", len(dev.submissions))
	}
}
