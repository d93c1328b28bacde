// ABOUTME: Audio output tests
// ABOUTME: Verifies the repeat-count adapter, looping reader and backend format mapping
package output

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/harperreed/tonegen/pkg/audio"
)

func TestBackendsImplementDevice(t *testing.T) {
	var _ Device = (*Oto)(nil)
	var _ Device = (*Malgo)(nil)
	var _ Device = (*PortAudio)(nil)
	var _ Device = (*WAV)(nil)
	var _ SilenceWriter = (*WAV)(nil)
}

func TestRepeatCount(t *testing.T) {
	tests := []struct {
		iterations int
		expected   int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
	}

	for _, tt := range tests {
		if got := RepeatCount(tt.iterations); got != tt.expected {
			t.Errorf("RepeatCount(%d): expected %d, got %d", tt.iterations, tt.expected, got)
		}
	}
}

func TestLoopReader(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		loops    int
		limit    int
		expected []byte
	}{
		{"once", []byte{1, 2, 3}, 1, 0, []byte{1, 2, 3}},
		{"three loops", []byte{1, 2}, 3, 0, []byte{1, 2, 1, 2, 1, 2}},
		{"capped mid-loop", []byte{1, 2, 3}, 2, 4, []byte{1, 2, 3, 1}},
		{"cap above total", []byte{1, 2}, 1, 10, []byte{1, 2}},
		{"empty data", nil, 5, 0, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newLoopReader(tt.data, tt.loops, tt.limit))
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFillPadsWithSilence(t *testing.T) {
	r := newLoopReader([]byte{9, 9}, 1, 0)
	out := make([]byte, 6)
	fill(r, out, []byte{0x00, 0x80})

	expected := []byte{9, 9, 0x00, 0x80, 0x00, 0x80}
	if !bytes.Equal(out, expected) {
		t.Errorf("expected %v, got %v", expected, out)
	}
	if r.Len() != 0 {
		t.Errorf("expected reader drained, %d bytes left", r.Len())
	}

	fill(nil, out, []byte{0x80})
	for i, b := range out {
		if b != 0x80 {
			t.Fatalf("byte %d: expected silence, got %#x", i, b)
		}
	}
}

func TestDurationBytes(t *testing.T) {
	format := audio.Format{SampleRate: 8000, BitDepth: 16, Signed: true, Channels: 2}

	if got := durationBytes(format, 500*time.Millisecond); got != 4000*4 {
		t.Errorf("expected %d bytes, got %d", 4000*4, got)
	}
	if got := durationBytes(format, 0); got != 0 {
		t.Errorf("expected no limit, got %d", got)
	}
	if got := durationFrames(format, 125*time.Millisecond); got != 1000 {
		t.Errorf("expected 1000 frames, got %d", got)
	}
}

func TestCheckBuffer(t *testing.T) {
	format := audio.Format{SampleRate: 8000, BitDepth: 8, Signed: false, Channels: 1}

	if err := checkBuffer(format, audio.Buffer{Samples: []int32{128}, Format: format}); err != nil {
		t.Errorf("expected matching buffer to pass, got %v", err)
	}

	other := format
	other.Channels = 2
	if err := checkBuffer(format, audio.Buffer{Samples: []int32{128, 128}, Format: other}); err == nil {
		t.Error("expected format mismatch error")
	}
	if err := checkBuffer(format, audio.Buffer{Format: format}); err == nil {
		t.Error("expected empty buffer error")
	}
}

func TestBackendSampleTypes(t *testing.T) {
	tests := []struct {
		bitDepth  int
		signed    bool
		supported bool
	}{
		{16, true, true},
		{8, false, true},
		{8, true, false},
		{16, false, false},
	}

	for _, tt := range tests {
		format := audio.Format{SampleRate: 44100, BitDepth: tt.bitDepth, Signed: tt.signed, Channels: 2}

		_, otoErr := otoFormat(format)
		_, malgoErr := malgoFormat(format)
		for name, err := range map[string]error{"oto": otoErr, "malgo": malgoErr} {
			if tt.supported && err != nil {
				t.Errorf("%s %s: unexpected error %v", name, format, err)
			}
			if !tt.supported && !errors.Is(err, audio.ErrUnsupportedFormat) {
				t.Errorf("%s %s: expected ErrUnsupportedFormat, got %v", name, format, err)
			}
		}
	}
}

func TestNotOpen(t *testing.T) {
	format := audio.Format{SampleRate: 8000, BitDepth: 16, Signed: true, Channels: 1}
	buf := audio.Buffer{Samples: []int32{0}, Format: format}

	if err := NewOto(nil).PlayBuffer(buf, 0, 0); !errors.Is(err, ErrNotOpen) {
		t.Errorf("oto: expected ErrNotOpen, got %v", err)
	}
	if err := NewMalgo(nil).PlayBuffer(buf, 0, 0); !errors.Is(err, ErrNotOpen) {
		t.Errorf("malgo: expected ErrNotOpen, got %v", err)
	}
	if err := NewWAV("unused.wav", nil).PlayBuffer(buf, 0, 0); !errors.Is(err, ErrNotOpen) {
		t.Errorf("wav: expected ErrNotOpen, got %v", err)
	}
}
