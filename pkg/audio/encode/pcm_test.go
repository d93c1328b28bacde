// ABOUTME: Unit tests for PCM encoder
// ABOUTME: Tests 8-bit and 16-bit signed and unsigned PCM encoding
package encode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/harperreed/tonegen/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	tests := []struct {
		name    string
		format  audio.Format
		wantErr bool
	}{
		{
			name:   "valid 16-bit PCM",
			format: audio.Format{SampleRate: 48000, BitDepth: 16, Signed: true, Channels: 2},
		},
		{
			name:   "valid 8-bit PCM",
			format: audio.Format{SampleRate: 8000, BitDepth: 8, Signed: false, Channels: 1},
		},
		{
			name:    "unsupported bit depth",
			format:  audio.Format{SampleRate: 48000, BitDepth: 24, Signed: true, Channels: 2},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(tt.format)
			if tt.wantErr {
				if !errors.Is(err, audio.ErrUnsupportedFormat) {
					t.Errorf("NewPCM() expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPCM() unexpected error = %v", err)
			}
			if encoder == nil {
				t.Fatal("NewPCM() returned nil encoder")
			}
		})
	}
}

func TestPCMEncoder_Encode(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		signed   bool
		samples  []int32
		expected []byte
	}{
		{"s8", 8, true, []int32{0, 127, -128, -1}, []byte{0x00, 0x7F, 0x80, 0xFF}},
		{"u8", 8, false, []int32{128, 255, 0}, []byte{0x80, 0xFF, 0x00}},
		{"s16", 16, true, []int32{0, 32767, -32768, -2}, []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80, 0xFE, 0xFF}},
		{"u16", 16, false, []int32{32768, 65535, 0}, []byte{0x00, 0x80, 0xFF, 0xFF, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(audio.Format{SampleRate: 8000, BitDepth: tt.bitDepth, Signed: tt.signed, Channels: 1})
			if err != nil {
				t.Fatalf("NewPCM() failed: %v", err)
			}
			defer encoder.Close()

			output, err := encoder.Encode(tt.samples)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			if !bytes.Equal(output, tt.expected) {
				t.Errorf("Encode() = %v, want %v", output, tt.expected)
			}
		})
	}
}

func TestPCMEncoder_Silence(t *testing.T) {
	encoder, err := NewPCM(audio.Format{SampleRate: 8000, BitDepth: 8, Signed: false, Channels: 2})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	silence := encoder.Silence(3)
	if len(silence) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(silence))
	}
	for i, b := range silence {
		if b != 0x80 {
			t.Errorf("byte %d: expected 0x80, got %#x", i, b)
		}
	}
}

func TestPCMEncoderImplementsEncoder(t *testing.T) {
	var _ Encoder = (*PCMEncoder)(nil)
}
