// ABOUTME: Melody model and driver
// ABOUTME: Loads note sequences from YAML and plays them through a tone player
package melody

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Note is one step of a melody: a tone, or a rest when Rest is set
type Note struct {
	Frequency  float64
	DurationMs int
	Rest       bool
}

// Melody is a titled sequence of notes
type Melody struct {
	Title string
	Notes []Note
}

// DurationMs returns the total length of the melody
func (m Melody) DurationMs() int {
	total := 0
	for _, n := range m.Notes {
		total += n.DurationMs
	}
	return total
}

// TonePlayer is the subset of tone.Player the driver needs
type TonePlayer interface {
	Play(frequencyHz float64, durationMs int) error
	Rest(durationMs int) error
}

// Play plays the notes in order. Cancellation is checked between notes;
// a note already sounding always finishes.
func Play(ctx context.Context, p TonePlayer, m Melody, onNote func(i int, n Note)) error {
	for i, n := range m.Notes {
		if err := ctx.Err(); err != nil {
			return err
		}

		if onNote != nil {
			onNote(i, n)
		}

		var err error
		if n.Rest {
			err = p.Rest(n.DurationMs)
		} else {
			err = p.Play(n.Frequency, n.DurationMs)
		}
		if err != nil {
			return fmt.Errorf("note %d: %w", i+1, err)
		}
	}
	return nil
}

type fileFormat struct {
	Title string     `yaml:"title"`
	Notes []noteSpec `yaml:"notes"`
}

type noteSpec struct {
	Note string  `yaml:"note"`
	Freq float64 `yaml:"freq"`
	Ms   int     `yaml:"ms"`
	Rest *int    `yaml:"rest"`
}

// Load parses a YAML melody:
//
//	title: Scale
//	notes:
//	  - {note: C4, ms: 250}
//	  - {freq: 294, ms: 250}
//	  - {rest: 100}
func Load(r io.Reader) (Melody, error) {
	var f fileFormat
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return Melody{}, fmt.Errorf("parsing melody: %w", err)
	}

	m := Melody{Title: f.Title, Notes: make([]Note, 0, len(f.Notes))}
	for i, spec := range f.Notes {
		n, err := spec.toNote()
		if err != nil {
			return Melody{}, fmt.Errorf("note %d: %w", i+1, err)
		}
		m.Notes = append(m.Notes, n)
	}
	return m, nil
}

func (s noteSpec) toNote() (Note, error) {
	if s.Rest != nil {
		if *s.Rest < 0 {
			return Note{}, fmt.Errorf("negative rest %d", *s.Rest)
		}
		return Note{DurationMs: *s.Rest, Rest: true}, nil
	}
	if s.Ms < 0 {
		return Note{}, fmt.Errorf("negative duration %d", s.Ms)
	}

	freq := s.Freq
	if s.Note != "" {
		f, err := ParseNote(s.Note)
		if err != nil {
			return Note{}, err
		}
		freq = f
	}
	if freq <= 0 {
		return Note{}, fmt.Errorf("missing note or freq")
	}
	return Note{Frequency: freq, DurationMs: s.Ms}, nil
}

// LoadFile reads a YAML melody from path
func LoadFile(path string) (Melody, error) {
	f, err := os.Open(path)
	if err != nil {
		return Melody{}, fmt.Errorf("opening melody file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
