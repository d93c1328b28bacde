// ABOUTME: Note name conversions
// ABOUTME: Maps scientific pitch names to equal-tempered frequencies and back
package melody

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrUnknownNote is returned for names that are not scientific pitch notation
var ErrUnknownNote = errors.New("unknown note")

// A4 is the tuning reference
const A4 = 440.0

var pitchClasses = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ParseNote returns the frequency of a name such as "A4", "C#5" or "Bb3"
func ParseNote(name string) (float64, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	pc, ok := pitchClasses[name[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	rest := name[1:]
	switch rest[0] {
	case '#':
		pc++
		rest = rest[1:]
	case 'b':
		pc--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil || octave < 0 || octave > 9 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	midi := (octave+1)*12 + pc
	return A4 * math.Pow(2, float64(midi-69)/12), nil
}

// NoteName returns the nearest equal-tempered note name for a frequency
func NoteName(frequencyHz float64) string {
	if frequencyHz <= 0 || math.IsNaN(frequencyHz) || math.IsInf(frequencyHz, 0) {
		return ""
	}

	midi := int(math.Round(69 + 12*math.Log2(frequencyHz/A4)))
	if midi < 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", sharpNames[midi%12], midi/12-1)
}
