// ABOUTME: Built-in demo melody
// ABOUTME: The Imperial March theme as frequency/duration pairs
package melody

// Frequencies used by the demo theme, rounded to whole hertz
const (
	c   = 261
	d   = 294
	e   = 329
	f   = 349
	g   = 391
	gS  = 415
	a   = 440
	aS  = 455
	b   = 466
	cH  = 523
	cSH = 554
	dH  = 587
	dSH = 622
	eH  = 659
	fH  = 698
	fSH = 740
	gH  = 784
	gSH = 830
	aH  = 880
)

func tone(freq, ms int) Note { return Note{Frequency: float64(freq), DurationMs: ms} }

func rest(ms int) Note { return Note{DurationMs: ms, Rest: true} }

// ImperialMarch returns the demo theme, including the gap between phrases
func ImperialMarch() Melody {
	var notes []Note

	// first phrase
	notes = append(notes,
		tone(a, 500), tone(a, 500), tone(a, 500), tone(f, 350), tone(cH, 150),
		tone(a, 500), tone(f, 350), tone(cH, 150), tone(a, 650),
		rest(150),
	)

	// second phrase
	notes = append(notes,
		tone(eH, 500), tone(eH, 500), tone(eH, 500), tone(fH, 350), tone(cH, 150),
		tone(gS, 500), tone(f, 350), tone(cH, 150), tone(a, 650),
		rest(150),
	)

	bridge := []Note{
		tone(aH, 500), tone(a, 300), tone(a, 150), tone(aH, 400), tone(gSH, 200),
		tone(gH, 200), tone(fSH, 125), tone(fH, 125), tone(fSH, 250),
		rest(250),
		tone(aS, 250), tone(dSH, 400), tone(dH, 200), tone(cSH, 200), tone(cH, 125),
		tone(b, 125), tone(cH, 250),
		rest(250),
	}

	// third phrase
	notes = append(notes, bridge...)
	notes = append(notes,
		tone(f, 125), tone(gS, 500), tone(f, 375), tone(a, 125), tone(cH, 500),
		tone(a, 375), tone(cH, 125), tone(eH, 650),
	)

	// repeat of the third phrase with the closing variation
	notes = append(notes, bridge...)
	notes = append(notes,
		tone(f, 250), tone(gS, 500), tone(f, 375), tone(cH, 125), tone(a, 500),
		tone(f, 375), tone(cH, 125), tone(a, 650),
	)

	return Melody{Title: "Imperial March", Notes: notes}
}
