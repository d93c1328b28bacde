// ABOUTME: Audio fundamentals package providing core types
// ABOUTME: Defines Format and Buffer plus the unsupported-format error
// Package audio provides the sample format and buffer types shared by the
// synthesizer, the encoders and the output devices.
//
// A Format is supplied by the output device once it has been opened and is
// passed explicitly to everything that needs it:
//
//	format := audio.Format{
//	    SampleRate: 44100,
//	    BitDepth:   16,
//	    Signed:     true,
//	    Channels:   2,
//	}
//	if err := format.Validate(); err != nil {
//	    // errors.Is(err, audio.ErrUnsupportedFormat)
//	}
package audio
