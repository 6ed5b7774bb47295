package synth

import (
	"errors"
	"fmt"

	"github.com/justyntemme/overtone/pkg/dsp/oscillator"
	"github.com/justyntemme/overtone/pkg/framework/voice"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid synth config")

// Config holds the construction-time settings of a synth.
type Config struct {
	SampleRate             float64 // Hz
	BlockSize              int     // frames per Render call in real-time use
	BankSize               int     // oscillators per voice, harmonics 1..BankSize
	ChunkSize              int     // frames each voice renders per inner iteration
	ConcertPitch           float64 // frequency of note 69
	MaxPitchWheelSemitones float64 // bend range at full wheel deflection
	Polyphony              int     // number of voices
	Waveform               string  // oscillator shape, see oscillator.ShapeByName
	Stealing               string  // voice stealing mode, see voice.ParseStealingMode
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		SampleRate:             48000,
		BlockSize:              512,
		BankSize:               4,
		ChunkSize:              64,
		ConcertPitch:           440,
		MaxPitchWheelSemitones: 2,
		Polyphony:              8,
		Waveform:               "sine",
		Stealing:               voice.StealOldest.String(),
	}
}

// Validate checks every field and reports the first bad one.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %v must be positive", ErrInvalidConfig, c.SampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d must be positive", ErrInvalidConfig, c.BlockSize)
	case c.BankSize <= 0:
		return fmt.Errorf("%w: bank size %d must be positive", ErrInvalidConfig, c.BankSize)
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidConfig, c.ChunkSize)
	case c.ConcertPitch <= 0:
		return fmt.Errorf("%w: concert pitch %v must be positive", ErrInvalidConfig, c.ConcertPitch)
	case c.MaxPitchWheelSemitones < 0:
		return fmt.Errorf("%w: pitch wheel range %v must not be negative", ErrInvalidConfig, c.MaxPitchWheelSemitones)
	case c.Polyphony <= 0:
		return fmt.Errorf("%w: polyphony %d must be positive", ErrInvalidConfig, c.Polyphony)
	}

	if _, ok := oscillator.ShapeByName(c.Waveform); !ok {
		return fmt.Errorf("%w: unknown waveform %q", ErrInvalidConfig, c.Waveform)
	}
	if _, ok := voice.ParseStealingMode(c.Stealing); !ok {
		return fmt.Errorf("%w: unknown stealing mode %q", ErrInvalidConfig, c.Stealing)
	}
	return nil
}
