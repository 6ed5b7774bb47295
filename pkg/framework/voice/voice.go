// Package voice defines the contracts between a synthesizer's sound, its
// voices and the polyphony allocator that routes notes to them.
package voice

import "github.com/justyntemme/overtone/pkg/dsp/envelope"

// Family identifies a kind of sound. A voice can play a sound only when it
// was built for the same family.
type Family string

// Sound is the description a voice is asked to play.
type Sound interface {
	// Family returns the capability id voices compare against
	Family() Family
	// Envelope returns the ADSR settings captured at note start
	Envelope() envelope.Parameters
}

// Voice is a single note renderer.
type Voice interface {
	// CanPlaySound reports whether the voice was built for the sound's family
	CanPlaySound(sound Sound) bool
	// StartNote begins a note. pitchWheel is the 14-bit wheel position.
	StartNote(note int, velocity float32, sound Sound, pitchWheel int)
	// StopNote releases the note, or cuts it when allowTailOff is false
	StopNote(velocity float32, allowTailOff bool)
	// PitchWheelMoved updates the wheel position for subsequent blocks
	PitchWheelMoved(value int)
	// ControllerMoved receives continuous controller changes
	ControllerMoved(controller, value int)
	// CurrentNote returns the note being played, if any
	CurrentNote() (int, bool)
	// RenderNextBlock adds numSamples of output into out starting at startSample
	RenderNextBlock(out []float32, startSample, numSamples int)
	// SetCurrentPlaybackSampleRate prepares the voice for a new sample rate
	SetCurrentPlaybackSampleRate(sampleRate float64)
}
