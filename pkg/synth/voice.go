package synth

import (
	"fmt"

	"github.com/justyntemme/overtone/pkg/dsp"
	"github.com/justyntemme/overtone/pkg/dsp/envelope"
	"github.com/justyntemme/overtone/pkg/dsp/oscillator"
	"github.com/justyntemme/overtone/pkg/framework/param"
	"github.com/justyntemme/overtone/pkg/framework/voice"
)

const noNote = -1

// Voice renders one note as a sum of harmonics shaped by an ADSR envelope
// and the output gain. All buffers are allocated up front; RenderNextBlock
// never allocates.
type Voice struct {
	cfg         Config
	oscillators []*OscillatorUnit
	envelope    *envelope.ADSR
	gain        *param.Parameter

	currentNote int
	pitchWheel  float64 // fraction in [-1, 1)
	lastGain    float32
	sampleRate  float64

	oscBuffer []float32
	mixBuffer []float32
}

var _ voice.Voice = (*Voice)(nil)

// NewVoice builds a voice with cfg.BankSize oscillators whose parameters are
// resolved from reg.
func NewVoice(reg *param.Registry, cfg Config) (*Voice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shape, _ := oscillator.ShapeByName(cfg.Waveform)
	return newVoice(reg, cfg, oscillator.NewTable(shape, oscillator.DefaultTableSize))
}

func newVoice(reg *param.Registry, cfg Config, table *oscillator.Table) (*Voice, error) {
	gain, err := reg.Float(ParamGain)
	if err != nil {
		return nil, fmt.Errorf("new voice: %w", err)
	}

	v := &Voice{
		cfg:         cfg,
		oscillators: make([]*OscillatorUnit, cfg.BankSize),
		envelope:    envelope.New(cfg.SampleRate),
		gain:        gain,
		currentNote: noNote,
		sampleRate:  cfg.SampleRate,
		oscBuffer:   make([]float32, cfg.ChunkSize),
		mixBuffer:   make([]float32, cfg.ChunkSize),
	}

	for i := range v.oscillators {
		unit, err := newOscillatorUnit(i, reg, table, cfg.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("new voice: %w", err)
		}
		v.oscillators[i] = unit
	}

	return v, nil
}

// CanPlaySound implements voice.Voice.
func (v *Voice) CanPlaySound(sound voice.Sound) bool {
	return sound != nil && sound.Family() == HarmonicFamily
}

// StartNote implements voice.Voice. Velocity does not affect the output.
func (v *Voice) StartNote(note int, velocity float32, sound voice.Sound, pitchWheel int) {
	v.currentNote = note
	v.pitchWheel = PitchWheelFraction(pitchWheel)
	v.envelope.SetParameters(sound.Envelope())
	v.envelope.NoteOn()

	for _, u := range v.oscillators {
		v.updateFrequency(u, true)
	}
}

// StopNote implements voice.Voice.
func (v *Voice) StopNote(velocity float32, allowTailOff bool) {
	v.envelope.NoteOff(allowTailOff)
	if !allowTailOff || !v.envelope.IsActive() {
		v.currentNote = noNote
	}
}

// PitchWheelMoved implements voice.Voice. Frequencies follow at the next
// chunk.
func (v *Voice) PitchWheelMoved(value int) {
	v.pitchWheel = PitchWheelFraction(value)
}

// ControllerMoved implements voice.Voice. The voice has no controller
// mappings.
func (v *Voice) ControllerMoved(controller, value int) {}

// CurrentNote implements voice.Voice.
func (v *Voice) CurrentNote() (int, bool) {
	return v.currentNote, v.currentNote != noNote
}

// IsActive reports whether the envelope is producing output.
func (v *Voice) IsActive() bool {
	return v.envelope.IsActive()
}

// SampleRate returns the playback sample rate.
func (v *Voice) SampleRate() float64 {
	return v.sampleRate
}

// Oscillators returns the voice's oscillator bank in harmonic order.
func (v *Voice) Oscillators() []*OscillatorUnit {
	return v.oscillators
}

// SetCurrentPlaybackSampleRate implements voice.Voice. Generator state is
// reset.
func (v *Voice) SetCurrentPlaybackSampleRate(sampleRate float64) {
	v.sampleRate = sampleRate
	v.envelope.SetSampleRate(sampleRate)
	for _, u := range v.oscillators {
		u.osc.Prepare(sampleRate)
	}
}

// RenderNextBlock implements voice.Voice. Output is added into
// out[startSample:startSample+numSamples]; an idle voice leaves out
// untouched.
func (v *Voice) RenderNextBlock(out []float32, startSample, numSamples int) {
	if !v.envelope.IsActive() {
		return
	}

	for numSamples > 0 {
		n := numSamples
		if n > len(v.mixBuffer) {
			n = len(v.mixBuffer)
		}

		mix := v.mixBuffer[:n]
		dsp.Clear(mix)

		for _, u := range v.oscillators {
			g := u.gain.Value32()
			if g < AudibilityThreshold {
				continue
			}

			v.updateFrequency(u, false)
			u.osc.SetGainLinear(g)
			scratch := v.oscBuffer[:n]
			u.osc.Process(scratch)
			dsp.Add(mix, scratch)
		}

		v.envelope.ProcessMultiply(mix)

		target := v.gain.Value32()
		dsp.AddWithRamp(out[startSample:startSample+n], mix, v.lastGain, target)
		v.lastGain = target

		startSample += n
		numSamples -= n

		if !v.envelope.IsActive() {
			v.currentNote = noNote
			return
		}
	}
}

func (v *Voice) updateFrequency(u *OscillatorUnit, force bool) {
	detune := v.pitchWheel*v.cfg.MaxPitchWheelSemitones + u.detune.Value()
	freq := Frequency(v.currentNote, detune, v.cfg.ConcertPitch, float64(u.harmonic))
	u.osc.SetFrequency(freq, force)
}
