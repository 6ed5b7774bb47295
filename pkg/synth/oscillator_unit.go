package synth

import (
	"fmt"

	"github.com/justyntemme/overtone/pkg/dsp/oscillator"
	"github.com/justyntemme/overtone/pkg/framework/param"
)

// OscillatorUnit is one partial of a voice: a generator at a fixed harmonic
// of the note, with live gain and detune parameters.
type OscillatorUnit struct {
	harmonic int
	gain     *param.Parameter
	detune   *param.Parameter
	osc      *oscillator.Oscillator
}

func newOscillatorUnit(index int, reg *param.Registry, table *oscillator.Table, sampleRate float64) (*OscillatorUnit, error) {
	gain, err := reg.Float(OscillatorGainID(index))
	if err != nil {
		return nil, fmt.Errorf("oscillator %d: %w", index, err)
	}
	detune, err := reg.Float(OscillatorDetuneID(index))
	if err != nil {
		return nil, fmt.Errorf("oscillator %d: %w", index, err)
	}

	return &OscillatorUnit{
		harmonic: index + 1,
		gain:     gain,
		detune:   detune,
		osc:      oscillator.New(table, sampleRate),
	}, nil
}

// Harmonic returns the unit's frequency multiplier, index+1.
func (u *OscillatorUnit) Harmonic() int {
	return u.harmonic
}

// Frequency returns the frequency the generator is heading to.
func (u *OscillatorUnit) Frequency() float64 {
	return u.osc.Frequency()
}
