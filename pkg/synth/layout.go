package synth

import (
	"fmt"

	"github.com/justyntemme/overtone/pkg/framework/param"
)

// Parameter IDs
const (
	ParamAttack  = "attack"
	ParamDecay   = "decay"
	ParamSustain = "sustain"
	ParamRelease = "release"
	ParamGain    = "gain"
)

// Parameter groups
const (
	GroupADSR        = "adsr"
	GroupOscillators = "oscillators"
	GroupOutput      = "output"
)

// OscillatorGainID returns the ID of oscillator i's gain parameter.
func OscillatorGainID(i int) string {
	return fmt.Sprintf("osc%d", i)
}

// OscillatorDetuneID returns the ID of oscillator i's detune parameter.
func OscillatorDetuneID(i int) string {
	return fmt.Sprintf("detune%d", i)
}

func segment(id, name string, def float64) *param.Parameter {
	return param.New(id, name).
		Group(GroupADSR).
		Range(0.001, 0.5).
		Default(def).
		Unit("s").
		Formatter(param.SecondsFormatter, param.SecondsParser).
		Build()
}

// AddADSRParameters registers attack, decay, sustain and release.
func AddADSRParameters(reg *param.Registry) error {
	return reg.Add(
		segment(ParamAttack, "Attack", 0.10),
		segment(ParamDecay, "Decay", 0.10),
		param.New(ParamSustain, "Sustain").
			Group(GroupADSR).
			Range(0, 1).
			Default(1.0).
			Unit("%").
			Formatter(param.PercentFormatter, param.PercentParser).
			Build(),
		segment(ParamRelease, "Release", 0.10),
	)
}

// AddOscillatorParameters registers a gain and a detune parameter for each of
// bankSize oscillators. Only the fundamental is audible by default.
func AddOscillatorParameters(reg *param.Registry, bankSize int) error {
	for i := 0; i < bankSize; i++ {
		def := 0.0
		if i == 0 {
			def = 1.0
		}

		err := reg.Add(
			param.New(OscillatorGainID(i), fmt.Sprintf("Oscillator %d", i)).
				Group(GroupOscillators).
				Range(0, 1).
				Default(def).
				Formatter(param.PercentFormatter, param.PercentParser).
				Build(),
			param.New(OscillatorDetuneID(i), fmt.Sprintf("Detune %d", i)).
				Group(GroupOscillators).
				Range(-0.5, 0.5).
				Default(0).
				Unit("st").
				Formatter(param.SemitoneFormatter, param.SemitoneParser).
				Build(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// AddGainParameters registers the output gain.
func AddGainParameters(reg *param.Registry) error {
	return reg.Add(
		param.New(ParamGain, "Gain").
			Group(GroupOutput).
			Range(0, 1).
			Default(0.70).
			Formatter(param.PercentFormatter, param.PercentParser).
			Build(),
	)
}

// NewRegistry returns a registry holding every parameter a synth with
// bankSize oscillators reads.
func NewRegistry(bankSize int) (*param.Registry, error) {
	reg := param.NewRegistry()

	if err := AddADSRParameters(reg); err != nil {
		return nil, fmt.Errorf("adsr parameters: %w", err)
	}
	if err := AddOscillatorParameters(reg, bankSize); err != nil {
		return nil, fmt.Errorf("oscillator parameters: %w", err)
	}
	if err := AddGainParameters(reg); err != nil {
		return nil, fmt.Errorf("gain parameters: %w", err)
	}

	return reg, nil
}
