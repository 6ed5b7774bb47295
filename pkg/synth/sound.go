package synth

import (
	"fmt"

	"github.com/justyntemme/overtone/pkg/dsp/envelope"
	"github.com/justyntemme/overtone/pkg/framework/param"
	"github.com/justyntemme/overtone/pkg/framework/voice"
)

// HarmonicFamily is the capability id shared by Sound and Voice.
const HarmonicFamily voice.Family = "overtone.harmonic"

// Sound supplies the envelope settings each new note starts with.
type Sound struct {
	attack  *param.Parameter
	decay   *param.Parameter
	sustain *param.Parameter
	release *param.Parameter
}

// NewSound resolves the ADSR parameters from reg.
func NewSound(reg *param.Registry) (*Sound, error) {
	s := &Sound{}

	handles := []struct {
		id  string
		dst **param.Parameter
	}{
		{ParamAttack, &s.attack},
		{ParamDecay, &s.decay},
		{ParamSustain, &s.sustain},
		{ParamRelease, &s.release},
	}
	for _, h := range handles {
		p, err := reg.Float(h.id)
		if err != nil {
			return nil, fmt.Errorf("new sound: %w", err)
		}
		*h.dst = p
	}

	return s, nil
}

// Family implements voice.Sound.
func (s *Sound) Family() voice.Family {
	return HarmonicFamily
}

// Envelope returns the current ADSR settings.
func (s *Sound) Envelope() envelope.Parameters {
	return envelope.Parameters{
		Attack:  s.attack.Value32(),
		Decay:   s.decay.Value32(),
		Sustain: s.sustain.Value32(),
		Release: s.release.Value32(),
	}
}
