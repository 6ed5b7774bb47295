package synth

import (
	"errors"
	"testing"

	"github.com/justyntemme/overtone/pkg/dsp/envelope"
	"github.com/justyntemme/overtone/pkg/framework/param"
	"github.com/justyntemme/overtone/pkg/framework/voice"
)

func TestSoundEnvelopeFollowsParameters(t *testing.T) {
	reg, err := NewRegistry(1)
	if err != nil {
		t.Fatal(err)
	}

	sound, err := NewSound(reg)
	if err != nil {
		t.Fatalf("NewSound failed: %v", err)
	}

	if sound.Family() != HarmonicFamily {
		t.Errorf("Expected family %q, got %q", HarmonicFamily, sound.Family())
	}

	reg.Set(ParamAttack, 0.25)
	reg.Set(ParamSustain, 0.5)

	got := sound.Envelope()
	expected := envelope.Parameters{Attack: 0.25, Decay: 0.1, Sustain: 0.5, Release: 0.1}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestNewSoundMissingParameter(t *testing.T) {
	reg := param.NewRegistry()
	if err := AddGainParameters(reg); err != nil {
		t.Fatal(err)
	}

	_, err := NewSound(reg)
	if !errors.Is(err, param.ErrParameterNotFound) {
		t.Fatalf("Expected ErrParameterNotFound, got %v", err)
	}

	var resolveErr *param.ResolveError
	if !errors.As(err, &resolveErr) || resolveErr.ID != ParamAttack {
		t.Errorf("Expected resolve error for %q, got %v", ParamAttack, err)
	}
}

func TestNewSoundWrongType(t *testing.T) {
	reg := param.NewRegistry()
	reg.Add(param.New(ParamAttack, "Attack").Toggle().Build())

	_, err := NewSound(reg)
	if !errors.Is(err, param.ErrParameterType) {
		t.Errorf("Expected ErrParameterType, got %v", err)
	}
}

type otherSound struct{}

func (otherSound) Family() voice.Family          { return "other" }
func (otherSound) Envelope() envelope.Parameters { return envelope.DefaultParameters() }

func TestCanPlaySound(t *testing.T) {
	v, _, sound := newTestVoice(t, testConfig())

	if !v.CanPlaySound(sound) {
		t.Error("Expected voice to play its own family")
	}
	if v.CanPlaySound(otherSound{}) {
		t.Error("Expected voice to reject another family")
	}
	if v.CanPlaySound(nil) {
		t.Error("Expected voice to reject a nil sound")
	}
}
