package envelope

import (
	"math"
	"testing"
)

func newTestEnvelope(sampleRate float64, p Parameters) *ADSR {
	env := New(sampleRate)
	env.SetParameters(p)
	return env
}

// runUntilStageChanges advances the envelope until it leaves its current
// stage and returns the number of samples that took.
func runUntilStageChanges(env *ADSR, limit int) int {
	stage := env.Stage()
	for n := 1; n <= limit; n++ {
		env.Next()
		if env.Stage() != stage {
			return n
		}
	}
	return limit
}

func TestADSRInactiveBeforeNoteOn(t *testing.T) {
	env := New(44100)
	if env.IsActive() {
		t.Error("Expected envelope to be inactive before NoteOn")
	}
	if v := env.Next(); v != 0 {
		t.Errorf("Expected idle envelope to output 0, got %f", v)
	}
}

func TestADSRStages(t *testing.T) {
	sampleRate := 1000.0
	env := newTestEnvelope(sampleRate, Parameters{Attack: 0.01, Decay: 0.01, Sustain: 0.5, Release: 0.01})

	env.NoteOn()
	if !env.IsActive() {
		t.Fatal("Expected envelope to be active after NoteOn")
	}
	if env.Stage() != StageAttack {
		t.Errorf("Expected attack stage, got %v", env.Stage())
	}

	// ~10 samples of attack reach 1.0
	if n := runUntilStageChanges(env, 100); n < 9 || n > 11 {
		t.Errorf("Expected attack to last ~10 samples, took %d", n)
	}
	if env.Stage() != StageDecay {
		t.Errorf("Expected decay stage after attack time, got %v", env.Stage())
	}
	if math.Abs(float64(env.Value()-1)) > 1e-5 {
		t.Errorf("Expected peak of 1.0, got %f", env.Value())
	}

	if n := runUntilStageChanges(env, 100); n < 9 || n > 11 {
		t.Errorf("Expected decay to last ~10 samples, took %d", n)
	}
	if env.Stage() != StageSustain {
		t.Errorf("Expected sustain stage after decay time, got %v", env.Stage())
	}
	if v := env.Next(); v != 0.5 {
		t.Errorf("Expected sustain level 0.5, got %f", v)
	}

	env.NoteOff(true)
	if env.Stage() != StageRelease {
		t.Errorf("Expected release stage, got %v", env.Stage())
	}

	for i := 0; i < 11 && env.IsActive(); i++ {
		env.Next()
	}
	if env.IsActive() {
		t.Error("Expected envelope to finish release")
	}
}

func TestADSRNoteOffWithoutTail(t *testing.T) {
	env := newTestEnvelope(44100, DefaultParameters())
	env.NoteOn()
	for i := 0; i < 100; i++ {
		env.Next()
	}

	env.NoteOff(false)
	if env.IsActive() {
		t.Error("Expected envelope to be idle immediately after NoteOff(false)")
	}
	if env.Value() != 0 {
		t.Errorf("Expected value 0 after hard stop, got %f", env.Value())
	}
}

func TestADSRReleaseDuration(t *testing.T) {
	sampleRate := 48000.0
	release := float32(0.1)
	env := newTestEnvelope(sampleRate, Parameters{Attack: 0.001, Decay: 0.001, Sustain: 1, Release: release})

	env.NoteOn()
	for env.Stage() != StageSustain {
		env.Next()
	}

	env.NoteOff(true)
	samples := 0
	var last float32
	for env.IsActive() {
		last = env.Next()
		samples++
		if samples > int(sampleRate) {
			t.Fatal("Release did not finish within one second")
		}
	}

	expected := int(float64(release) * sampleRate)
	if samples < expected-5 || samples > expected+5 {
		t.Errorf("Expected release to last ~%d samples, got %d", expected, samples)
	}
	if last > 1e-3 {
		t.Errorf("Expected final release value near 0, got %f", last)
	}
}

func TestADSRRetriggerIsContinuous(t *testing.T) {
	env := newTestEnvelope(1000, Parameters{Attack: 0.1, Decay: 0.1, Sustain: 0.8, Release: 0.1})
	env.NoteOn()
	for i := 0; i < 50; i++ {
		env.Next()
	}
	env.NoteOff(true)
	for i := 0; i < 10; i++ {
		env.Next()
	}

	before := env.Value()
	env.NoteOn()
	after := env.Next()

	if after < before || after-before > 0.011 {
		t.Errorf("Expected retrigger to continue from %f, got %f", before, after)
	}
}

func TestADSRSustainOneSkipsDecay(t *testing.T) {
	env := newTestEnvelope(1000, Parameters{Attack: 0.005, Decay: 0.1, Sustain: 1, Release: 0.1})
	env.NoteOn()
	for i := 0; i < 5; i++ {
		env.Next()
	}
	if env.Stage() != StageSustain {
		t.Errorf("Expected sustain right after attack when sustain is 1, got %v", env.Stage())
	}
}

func TestADSRZeroAttack(t *testing.T) {
	env := newTestEnvelope(1000, Parameters{Attack: 0, Decay: 0.01, Sustain: 0.5, Release: 0.01})
	env.NoteOn()
	if env.Stage() != StageDecay {
		t.Errorf("Expected zero attack to start in decay, got %v", env.Stage())
	}
	if env.Value() != 1 {
		t.Errorf("Expected value 1 at decay start, got %f", env.Value())
	}
}

func TestADSRNoteOffWhenIdle(t *testing.T) {
	env := New(44100)
	env.NoteOff(true)
	if env.IsActive() {
		t.Error("Expected NoteOff on idle envelope to stay idle")
	}
}

func TestADSRProcessMultiply(t *testing.T) {
	env := newTestEnvelope(1000, Parameters{Attack: 0.004, Decay: 0.1, Sustain: 1, Release: 0.1})
	env.NoteOn()

	buffer := []float32{1, 1, 1, 1, 1}
	env.ProcessMultiply(buffer)

	expected := []float32{0.25, 0.5, 0.75, 1, 1}
	for i := range expected {
		if math.Abs(float64(buffer[i]-expected[i])) > 1e-5 {
			t.Errorf("Sample %d: expected %f, got %f", i, expected[i], buffer[i])
		}
	}
}

func TestStageString(t *testing.T) {
	if StageRelease.String() != "release" {
		t.Errorf("Expected 'release', got %q", StageRelease.String())
	}
}
