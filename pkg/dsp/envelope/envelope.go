// Package envelope provides envelope generators for audio synthesis
package envelope

// Stage represents the current envelope stage
type Stage int

const (
	// StageIdle represents envelope idle state
	StageIdle Stage = iota
	// StageAttack represents envelope attack phase
	StageAttack
	// StageDecay represents envelope decay phase
	StageDecay
	// StageSustain represents envelope sustain phase
	StageSustain
	// StageRelease represents envelope release phase
	StageRelease
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Parameters holds the envelope shape. Attack, Decay and Release are in
// seconds, Sustain is a level in [0, 1].
type Parameters struct {
	Attack  float32
	Decay   float32
	Sustain float32
	Release float32
}

// DefaultParameters matches the default values of the synth's ADSR parameters.
func DefaultParameters() Parameters {
	return Parameters{Attack: 0.1, Decay: 0.1, Sustain: 1.0, Release: 0.1}
}

// ADSR implements an Attack-Decay-Sustain-Release envelope generator with
// linear segments. Parameters are captured when set and stay fixed until the
// next SetParameters call, so a note keeps the shape it was started with.
type ADSR struct {
	sampleRate float64
	params     Parameters

	// Per-sample increments, negative when the segment has zero length
	attackRate  float32
	decayRate   float32
	releaseRate float32

	// State
	stage Stage
	value float32
}

// New creates a new ADSR envelope
func New(sampleRate float64) *ADSR {
	env := &ADSR{
		sampleRate: sampleRate,
		params:     DefaultParameters(),
		stage:      StageIdle,
	}
	env.recalculateRates()
	return env
}

// SetSampleRate changes the rate the segment times are measured against.
func (e *ADSR) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
	e.recalculateRates()
}

// SampleRate returns the current sample rate.
func (e *ADSR) SampleRate() float64 {
	return e.sampleRate
}

// SetParameters sets all parameters at once. Sustain is clamped to [0, 1].
func (e *ADSR) SetParameters(p Parameters) {
	if p.Sustain < 0 {
		p.Sustain = 0
	} else if p.Sustain > 1 {
		p.Sustain = 1
	}
	e.params = p
	e.recalculateRates()
}

// Parameters returns the captured parameters.
func (e *ADSR) Parameters() Parameters {
	return e.params
}

// rate returns the per-sample step that covers distance in seconds.
func rate(distance, seconds float32, sampleRate float64) float32 {
	if seconds <= 0 || sampleRate <= 0 {
		return -1
	}
	return distance / (seconds * float32(sampleRate))
}

func (e *ADSR) recalculateRates() {
	e.attackRate = rate(1, e.params.Attack, e.sampleRate)
	e.decayRate = rate(1-e.params.Sustain, e.params.Decay, e.sampleRate)
	e.releaseRate = rate(e.params.Sustain, e.params.Release, e.sampleRate)

	if (e.stage == StageAttack && e.attackRate <= 0) ||
		(e.stage == StageDecay && (e.decayRate <= 0 || e.value <= e.params.Sustain)) ||
		(e.stage == StageRelease && e.releaseRate <= 0) {
		e.advanceStage()
	}
}

// NoteOn starts the attack from the current value, so retriggering an active
// envelope does not jump.
func (e *ADSR) NoteOn() {
	switch {
	case e.attackRate > 0:
		e.stage = StageAttack
	case e.decayRate > 0:
		e.value = 1
		e.stage = StageDecay
	default:
		e.value = e.params.Sustain
		e.stage = StageSustain
	}
}

// NoteOff ends the note. With allowTailOff the release segment starts from
// the current value, otherwise the envelope is reset to idle immediately.
func (e *ADSR) NoteOff(allowTailOff bool) {
	if e.stage == StageIdle {
		return
	}
	if !allowTailOff {
		e.Reset()
		return
	}

	if e.params.Release > 0 {
		e.releaseRate = e.value / (e.params.Release * float32(e.sampleRate))
		e.stage = StageRelease
		return
	}
	e.Reset()
}

// Reset immediately returns the envelope to idle
func (e *ADSR) Reset() {
	e.stage = StageIdle
	e.value = 0
}

// IsActive returns true if the envelope is generating output
func (e *ADSR) IsActive() bool {
	return e.stage != StageIdle
}

// Stage returns the current envelope stage
func (e *ADSR) Stage() Stage {
	return e.stage
}

// Value returns the most recent envelope value.
func (e *ADSR) Value() float32 {
	return e.value
}

func (e *ADSR) advanceStage() {
	switch e.stage {
	case StageAttack:
		if e.decayRate > 0 {
			e.stage = StageDecay
		} else {
			e.value = e.params.Sustain
			e.stage = StageSustain
		}
	case StageDecay:
		e.value = e.params.Sustain
		e.stage = StageSustain
	case StageRelease:
		e.Reset()
	}
}

// Next generates the next envelope value
func (e *ADSR) Next() float32 {
	switch e.stage {
	case StageIdle:
		return 0

	case StageAttack:
		e.value += e.attackRate
		if e.value >= 1 {
			e.value = 1
			e.advanceStage()
		}

	case StageDecay:
		e.value -= e.decayRate
		if e.value <= e.params.Sustain {
			e.value = e.params.Sustain
			e.advanceStage()
		}

	case StageSustain:
		e.value = e.params.Sustain

	case StageRelease:
		e.value -= e.releaseRate
		if e.value <= 0 {
			e.advanceStage()
		}
	}

	return e.value
}

// Process fills buffer with envelope values - no allocations
func (e *ADSR) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = e.Next()
	}
}

// ProcessMultiply multiplies buffer by envelope - no allocations
func (e *ADSR) ProcessMultiply(buffer []float32) {
	for i := range buffer {
		buffer[i] *= e.Next()
	}
}
