package utility

import "math"

// LinearSmoother glides a value towards a target in a fixed number of
// samples. Retargeting mid-ramp restarts the ramp from the current value.
type LinearSmoother struct {
	current   float64
	target    float64
	step      float64
	countdown int
	rampLen   int
}

// NewLinearSmoother creates a smoother with a ramp of rampSeconds at sampleRate.
func NewLinearSmoother(sampleRate, rampSeconds float64) *LinearSmoother {
	s := &LinearSmoother{}
	s.Reset(sampleRate, rampSeconds)
	return s
}

// Reset sets the ramp length and snaps to the current target.
func (s *LinearSmoother) Reset(sampleRate, rampSeconds float64) {
	s.rampLen = int(math.Floor(rampSeconds * sampleRate))
	s.SetCurrentAndTarget(s.target)
}

// SetCurrentAndTarget jumps to value without gliding.
func (s *LinearSmoother) SetCurrentAndTarget(value float64) {
	s.current = value
	s.target = value
	s.step = 0
	s.countdown = 0
}

// SetTarget starts a glide towards target. Setting the same target again is a no-op.
func (s *LinearSmoother) SetTarget(target float64) {
	if target == s.target {
		return
	}
	if s.rampLen <= 0 {
		s.SetCurrentAndTarget(target)
		return
	}

	s.target = target
	s.countdown = s.rampLen
	s.step = (s.target - s.current) / float64(s.countdown)
}

// Next advances one sample and returns the new value.
func (s *LinearSmoother) Next() float64 {
	if s.countdown <= 0 {
		return s.target
	}

	s.countdown--
	if s.countdown > 0 {
		s.current += s.step
	} else {
		s.current = s.target
	}
	return s.current
}

// IsSmoothing reports whether a glide is in progress.
func (s *LinearSmoother) IsSmoothing() bool {
	return s.countdown > 0
}

// Current returns the value without advancing.
func (s *LinearSmoother) Current() float64 {
	return s.current
}

// Target returns the value being glided to.
func (s *LinearSmoother) Target() float64 {
	return s.target
}
