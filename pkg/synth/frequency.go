package synth

import "math"

// AudibilityThreshold is the oscillator gain below which an oscillator is
// skipped for a chunk.
const AudibilityThreshold = 0.01

// Frequency returns the frequency in Hz of note shifted by detuneSemitones
// and scaled by multiplier. Note 69 at zero detune is concertPitch.
func Frequency(note int, detuneSemitones, concertPitch, multiplier float64) float64 {
	return concertPitch * math.Pow(2, (float64(note)+detuneSemitones-69)/12) * multiplier
}

// PitchWheelFraction maps a 14-bit wheel position to [-1, 1). 8192 is 0.
func PitchWheelFraction(value int) float64 {
	return float64(value)/8192 - 1
}
