// Package oscillator provides audio oscillators for synthesis
package oscillator

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/justyntemme/overtone/pkg/dsp/utility"
)

const (
	// DefaultTableSize is the number of points in a wavetable cycle.
	DefaultTableSize = 512

	// FrequencyRampSeconds is how long a non-forced frequency change glides.
	FrequencyRampSeconds = 0.05
)

// Shape maps a phase in [0, 2*pi) to a sample in [-1, 1].
type Shape func(phase float32) float32

// Sine is the default shape.
func Sine(phase float32) float32 {
	return math32.Sin(phase)
}

// Triangle generates a naive triangle cycle.
func Triangle(phase float32) float32 {
	p := phase / (2 * math32.Pi)
	if p < 0.5 {
		return 4*p - 1
	}
	return 3 - 4*p
}

// Saw generates a naive rising sawtooth cycle.
func Saw(phase float32) float32 {
	return phase/math32.Pi - 1
}

// Square generates a naive square cycle.
func Square(phase float32) float32 {
	if phase < math32.Pi {
		return 1
	}
	return -1
}

// ShapeByName resolves a waveform name. The second result is false for unknown names.
func ShapeByName(name string) (Shape, bool) {
	switch name {
	case "", "sine":
		return Sine, true
	case "triangle":
		return Triangle, true
	case "saw":
		return Saw, true
	case "square":
		return Square, true
	}
	return nil, false
}

// Table is one sampled cycle of a waveform, read with linear interpolation.
// It is immutable after construction and can be shared between oscillators.
type Table struct {
	samples []float32 // size+1 points, the last repeats the first
	size    int
}

// NewTable samples shape at size evenly spaced phases.
func NewTable(shape Shape, size int) *Table {
	if size < 2 {
		size = 2
	}
	t := &Table{
		samples: make([]float32, size+1),
		size:    size,
	}
	for i := 0; i < size; i++ {
		t.samples[i] = shape(2 * math32.Pi * float32(i) / float32(size))
	}
	t.samples[size] = t.samples[0]
	return t
}

// Size returns the number of points in one cycle.
func (t *Table) Size() int {
	return t.size
}

// Lookup returns the interpolated value at phase in [0, 1).
func (t *Table) Lookup(phase float64) float32 {
	pos := float32(phase) * float32(t.size)
	idx := int(pos)
	if idx >= t.size {
		idx = t.size - 1
	}
	frac := pos - float32(idx)
	return t.samples[idx] + (t.samples[idx+1]-t.samples[idx])*frac
}

// Oscillator is a wavetable generator with a gliding frequency and a linear
// output gain.
type Oscillator struct {
	table      *Table
	sampleRate float64
	phase      float64
	frequency  *utility.LinearSmoother
	gain       float32
}

// New creates a new oscillator
func New(table *Table, sampleRate float64) *Oscillator {
	o := &Oscillator{
		table:      table,
		sampleRate: sampleRate,
		frequency:  utility.NewLinearSmoother(sampleRate, FrequencyRampSeconds),
		gain:       1,
	}
	o.frequency.SetCurrentAndTarget(440.0)
	return o
}

// Prepare sets the sample rate and resets the generator state.
func (o *Oscillator) Prepare(sampleRate float64) {
	o.sampleRate = sampleRate
	o.frequency.Reset(sampleRate, FrequencyRampSeconds)
	o.Reset()
}

// Reset rewinds the phase and cancels any glide in progress.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.frequency.SetCurrentAndTarget(o.frequency.Target())
}

// SetFrequency sets the oscillator frequency. With force the change is
// immediate, otherwise the frequency glides over FrequencyRampSeconds.
func (o *Oscillator) SetFrequency(freq float64, force bool) {
	if force {
		o.frequency.SetCurrentAndTarget(freq)
		return
	}
	o.frequency.SetTarget(freq)
}

// Frequency returns the frequency the oscillator is heading to.
func (o *Oscillator) Frequency() float64 {
	return o.frequency.Target()
}

// SetGainLinear sets the output gain.
func (o *Oscillator) SetGainLinear(gain float32) {
	o.gain = gain
}

// Gain returns the output gain.
func (o *Oscillator) Gain() float32 {
	return o.gain
}

// Next generates one sample
func (o *Oscillator) Next() float32 {
	sample := o.table.Lookup(o.phase) * o.gain
	o.phase += o.frequency.Next() / o.sampleRate
	if o.phase >= 1.0 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}
	return sample
}

// Process overwrites buffer with generated samples - no allocations
func (o *Oscillator) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Next()
	}
}
