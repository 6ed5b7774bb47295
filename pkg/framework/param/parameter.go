// Package param provides lock-free parameters shared between a control
// goroutine and the audio goroutine.
//
// A Parameter holds its plain value in a single atomic word: writers (UI,
// automation, preset reload) store whole values and the audio goroutine loads
// whole values, so a reader never observes a partially written float. Reads of
// different parameters are independent snapshots.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Kind is the value type of a parameter.
type Kind int

const (
	// KindFloat is a continuous value in [Min, Max]
	KindFloat Kind = iota
	// KindToggle is an on/off value stored as 0 or 1
	KindToggle
	// KindChoice is an index into a fixed list of options
	KindChoice
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindToggle:
		return "toggle"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Parameter represents a named synth parameter
type Parameter struct {
	ID           string
	Name         string
	Group        string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // plain
	StepCount    int32
	Kind         Kind

	// Plain value bits for lock-free access in the audio goroutine
	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Value returns the current plain value with a single atomic load.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// Value32 is Value converted for float32 sample math.
func (p *Parameter) Value32() float32 {
	return float32(p.Value())
}

// Set stores a plain value, clamped to [Min, Max].
func (p *Parameter) Set(value float64) {
	p.value.Store(math.Float64bits(p.clamp(value)))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.Set(p.DefaultValue)
}

// NormalizedValue returns the current value mapped to 0-1.
func (p *Parameter) NormalizedValue() float64 {
	return p.Normalize(p.Value())
}

// SetNormalized sets the value from a 0-1 position in the range.
func (p *Parameter) SetNormalized(normalized float64) {
	p.Set(p.Denormalize(normalized))
}

func (p *Parameter) clamp(value float64) float64 {
	if math.IsNaN(value) {
		return p.DefaultValue
	}
	if value < p.Min {
		value = p.Min
	} else if value > p.Max {
		value = p.Max
	}
	if p.StepCount > 0 && p.Max > p.Min {
		stepSize := (p.Max - p.Min) / float64(p.StepCount)
		value = p.Min + math.Round((value-p.Min)/stepSize)*stepSize
	}
	return value
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + normalized*(p.Max-p.Min)
}

// Format returns the current value as display text.
func (p *Parameter) Format() string {
	return p.FormatValue(p.Value())
}

// FormatValue returns a plain value as display text.
func (p *Parameter) FormatValue(plain float64) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses display text to a plain value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		return p.parseFunc(str)
	}
	return strconv.ParseFloat(str, 64)
}
