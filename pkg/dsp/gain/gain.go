// Package gain converts between linear amplitude and decibels and reports
// rendered output levels.
package gain

import (
	"fmt"
	"math"

	"github.com/justyntemme/overtone/pkg/dsp"
)

// MinDB is the level reported for silence (effectively -infinity).
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// Level summarizes a buffer relative to full scale.
type Level struct {
	PeakDb  float64
	RMSDb   float64
	Clipped bool // some sample exceeded full scale
}

// Measure computes the peak and RMS level of buffer.
func Measure(buffer []float32) Level {
	peak := float64(dsp.Peak(buffer))
	return Level{
		PeakDb:  LinearToDb(peak),
		RMSDb:   LinearToDb(float64(dsp.RMS(buffer))),
		Clipped: peak > 1,
	}
}

func (l Level) String() string {
	return fmt.Sprintf("peak %.1f dBFS, RMS %.1f dBFS", l.PeakDb, l.RMSDb)
}
