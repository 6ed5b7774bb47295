// Package dsp provides the buffer primitives shared by the voice renderer.
// None of the functions here allocate; they are safe to call from the audio goroutine.
package dsp

import "github.com/chewxy/math32"

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Add adds source to destination - no allocations
func Add(dst, src []float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// AddWithRamp adds src into dst while the gain moves linearly from startGain
// towards endGain. Sample k is scaled by startGain + (endGain-startGain)*k/n,
// so the last sample approaches endGain without reaching it and the next call
// can continue from endGain without a discontinuity.
func AddWithRamp(dst, src []float32, startGain, endGain float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	if n == 0 {
		return
	}

	if startGain == endGain {
		for i := 0; i < n; i++ {
			dst[i] += src[i] * startGain
		}
		return
	}

	step := (endGain - startGain) / float32(n)
	for i := 0; i < n; i++ {
		dst[i] += src[i] * (startGain + step*float32(i))
	}
}

// Peak finds the maximum absolute value in a buffer
func Peak(buffer []float32) float32 {
	peak := float32(0)
	for _, sample := range buffer {
		if abs := math32.Abs(sample); abs > peak {
			peak = abs
		}
	}
	return peak
}

// RMS calculates the root mean square of a buffer
func RMS(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}

	var sum float64
	for _, sample := range buffer {
		sum += float64(sample) * float64(sample)
	}

	return math32.Sqrt(float32(sum / float64(len(buffer))))
}
