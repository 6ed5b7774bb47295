package oscillator

import (
	"math"
	"testing"
)

func TestTableLookup(t *testing.T) {
	table := NewTable(Sine, DefaultTableSize)

	tests := []struct {
		phase    float64
		expected float64
	}{
		{0, 0},
		{0.25, 1},
		{0.5, 0},
		{0.75, -1},
	}

	for _, tt := range tests {
		got := table.Lookup(tt.phase)
		if math.Abs(float64(got)-tt.expected) > 1e-4 {
			t.Errorf("Lookup(%f) = %f, want %f", tt.phase, got, tt.expected)
		}
	}
}

func TestTableWrapsAtEnd(t *testing.T) {
	table := NewTable(Saw, 8)
	got := table.Lookup(0.9999999)
	if math.IsNaN(float64(got)) || got < -1 || got > 1 {
		t.Errorf("Expected a bounded sample near the end of the cycle, got %f", got)
	}
}

func TestShapeByName(t *testing.T) {
	for _, name := range []string{"", "sine", "triangle", "saw", "square"} {
		if _, ok := ShapeByName(name); !ok {
			t.Errorf("Expected shape %q to resolve", name)
		}
	}
	if _, ok := ShapeByName("organ"); ok {
		t.Error("Expected unknown shape to fail")
	}
}

func TestOscillatorFrequency(t *testing.T) {
	sampleRate := 48000.0
	osc := New(NewTable(Sine, DefaultTableSize), sampleRate)
	osc.Prepare(sampleRate)
	osc.SetFrequency(1000, true)

	// Count rising zero crossings over one second
	buffer := make([]float32, int(sampleRate))
	osc.Process(buffer)

	crossings := 0
	for i := 1; i < len(buffer); i++ {
		if buffer[i-1] < 0 && buffer[i] >= 0 {
			crossings++
		}
	}

	if crossings < 998 || crossings > 1001 {
		t.Errorf("Expected ~1000 cycles, got %d", crossings)
	}
}

func TestOscillatorStartsAtZeroPhase(t *testing.T) {
	osc := New(NewTable(Sine, DefaultTableSize), 44100)
	osc.Prepare(44100)

	if first := osc.Next(); first != 0 {
		t.Errorf("Expected first sample to be 0, got %f", first)
	}
}

func TestOscillatorGain(t *testing.T) {
	osc := New(NewTable(Square, DefaultTableSize), 44100)
	osc.Prepare(44100)
	osc.SetFrequency(100, true)
	osc.SetGainLinear(0.25)

	buffer := make([]float32, 441)
	osc.Process(buffer)

	for i, s := range buffer {
		if math.Abs(float64(s)) > 0.25+1e-6 {
			t.Fatalf("Sample %d exceeds gain: %f", i, s)
		}
	}
}

func TestOscillatorGlide(t *testing.T) {
	sampleRate := 1000.0
	osc := New(NewTable(Sine, DefaultTableSize), sampleRate)
	osc.Prepare(sampleRate)
	osc.SetFrequency(100, true)
	osc.SetFrequency(200, false)

	if osc.Frequency() != 200 {
		t.Errorf("Expected target frequency 200, got %f", osc.Frequency())
	}
	if !osc.frequency.IsSmoothing() {
		t.Error("Expected non-forced change to glide")
	}

	buffer := make([]float32, int(FrequencyRampSeconds*sampleRate))
	osc.Process(buffer)

	if osc.frequency.IsSmoothing() {
		t.Error("Expected glide to finish after the ramp time")
	}

	osc.SetFrequency(300, true)
	if osc.frequency.IsSmoothing() {
		t.Error("Expected forced change to snap")
	}
}

func TestOscillatorProcessNoAllocations(t *testing.T) {
	osc := New(NewTable(Sine, DefaultTableSize), 44100)
	osc.Prepare(44100)
	buffer := make([]float32, 512)

	allocs := testing.AllocsPerRun(100, func() {
		osc.SetFrequency(440, false)
		osc.Process(buffer)
	})
	if allocs != 0 {
		t.Errorf("Expected 0 allocations, got %f", allocs)
	}
}
