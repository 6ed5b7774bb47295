package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections of offline work,
// such as loading a MIDI file or rendering it to disk.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Average returns the average time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// NewProfiler creates an enabled profiler.
func NewProfiler() *Profiler {
	p := &Profiler{
		measurements: make(map[string]*Measurement),
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section. Call the returned function to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record adds one timing to a named section.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	if !p.enabled.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{Name: name, Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}
}

// Measurement returns a copy of the statistics for a named section.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	return *m, true
}

// Measurements returns copies of all measurements ordered by name.
func (p *Profiler) Measurements() []Measurement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]Measurement, 0, len(p.measurements))
	for _, m := range p.measurements {
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report.
func (p *Profiler) Report() string {
	measurements := p.Measurements()
	if len(measurements) == 0 {
		return "No measurements recorded"
	}

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	for _, m := range measurements {
		fmt.Fprintf(&sb, "  %-12s count=%d total=%v avg=%v min=%v max=%v\n",
			m.Name, m.Count, m.Total, m.Average(), m.Min, m.Max)
	}
	return sb.String()
}

// AudioProcessProfiler tracks how much of the real-time budget rendering
// consumes. Begin and End only touch atomics, so they can wrap each block on
// the audio goroutine while another goroutine reads the load.
type AudioProcessProfiler struct {
	sampleRate float64
	blocks     atomic.Uint64
	frames     atomic.Uint64
	busyNanos  atomic.Int64
	lastNanos  atomic.Int64
	maxNanos   atomic.Int64
}

// NewAudioProcessProfiler creates a profiler for audio rendered at sampleRate.
func NewAudioProcessProfiler(sampleRate float64) *AudioProcessProfiler {
	return &AudioProcessProfiler{sampleRate: sampleRate}
}

// Begin marks the start of a block.
func (a *AudioProcessProfiler) Begin() time.Time {
	return time.Now()
}

// End records a block of frames that started at start.
func (a *AudioProcessProfiler) End(start time.Time, frames int) {
	a.Record(time.Since(start), frames)
}

// Record adds a block of frames that took elapsed to render.
func (a *AudioProcessProfiler) Record(elapsed time.Duration, frames int) {
	ns := int64(elapsed)
	a.blocks.Add(1)
	a.frames.Add(uint64(frames))
	a.busyNanos.Add(ns)
	a.lastNanos.Store(ns)
	for {
		max := a.maxNanos.Load()
		if ns <= max || a.maxNanos.CompareAndSwap(max, ns) {
			break
		}
	}
}

// CPULoad returns render time as a percentage of the audio time rendered.
func (a *AudioProcessProfiler) CPULoad() float64 {
	frames := a.frames.Load()
	if frames == 0 || a.sampleRate <= 0 {
		return 0
	}
	audio := float64(frames) / a.sampleRate * float64(time.Second)
	return float64(a.busyNanos.Load()) / audio * 100
}

// Blocks returns the number of blocks recorded.
func (a *AudioProcessProfiler) Blocks() uint64 {
	return a.blocks.Load()
}

// MaxBlockTime returns the slowest block recorded.
func (a *AudioProcessProfiler) MaxBlockTime() time.Duration {
	return time.Duration(a.maxNanos.Load())
}

// Reset clears the counters.
func (a *AudioProcessProfiler) Reset() {
	a.blocks.Store(0)
	a.frames.Store(0)
	a.busyNanos.Store(0)
	a.lastNanos.Store(0)
	a.maxNanos.Store(0)
}

// AudioReport generates an audio-specific performance report.
func (a *AudioProcessProfiler) AudioReport() string {
	var sb strings.Builder
	sb.WriteString("Audio Processing Stats:\n")
	fmt.Fprintf(&sb, "  Sample Rate:  %.0f Hz\n", a.sampleRate)
	fmt.Fprintf(&sb, "  Blocks:       %d\n", a.Blocks())
	fmt.Fprintf(&sb, "  Last Block:   %v\n", time.Duration(a.lastNanos.Load()))
	fmt.Fprintf(&sb, "  Max Block:    %v\n", a.MaxBlockTime())
	fmt.Fprintf(&sb, "  CPU Load:     %.2f%%\n", a.CPULoad())
	return sb.String()
}
