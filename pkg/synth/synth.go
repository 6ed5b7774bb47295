// Package synth implements an additive synthesizer: a pool of voices, each a
// bank of harmonically tuned oscillators shaped by an ADSR envelope, driven
// by MIDI events and live parameters.
package synth

import (
	"fmt"

	"github.com/justyntemme/overtone/pkg/dsp"
	"github.com/justyntemme/overtone/pkg/dsp/oscillator"
	"github.com/justyntemme/overtone/pkg/framework/debug"
	"github.com/justyntemme/overtone/pkg/framework/param"
	"github.com/justyntemme/overtone/pkg/framework/voice"
	"github.com/justyntemme/overtone/pkg/midi"
)

// Synth owns the sound, the voices and the allocator that routes events to
// them. All methods except Registry and Config must be called from a single
// goroutine, normally the audio one.
type Synth struct {
	cfg       Config
	registry  *param.Registry
	sound     *Sound
	voices    []*Voice
	allocator *voice.Allocator
	log       *debug.Logger
}

// New builds a synth with cfg.Polyphony voices reading parameters from reg.
func New(cfg Config, reg *param.Registry) (*Synth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sound, err := NewSound(reg)
	if err != nil {
		return nil, fmt.Errorf("new synth: %w", err)
	}

	shape, _ := oscillator.ShapeByName(cfg.Waveform)
	table := oscillator.NewTable(shape, oscillator.DefaultTableSize)

	voices := make([]*Voice, cfg.Polyphony)
	pool := make([]voice.Voice, cfg.Polyphony)
	for i := range voices {
		v, err := newVoice(reg, cfg, table)
		if err != nil {
			return nil, fmt.Errorf("new synth: %w", err)
		}
		voices[i] = v
		pool[i] = v
	}

	allocator := voice.NewAllocator(pool, sound)
	mode, _ := voice.ParseStealingMode(cfg.Stealing)
	allocator.SetStealingMode(mode)

	s := &Synth{
		cfg:       cfg,
		registry:  reg,
		sound:     sound,
		voices:    voices,
		allocator: allocator,
		log:       debug.Default().Named("synth"),
	}
	s.log.Debug("%d voices, %d oscillators each, %s wave at %.0f Hz",
		cfg.Polyphony, cfg.BankSize, cfg.Waveform, cfg.SampleRate)

	return s, nil
}

// SetLogger replaces the synth's logger.
func (s *Synth) SetLogger(log *debug.Logger) {
	s.log = log
}

// Config returns the construction settings with the current sample rate.
func (s *Synth) Config() Config {
	return s.cfg
}

// Registry returns the parameters the synth reads.
func (s *Synth) Registry() *param.Registry {
	return s.registry
}

// Voices returns the voice pool.
func (s *Synth) Voices() []*Voice {
	return s.voices
}

// SetSampleRate prepares every voice for a new sample rate. Sounding notes
// are cut.
func (s *Synth) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 {
		s.log.Warn("ignoring sample rate %v", sampleRate)
		return
	}

	s.allocator.AllNotesOff(false)
	s.cfg.SampleRate = sampleRate
	for _, v := range s.voices {
		v.SetCurrentPlaybackSampleRate(sampleRate)
	}
	s.log.Debug("sample rate %.0f Hz", sampleRate)
}

// HandleEvent applies a MIDI event immediately.
func (s *Synth) HandleEvent(e midi.Event) {
	s.allocator.ProcessEvent(e)
}

// Render overwrites out with the sum of all voices.
func (s *Synth) Render(out []float32) {
	dsp.Clear(out)
	s.renderVoices(out, 0, len(out))
}

// RenderEvents renders out while applying events at their sample offsets.
// Events must be ordered by offset; offsets outside out are clamped to its
// bounds.
func (s *Synth) RenderEvents(out []float32, events []midi.Event) {
	dsp.Clear(out)

	pos := 0
	for _, e := range events {
		offset := int(e.SampleOffset())
		if offset < pos {
			offset = pos
		}
		if offset > len(out) {
			offset = len(out)
		}

		s.renderVoices(out, pos, offset-pos)
		s.allocator.ProcessEvent(e)
		pos = offset
	}

	s.renderVoices(out, pos, len(out)-pos)
}

func (s *Synth) renderVoices(out []float32, start, n int) {
	if n <= 0 {
		return
	}
	for _, v := range s.voices {
		v.RenderNextBlock(out, start, n)
	}
}

// ActiveVoices returns the number of voices playing a note.
func (s *Synth) ActiveVoices() int {
	return s.allocator.ActiveVoiceCount()
}
