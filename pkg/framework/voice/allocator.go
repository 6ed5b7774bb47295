package voice

import (
	"github.com/justyntemme/overtone/pkg/midi"
)

// StealingMode defines how voices are stolen when all are in use
type StealingMode int

const (
	// StealOldest steals the voice that started longest ago
	StealOldest StealingMode = iota
	// StealHighest steals the highest pitched voice
	StealHighest
	// StealLowest steals the lowest pitched voice
	StealLowest
	// StealNone doesn't steal - new notes are ignored when full
	StealNone
)

func (m StealingMode) String() string {
	switch m {
	case StealOldest:
		return "oldest"
	case StealHighest:
		return "highest"
	case StealLowest:
		return "lowest"
	case StealNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseStealingMode converts a mode name as printed by String.
func ParseStealingMode(name string) (StealingMode, bool) {
	for _, m := range []StealingMode{StealOldest, StealHighest, StealLowest, StealNone} {
		if m.String() == name {
			return m, true
		}
	}
	return StealOldest, false
}

// slot tracks what the allocator knows about one voice
type slot struct {
	voice     Voice
	started   uint64 // note-on counter value at start
	held      bool   // key is down
	sustained bool   // key released while the pedal was down
}

// Allocator manages voice allocation for polyphonic synthesis. It never
// allocates after construction and is meant to be driven from the render
// goroutine between blocks.
type Allocator struct {
	slots        []slot
	sound        Sound
	stealingMode StealingMode
	maxVoices    int
	counter      uint64
	sustainPedal bool
	pitchWheel   int
}

// NewAllocator creates a new voice allocator playing sound on voices
func NewAllocator(voices []Voice, sound Sound) *Allocator {
	slots := make([]slot, len(voices))
	for i, v := range voices {
		slots[i].voice = v
	}
	return &Allocator{
		slots:        slots,
		sound:        sound,
		stealingMode: StealOldest,
		maxVoices:    len(voices),
		pitchWheel:   int(midi.PitchBendCenter),
	}
}

// SetStealingMode sets the voice stealing mode
func (a *Allocator) SetStealingMode(mode StealingMode) {
	a.stealingMode = mode
}

// StealingMode returns the voice stealing mode
func (a *Allocator) StealingMode() StealingMode {
	return a.stealingMode
}

// SetMaxVoices sets the maximum number of voices used for new notes
func (a *Allocator) SetMaxVoices(max int) {
	if max > len(a.slots) {
		max = len(a.slots)
	}
	if max < 1 {
		max = 1
	}
	a.maxVoices = max
}

// PitchWheel returns the last 14-bit wheel position seen
func (a *Allocator) PitchWheel() int {
	return a.pitchWheel
}

// ProcessEvent handles a MIDI event
func (a *Allocator) ProcessEvent(event midi.Event) {
	switch e := event.(type) {
	case midi.NoteOnEvent:
		if e.Velocity > 0 {
			a.NoteOn(int(e.NoteNumber), float32(e.Velocity)/127)
		} else {
			// Note on with velocity 0 is treated as note off
			a.NoteOff(int(e.NoteNumber), 0)
		}
	case midi.NoteOffEvent:
		a.NoteOff(int(e.NoteNumber), float32(e.Velocity)/127)
	case midi.ControlChangeEvent:
		a.controlChange(e.Controller, e.Value)
	case midi.PitchBendEvent:
		a.SetPitchWheel(int(e.Value))
	}
}

func (a *Allocator) controlChange(controller, value uint8) {
	switch controller {
	case midi.CCSustain:
		a.SetSustainPedal(value >= 64)
	case midi.CCAllNotesOff:
		a.AllNotesOff(true)
	case midi.CCAllSoundOff:
		a.AllNotesOff(false)
	case midi.CCResetAll:
		a.SetSustainPedal(false)
		a.SetPitchWheel(int(midi.PitchBendCenter))
	}

	for i := range a.slots {
		a.slots[i].voice.ControllerMoved(int(controller), int(value))
	}
}

// NoteOn starts note on a free voice, the voice already playing it, or a
// stolen voice
func (a *Allocator) NoteOn(note int, velocity float32) {
	if a.sound == nil {
		return
	}

	// Retrigger the voice already playing this note; its envelope continues
	// from the current level.
	if idx := a.findNote(note); idx != -1 {
		a.start(idx, note, velocity)
		return
	}

	idx := a.findFreeVoice()
	if idx == -1 {
		idx = a.stealVoice()
		if idx == -1 {
			return
		}
		a.slots[idx].voice.StopNote(0, false)
	}

	a.start(idx, note, velocity)
}

func (a *Allocator) start(idx, note int, velocity float32) {
	a.counter++
	s := &a.slots[idx]
	s.started = a.counter
	s.held = true
	s.sustained = false
	s.voice.StartNote(note, velocity, a.sound, a.pitchWheel)
}

// NoteOff releases every voice playing note, unless the sustain pedal is down
func (a *Allocator) NoteOff(note int, velocity float32) {
	for i := range a.slots {
		s := &a.slots[i]
		current, ok := s.voice.CurrentNote()
		if !ok || current != note || !s.held {
			continue
		}

		s.held = false
		if a.sustainPedal {
			s.sustained = true
			continue
		}
		s.voice.StopNote(velocity, true)
	}
}

// SetSustainPedal sets the sustain pedal state. Releasing the pedal releases
// every note whose key is already up.
func (a *Allocator) SetSustainPedal(on bool) {
	a.sustainPedal = on
	if on {
		return
	}

	for i := range a.slots {
		s := &a.slots[i]
		if !s.sustained {
			continue
		}
		s.sustained = false
		if !s.held {
			s.voice.StopNote(0, true)
		}
	}
}

// SustainPedal reports whether the sustain pedal is down
func (a *Allocator) SustainPedal() bool {
	return a.sustainPedal
}

// SetPitchWheel routes a 14-bit wheel position to every voice and remembers
// it for notes started later
func (a *Allocator) SetPitchWheel(value int) {
	a.pitchWheel = value
	for i := range a.slots {
		a.slots[i].voice.PitchWheelMoved(value)
	}
}

// AllNotesOff stops every voice. With allowTailOff false the voices go
// silent immediately.
func (a *Allocator) AllNotesOff(allowTailOff bool) {
	for i := range a.slots {
		s := &a.slots[i]
		s.held = false
		s.sustained = false
		if _, ok := s.voice.CurrentNote(); ok {
			s.voice.StopNote(0, allowTailOff)
		}
	}
}

// Reset cuts all voices and clears pedal and wheel state
func (a *Allocator) Reset() {
	a.AllNotesOff(false)
	a.sustainPedal = false
	a.pitchWheel = int(midi.PitchBendCenter)
	for i := range a.slots {
		a.slots[i].voice.PitchWheelMoved(a.pitchWheel)
	}
}

// ActiveVoiceCount returns the number of voices playing a note
func (a *Allocator) ActiveVoiceCount() int {
	count := 0
	for i := range a.slots {
		if _, ok := a.slots[i].voice.CurrentNote(); ok {
			count++
		}
	}
	return count
}

// findNote returns the voice playing note, or -1
func (a *Allocator) findNote(note int) int {
	for i := range a.slots {
		if current, ok := a.slots[i].voice.CurrentNote(); ok && current == note {
			return i
		}
	}
	return -1
}

// findFreeVoice returns the first idle voice that can play the sound, or -1
func (a *Allocator) findFreeVoice() int {
	for i := 0; i < a.maxVoices; i++ {
		v := a.slots[i].voice
		if _, ok := v.CurrentNote(); !ok && v.CanPlaySound(a.sound) {
			return i
		}
	}
	return -1
}

// stealVoice picks a victim according to the stealing mode. Voices whose
// key is already up are preferred over held ones.
func (a *Allocator) stealVoice() int {
	if a.stealingMode == StealNone {
		return -1
	}

	bestIdx := -1
	bestReleased := false
	var bestValue uint64

	for i := 0; i < a.maxVoices; i++ {
		s := &a.slots[i]
		if !s.voice.CanPlaySound(a.sound) {
			continue
		}
		note, ok := s.voice.CurrentNote()
		if !ok {
			continue
		}

		released := !s.held && !s.sustained
		if bestIdx != -1 && bestReleased && !released {
			continue
		}

		var value uint64
		switch a.stealingMode {
		case StealOldest:
			// Smaller counter means older, so invert to keep "bigger wins"
			value = ^s.started
		case StealHighest:
			value = uint64(note)
		case StealLowest:
			value = ^uint64(note)
		}

		if bestIdx == -1 || (released && !bestReleased) || value > bestValue {
			bestIdx = i
			bestReleased = released
			bestValue = value
		}
	}

	return bestIdx
}
