package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypeControlChange
	EventTypePitchBend
)

type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	String() string
}

type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType {
	return EventTypeNoteOn
}

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType {
	return EventTypeNoteOff
}

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

func (e ControlChangeEvent) Type() EventType {
	return EventTypeControlChange
}

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.EventChannel, e.Controller, e.Value, e.Offset)
}

const (
	CCModWheel    uint8 = 1
	CCVolume      uint8 = 7
	CCSustain     uint8 = 64
	CCAllSoundOff uint8 = 120
	CCResetAll    uint8 = 121
	CCAllNotesOff uint8 = 123
)

// PitchBendCenter is the 14-bit pitch wheel rest position.
const PitchBendCenter uint16 = 8192

// PitchBendMax is the largest 14-bit pitch wheel value.
const PitchBendMax uint16 = 16383

type PitchBendEvent struct {
	BaseEvent
	Value uint16 // 0 to 16383, 8192 is center
}

func (e PitchBendEvent) Type() EventType {
	return EventTypePitchBend
}

func (e PitchBendEvent) String() string {
	return fmt.Sprintf("PitchBend{ch:%d, val:%d, offset:%d}",
		e.EventChannel, e.Value, e.Offset)
}

// FromMessage converts a raw MIDI message into an Event placed at offset.
// Messages the synth does not react to report false.
func FromMessage(msg gomidi.Message, offset int32) (Event, bool) {
	var ch, key, vel, ctrl, val uint8
	var rel int16
	var abs uint16

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return NoteOnEvent{BaseEvent: BaseEvent{EventChannel: ch, Offset: offset}, NoteNumber: key, Velocity: vel}, true
	case msg.GetNoteEnd(&ch, &key):
		return NoteOffEvent{BaseEvent: BaseEvent{EventChannel: ch, Offset: offset}, NoteNumber: key}, true
	case msg.GetControlChange(&ch, &ctrl, &val):
		return ControlChangeEvent{BaseEvent: BaseEvent{EventChannel: ch, Offset: offset}, Controller: ctrl, Value: val}, true
	case msg.GetPitchBend(&ch, &rel, &abs):
		return PitchBendEvent{BaseEvent: BaseEvent{EventChannel: ch, Offset: offset}, Value: abs}, true
	}
	return nil, false
}

// WithOffset returns a copy of e placed at a new sample offset.
func WithOffset(e Event, offset int32) Event {
	switch ev := e.(type) {
	case NoteOnEvent:
		ev.Offset = offset
		return ev
	case NoteOffEvent:
		ev.Offset = offset
		return ev
	case ControlChangeEvent:
		ev.Offset = offset
		return ev
	case PitchBendEvent:
		ev.Offset = offset
		return ev
	}
	return e
}

func NoteNumberToName(note uint8) string {
	noteNames := [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
