package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestNoteOnEvent(t *testing.T) {
	event := NoteOnEvent{
		BaseEvent: BaseEvent{
			EventChannel: 0,
			Offset:       100,
		},
		NoteNumber: 60, // Middle C
		Velocity:   64,
	}

	if event.Type() != EventTypeNoteOn {
		t.Errorf("Expected type %v, got %v", EventTypeNoteOn, event.Type())
	}

	if event.SampleOffset() != 100 {
		t.Errorf("Expected offset 100, got %d", event.SampleOffset())
	}

	expected := "NoteOn{ch:0, note:60, vel:64, offset:100}"
	if event.String() != expected {
		t.Errorf("Expected string %s, got %s", expected, event.String())
	}
}

func TestFromMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      gomidi.Message
		expected Event
	}{
		{"Note on", gomidi.NoteOn(1, 69, 100),
			NoteOnEvent{BaseEvent: BaseEvent{EventChannel: 1, Offset: 7}, NoteNumber: 69, Velocity: 100}},
		{"Note off", gomidi.NoteOff(1, 69),
			NoteOffEvent{BaseEvent: BaseEvent{EventChannel: 1, Offset: 7}, NoteNumber: 69}},
		{"Note on with zero velocity", gomidi.NoteOn(0, 60, 0),
			NoteOffEvent{BaseEvent: BaseEvent{EventChannel: 0, Offset: 7}, NoteNumber: 60}},
		{"Sustain", gomidi.ControlChange(0, CCSustain, 127),
			ControlChangeEvent{BaseEvent: BaseEvent{EventChannel: 0, Offset: 7}, Controller: CCSustain, Value: 127}},
		{"Pitch bend center", gomidi.Pitchbend(0, 0),
			PitchBendEvent{BaseEvent: BaseEvent{EventChannel: 0, Offset: 7}, Value: PitchBendCenter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := FromMessage(tt.msg, 7)
			if !ok {
				t.Fatalf("Expected %v to convert", tt.msg)
			}
			if event != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, event)
			}
		})
	}
}

func TestFromMessageIgnoresOthers(t *testing.T) {
	if _, ok := FromMessage(gomidi.ProgramChange(0, 5), 0); ok {
		t.Error("Expected program change to be ignored")
	}
}

func TestWithOffset(t *testing.T) {
	e := WithOffset(NoteOffEvent{NoteNumber: 60}, 42)
	if e.SampleOffset() != 42 {
		t.Errorf("Expected offset 42, got %d", e.SampleOffset())
	}
	if e.(NoteOffEvent).NoteNumber != 60 {
		t.Error("Expected note number to be preserved")
	}
}

func TestNoteNumberToName(t *testing.T) {
	tests := []struct {
		note uint8
		name string
	}{
		{60, "C4"},  // Middle C
		{69, "A4"},  // A440
		{0, "C-1"},  // Lowest MIDI note
		{127, "G9"}, // Highest MIDI note
		{61, "C#4"}, // C# above middle C
	}

	for _, tt := range tests {
		name := NoteNumberToName(tt.note)
		if name != tt.name {
			t.Errorf("For note %d, expected name %s, got %s", tt.note, tt.name, name)
		}
	}
}
