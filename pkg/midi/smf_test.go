package midi

import (
	"bytes"
	"errors"
	"testing"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeTestSMF(t *testing.T, build func(tr *smf.Track)) *bytes.Buffer {
	t.Helper()

	s := smf.New()
	var tr smf.Track
	build(&tr)
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatalf("Failed to add track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("Failed to write smf: %v", err)
	}
	return &buf
}

func TestLoadSMF(t *testing.T) {
	// 960 ticks per quarter at 120 bpm: one quarter is 500ms
	buf := writeTestSMF(t, func(tr *smf.Track) {
		tr.Add(0, smf.MetaTempo(120))
		tr.Add(0, gomidi.NoteOn(0, 69, 100))
		tr.Add(960, gomidi.NoteOff(0, 69))
	})

	events, err := LoadSMF(buf)
	if err != nil {
		t.Fatalf("LoadSMF failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	if events[0].Event.Type() != EventTypeNoteOn || events[0].Time != 0 {
		t.Errorf("Expected note on at 0, got %v at %v", events[0].Event, events[0].Time)
	}

	if events[1].Event.Type() != EventTypeNoteOff {
		t.Errorf("Expected note off, got %v", events[1].Event)
	}
	if events[1].Time != 500*time.Millisecond {
		t.Errorf("Expected note off at 500ms, got %v", events[1].Time)
	}

	if got := events[1].Sample(48000); got != 24000 {
		t.Errorf("Expected sample 24000, got %d", got)
	}

	if d := Duration(events); d != 500*time.Millisecond {
		t.Errorf("Expected duration 500ms, got %v", d)
	}
}

func TestLoadSMFNoEvents(t *testing.T) {
	buf := writeTestSMF(t, func(tr *smf.Track) {
		tr.Add(0, smf.MetaTempo(120))
	})

	_, err := LoadSMF(buf)
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("Expected ErrNoEvents, got %v", err)
	}
}

func TestLoadSMFFileMissing(t *testing.T) {
	if _, err := LoadSMFFile("does-not-exist.mid"); err == nil {
		t.Error("Expected error for missing file")
	}
}
