package audio

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/justyntemme/overtone/pkg/midi"
)

func TestKeyboardHandleKey(t *testing.T) {
	q := midi.NewQueue(16)
	k := NewKeyboard(q, 10*time.Millisecond)

	if k.HandleKey('h') {
		t.Fatal("Expected h not to quit")
	}

	e, ok := q.Pop()
	if !ok {
		t.Fatal("Expected a note on")
	}
	on, isOn := e.(midi.NoteOnEvent)
	if !isOn || on.NoteNumber != 69 {
		t.Errorf("Expected note on 69, got %v", e)
	}

	deadline := time.Now().Add(2 * time.Second)
	for q.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	e, ok = q.Pop()
	if !ok || e.Type() != midi.EventTypeNoteOff {
		t.Errorf("Expected note off after the hold time, got %v", e)
	}
}

func TestKeyboardRepeatExtendsHold(t *testing.T) {
	q := midi.NewQueue(16)
	k := NewKeyboard(q, 400*time.Millisecond)

	k.HandleKey('a')
	time.Sleep(200 * time.Millisecond)
	k.HandleKey('a')

	// The first press alone would have released 200ms after the second
	time.Sleep(300 * time.Millisecond)
	for q.Len() > 0 {
		e, _ := q.Pop()
		if e.Type() == midi.EventTypeNoteOff {
			t.Fatal("Expected the second press to postpone the note off")
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for q.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	e, ok := q.Pop()
	if !ok || e.Type() != midi.EventTypeNoteOff {
		t.Fatalf("Expected a note off after the second hold, got %v", e)
	}

	time.Sleep(500 * time.Millisecond)
	if q.Len() != 0 {
		t.Errorf("Expected a single note off, %d more events queued", q.Len())
	}
}

func TestKeyboardOctaves(t *testing.T) {
	q := midi.NewQueue(16)
	k := NewKeyboard(q, time.Hour)

	k.HandleKey('x')
	if k.Base() != 72 {
		t.Errorf("Expected base 72, got %d", k.Base())
	}
	k.HandleKey('z')
	k.HandleKey('z')
	if k.Base() != 48 {
		t.Errorf("Expected base 48, got %d", k.Base())
	}

	for i := 0; i < 10; i++ {
		k.HandleKey('z')
	}
	if k.Base() < 0 {
		t.Errorf("Expected base to stay in range, got %d", k.Base())
	}
}

func TestKeyboardQuitKeys(t *testing.T) {
	k := NewKeyboard(midi.NewQueue(4), time.Hour)
	for _, b := range []byte{'q', 0x1b, 0x03} {
		if !k.HandleKey(b) {
			t.Errorf("Expected %q to quit", b)
		}
	}
	if k.HandleKey('?') {
		t.Error("Expected unmapped key to be ignored")
	}
}

func TestKeyboardRead(t *testing.T) {
	q := midi.NewQueue(16)
	k := NewKeyboard(q, time.Hour)

	err := k.Read(context.Background(), strings.NewReader("asdq-ignored"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if q.Len() != 3 {
		t.Errorf("Expected 3 note ons before quit, got %d", q.Len())
	}
}
