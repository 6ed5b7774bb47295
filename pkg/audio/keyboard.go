package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/justyntemme/overtone/pkg/midi"
)

// ErrNotTerminal is returned by Keyboard.Run when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// DefaultHold is how long a key press sounds. Terminals report presses but
// not releases.
const DefaultHold = 400 * time.Millisecond

// Piano layout on the home row, black keys on the row above.
var keyOffsets = map[byte]int{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5, 't': 6,
	'g': 7, 'y': 8, 'h': 9, 'u': 10, 'j': 11, 'k': 12, 'o': 13, 'l': 14,
}

// Keyboard turns computer key presses into note events on a queue.
// z and x shift the octave, q, Esc and Ctrl-C quit.
type Keyboard struct {
	queue    *midi.Queue
	hold     time.Duration
	base     int
	velocity uint8

	// pending note-off per note, re-armed when the key repeats
	releases [128]*time.Timer
}

// NewKeyboard creates a keyboard starting at middle C.
func NewKeyboard(queue *midi.Queue, hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{queue: queue, hold: hold, base: 60, velocity: 100}
}

// Base returns the note played by the 'a' key.
func (k *Keyboard) Base() int {
	return k.base
}

// HandleKey processes one key byte and reports whether it asked to quit.
func (k *Keyboard) HandleKey(b byte) bool {
	switch b {
	case 'q', 0x1b, 0x03:
		return true
	case 'z':
		if k.base >= 12 {
			k.base -= 12
		}
		return false
	case 'x':
		if k.base+12+14 <= 127 {
			k.base += 12
		}
		return false
	}

	offset, ok := keyOffsets[b]
	if !ok {
		return false
	}
	note := k.base + offset
	if note > 127 {
		return false
	}

	k.queue.Push(midi.NoteOnEvent{NoteNumber: uint8(note), Velocity: k.velocity})
	if t := k.releases[note]; t != nil {
		t.Reset(k.hold)
	} else {
		k.releases[note] = time.AfterFunc(k.hold, func() {
			k.queue.Push(midi.NoteOffEvent{NoteNumber: uint8(note)})
		})
	}
	return false
}

// Read feeds bytes from r to HandleKey until quit, EOF or ctx is done.
func (k *Keyboard) Read(ctx context.Context, r io.Reader) error {
	keys := make(chan byte)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case keys <- buf[0]:
				case <-done:
					return
				}
			}
			if err != nil {
				errs <- err
				return
			}
		}
	}()

	for {
		select {
		case b := <-keys:
			if k.HandleKey(b) {
				return nil
			}
		case err := <-errs:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read keyboard: %w", err)
		case <-ctx.Done():
			return nil
		}
	}
}

// Run puts the terminal in raw mode and reads keys from stdin until quit.
// The terminal is restored on return.
func (k *Keyboard) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	return k.Read(ctx, os.Stdin)
}
