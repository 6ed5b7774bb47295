package midi

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrNoEvents is returned when a MIDI file contains nothing the synth can play.
var ErrNoEvents = errors.New("midi file contains no playable events")

// TimedEvent is an event placed on an absolute timeline.
type TimedEvent struct {
	Time  time.Duration
	Event Event
}

// Sample converts the event time to a frame index at sampleRate.
func (e TimedEvent) Sample(sampleRate float64) int64 {
	return int64(e.Time.Seconds() * sampleRate)
}

// LoadSMF reads a standard MIDI file and returns its events from all tracks
// merged into one timeline, ordered by time. Tempo changes are honored.
func LoadSMF(r io.Reader) ([]TimedEvent, error) {
	var events []TimedEvent

	err := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		e, ok := FromMessage(gomidi.Message(te.Message), 0)
		if !ok {
			return
		}
		events = append(events, TimedEvent{
			Time:  time.Duration(te.AbsMicroSeconds) * time.Microsecond,
			Event: e,
		})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("read smf: %w", err)
	}

	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}

// LoadSMFFile opens path and loads it with LoadSMF.
func LoadSMFFile(path string) ([]TimedEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open midi file: %w", err)
	}
	defer f.Close()

	events, err := LoadSMF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// Duration returns the time of the last event in a timeline.
func Duration(events []TimedEvent) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Time
}
