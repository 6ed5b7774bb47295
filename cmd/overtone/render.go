package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justyntemme/overtone/pkg/audio"
	"github.com/justyntemme/overtone/pkg/dsp/gain"
	"github.com/justyntemme/overtone/pkg/framework/debug"
	"github.com/justyntemme/overtone/pkg/midi"
)

var (
	renderMIDI     string
	renderOutput   string
	renderNote     int
	renderVelocity int
	renderHold     time.Duration
	renderTail     time.Duration
	renderProfile  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a MIDI file or a test note to WAV",
	Long: `Render a Standard MIDI File, or a single held note when no file is
given, to a 16-bit mono WAV file.

Examples:
  overtone render --midi song.mid -o song.wav
  overtone render --note 69 --hold 1s --set osc1=0.5 -o a4.wav`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderMIDI, "midi", "m", "", "Standard MIDI File to render")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "overtone.wav", "Output WAV file")
	renderCmd.Flags().IntVarP(&renderNote, "note", "n", 69, "Note to render when no MIDI file is given")
	renderCmd.Flags().IntVar(&renderVelocity, "velocity", 100, "Velocity of the test note")
	renderCmd.Flags().DurationVar(&renderHold, "hold", time.Second, "How long the test note is held")
	renderCmd.Flags().DurationVar(&renderTail, "tail", time.Second, "Silence rendered after the last event")
	renderCmd.Flags().BoolVar(&renderProfile, "profile", false, "Print a timing report")
}

// testNote builds a timeline holding one note for hold.
func testNote(note, velocity int, hold time.Duration) ([]midi.TimedEvent, error) {
	if note < 0 || note > 127 {
		return nil, fmt.Errorf("note %d out of range 0-127", note)
	}
	if velocity < 1 || velocity > 127 {
		return nil, fmt.Errorf("velocity %d out of range 1-127", velocity)
	}
	if hold <= 0 {
		return nil, fmt.Errorf("hold must be positive, got %v", hold)
	}

	return []midi.TimedEvent{
		{Time: 0, Event: midi.NoteOnEvent{NoteNumber: uint8(note), Velocity: uint8(velocity)}},
		{Time: hold, Event: midi.NoteOffEvent{NoteNumber: uint8(note)}},
	}, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	prof := debug.NewProfiler()
	prof.SetEnabled(renderProfile)

	var (
		events []midi.TimedEvent
		err    error
	)
	prof.Time("load", func() {
		if renderMIDI != "" {
			events, err = midi.LoadSMFFile(renderMIDI)
		} else {
			events, err = testNote(renderNote, renderVelocity, renderHold)
		}
	})
	if err != nil {
		return err
	}

	s, err := buildSynth()
	if err != nil {
		return err
	}

	if renderMIDI != "" {
		logger.Info("rendering %d events from %s", len(events), renderMIDI)
	} else {
		logger.Info("rendering %s for %v", midi.NoteNumberToName(uint8(renderNote)), renderHold)
	}

	stream := audio.NewStream(s, nil)
	stream.SetTimeline(events)

	length := midi.Duration(events) + renderTail
	frames := int(length.Seconds() * cfg.SampleRate)
	samples := make([]float32, frames)

	prof.Time("render", func() {
		stream.Process(samples)
	})

	if !stream.Finished() {
		logger.Warn("%d voices still sounding at the end, consider a longer --tail", stream.ActiveVoices())
	}

	prof.Time("write", func() {
		err = audio.WriteWAVFile(renderOutput, samples, int(cfg.SampleRate))
	})
	if err != nil {
		return err
	}

	level := gain.Measure(samples)
	fmt.Printf("Wrote %s: %v, %s\n", renderOutput, length.Round(time.Millisecond), level)
	if level.Clipped {
		logger.Warn("output clipped at %.1f dBFS, lower the gain parameter", level.PeakDb)
	}

	if renderProfile {
		fmt.Print(prof.Report())
		fmt.Println(stream.Profiler().AudioReport())
	}
	return nil
}
