package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/justyntemme/overtone/pkg/audio"
	"github.com/justyntemme/overtone/pkg/midi"
	"github.com/justyntemme/overtone/pkg/preset"
	"github.com/justyntemme/overtone/pkg/synth"
)

var (
	playMIDI    string
	playLatency time.Duration
	playHold    time.Duration
	playWatch   bool
	playStats   time.Duration
	playQueue   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a MIDI file or the computer keyboard in real time",
	Long: `Play through the default audio device. With --midi the file is played
once; otherwise the terminal becomes a one-octave keyboard:

  a w s e d f t g y h u j k o l   notes from C
  z / x                           octave down / up
  q or Esc                        quit

With --preset and --watch, saving the preset file applies it while playing.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playMIDI, "midi", "m", "", "Standard MIDI File to play")
	playCmd.Flags().DurationVar(&playLatency, "latency", 50*time.Millisecond, "Output buffer size")
	playCmd.Flags().DurationVar(&playHold, "hold", audio.DefaultHold, "How long a keyboard note sounds")
	playCmd.Flags().BoolVar(&playWatch, "watch", false, "Reload --preset when the file changes")
	playCmd.Flags().DurationVar(&playStats, "stats", 0, "Log CPU load and voices at this interval (0 disables)")
	playCmd.Flags().IntVar(&playQueue, "queue", 256, "Capacity of the live event queue")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playWatch && presetPath == "" {
		return fmt.Errorf("--watch requires --preset")
	}

	var events []midi.TimedEvent
	if playMIDI != "" {
		var err error
		if events, err = midi.LoadSMFFile(playMIDI); err != nil {
			return err
		}
	}

	s, err := buildSynth()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := midi.NewQueue(playQueue)
	stream := audio.NewStream(s, queue)
	if events != nil {
		stream.SetTimeline(events)
	}

	if playWatch {
		if err := watchPreset(ctx, s); err != nil {
			return err
		}
	}

	player, err := audio.NewPlayer(stream, int(cfg.SampleRate), playLatency)
	if err != nil {
		return err
	}
	defer player.Close()
	player.Start()

	if playStats > 0 {
		go reportStats(ctx, stream, playStats)
	}

	if events != nil {
		logger.Info("playing %s (%v)", playMIDI, midi.Duration(events).Round(time.Millisecond))
		return waitFinished(ctx, stream)
	}

	fmt.Println("Keyboard ready: a-l play notes, z/x change octave, q quits")
	kb := audio.NewKeyboard(queue, playHold)
	if err := kb.Run(ctx); err != nil {
		return err
	}

	// Let the release tails ring out
	queue.Push(midi.ControlChangeEvent{Controller: midi.CCAllNotesOff})
	time.Sleep(time.Duration(s.Registry().Get(synth.ParamRelease).Value()*float64(time.Second)) + playLatency)
	return nil
}

func watchPreset(ctx context.Context, s *synth.Synth) error {
	_, err := preset.Watch(ctx, presetPath, s.Registry(), logger.Named("preset"))
	return err
}

func waitFinished(ctx context.Context, stream *audio.Stream) error {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if stream.Finished() {
				return nil
			}
		}
	}
}

func reportStats(ctx context.Context, stream *audio.Stream, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prof := stream.Profiler()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Info("cpu %.2f%% max block %v voices %d at %v",
				prof.CPULoad(), prof.MaxBlockTime(), stream.ActiveVoices(),
				stream.Elapsed().Round(time.Second))
		}
	}
}
