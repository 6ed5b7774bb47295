package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/overtone/pkg/framework/debug"
	"github.com/justyntemme/overtone/pkg/framework/param"
	"github.com/justyntemme/overtone/pkg/preset"
	"github.com/justyntemme/overtone/pkg/synth"
)

var version = "0.1.0"

var (
	cfg         = synth.DefaultConfig()
	presetPath  string
	assignments []string
	logLevel    string
	logFile     string

	logger    = debug.Default()
	logCloser io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "overtone",
	Short: "Additive synthesizer with harmonic oscillator banks",
	Long: `overtone renders notes as a sum of harmonics shaped by an ADSR
envelope. It can render MIDI files to WAV, play them live, or turn the
computer keyboard into a polyphonic instrument.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(paramsCmd)

	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Sample rate in Hz")
	flags.IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "Frames rendered per block")
	flags.IntVar(&cfg.BankSize, "bank-size", cfg.BankSize, "Oscillators (harmonics) per voice")
	flags.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "Frames each voice renders per inner step")
	flags.IntVarP(&cfg.Polyphony, "polyphony", "p", cfg.Polyphony, "Number of voices")
	flags.Float64Var(&cfg.ConcertPitch, "concert-pitch", cfg.ConcertPitch, "Frequency of A4 in Hz")
	flags.Float64Var(&cfg.MaxPitchWheelSemitones, "bend-range", cfg.MaxPitchWheelSemitones, "Pitch wheel range in semitones")
	flags.StringVarP(&cfg.Waveform, "waveform", "w", cfg.Waveform, "Oscillator waveform (sine, triangle, saw, square)")
	flags.StringVar(&cfg.Stealing, "stealing", cfg.Stealing, "Voice stealing (oldest, highest, lowest, none)")
	flags.StringVar(&presetPath, "preset", "", "JSON preset to load")
	flags.StringArrayVar(&assignments, "set", nil, "Set a parameter, e.g. --set osc1=0.5 (repeatable)")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, off)")
	flags.StringVar(&logFile, "log-file", "", "Append logs to a file instead of stderr")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := debug.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logger = debug.Default()
	if logFile != "" {
		fileLog, closer, err := debug.NewFileLogger(logFile, "overtone", debug.DefaultFlags)
		if err != nil {
			return err
		}
		logger = fileLog
		logCloser = closer
	}
	logger.SetLevel(level)
	return nil
}

// parseAssignment splits "id=value".
func parseAssignment(s string) (string, float64, error) {
	id, raw, ok := strings.Cut(s, "=")
	if !ok || id == "" {
		return "", 0, fmt.Errorf("invalid assignment %q, want id=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid value in %q: %w", s, err)
	}
	return strings.TrimSpace(id), v, nil
}

// buildRegistry creates the parameter registry and applies --preset and
// --set in that order.
func buildRegistry() (*param.Registry, error) {
	reg, err := synth.NewRegistry(cfg.BankSize)
	if err != nil {
		return nil, err
	}

	if presetPath != "" {
		p, err := preset.LoadFile(presetPath)
		if err != nil {
			return nil, err
		}
		if err := p.Apply(reg); err != nil {
			return nil, err
		}
		logger.Info("loaded preset %q from %s", p.Name, presetPath)
	}

	for _, a := range assignments {
		id, v, err := parseAssignment(a)
		if err != nil {
			return nil, err
		}
		if err := reg.Set(id, v); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// buildSynth validates the flags and constructs the synth.
func buildSynth() (*synth.Synth, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg, err := buildRegistry()
	if err != nil {
		return nil, err
	}
	s, err := synth.New(cfg, reg)
	if err != nil {
		return nil, err
	}
	s.SetLogger(logger.Named("synth"))
	return s, nil
}
