package synth

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"SampleRate", func(c *Config) { c.SampleRate = 0 }},
		{"BlockSize", func(c *Config) { c.BlockSize = -1 }},
		{"BankSize", func(c *Config) { c.BankSize = 0 }},
		{"ChunkSize", func(c *Config) { c.ChunkSize = 0 }},
		{"ConcertPitch", func(c *Config) { c.ConcertPitch = -440 }},
		{"PitchWheel", func(c *Config) { c.MaxPitchWheelSemitones = -1 }},
		{"Polyphony", func(c *Config) { c.Polyphony = 0 }},
		{"Waveform", func(c *Config) { c.Waveform = "noise" }},
		{"Stealing", func(c *Config) { c.Stealing = "quietest" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
