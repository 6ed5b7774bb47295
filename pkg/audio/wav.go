// Package audio moves synthesizer output to the outside world: WAV files,
// the system's audio device, and note input from the computer keyboard.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth   = 16
	wavPCMFormat  = 1
	wavChannels   = 1
	wavFullScaleF = float32(32767)
)

// ErrInvalidWAV is returned when a file cannot be decoded as PCM WAV.
var ErrInvalidWAV = errors.New("not a valid wav file")

// WriteWAV encodes mono samples as 16-bit PCM. Samples outside [-1, 1] are
// clipped.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(math.Round(float64(s * wavFullScaleF)))
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// WriteWAVFile writes samples to path, replacing any existing file.
func WriteWAVFile(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadWAV decodes a mono or multichannel PCM file and returns its first
// channel as float samples together with the sample rate.
func ReadWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("read wav: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = wavBitDepth
	}
	scale := float32(int(1)<<(bitDepth-1)) - 1

	samples := make([]float32, len(buf.Data)/channels)
	for i := range samples {
		samples[i] = float32(buf.Data[i*channels]) / scale
	}
	return samples, int(dec.SampleRate), nil
}
