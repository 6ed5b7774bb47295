package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrNoOutput is returned when no audio device could be opened.
var ErrNoOutput = errors.New("no audio output")

// Player plays a Stream on the system audio device.
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mu      sync.Mutex // setup and control only, never held by Read
}

// NewPlayer opens the audio device at sampleRate. bufferSize is the device
// latency; zero lets the driver choose.
func NewPlayer(stream *Stream, sampleRate int, bufferSize time.Duration) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoOutput, err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
	}, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	if err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}
