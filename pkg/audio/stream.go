package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/justyntemme/overtone/pkg/framework/debug"
	"github.com/justyntemme/overtone/pkg/midi"
	"github.com/justyntemme/overtone/pkg/synth"
)

// Stream pulls audio from a synth in fixed blocks, feeding it live events
// from a queue and scheduled events from a timeline. Blocks always start at
// multiples of the block size, so callers may read any number of frames. It
// is used both offline (Process) and as the io.Reader behind a real-time
// Player. Only one goroutine may call Process or Read.
type Stream struct {
	synth     *synth.Synth
	queue     *midi.Queue
	handle    func(midi.Event)
	profiler  *debug.AudioProcessProfiler
	blockSize int

	events   []midi.Event // timeline events offset within their block
	starts   []int64      // first frame of the block holding events[i]
	next     int
	rendered int64
	frame    atomic.Int64

	block    []float32
	read     int // next unread frame of block
	finished atomic.Bool
	voices   atomic.Int32
}

// NewStream creates a stream rendering s. queue may be nil.
func NewStream(s *synth.Synth, queue *midi.Queue) *Stream {
	cfg := s.Config()
	return &Stream{
		synth:     s,
		queue:     queue,
		handle:    s.HandleEvent,
		profiler:  debug.NewAudioProcessProfiler(cfg.SampleRate),
		blockSize: cfg.BlockSize,
		block:     make([]float32, cfg.BlockSize),
		read:      cfg.BlockSize,
	}
}

// SetTimeline schedules events to play from the next rendered block. Events
// must be ordered by time. Call it before rendering starts.
func (st *Stream) SetTimeline(events []midi.TimedEvent) {
	rate := st.synth.Config().SampleRate
	size := int64(st.blockSize)

	st.events = make([]midi.Event, len(events))
	st.starts = make([]int64, len(events))
	for i, e := range events {
		at := st.rendered + e.Sample(rate)
		start := at - at%size
		st.events[i] = midi.WithOffset(e.Event, int32(at-start))
		st.starts[i] = start
	}
	st.next = 0
	st.finished.Store(false)
}

// Profiler returns the render-time profiler.
func (st *Stream) Profiler() *debug.AudioProcessProfiler {
	return st.profiler
}

// Position returns the number of frames delivered so far.
func (st *Stream) Position() int64 {
	return st.frame.Load()
}

// Elapsed returns the delivered duration.
func (st *Stream) Elapsed() time.Duration {
	return time.Duration(float64(st.Position()) / st.synth.Config().SampleRate * float64(time.Second))
}

// ActiveVoices returns the voice count seen at the end of the last block.
// Safe to call from any goroutine.
func (st *Stream) ActiveVoices() int {
	return int(st.voices.Load())
}

// Finished reports whether the whole timeline has been played and every
// voice has gone quiet. Safe to call from any goroutine.
func (st *Stream) Finished() bool {
	return st.finished.Load()
}

// Process overwrites out with the next len(out) frames.
func (st *Stream) Process(out []float32) {
	for pos := 0; pos < len(out); {
		if st.read == len(st.block) {
			st.renderBlock()
		}
		n := copy(out[pos:], st.block[st.read:])
		st.read += n
		pos += n
	}
	st.frame.Add(int64(len(out)))
}

func (st *Stream) renderBlock() {
	start := st.profiler.Begin()

	if st.queue != nil {
		st.queue.Drain(st.handle)
	}

	first := st.next
	for st.next < len(st.events) && st.starts[st.next] <= st.rendered {
		st.next++
	}
	if first == st.next {
		st.synth.Render(st.block)
	} else {
		st.synth.RenderEvents(st.block, st.events[first:st.next])
	}

	st.rendered += int64(len(st.block))
	st.read = 0

	active := st.synth.ActiveVoices()
	st.voices.Store(int32(active))
	if len(st.events) > 0 && st.next >= len(st.events) && active == 0 {
		st.finished.Store(true)
	}

	st.profiler.End(start, len(st.block))
}

// Read implements io.Reader with 32-bit float little-endian mono frames.
func (st *Stream) Read(p []byte) (int, error) {
	frames := len(p) / 4
	for i := 0; i < frames; i++ {
		if st.read == len(st.block) {
			st.renderBlock()
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(st.block[st.read]))
		st.read++
	}
	st.frame.Add(int64(frames))
	return frames * 4, nil
}
