package midi

import (
	"sync"
	"sync/atomic"
)

// Queue hands events from control goroutines (MIDI input, keyboard, file
// playback) to the audio goroutine. Producers are serialized by a mutex; the
// single consumer never locks and never allocates.
type Queue struct {
	slots []Event
	mask  uint64
	head  atomic.Uint64 // next slot to read
	tail  atomic.Uint64 // next slot to write
	mu    sync.Mutex    // producers only
}

// NewQueue creates a queue holding up to capacity events, rounded up to a
// power of two.
func NewQueue(capacity int) *Queue {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Queue{
		slots: make([]Event, size),
		mask:  uint64(size - 1),
	}
}

// Push appends an event. It reports false when the queue is full.
func (q *Queue) Push(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	tail := q.tail.Load()
	if tail-q.head.Load() >= uint64(len(q.slots)) {
		return false
	}
	q.slots[tail&q.mask] = e
	q.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest event. Consumer side only.
func (q *Queue) Pop() (Event, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return nil, false
	}
	idx := head & q.mask
	e := q.slots[idx]
	q.slots[idx] = nil
	q.head.Store(head + 1)
	return e, true
}

// Drain pops every queued event into fn and returns how many were handled.
// Consumer side only.
func (q *Queue) Drain(fn func(Event)) int {
	n := 0
	for {
		e, ok := q.Pop()
		if !ok {
			return n
		}
		fn(e)
		n++
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return len(q.slots)
}
