// Package inputbridge is the single-producer/single-consumer queue from
// the UI thread to the stroke-processing thread: lossy for plain sample
// chunks, lossless for stroke-boundary chunks.
package inputbridge

import (
	"errors"
	"time"

	"github.com/glaphica/paintcore/chunk"
	"github.com/glaphica/paintcore/internal/spsc"
)

// ErrFull is returned by Push when the ring has no room and the chunk,
// carrying no stroke boundary, is dropped.
var ErrFull = errors.New("inputbridge: full")

// Config carries the bridge's construction-time parameters.
type Config struct {
	// Capacity is the requested ring size, rounded up to the next power
	// of two; must be >= 1.
	Capacity int
}

// retryInterval is the producer's backoff between retries when a
// boundary chunk finds the ring full. Mirrors the ~1ms idle cadence the
// stroke and GPU threads use when polling an empty queue.
const retryInterval = time.Millisecond

// Bridge is the bounded ring plus the drop-accounting state the producer
// side needs to stamp DroppedChunkCountBefore on the next chunk that
// makes it through.
type Bridge struct {
	ring    *spsc.Ring[*chunk.SampleChunk]
	dropped uint64 // producer-owned; no concurrent writer
}

// New creates a Bridge with the given capacity.
func New(cfg Config) *Bridge {
	return &Bridge{ring: spsc.New[*chunk.SampleChunk](cfg.Capacity)}
}

// Push enqueues c, applying the lossy/lossless policy spec'd for this
// bridge: a chunk carrying a stroke boundary (StartsStroke or
// EndsStroke) is retried until it fits; any other chunk is dropped on a
// full ring, with a running dropped-chunk counter that the next
// successfully-pushed chunk reports via DroppedChunkCountBefore.
//
// Only the producer goroutine may call Push.
func (b *Bridge) Push(c *chunk.SampleChunk) error {
	c.DroppedChunkCountBefore = b.dropped

	if b.ring.Push(c) {
		b.dropped = 0
		return nil
	}

	if !c.StartsStroke && !c.EndsStroke {
		b.dropped++
		return ErrFull
	}

	for !b.ring.Push(c) {
		time.Sleep(retryInterval)
	}
	b.dropped = 0
	return nil
}

// TryPop dequeues the next chunk without blocking. Only the consumer
// goroutine may call TryPop.
func (b *Bridge) TryPop() (*chunk.SampleChunk, bool) {
	return b.ring.Pop()
}
