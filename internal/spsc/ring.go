// Package spsc implements a bounded single-producer/single-consumer ring
// buffer. Enqueue and dequeue are both O(1) and wait-free: the producer
// only ever touches the tail cursor, the consumer only ever touches the
// head cursor, and both read the other side's cursor with an atomic load.
//
// No ring-buffer library appears anywhere in the example corpus this
// package was grounded on; this is built directly on sync/atomic,
// following the same atomic-cursor idiom the teacher uses for its
// running/stop flags (compare internal/thread.Thread).
package spsc

import "sync/atomic"

// Ring is a bounded SPSC queue of T. The zero value is not usable; use
// New. A Ring must have exactly one producer goroutine calling Push and
// exactly one (possibly different) consumer goroutine calling Pop.
type Ring[T any] struct {
	buf  []T
	mask uint64

	head atomic.Uint64 // next slot to Pop from; owned by the consumer
	tail atomic.Uint64 // next slot to Push into; owned by the producer
}

// New creates a Ring with the given capacity, rounded up to the next
// power of two. Capacity must be at least 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	size := nextPowerOfTwo(capacity)
	return &Ring[T]{
		buf:  make([]T, size),
		mask: uint64(size - 1),
	}
}

// Push enqueues v. It reports false without blocking if the ring is full.
func (r *Ring[T]) Push(v T) bool {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail-head >= uint64(len(r.buf)) {
		return false
	}
	r.buf[tail&r.mask] = v
	r.tail.Store(tail + 1)
	return true
}

// Pop dequeues the oldest pushed value. It reports false without
// blocking if the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	head := r.head.Load()
	tail := r.tail.Load()
	if head >= tail {
		var zero T
		return zero, false
	}
	v := r.buf[head&r.mask]
	var zero T
	r.buf[head&r.mask] = zero
	r.head.Store(head + 1)
	return v, true
}

// Len returns a snapshot of the number of queued items. Safe to call
// from either side, but may be stale by the time it returns.
func (r *Ring[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the ring's fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
