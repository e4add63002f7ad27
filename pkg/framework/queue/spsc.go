// Package queue provides a lock-free single producer, single consumer ring
// used to move events between the audio thread and other threads.
package queue

import (
	"sync/atomic"
)

// SPSC is a fixed capacity ring of T values. Exactly one goroutine may call
// Push and exactly one may call Pop; the two may differ. Neither side blocks
// or allocates.
type SPSC[T any] struct {
	data []T
	mask uint64

	// head is written by the consumer, tail by the producer.
	head atomic.Uint64
	_    [56]byte
	tail atomic.Uint64
	_    [56]byte

	pushed  atomic.Uint64
	dropped atomic.Uint64
}

// Stats reports queue health.
type Stats struct {
	Capacity int
	Len      int
	Pushed   uint64
	Dropped  uint64
}

// NewSPSC creates a ring holding at least capacity elements. Capacity is
// rounded up to a power of two.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 1 {
		capacity = 1
	}
	size := NextPowerOf2(uint32(capacity))
	return &SPSC[T]{
		data: make([]T, size),
		mask: uint64(size - 1),
	}
}

// Push copies v into the ring. When the ring is full v is dropped, the drop
// counter is incremented and Push returns false.
func (q *SPSC[T]) Push(v T) bool {
	tail := q.tail.Load()
	head := q.head.Load()

	if tail-head >= uint64(len(q.data)) {
		q.dropped.Add(1)
		return false
	}

	q.data[tail&q.mask] = v
	q.tail.Store(tail + 1)
	q.pushed.Add(1)
	return true
}

// PushFunc fills the next free slot in place. Use it for large values to
// avoid an extra copy.
func (q *SPSC[T]) PushFunc(fill func(slot *T)) bool {
	tail := q.tail.Load()
	head := q.head.Load()

	if tail-head >= uint64(len(q.data)) {
		q.dropped.Add(1)
		return false
	}

	fill(&q.data[tail&q.mask])
	q.tail.Store(tail + 1)
	q.pushed.Add(1)
	return true
}

// Pop copies the oldest element into dst. It returns false when empty.
func (q *SPSC[T]) Pop(dst *T) bool {
	head := q.head.Load()
	tail := q.tail.Load()

	if head == tail {
		return false
	}

	*dst = q.data[head&q.mask]
	q.head.Store(head + 1)
	return true
}

// Peek returns a pointer to the oldest element without removing it. The
// pointer is valid until the next Pop or Discard.
func (q *SPSC[T]) Peek() (*T, bool) {
	head := q.head.Load()
	tail := q.tail.Load()

	if head == tail {
		return nil, false
	}
	return &q.data[head&q.mask], true
}

// Discard removes the oldest element, if any.
func (q *SPSC[T]) Discard() {
	head := q.head.Load()
	if head != q.tail.Load() {
		q.head.Store(head + 1)
	}
}

// Len returns the number of queued elements. The value is a snapshot.
func (q *SPSC[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Cap returns the capacity.
func (q *SPSC[T]) Cap() int {
	return len(q.data)
}

// Stats returns counters for monitoring.
func (q *SPSC[T]) Stats() Stats {
	return Stats{
		Capacity: len(q.data),
		Len:      q.Len(),
		Pushed:   q.pushed.Load(),
		Dropped:  q.dropped.Load(),
	}
}

// NextPowerOf2 rounds n up to the next power of 2.
func NextPowerOf2(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}
