package midi

// Queue holds outgoing events ordered by sample offset. It has a fixed
// capacity and is meant for a single goroutine, normally the audio thread:
// nothing allocates after NewQueue.
type Queue struct {
	events  []Event
	front   int
	n       int
	dropped uint64
}

// NewQueue creates a queue holding at most capacity events.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{events: make([]Event, capacity)}
}

// Add inserts e after any queued events with the same or an earlier
// offset. It reports false and counts a drop when the queue is full.
func (q *Queue) Add(e Event) bool {
	if q.n == len(q.events) {
		q.dropped++
		return false
	}
	if q.front+q.n == len(q.events) {
		copy(q.events, q.events[q.front:q.front+q.n])
		q.front = 0
	}

	i := q.front + q.n
	for i > q.front && q.events[i-1].Offset > e.Offset {
		q.events[i] = q.events[i-1]
		i--
	}
	q.events[i] = e
	q.n++
	return true
}

// ToDo returns the number of queued events.
func (q *Queue) ToDo() int {
	return q.n
}

// Peek returns the earliest event. It must not be called on an empty queue.
func (q *Queue) Peek() Event {
	return q.events[q.front]
}

// Remove discards the earliest event.
func (q *Queue) Remove() {
	if q.n == 0 {
		return
	}
	q.front++
	q.n--
	if q.n == 0 {
		q.front = 0
	}
}

// Flush shifts the offsets of the remaining events back by nFrames, making
// them relative to the next block.
func (q *Queue) Flush(nFrames int32) {
	for i := q.front; i < q.front+q.n; i++ {
		q.events[i].Offset -= nFrames
	}
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.front = 0
	q.n = 0
}

// Cap returns the capacity.
func (q *Queue) Cap() int {
	return len(q.events)
}

// Dropped returns how many events Add rejected.
func (q *Queue) Dropped() uint64 {
	return q.dropped
}
