package midi

import (
	"testing"
)

func TestQueueEmpty(t *testing.T) {
	q := NewQueue(8)

	if q.ToDo() != 0 {
		t.Errorf("Expected empty queue, got %d events", q.ToDo())
	}
	q.Remove()
	if q.ToDo() != 0 {
		t.Errorf("Remove on empty queue changed size to %d", q.ToDo())
	}
	if q.Cap() != 8 {
		t.Errorf("Expected capacity 8, got %d", q.Cap())
	}
}

func TestQueueSorting(t *testing.T) {
	q := NewQueue(8)

	// Add events out of order
	q.Add(NewNoteOn(300, 0, 62, 100))
	q.Add(NewNoteOn(100, 0, 60, 100))
	q.Add(NewNoteOn(200, 0, 61, 100))

	offsets := []int32{100, 200, 300}
	for i, want := range offsets {
		if q.ToDo() == 0 {
			t.Fatalf("Queue exhausted after %d events", i)
		}
		if got := q.Peek().Offset; got != want {
			t.Errorf("Event %d: expected offset %d, got %d", i, want, got)
		}
		q.Remove()
	}
}

func TestQueueStableForEqualOffsets(t *testing.T) {
	q := NewQueue(8)

	q.Add(NewNoteOn(10, 0, 60, 100))
	q.Add(NewNoteOff(10, 0, 60))
	q.Add(NewNoteOn(5, 0, 72, 100))

	want := []uint8{72, 60, 60}
	kinds := []EventType{EventTypeNoteOn, EventTypeNoteOn, EventTypeNoteOff}
	for i := range want {
		e := q.Peek()
		if e.Data1 != want[i] || e.Kind() != kinds[i] {
			t.Errorf("Event %d: got key %d kind %d", i, e.Data1, e.Kind())
		}
		q.Remove()
	}
}

func TestQueueDrainAndFlush(t *testing.T) {
	q := NewQueue(32)
	for _, offset := range []int32{5, 20, 50} {
		q.Add(NewNoteOn(offset, 0, 60, 100))
	}

	const frames = 32
	var emitted []int32
	for q.ToDo() > 0 {
		e := q.Peek()
		if e.Offset > frames {
			break
		}
		emitted = append(emitted, e.Offset)
		q.Remove()
	}
	q.Flush(frames)

	if len(emitted) != 2 || emitted[0] != 5 || emitted[1] != 20 {
		t.Errorf("Expected offsets [5 20] emitted, got %v", emitted)
	}
	if q.ToDo() != 1 {
		t.Fatalf("Expected 1 remaining event, got %d", q.ToDo())
	}
	if got := q.Peek().Offset; got != 18 {
		t.Errorf("Expected remaining offset rebased to 18, got %d", got)
	}
}

func TestQueueFullDropsNewest(t *testing.T) {
	q := NewQueue(2)

	if !q.Add(NewNoteOn(1, 0, 60, 100)) || !q.Add(NewNoteOn(2, 0, 61, 100)) {
		t.Fatal("Expected first two adds to succeed")
	}
	if q.Add(NewNoteOn(0, 0, 62, 100)) {
		t.Error("Expected add to a full queue to fail")
	}
	if q.Dropped() != 1 {
		t.Errorf("Expected 1 dropped event, got %d", q.Dropped())
	}
	if q.Peek().Data1 != 60 {
		t.Errorf("Expected oldest event kept, got key %d", q.Peek().Data1)
	}
}

func TestQueueCompactsAfterRemove(t *testing.T) {
	q := NewQueue(3)
	q.Add(NewNoteOn(1, 0, 60, 100))
	q.Add(NewNoteOn(2, 0, 61, 100))
	q.Add(NewNoteOn(3, 0, 62, 100))
	q.Remove()

	if !q.Add(NewNoteOn(0, 0, 63, 100)) {
		t.Fatal("Expected add after remove to succeed")
	}
	if q.Peek().Data1 != 63 {
		t.Errorf("Expected earliest event first, got key %d", q.Peek().Data1)
	}
	q.Clear()
	if q.ToDo() != 0 {
		t.Errorf("Expected empty queue after Clear, got %d", q.ToDo())
	}
}
