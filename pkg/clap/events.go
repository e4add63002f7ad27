package clap

import "unsafe"

// EventHeader prefixes every event. Time is a sample offset into the block.
type EventHeader struct {
	Size    uint32
	Time    uint32
	SpaceID uint16
	Type    EventType
	Flags   uint32
}

// Header returns h. Every event embeds EventHeader and so satisfies Event.
func (h *EventHeader) Header() *EventHeader {
	return h
}

// Event is any host or plugin event.
type Event interface {
	Header() *EventHeader
}

// NoteEvent carries note on, off, choke and end.
type NoteEvent struct {
	EventHeader
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Velocity  float64
}

// MIDIEvent carries a raw three byte MIDI 1.0 message.
type MIDIEvent struct {
	EventHeader
	PortIndex uint16
	Data      [3]byte
}

// MIDISysExEvent points at a system exclusive message. Buffer is only valid
// for the duration of the callback that delivered it.
type MIDISysExEvent struct {
	EventHeader
	PortIndex uint16
	Buffer    []byte
}

// ParamValueEvent sets a parameter. NoteID, PortIndex, Channel and Key are -1
// for a global change.
type ParamValueEvent struct {
	EventHeader
	ParamID   uint32
	Cookie    uintptr
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Value     float64
}

// ParamGestureEvent marks the beginning or end of a user adjustment.
type ParamGestureEvent struct {
	EventHeader
	ParamID uint32
}

// TransportEvent carries a transport update inside the event stream.
type TransportEvent struct {
	EventHeader
	Transport
}

// InputEvents is the host's read-only event list for one block.
type InputEvents interface {
	Size() uint32
	Get(index uint32) Event
}

// OutputEvents is the host's sink for plugin generated events. The host
// copies the event before TryPush returns.
type OutputEvents interface {
	TryPush(event Event) bool
}

const (
	noteEventSize    = uint32(unsafe.Sizeof(NoteEvent{}))
	midiEventSize    = uint32(unsafe.Sizeof(MIDIEvent{}))
	sysexEventSize   = uint32(unsafe.Sizeof(MIDISysExEvent{}))
	valueEventSize   = uint32(unsafe.Sizeof(ParamValueEvent{}))
	gestureEventSize = uint32(unsafe.Sizeof(ParamGestureEvent{}))
)

// NewNoteEvent builds a note event in the core space.
func NewNoteEvent(typ EventType, time uint32, channel, key int16, velocity float64) *NoteEvent {
	n := &NoteEvent{}
	n.Set(typ, time, channel, key, velocity)
	return n
}

// Set overwrites n in place with a note event on port 0.
func (n *NoteEvent) Set(typ EventType, time uint32, channel, key int16, velocity float64) {
	*n = NoteEvent{
		EventHeader: header(typ, time, noteEventSize),
		NoteID:      -1,
		Channel:     channel,
		Key:         key,
		Velocity:    velocity,
	}
}

// NewMIDIEvent builds a raw MIDI event in the core space.
func NewMIDIEvent(time uint32, status, data1, data2 byte) *MIDIEvent {
	m := &MIDIEvent{}
	m.Set(time, status, data1, data2)
	return m
}

// Set overwrites m in place.
func (m *MIDIEvent) Set(time uint32, status, data1, data2 byte) {
	*m = MIDIEvent{
		EventHeader: header(EventMIDI, time, midiEventSize),
		Data:        [3]byte{status, data1, data2},
	}
}

// NewMIDISysExEvent builds a sysex event referencing buf.
func NewMIDISysExEvent(time uint32, buf []byte) *MIDISysExEvent {
	s := &MIDISysExEvent{}
	s.Set(time, buf)
	return s
}

// Set overwrites s in place. buf is referenced, not copied.
func (s *MIDISysExEvent) Set(time uint32, buf []byte) {
	*s = MIDISysExEvent{
		EventHeader: header(EventMIDISysEx, time, sysexEventSize),
		Buffer:      buf,
	}
}

// NewParamValueEvent builds a global parameter value event.
func NewParamValueEvent(time uint32, paramID uint32, value float64) *ParamValueEvent {
	v := &ParamValueEvent{}
	v.Set(time, paramID, value)
	return v
}

// Set overwrites v in place with a global value change.
func (v *ParamValueEvent) Set(time uint32, paramID uint32, value float64) {
	*v = ParamValueEvent{
		EventHeader: header(EventParamValue, time, valueEventSize),
		ParamID:     paramID,
		NoteID:      -1,
		PortIndex:   -1,
		Channel:     -1,
		Key:         -1,
		Value:       value,
	}
}

// NewParamGestureEvent builds a gesture begin or end event.
func NewParamGestureEvent(typ EventType, time uint32, paramID uint32) *ParamGestureEvent {
	g := &ParamGestureEvent{}
	g.Set(typ, time, paramID)
	return g
}

// Set overwrites g in place.
func (g *ParamGestureEvent) Set(typ EventType, time uint32, paramID uint32) {
	*g = ParamGestureEvent{
		EventHeader: header(typ, time, gestureEventSize),
		ParamID:     paramID,
	}
}

func header(typ EventType, time, size uint32) EventHeader {
	return EventHeader{
		Size:    size,
		Time:    time,
		SpaceID: CoreEventSpaceID,
		Type:    typ,
	}
}

// CloneEvent returns a deep copy of e, including any sysex payload.
// Unknown event implementations are returned as is.
func CloneEvent(e Event) Event {
	switch ev := e.(type) {
	case *NoteEvent:
		c := *ev
		return &c
	case *MIDIEvent:
		c := *ev
		return &c
	case *MIDISysExEvent:
		c := *ev
		c.Buffer = append([]byte(nil), ev.Buffer...)
		return &c
	case *ParamValueEvent:
		c := *ev
		return &c
	case *ParamGestureEvent:
		c := *ev
		return &c
	case *TransportEvent:
		c := *ev
		return &c
	default:
		return e
	}
}

// EventList is a slice backed implementation of InputEvents and
// OutputEvents. A positive limit makes TryPush fail once the list holds
// that many events.
type EventList struct {
	events []Event
	limit  int
}

// NewEventList creates an empty list. limit <= 0 means unbounded.
func NewEventList(limit int) *EventList {
	capacity := limit
	if capacity <= 0 {
		capacity = 64
	}
	return &EventList{
		events: make([]Event, 0, capacity),
		limit:  limit,
	}
}

// Size returns the number of events.
func (l *EventList) Size() uint32 {
	return uint32(len(l.events))
}

// Get returns the event at index or nil when out of range.
func (l *EventList) Get(index uint32) Event {
	if int(index) >= len(l.events) {
		return nil
	}
	return l.events[index]
}

// Add appends e without copying. Used by hosts to build input lists.
func (l *EventList) Add(events ...Event) {
	l.events = append(l.events, events...)
}

// TryPush copies e into the list.
func (l *EventList) TryPush(e Event) bool {
	if e == nil {
		return false
	}
	if l.limit > 0 && len(l.events) >= l.limit {
		return false
	}
	l.events = append(l.events, CloneEvent(e))
	return true
}

// Events returns the underlying slice.
func (l *EventList) Events() []Event {
	return l.events
}

// Clear empties the list, keeping its storage.
func (l *EventList) Clear() {
	for i := range l.events {
		l.events[i] = nil
	}
	l.events = l.events[:0]
}
