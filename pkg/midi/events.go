package midi

import (
	"fmt"
	"math"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// EventType is the kind of a channel voice or system message.
type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
	EventTypeSystem
)

// Status nibbles
const (
	StatusNoteOff         byte = 0x80
	StatusNoteOn          byte = 0x90
	StatusPolyPressure    byte = 0xA0
	StatusControlChange   byte = 0xB0
	StatusProgramChange   byte = 0xC0
	StatusChannelPressure byte = 0xD0
	StatusPitchBend       byte = 0xE0
	StatusSystem          byte = 0xF0
)

// DefaultReleaseVelocity is used for note offs that carry no velocity.
const DefaultReleaseVelocity byte = 64

const (
	CCModWheel    uint8 = 1
	CCVolume      uint8 = 7
	CCPan         uint8 = 10
	CCExpression  uint8 = 11
	CCSustain     uint8 = 64
	CCAllSoundOff uint8 = 120
	CCResetAll    uint8 = 121
	CCAllNotesOff uint8 = 123
)

// Event is a short MIDI message stamped with a sample offset. It is a plain
// value and is copied through queues.
type Event struct {
	Offset int32
	Status byte
	Data1  byte
	Data2  byte
}

// NewNoteOn builds a note on for channel 0-15.
func NewNoteOn(offset int32, channel, key, velocity uint8) Event {
	return Event{
		Offset: offset,
		Status: StatusNoteOn | channel&0x0F,
		Data1:  key & 0x7F,
		Data2:  velocity & 0x7F,
	}
}

// NewNoteOff builds a note off with the default release velocity.
func NewNoteOff(offset int32, channel, key uint8) Event {
	return Event{
		Offset: offset,
		Status: StatusNoteOff | channel&0x0F,
		Data1:  key & 0x7F,
		Data2:  DefaultReleaseVelocity,
	}
}

// NewControlChange builds a control change.
func NewControlChange(offset int32, channel, controller, value uint8) Event {
	return Event{
		Offset: offset,
		Status: StatusControlChange | channel&0x0F,
		Data1:  controller & 0x7F,
		Data2:  value & 0x7F,
	}
}

// FromBytes builds an event from a raw three byte message.
func FromBytes(offset int32, data [3]byte) Event {
	return Event{Offset: offset, Status: data[0], Data1: data[1], Data2: data[2]}
}

// FromMessage converts a gomidi channel message. Messages longer than three
// bytes are rejected.
func FromMessage(offset int32, msg gomidi.Message) (Event, bool) {
	if len(msg) == 0 || len(msg) > 3 || msg[0]&0x80 == 0 {
		return Event{}, false
	}
	var data [3]byte
	copy(data[:], msg)
	return FromBytes(offset, data), true
}

// VelocityToMIDI maps a 0-1 velocity onto 0-127 with rounding.
func VelocityToMIDI(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 127
	}
	return uint8(math.Round(v * 127))
}

// Kind returns the message kind derived from the status byte.
func (e Event) Kind() EventType {
	switch e.Status & 0xF0 {
	case StatusNoteOff:
		return EventTypeNoteOff
	case StatusNoteOn:
		return EventTypeNoteOn
	case StatusPolyPressure:
		return EventTypePolyPressure
	case StatusControlChange:
		return EventTypeControlChange
	case StatusProgramChange:
		return EventTypeProgramChange
	case StatusChannelPressure:
		return EventTypeChannelPressure
	case StatusPitchBend:
		return EventTypePitchBend
	default:
		return EventTypeSystem
	}
}

// Channel returns the channel nibble.
func (e Event) Channel() uint8 {
	return e.Status & 0x0F
}

// Velocity returns data2 as 0-1.
func (e Event) Velocity() float64 {
	return float64(e.Data2) / 127.0
}

// Bytes returns the raw message.
func (e Event) Bytes() [3]byte {
	return [3]byte{e.Status, e.Data1, e.Data2}
}

// Message returns the event as a gomidi message, trimmed to the length its
// status implies.
func (e Event) Message() gomidi.Message {
	switch e.Kind() {
	case EventTypeProgramChange, EventTypeChannelPressure:
		return gomidi.Message{e.Status, e.Data1}
	default:
		return gomidi.Message{e.Status, e.Data1, e.Data2}
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s offset:%d", e.Message().String(), e.Offset)
}
