package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestNoteOnEvent(t *testing.T) {
	event := NewNoteOn(100, 3, 60, 64)

	if event.Kind() != EventTypeNoteOn {
		t.Errorf("Expected kind %v, got %v", EventTypeNoteOn, event.Kind())
	}
	if event.Channel() != 3 {
		t.Errorf("Expected channel 3, got %d", event.Channel())
	}
	if event.Offset != 100 {
		t.Errorf("Expected offset 100, got %d", event.Offset)
	}

	var ch, key, vel uint8
	if !event.Message().GetNoteOn(&ch, &key, &vel) {
		t.Fatal("Expected gomidi to decode a note on")
	}
	if ch != 3 || key != 60 || vel != 64 {
		t.Errorf("Decoded ch:%d key:%d vel:%d", ch, key, vel)
	}
}

func TestNoteOffEvent(t *testing.T) {
	event := NewNoteOff(200, 1, 72)

	if event.Kind() != EventTypeNoteOff {
		t.Errorf("Expected kind %v, got %v", EventTypeNoteOff, event.Kind())
	}
	if event.Data2 != DefaultReleaseVelocity {
		t.Errorf("Expected release velocity %d, got %d", DefaultReleaseVelocity, event.Data2)
	}
}

func TestFromMessage(t *testing.T) {
	event, ok := FromMessage(7, gomidi.ControlChange(2, CCSustain, 127))
	if !ok {
		t.Fatal("Expected control change to convert")
	}
	if event.Kind() != EventTypeControlChange || event.Channel() != 2 {
		t.Errorf("Unexpected event %v", event)
	}
	if event.Data1 != CCSustain || event.Data2 != 127 {
		t.Errorf("Expected sustain 127, got %d %d", event.Data1, event.Data2)
	}

	if _, ok := FromMessage(0, gomidi.Message{0xF0, 0x01, 0x02, 0xF7}); ok {
		t.Error("Expected four byte message to be rejected")
	}
	if _, ok := FromMessage(0, gomidi.Message{0x40}); ok {
		t.Error("Expected message without status to be rejected")
	}
}

func TestProgramChangeMessageLength(t *testing.T) {
	event := FromBytes(0, [3]byte{StatusProgramChange | 4, 12, 0})
	if len(event.Message()) != 2 {
		t.Errorf("Expected two byte program change, got %d bytes", len(event.Message()))
	}
}

func TestVelocityToMIDI(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-0.5, 0},
		{1, 127},
		{1.5, 127},
		{0.5, 64},
		{100.0 / 127.0, 100},
		{0.004, 1},
		{0.003, 0},
	}

	for _, tt := range tests {
		if got := VelocityToMIDI(tt.in); got != tt.want {
			t.Errorf("VelocityToMIDI(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVelocityRoundTrip(t *testing.T) {
	for v := 0; v <= 127; v++ {
		got := VelocityToMIDI(float64(v) / 127.0)
		if int(got) != v {
			t.Errorf("Velocity %d round tripped to %d", v, got)
		}
	}
}

func TestSysEx(t *testing.T) {
	payload := []byte{0xF0, 0x7E, 0x00, 0x06, 0x01, 0xF7}
	s, ok := NewSysEx(12, payload)
	if !ok {
		t.Fatal("Expected payload to fit")
	}
	if s.Size != int32(len(payload)) || s.Offset != 12 {
		t.Errorf("Unexpected size %d offset %d", s.Size, s.Offset)
	}
	if !s.Framed() {
		t.Error("Expected framed sysex")
	}

	payload[1] = 0
	if s.Bytes()[1] != 0x7E {
		t.Error("SysEx must own its payload")
	}
}

func TestSysExTruncation(t *testing.T) {
	big := make([]byte, MaxSysExSize+10)
	s, ok := NewSysEx(0, big)
	if ok {
		t.Error("Expected truncation to be reported")
	}
	if s.Size != MaxSysExSize {
		t.Errorf("Expected size %d, got %d", MaxSysExSize, s.Size)
	}
}
