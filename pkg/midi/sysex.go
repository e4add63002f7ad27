package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MaxSysExSize is the payload capacity of a SysEx value.
const MaxSysExSize = 512

// SysEx is a system exclusive message stamped with a sample offset. The
// payload lives inline so the value can be copied through lock-free queues.
type SysEx struct {
	Offset int32
	Size   int32
	Data   [MaxSysExSize]byte
}

// NewSysEx copies data into a SysEx. It reports false when data had to be
// truncated.
func NewSysEx(offset int32, data []byte) (SysEx, bool) {
	var s SysEx
	ok := s.Set(offset, data)
	return s, ok
}

// Set overwrites s in place. It reports false when data had to be truncated.
func (s *SysEx) Set(offset int32, data []byte) bool {
	n := copy(s.Data[:], data)
	s.Offset = offset
	s.Size = int32(n)
	return n == len(data)
}

// Bytes returns the valid part of the payload.
func (s *SysEx) Bytes() []byte {
	return s.Data[:s.Size]
}

// Message returns the payload as a gomidi message.
func (s *SysEx) Message() gomidi.Message {
	return gomidi.Message(s.Bytes())
}

// Framed reports whether the payload starts with 0xF0 and ends with 0xF7.
func (s *SysEx) Framed() bool {
	var body []byte
	return s.Size >= 2 && s.Message().GetSysEx(&body)
}

func (s *SysEx) String() string {
	return fmt.Sprintf("SysEx{size:%d, offset:%d}", s.Size, s.Offset)
}
