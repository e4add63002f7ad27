// Package clap models the host side of the CLAP plugin ABI as plain Go types.
//
// The structs mirror the C layout closely enough that a cgo shim can fill them
// in place, but nothing in this package depends on cgo. Hosts written in Go
// and tests construct them directly.
package clap

// Event spaces
const (
	CoreEventSpaceID uint16 = 0
)

// EventType identifies the payload carried behind an EventHeader.
type EventType uint16

// Core event types
const (
	EventNoteOn EventType = iota
	EventNoteOff
	EventNoteChoke
	EventNoteEnd
	EventNoteExpression
	EventParamValue
	EventParamMod
	EventParamGestureBegin
	EventParamGestureEnd
	EventTransport
	EventMIDI
	EventMIDISysEx
	EventMIDI2
)

var eventTypeNames = [...]string{
	"note_on", "note_off", "note_choke", "note_end", "note_expression",
	"param_value", "param_mod", "param_gesture_begin", "param_gesture_end",
	"transport", "midi", "midi_sysex", "midi2",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event flags
const (
	EventIsLive     uint32 = 1 << 0
	EventDontRecord uint32 = 1 << 1
)

// Fixed point factors used by the transport timeline.
const (
	BeatTimeFactor = int64(1) << 31
	SecTimeFactor  = int64(1) << 31
)

// Transport flags
const (
	TransportHasTempo           uint32 = 1 << 0
	TransportHasBeatsTimeline   uint32 = 1 << 1
	TransportHasSecondsTimeline uint32 = 1 << 2
	TransportHasTimeSignature   uint32 = 1 << 3
	TransportIsPlaying          uint32 = 1 << 4
	TransportIsRecording        uint32 = 1 << 5
	TransportIsLoopActive       uint32 = 1 << 6
	TransportIsWithinPreRoll    uint32 = 1 << 7
)

// ProcessStatus is returned by a plugin's process callback.
type ProcessStatus int32

const (
	ProcessError ProcessStatus = iota
	ProcessContinue
	ProcessContinueIfNotQuiet
	ProcessTail
	ProcessSleep
)

func (s ProcessStatus) String() string {
	switch s {
	case ProcessError:
		return "error"
	case ProcessContinue:
		return "continue"
	case ProcessContinueIfNotQuiet:
		return "continue_if_not_quiet"
	case ProcessTail:
		return "tail"
	case ProcessSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// Parameter info flags
const (
	ParamIsStepped       uint32 = 1 << 0
	ParamIsPeriodic      uint32 = 1 << 1
	ParamIsHidden        uint32 = 1 << 2
	ParamIsReadonly      uint32 = 1 << 3
	ParamIsBypass        uint32 = 1 << 4
	ParamIsAutomatable   uint32 = 1 << 5
	ParamIsModulatable   uint32 = 1 << 10
	ParamRequiresProcess uint32 = 1 << 15
)

// Audio port flags
const (
	AudioPortIsMain                   uint32 = 1 << 0
	AudioPortSupports64Bits           uint32 = 1 << 1
	AudioPortPrefers64Bits            uint32 = 1 << 2
	AudioPortRequiresCommonSampleSize uint32 = 1 << 3
)

// Audio port types
const (
	PortMono   = "mono"
	PortStereo = "stereo"
)

// Note dialects
const (
	NoteDialectCLAP uint32 = 1 << 0
	NoteDialectMIDI uint32 = 1 << 1
)

// InvalidID marks an absent port or parameter id.
const InvalidID = ^uint32(0)

// Size limits for strings copied into host structs.
const (
	NameSize = 256
	PathSize = 1024
)

// Error codes
type Error int

const (
	ErrShortWrite Error = -1
	ErrStreamRead Error = -2
	ErrStreamEOF  Error = -3
)

func (e Error) Error() string {
	switch e {
	case ErrShortWrite:
		return "clap: short stream write"
	case ErrStreamRead:
		return "clap: stream read failed"
	case ErrStreamEOF:
		return "clap: unexpected end of stream"
	default:
		return "clap: unknown error"
	}
}
