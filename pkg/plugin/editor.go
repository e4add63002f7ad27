package plugin

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/clapgo/pkg/midi"
)

// Editor is the UI thread's handle on a bridge. Its methods are the
// producer side of the UI to audio queues and the consumer side of the
// audio to UI queues, so they must all be called from one goroutine.
type Editor struct {
	b *Bridge
}

// SendMIDI queues e for the core. It reports false when the queue is full.
func (e *Editor) SendMIDI(ev midi.Event) bool {
	return e.b.uiMIDI.Push(ev)
}

// SendMessage queues a gomidi channel message for the core.
func (e *Editor) SendMessage(msg gomidi.Message) bool {
	ev, ok := midi.FromMessage(0, msg)
	if !ok {
		return false
	}
	return e.SendMIDI(ev)
}

// SendNoteOn queues a note on.
func (e *Editor) SendNoteOn(channel, key, velocity uint8) bool {
	return e.SendMessage(gomidi.NoteOn(channel, key, velocity))
}

// SendNoteOff queues a note off.
func (e *Editor) SendNoteOff(channel, key uint8) bool {
	return e.SendMessage(gomidi.NoteOff(channel, key))
}

// SendControlChange queues a controller change.
func (e *Editor) SendControlChange(channel, controller, value uint8) bool {
	return e.SendMessage(gomidi.ControlChange(channel, controller, value))
}

// SendSysEx queues a system exclusive message for the core. Messages
// longer than midi.MaxSysExSize are truncated and counted.
func (e *Editor) SendSysEx(data []byte) bool {
	var s midi.SysEx
	if !s.Set(0, data) {
		e.b.counters.sysexTruncated.Add(1)
	}
	return e.b.uiSysEx.Push(s)
}

// BeginEdit starts a user gesture on parameter index.
func (e *Editor) BeginEdit(index int32) bool {
	if e.b.params.GetByIndex(index) == nil {
		return false
	}
	return e.pushChange(ParamChange{Index: index, Kind: GestureBegin})
}

// PerformEdit sets parameter index to a normalized value and queues the
// change for the host in the host's representation. The core sees the change
// through OnParamChange when the queue drains on the audio thread.
func (e *Editor) PerformEdit(index int32, normalized float64) bool {
	p := e.b.params.GetByIndex(index)
	if p == nil {
		return false
	}
	p.SetValue(normalized)
	return e.pushChange(ParamChange{Index: index, Kind: GestureValue, Value: p.HostValue()})
}

// EndEdit ends a user gesture on parameter index.
func (e *Editor) EndEdit(index int32) bool {
	if e.b.params.GetByIndex(index) == nil {
		return false
	}
	return e.pushChange(ParamChange{Index: index, Kind: GestureEnd})
}

func (e *Editor) pushChange(c ParamChange) bool {
	ok := e.b.paramChanges.Push(c)
	if ok && !e.b.processing.Load() && e.b.paramsHost != nil {
		e.b.paramsHost.RequestParamsFlush()
	}
	return ok
}

// ParamValue returns the normalized value of parameter index.
func (e *Editor) ParamValue(index int32) (float64, bool) {
	p := e.b.params.GetByIndex(index)
	if p == nil {
		return 0, false
	}
	return p.GetValue(), true
}

// PollMIDI pops the next MIDI event the host sent to the core.
func (e *Editor) PollMIDI(dst *midi.Event) bool {
	return e.b.feedbackMIDI.Pop(dst)
}

// PollSysEx pops the next sysex message the host sent to the core.
func (e *Editor) PollSysEx(dst *midi.SysEx) bool {
	return e.b.feedbackSysEx.Pop(dst)
}
