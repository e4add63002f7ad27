package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/midi"
)

// processInputEvents dispatches the host's events in host order. Events
// outside the core space, unknown kinds and events whose concrete type does
// not match their header are skipped.
func (b *Bridge) processInputEvents(in clap.InputEvents) {
	if in == nil {
		return
	}

	n := in.Size()
	for i := uint32(0); i < n; i++ {
		ev := in.Get(i)
		if ev == nil {
			continue
		}
		h := ev.Header()
		if h.SpaceID != clap.CoreEventSpaceID {
			continue
		}
		offset := int32(h.Time)

		switch h.Type {
		case clap.EventNoteOn, clap.EventNoteOff:
			note, ok := ev.(*clap.NoteEvent)
			if !ok || note.Key < 0 || note.Key > 127 {
				continue
			}
			channel := uint8(note.Channel)
			if note.Channel < 0 || note.Channel > 15 {
				channel = 0
			}
			var msg midi.Event
			if h.Type == clap.EventNoteOn {
				msg = midi.NewNoteOn(offset, channel, uint8(note.Key), midi.VelocityToMIDI(note.Velocity))
			} else {
				msg = midi.NewNoteOff(offset, channel, uint8(note.Key))
			}
			b.dispatchMIDI(msg, true)

		case clap.EventMIDI:
			m, ok := ev.(*clap.MIDIEvent)
			if !ok {
				continue
			}
			b.dispatchMIDI(midi.FromBytes(offset, m.Data), true)

		case clap.EventMIDISysEx:
			s, ok := ev.(*clap.MIDISysExEvent)
			if !ok {
				continue
			}
			if !b.sysexIn.Set(offset, s.Buffer) {
				b.counters.sysexTruncated.Add(1)
			}
			b.dispatchSysEx(&b.sysexIn, true)

		case clap.EventParamValue:
			v, ok := ev.(*clap.ParamValueEvent)
			if !ok {
				continue
			}
			b.applyHostParam(v.ParamID, v.Value, offset)
		}
	}
}

// dispatchMIDI hands e to the core and, for host events, publishes it for
// the UI.
func (b *Bridge) dispatchMIDI(e midi.Event, fromHost bool) {
	if b.midiProc != nil {
		b.midiProc.ProcessMIDI(e)
	}
	if fromHost {
		b.feedbackMIDI.Push(e)
	}
}

func (b *Bridge) dispatchSysEx(s *midi.SysEx, fromHost bool) {
	if b.sysexProc != nil {
		b.sysexProc.ProcessSysEx(s)
	}
	if fromHost {
		b.feedbackSysEx.Push(*s)
	}
}

// applyHostParam sets a parameter from a host value. The host addresses
// parameters by index; continuous parameters carry normalized values and
// discrete ones plain values.
func (b *Bridge) applyHostParam(id uint32, value float64, offset int32) {
	if id >= uint32(b.params.Count()) {
		b.counters.invalidParam.Add(1)
		return
	}
	idx := int32(id)
	p := b.params.GetByIndex(idx)
	if p == nil {
		b.counters.invalidParam.Add(1)
		return
	}
	p.SetHostValue(value)
	if b.paramListener != nil {
		b.paramListener.OnParamChange(idx, param.SourceHost, offset)
	}
}

// drainUIQueues dispatches what the UI queued before this block started.
func (b *Bridge) drainUIQueues() {
	var e midi.Event
	for n := b.uiMIDI.Len(); n > 0 && b.uiMIDI.Pop(&e); n-- {
		b.dispatchMIDI(e, false)
	}
	for n := b.uiSysEx.Len(); n > 0 && b.uiSysEx.Pop(&b.sysexIn); n-- {
		b.dispatchSysEx(&b.sysexIn, false)
	}
}
