package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/midi"
)

// processOutputEvents serializes, in order: every queued parameter record,
// the MIDI due in this block, and every queued sysex. Remaining MIDI is
// rebased onto the next block.
func (b *Bridge) processOutputEvents(out clap.OutputEvents, nFrames uint32) {
	b.drainParamChanges(out)

	for b.outMIDI.ToDo() > 0 {
		e := b.outMIDI.Peek()
		if e.Offset > int32(nFrames) {
			break
		}
		b.pushMIDI(out, e)
		b.outMIDI.Remove()
	}
	b.outMIDI.Flush(int32(nFrames))

	for n := b.outSysEx.Len(); n > 0 && b.outSysEx.Pop(&b.sysexDrain); n-- {
		b.sysexEvent.Set(uint32(max(b.sysexDrain.Offset, 0)), b.sysexDrain.Bytes())
		b.push(out, &b.sysexEvent)
	}
}

// drainParamChanges emits the UI's parameter records in FIFO order, all at
// time 0.
func (b *Bridge) drainParamChanges(out clap.OutputEvents) {
	for n := b.paramChanges.Len(); n > 0 && b.paramChanges.Pop(&b.change); n-- {
		id := uint32(b.change.Index)
		switch b.change.Kind {
		case GestureBegin:
			b.gestureOut.Set(clap.EventParamGestureBegin, 0, id)
			b.push(out, &b.gestureOut)
		case GestureEnd:
			b.gestureOut.Set(clap.EventParamGestureEnd, 0, id)
			b.push(out, &b.gestureOut)
		default:
			if b.paramListener != nil {
				b.paramListener.OnParamChange(b.change.Index, param.SourceUI, 0)
			}
			b.valueOut.Set(0, id, b.change.Value)
			b.push(out, &b.valueOut)
		}
	}
}

func (b *Bridge) pushMIDI(out clap.OutputEvents, e midi.Event) {
	time := uint32(max(e.Offset, 0))
	switch e.Kind() {
	case midi.EventTypeNoteOn:
		b.noteOut.Set(clap.EventNoteOn, time, int16(e.Channel()), int16(e.Data1), e.Velocity())
		b.push(out, &b.noteOut)
	case midi.EventTypeNoteOff:
		b.noteOut.Set(clap.EventNoteOff, time, int16(e.Channel()), int16(e.Data1), e.Velocity())
		b.push(out, &b.noteOut)
	default:
		b.midiOut.Set(time, e.Status, e.Data1, e.Data2)
		b.push(out, &b.midiOut)
	}
}

// push hands ev to the host once; a rejected event is counted and dropped.
func (b *Bridge) push(out clap.OutputEvents, ev clap.Event) {
	if out == nil || !out.TryPush(ev) {
		b.counters.outputRejected.Add(1)
	}
}
