package plugin

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/justyntemme/clapgo/pkg/framework/queue"
)

// counters are written on the audio thread and read anywhere.
type counters struct {
	outputRejected    atomic.Uint64
	outputMIDIDropped atomic.Uint64
	invalidParam      atomic.Uint64
	sysexTruncated    atomic.Uint64
	channelOverflow   atomic.Uint64
	formatMismatch    atomic.Uint64
	panics            atomic.Uint64
}

// Stats is a snapshot of queue fill levels and loss counters.
type Stats struct {
	UIMIDI        queue.Stats
	UISysEx       queue.Stats
	FeedbackMIDI  queue.Stats
	FeedbackSysEx queue.Stats
	ParamChanges  queue.Stats
	OutputSysEx   queue.Stats

	// OutputMIDIDropped counts MIDI the core sent while the output queue
	// was full, as of the last block.
	OutputMIDIDropped uint64
	// OutputRejected counts events the host refused on push.
	OutputRejected uint64
	// InvalidParamIndex counts host value events for unknown parameters.
	InvalidParamIndex uint64
	// SysExTruncated counts messages longer than midi.MaxSysExSize.
	SysExTruncated uint64
	// ChannelOverflow counts host channels beyond the channel capacity.
	ChannelOverflow uint64
	// FormatMismatch counts ports whose sample width differed from the block.
	FormatMismatch uint64
	// Panics counts blocks aborted by a panic in the core.
	Panics uint64
}

// Stats returns the current counters. It is safe on any thread.
func (b *Bridge) Stats() Stats {
	return Stats{
		UIMIDI:            b.uiMIDI.Stats(),
		UISysEx:           b.uiSysEx.Stats(),
		FeedbackMIDI:      b.feedbackMIDI.Stats(),
		FeedbackSysEx:     b.feedbackSysEx.Stats(),
		ParamChanges:      b.paramChanges.Stats(),
		OutputSysEx:       b.outSysEx.Stats(),
		OutputMIDIDropped: b.counters.outputMIDIDropped.Load(),
		OutputRejected:    b.counters.outputRejected.Load(),
		InvalidParamIndex: b.counters.invalidParam.Load(),
		SysExTruncated:    b.counters.sysexTruncated.Load(),
		ChannelOverflow:   b.counters.channelOverflow.Load(),
		FormatMismatch:    b.counters.formatMismatch.Load(),
		Panics:            b.counters.panics.Load(),
	}
}

// Dropped returns the number of events lost to full queues or host
// rejection.
func (s Stats) Dropped() uint64 {
	return s.UIMIDI.Dropped + s.UISysEx.Dropped + s.FeedbackMIDI.Dropped +
		s.FeedbackSysEx.Dropped + s.ParamChanges.Dropped + s.OutputSysEx.Dropped +
		s.OutputMIDIDropped + s.OutputRejected
}

func (s Stats) String() string {
	var parts []string
	add := func(name string, n uint64) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", name, n))
		}
	}
	add("ui_midi", s.UIMIDI.Dropped)
	add("ui_sysex", s.UISysEx.Dropped)
	add("feedback_midi", s.FeedbackMIDI.Dropped)
	add("feedback_sysex", s.FeedbackSysEx.Dropped)
	add("param_changes", s.ParamChanges.Dropped)
	add("output_sysex", s.OutputSysEx.Dropped)
	add("output_midi", s.OutputMIDIDropped)
	add("host_rejected", s.OutputRejected)
	add("invalid_param", s.InvalidParamIndex)
	add("sysex_truncated", s.SysExTruncated)
	add("channel_overflow", s.ChannelOverflow)
	add("format_mismatch", s.FormatMismatch)
	add("panics", s.Panics)
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
