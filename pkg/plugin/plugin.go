// Package plugin bridges a CLAP-style host and a Go plugin core: it
// translates the host transport, demultiplexes inbound events, attaches
// audio buffers, runs the core and serializes outbound events, all without
// blocking or allocating on the audio thread.
package plugin

import (
	"io"

	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/plugin"
	"github.com/justyntemme/clapgo/pkg/framework/process"
	"github.com/justyntemme/clapgo/pkg/midi"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called on activation with the host's sample rate and
	// largest block size
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the selectable I/O configurations
	GetBuses() *bus.Set

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// The interfaces below are optional. The bridge discovers them once, when
// it is created.

// MIDIProcessor receives MIDI from the host and the UI on the audio thread.
type MIDIProcessor interface {
	ProcessMIDI(e midi.Event)
}

// SysExProcessor receives system exclusive messages on the audio thread.
// The message is only valid for the duration of the call.
type SysExProcessor interface {
	ProcessSysEx(s *midi.SysEx)
}

// ParamChangeListener is notified after the bridge applied a parameter
// value. offset is the sample offset within the block, 0 outside Process.
type ParamChangeListener interface {
	OnParamChange(index int32, source param.Source, offset int32)
}

// ParamResetter is notified after every parameter was set to its default
// or to loaded state.
type ParamResetter interface {
	OnParamReset(source param.Source)
}

// Resetter clears DSP state such as delay lines and envelopes.
type Resetter interface {
	Reset()
}

// StateProcessor stores data beyond parameter values in the state blob.
type StateProcessor interface {
	SaveState(w io.Writer) error
	LoadState(r io.Reader) error
}

// TailReporter reports a tail that GetTailSamples cannot express.
type TailReporter interface {
	TailSize() (samples int, infinite bool)
}

// RenderModeListener is told when the host switches between real-time and
// offline rendering.
type RenderModeListener interface {
	OnRenderMode(offline bool)
}
