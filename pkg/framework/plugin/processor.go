// Package plugin provides base processor functionality to reduce boilerplate in plugin cores.
package plugin

import (
	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	*Base
	buses        *bus.Set
	sampleRate   float64
	maxBlockSize int32
	latency      int32
	tail         int32

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
	onReset      func()
}

// NewBaseProcessor creates a new base processor with the given I/O configurations
func NewBaseProcessor(info Info, buses *bus.Set) *BaseProcessor {
	if buses == nil || buses.Count() == 0 {
		buses = bus.NewSet(bus.NewEffectStereo()) // Default to stereo
	}

	return &BaseProcessor{
		Base:  NewBase(info),
		buses: buses,
	}
}

// Initialize implements the Processor interface
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}

	return nil
}

// GetParameters implements the Processor interface
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.Parameters()
}

// GetBuses implements the Processor interface
func (b *BaseProcessor) GetBuses() *bus.Set {
	return b.buses
}

// SetActive implements the Processor interface
func (b *BaseProcessor) SetActive(active bool) error {
	if b.onSetActive != nil {
		return b.onSetActive(active)
	}
	return nil
}

// Reset clears DSP state. The bridge calls it on activation.
func (b *BaseProcessor) Reset() {
	if b.onReset != nil {
		b.onReset()
	}
}

// GetLatencySamples implements the Processor interface
func (b *BaseProcessor) GetLatencySamples() int32 {
	return b.latency
}

// GetTailSamples implements the Processor interface
func (b *BaseProcessor) GetTailSamples() int32 {
	return b.tail
}

// SetLatencySamples sets the value reported by GetLatencySamples.
func (b *BaseProcessor) SetLatencySamples(n int32) {
	b.latency = n
}

// SetTailSamples sets the value reported by GetTailSamples.
func (b *BaseProcessor) SetTailSamples(n int32) {
	b.tail = n
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the largest block the host will send.
func (b *BaseProcessor) MaxBlockSize() int32 {
	return b.maxBlockSize
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}

// SimpleProcessor provides an even simpler base for basic effects
type SimpleProcessor struct {
	*BaseProcessor
	processFunc func(ctx *process.Context)
}

// NewSimpleProcessor creates a processor with just a process function
func NewSimpleProcessor(info Info, buses *bus.Set, processFunc func(ctx *process.Context)) *SimpleProcessor {
	return &SimpleProcessor{
		BaseProcessor: NewBaseProcessor(info, buses),
		processFunc:   processFunc,
	}
}

// ProcessAudio implements the audio processing
func (s *SimpleProcessor) ProcessAudio(ctx *process.Context) {
	if s.processFunc != nil {
		s.processFunc(ctx)
	}
}
