// Package process provides the per-block processing context handed to a
// plugin core: attached audio channels, musical time, parameters and the
// outbound event sink.
package process

import (
	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"

	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/midi"
)

// Format is the sample width of the current block.
type Format int

const (
	Format32 Format = iota
	Format64
)

func (f Format) String() string {
	if f == Format64 {
		return "float64"
	}
	return "float32"
}

// EventSink receives events the core generates on the audio thread.
type EventSink interface {
	SendMIDI(e midi.Event) bool
	SendSysEx(offset int32, data []byte) bool
	SetTailSize(samples int, infinite bool)
}

// Context provides a clean API for audio processing with zero allocations.
// Only the slices matching Format() are populated on a given block.
type Context struct {
	Input    [][]float32
	Output   [][]float32
	Input64  [][]float64
	Output64 [][]float64

	SampleRate float64

	// Buses is the active I/O configuration; it selects the bus views.
	Buses *bus.Configuration

	format     Format
	numSamples int
	offline    bool
	time       *TimeInfo

	// Pre-allocated work buffers
	workBuffer []float32
	tempBuffer []float32

	// Widening storage for Wide/Commit on 32-bit blocks
	wideIn      [][]float64
	wideOut     [][]float64
	wideInView  [][]float64
	wideOutView [][]float64
	widened     bool

	params *param.Registry
	sink   EventSink
}

// NewContext creates a new process context with pre-allocated buffers
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	t := DefaultTimeInfo()
	return &Context{
		workBuffer: make([]float32, maxBlockSize),
		tempBuffer: make([]float32, maxBlockSize),
		time:       &t,
		params:     params,
	}
}

// Reserve sizes the widening storage. It allocates and must be called off
// the audio thread.
func (c *Context) Reserve(maxChannels, maxBlockSize int) {
	if len(c.workBuffer) < maxBlockSize {
		c.workBuffer = make([]float32, maxBlockSize)
		c.tempBuffer = make([]float32, maxBlockSize)
	}
	c.wideIn = makePlanes(maxChannels, maxBlockSize)
	c.wideOut = makePlanes(maxChannels, maxBlockSize)
	c.wideInView = make([][]float64, maxChannels)
	c.wideOutView = make([][]float64, maxChannels)
}

func makePlanes(channels, frames int) [][]float64 {
	planes := make([][]float64, channels)
	for i := range planes {
		planes[i] = make([]float64, frames)
	}
	return planes
}

// SetSink installs the receiver for SendMIDI, SendSysEx and SetTailSize.
func (c *Context) SetSink(s EventSink) {
	c.sink = s
}

// SetTime points the context at the time info owned by the caller.
func (c *Context) SetTime(t *TimeInfo) {
	if t != nil {
		c.time = t
	}
}

// SetOffline records the render mode.
func (c *Context) SetOffline(offline bool) {
	c.offline = offline
}

// Attach32 sets up a 32-bit block.
func (c *Context) Attach32(in, out [][]float32, numSamples int) {
	c.format = Format32
	c.Input, c.Output = in, out
	c.Input64, c.Output64 = nil, nil
	c.numSamples = numSamples
	c.widened = false
}

// Attach64 sets up a 64-bit block.
func (c *Context) Attach64(in, out [][]float64, numSamples int) {
	c.format = Format64
	c.Input, c.Output = nil, nil
	c.Input64, c.Output64 = in, out
	c.numSamples = numSamples
	c.widened = false
}

// Format returns the sample width of the current block.
func (c *Context) Format() Format {
	return c.format
}

// Is64 reports whether the current block is 64-bit.
func (c *Context) Is64() bool {
	return c.format == Format64
}

// IsOffline reports whether the host is rendering faster than real time.
func (c *Context) IsOffline() bool {
	return c.offline
}

// Time returns a copy of the current musical time.
func (c *Context) Time() TimeInfo {
	return *c.time
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	return c.numSamples
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	if c.format == Format64 {
		return len(c.Input64)
	}
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	if c.format == Format64 {
		return len(c.Output64)
	}
	return len(c.Output)
}

// WorkBuffer returns a slice of the pre-allocated work buffer
// sized to the current block size - no allocation!
func (c *Context) WorkBuffer() []float32 {
	return c.workBuffer[:min(c.numSamples, len(c.workBuffer))]
}

// TempBuffer returns a slice of the pre-allocated temp buffer
// sized to the current block size - no allocation!
func (c *Context) TempBuffer() []float32 {
	return c.tempBuffer[:min(c.numSamples, len(c.tempBuffer))]
}

// PassThrough copies input to output (for bypass)
func (c *Context) PassThrough() {
	if c.format == Format64 {
		for ch := range min(len(c.Input64), len(c.Output64)) {
			copy(c.Output64[ch], c.Input64[ch])
		}
		return
	}
	for ch := range min(len(c.Input), len(c.Output)) {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for _, out := range c.Output {
		clear(out)
	}
	for _, out := range c.Output64 {
		clear(out)
	}
}

// Wide returns 64-bit views of the block. On a 32-bit block the inputs are
// widened into reserved storage and the outputs must be narrowed back with
// Commit. On a 64-bit block the host buffers are returned directly.
func (c *Context) Wide() (in, out [][]float64) {
	if c.format == Format64 {
		return c.Input64, c.Output64
	}
	nIn := min(len(c.Input), len(c.wideIn))
	for ch := range nIn {
		n := min(len(c.Input[ch]), len(c.wideIn[ch]))
		c.wideInView[ch] = c.wideIn[ch][:n]
		vek.FromFloat32_Into(c.wideInView[ch], c.Input[ch][:n])
	}
	nOut := min(len(c.Output), len(c.wideOut))
	for ch := range nOut {
		n := min(len(c.Output[ch]), len(c.wideOut[ch]))
		c.wideOutView[ch] = c.wideOut[ch][:n]
		clear(c.wideOutView[ch])
	}
	c.widened = true
	return c.wideInView[:nIn], c.wideOutView[:nOut]
}

// Commit narrows the outputs written through Wide into the 32-bit host
// buffers. It does nothing on a 64-bit block or when Wide was not called.
func (c *Context) Commit() {
	if c.format == Format64 || !c.widened {
		return
	}
	for ch := range min(len(c.Output), len(c.wideOutView)) {
		src := c.wideOutView[ch]
		n := min(len(src), len(c.Output[ch]))
		vek32.FromFloat64_Into(c.Output[ch][:n], src[:n])
	}
	c.widened = false
}

// SendMIDI queues a MIDI event for the host at e.Offset. It reports false
// when the event was dropped.
func (c *Context) SendMIDI(e midi.Event) bool {
	if c.sink == nil {
		return false
	}
	return c.sink.SendMIDI(e)
}

// SendSysEx queues a system exclusive message for the host.
func (c *Context) SendSysEx(offset int32, data []byte) bool {
	if c.sink == nil {
		return false
	}
	return c.sink.SendSysEx(offset, data)
}

// SetTailSize reports a new tail length in samples.
func (c *Context) SetTailSize(samples int) {
	if c.sink != nil {
		c.sink.SetTailSize(samples, false)
	}
}

// SetTailInfinite reports that the plugin rings forever.
func (c *Context) SetTailInfinite() {
	if c.sink != nil {
		c.sink.SetTailSize(0, true)
	}
}
