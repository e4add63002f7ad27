package process

import (
	"github.com/justyntemme/clapgo/pkg/framework/bus"
)

// busRange returns the flat channel range of a bus within a direction.
func (c *Context) busRange(dir bus.Direction, index, available int) (lo, hi int, ok bool) {
	if c.Buses == nil || index < 0 || index >= c.Buses.NBuses(dir) {
		return 0, 0, false
	}
	for b := 0; b < index; b++ {
		lo += c.Buses.NChannels(dir, b)
	}
	hi = min(lo+c.Buses.NChannels(dir, index), available)
	if lo >= hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// InputBus returns the 32-bit channels of an input bus.
func (c *Context) InputBus(index int) [][]float32 {
	if lo, hi, ok := c.busRange(bus.DirectionInput, index, len(c.Input)); ok {
		return c.Input[lo:hi]
	}
	return nil
}

// OutputBus returns the 32-bit channels of an output bus.
func (c *Context) OutputBus(index int) [][]float32 {
	if lo, hi, ok := c.busRange(bus.DirectionOutput, index, len(c.Output)); ok {
		return c.Output[lo:hi]
	}
	return nil
}

// InputBus64 returns the 64-bit channels of an input bus.
func (c *Context) InputBus64(index int) [][]float64 {
	if lo, hi, ok := c.busRange(bus.DirectionInput, index, len(c.Input64)); ok {
		return c.Input64[lo:hi]
	}
	return nil
}

// OutputBus64 returns the 64-bit channels of an output bus.
func (c *Context) OutputBus64(index int) [][]float64 {
	if lo, hi, ok := c.busRange(bus.DirectionOutput, index, len(c.Output64)); ok {
		return c.Output64[lo:hi]
	}
	return nil
}

// NumInputBuses returns the number of input buses
func (c *Context) NumInputBuses() int {
	if c.Buses == nil {
		return 0
	}
	return c.Buses.NBuses(bus.DirectionInput)
}

// NumOutputBuses returns the number of output buses
func (c *Context) NumOutputBuses() int {
	if c.Buses == nil {
		return 0
	}
	return c.Buses.NBuses(bus.DirectionOutput)
}

// SidechainIndex returns the first auxiliary input bus, or -1.
func (c *Context) SidechainIndex() int {
	for i := 0; i < c.NumInputBuses(); i++ {
		if info, _ := c.Buses.Bus(bus.DirectionInput, i); info.Aux {
			return i
		}
	}
	return -1
}

// ProcessWithSidechain processes main I/O with sidechain. The sidechain is
// nil when the configuration has none.
func (c *Context) ProcessWithSidechain(fn func(main, sidechain, output [][]float32)) {
	mainIn := c.InputBus(0)
	mainOut := c.OutputBus(0)
	if mainIn == nil || mainOut == nil {
		return
	}
	var sidechain [][]float32
	if i := c.SidechainIndex(); i >= 0 {
		sidechain = c.InputBus(i)
	}
	fn(mainIn, sidechain, mainOut)
}
