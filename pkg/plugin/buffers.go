package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/debug"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// blockIs64 picks the block's sample width from the first input port with
// channels, else the first output port with channels.
func blockIs64(p *clap.Process) bool {
	for i := range p.AudioInputs {
		if p.AudioInputs[i].ChannelCount > 0 {
			return p.AudioInputs[i].Is64()
		}
	}
	for i := range p.AudioOutputs {
		if p.AudioOutputs[i].ChannelCount > 0 {
			return p.AudioOutputs[i].Is64()
		}
	}
	return false
}

// attachBuffers points the channel sets and the context at the host's
// buffers without copying samples.
func (b *Bridge) attachBuffers(p *clap.Process) {
	frames := int(p.FramesCount)
	wide := blockIs64(p)

	b.attach(b.inputs, p.AudioInputs, frames, wide)
	b.attach(b.outputs, p.AudioOutputs, frames, wide)

	if wide {
		b.ctx.Attach64(b.inputs.Data64(), b.outputs.Data64(), frames)
	} else {
		b.ctx.Attach32(b.inputs.Data32(), b.outputs.Data32(), frames)
	}
}

// attach flattens ports into set in port-then-channel order. Channels past
// the set's capacity are counted and ignored. Ports whose width differs
// from the block become disconnected slots.
func (b *Bridge) attach(set *process.ChannelSet, ports []clap.AudioBuffer, frames int, wide bool) {
	total := 0
	for i := range ports {
		total += int(ports[i].ChannelCount)
	}
	active := set.ResetConnections(total)
	if active < total {
		b.counters.channelOverflow.Add(uint64(total - active))
	}

	slot := 0
	for i := range ports {
		port := &ports[i]
		count := int(port.ChannelCount)
		if count == 0 {
			continue
		}
		match := port.Is64() == wide
		if !match {
			b.counters.formatMismatch.Add(1)
		}
		debug.Assert(match, "audio port sample width differs from the block")

		for ch := 0; ch < count && slot < active; ch++ {
			switch {
			case !match:
				set.Disconnect(slot)
			case wide:
				if data := channel(port.Data64, ch, frames); data != nil {
					set.Set64(slot, data)
				} else {
					set.Disconnect(slot)
				}
			default:
				if data := channel(port.Data32, ch, frames); data != nil {
					set.Set32(slot, data)
				} else {
					set.Disconnect(slot)
				}
			}
			slot++
		}
	}
}

// channel returns channel ch resliced to frames, nil when the port does
// not carry it.
func channel[T float32 | float64](data [][]T, ch, frames int) []T {
	if ch >= len(data) || data[ch] == nil {
		return nil
	}
	d := data[ch]
	return d[:min(len(d), frames)]
}
