package plugin

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/bus"
)

const audioPortFlags = clap.AudioPortSupports64Bits | clap.AudioPortPrefers64Bits | clap.AudioPortRequiresCommonSampleSize

func direction(isInput bool) bus.Direction {
	if isInput {
		return bus.DirectionInput
	}
	return bus.DirectionOutput
}

func portType(channels int) string {
	switch channels {
	case 1:
		return clap.PortMono
	case 2:
		return clap.PortStereo
	default:
		return ""
	}
}

func (b *Bridge) config() *bus.Configuration {
	return b.buses.Get(b.configIndex)
}

// AudioPortsCount returns the number of ports in the selected
// configuration.
func (b *Bridge) AudioPortsCount(isInput bool) uint32 {
	return uint32(b.config().NBuses(direction(isInput)))
}

// AudioPortsInfo describes a port of the selected configuration. Port ids
// are bus indices; the first bus in each direction is the main port.
func (b *Bridge) AudioPortsInfo(index uint32, isInput bool) (clap.AudioPortInfo, bool) {
	c := b.config()
	dir := direction(isInput)
	info, ok := c.Bus(dir, int(index))
	if !ok {
		return clap.AudioPortInfo{}, false
	}
	flags := audioPortFlags
	if index == 0 {
		flags |= clap.AudioPortIsMain
	}
	return clap.AudioPortInfo{
		ID:           index,
		Name:         truncate(c.BusName(dir, int(index)), clap.NameSize),
		Flags:        flags,
		ChannelCount: uint32(info.Channels),
		PortType:     portType(info.Channels),
		InPlacePair:  clap.InvalidID,
	}, true
}

// AudioPortsConfigCount returns the number of selectable configurations.
func (b *Bridge) AudioPortsConfigCount() uint32 {
	return uint32(b.buses.Count())
}

// AudioPortsGetConfig describes configuration index.
func (b *Bridge) AudioPortsGetConfig(index uint32) (clap.AudioPortsConfig, bool) {
	c := b.buses.Get(int(index))
	if c == nil {
		return clap.AudioPortsConfig{}, false
	}
	out := clap.AudioPortsConfig{
		ID:              index,
		Name:            truncate(c.Name(), clap.NameSize),
		InputPortCount:  uint32(c.NBuses(bus.DirectionInput)),
		OutputPortCount: uint32(c.NBuses(bus.DirectionOutput)),
	}
	if in, ok := c.Bus(bus.DirectionInput, 0); ok {
		out.HasMainInput = true
		out.MainInputChannelCount = uint32(in.Channels)
		out.MainInputPortType = portType(in.Channels)
	}
	if o, ok := c.Bus(bus.DirectionOutput, 0); ok {
		out.HasMainOutput = true
		out.MainOutputChannelCount = uint32(o.Channels)
		out.MainOutputPortType = portType(o.Channels)
	}
	return out, true
}

// AudioPortsSetConfig selects configuration id. It is refused while the
// bridge is active.
func (b *Bridge) AudioPortsSetConfig(id uint32) bool {
	if b.active.Load() {
		b.log.Warn("set config %d: %v", id, ErrActive)
		return false
	}
	if b.buses.Get(int(id)) == nil {
		return false
	}
	b.selectConfig(int(id))
	b.log.Info("configuration %d (%s)", id, b.config().Name())
	return true
}

// AudioPortsConfigIndex returns the selected configuration.
func (b *Bridge) AudioPortsConfigIndex() uint32 {
	return uint32(b.configIndex)
}

// NotePortsCount returns 1 when the plugin has a note port in that
// direction.
func (b *Bridge) NotePortsCount(isInput bool) uint32 {
	if (isInput && b.buses.MIDIIn) || (!isInput && b.buses.MIDIOut) {
		return 1
	}
	return 0
}

// NotePortsInfo describes the single MIDI port in a direction.
func (b *Bridge) NotePortsInfo(index uint32, isInput bool) (clap.NotePortInfo, bool) {
	if index != 0 || b.NotePortsCount(isInput) == 0 {
		return clap.NotePortInfo{}, false
	}
	name := "MIDI Output"
	if isInput {
		name = "MIDI Input"
	}
	return clap.NotePortInfo{
		ID:                0,
		SupportedDialects: clap.NoteDialectMIDI,
		PreferredDialect:  clap.NoteDialectMIDI,
		Name:              name,
	}, true
}
