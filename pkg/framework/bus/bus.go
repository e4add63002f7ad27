// Package bus describes a plugin's audio I/O configurations and the MIDI
// ports it exposes.
package bus

import (
	"strconv"
	"strings"
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

func (d Direction) String() string {
	if d == DirectionInput {
		return "input"
	}
	return "output"
}

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info describes one audio bus.
type Info struct {
	Name     string `yaml:"name"`
	Channels int    `yaml:"channels"`
	Aux      bool   `yaml:"aux,omitempty"`
}

// BusType returns TypeAux for auxiliary buses.
func (i Info) BusType() Type {
	if i.Aux {
		return TypeAux
	}
	return TypeMain
}

// Configuration is one selectable arrangement of input and output buses.
type Configuration struct {
	Label   string `yaml:"name,omitempty"`
	Inputs  []Info `yaml:"inputs"`
	Outputs []Info `yaml:"outputs"`
}

func (c *Configuration) buses(dir Direction) []Info {
	if dir == DirectionInput {
		return c.Inputs
	}
	return c.Outputs
}

// NBuses returns the number of buses in a direction.
func (c *Configuration) NBuses(dir Direction) int {
	return len(c.buses(dir))
}

// NChannels returns the channel count of a bus, 0 when it does not exist.
func (c *Configuration) NChannels(dir Direction, bus int) int {
	buses := c.buses(dir)
	if bus < 0 || bus >= len(buses) {
		return 0
	}
	return buses[bus].Channels
}

// Bus returns a bus description.
func (c *Configuration) Bus(dir Direction, bus int) (Info, bool) {
	buses := c.buses(dir)
	if bus < 0 || bus >= len(buses) {
		return Info{}, false
	}
	return buses[bus], true
}

// TotalChannels sums the channels of every bus in a direction.
func (c *Configuration) TotalChannels(dir Direction) int {
	total := 0
	for _, b := range c.buses(dir) {
		total += b.Channels
	}
	return total
}

// Name returns the label, or a name built from the channel counts such as
// "2.2-2" for a stereo input with a stereo sidechain and a stereo output.
func (c *Configuration) Name() string {
	if c.Label != "" {
		return c.Label
	}
	var sb strings.Builder
	writeDir := func(buses []Info) {
		if len(buses) == 0 {
			sb.WriteByte('0')
			return
		}
		for i, b := range buses {
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(strconv.Itoa(b.Channels))
		}
	}
	writeDir(c.Inputs)
	sb.WriteByte('-')
	writeDir(c.Outputs)
	return sb.String()
}

// BusName returns the bus's name, or a generated one when unnamed.
func (c *Configuration) BusName(dir Direction, bus int) string {
	info, ok := c.Bus(dir, bus)
	if !ok {
		return ""
	}
	if info.Name != "" {
		return info.Name
	}
	base := "Input"
	if dir == DirectionOutput {
		base = "Output"
	}
	if c.NBuses(dir) == 1 {
		return base
	}
	if bus > 0 && dir == DirectionInput && info.Aux {
		return "Sidechain " + strconv.Itoa(bus)
	}
	return base + " " + strconv.Itoa(bus+1)
}
