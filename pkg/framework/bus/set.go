package bus

import (
	"errors"
	"fmt"
)

// MaxChannelsPerBus bounds the channel count of a single bus.
const MaxChannelsPerBus = 32

var (
	ErrNoConfigurations = errors.New("bus: no configurations")
	ErrInvalidChannelIO = errors.New("bus: invalid channel i/o")
)

// Set is the list of configurations a plugin supports plus its note ports.
type Set struct {
	Configs []*Configuration `yaml:"configs"`
	MIDIIn  bool             `yaml:"midi_in"`
	MIDIOut bool             `yaml:"midi_out"`
}

// NewSet creates a set from configurations.
func NewSet(configs ...*Configuration) *Set {
	return &Set{Configs: configs}
}

// WithMIDI enables the note input and output ports.
func (s *Set) WithMIDI(in, out bool) *Set {
	s.MIDIIn = in
	s.MIDIOut = out
	return s
}

// Count returns the number of configurations.
func (s *Set) Count() int {
	return len(s.Configs)
}

// Get returns configuration i, or nil.
func (s *Set) Get(i int) *Configuration {
	if i < 0 || i >= len(s.Configs) {
		return nil
	}
	return s.Configs[i]
}

// MaxChannels returns the largest total channel count in a direction over
// all configurations.
func (s *Set) MaxChannels(dir Direction) int {
	max := 0
	for _, c := range s.Configs {
		if n := c.TotalChannels(dir); n > max {
			max = n
		}
	}
	return max
}

// MaxBuses returns the largest bus count in a direction.
func (s *Set) MaxBuses(dir Direction) int {
	max := 0
	for _, c := range s.Configs {
		if n := c.NBuses(dir); n > max {
			max = n
		}
	}
	return max
}

// RequiredChannels is the channel capacity needed to attach any
// configuration in either direction.
func (s *Set) RequiredChannels() int {
	return max(s.MaxChannels(DirectionInput), s.MaxChannels(DirectionOutput))
}

// Validate checks channel counts and that at least one configuration exists.
func (s *Set) Validate() error {
	if len(s.Configs) == 0 {
		return ErrNoConfigurations
	}
	for i, c := range s.Configs {
		if c == nil {
			return fmt.Errorf("%w: configuration %d is nil", ErrInvalidChannelIO, i)
		}
		for _, dir := range []Direction{DirectionInput, DirectionOutput} {
			for b, info := range c.buses(dir) {
				if info.Channels < 0 || info.Channels > MaxChannelsPerBus {
					return fmt.Errorf("%w: configuration %d %s bus %d has %d channels",
						ErrInvalidChannelIO, i, dir, b, info.Channels)
				}
			}
		}
	}
	return nil
}

// DefaultIndex picks the configuration a fresh instance should start with.
// The host track's channel count is tried first when known, then stereo.
// Instruments may match configurations without inputs.
func (s *Set) DefaultIndex(trackChannels int, haveTrack, instrument bool) int {
	if haveTrack {
		if idx, ok := s.match(trackChannels, instrument); ok {
			return idx
		}
		if trackChannels == 2 {
			return 0
		}
	}
	if idx, ok := s.match(2, instrument); ok {
		return idx
	}
	return 0
}

func (s *Set) isMatch(c *Configuration, chans int, instrument bool) bool {
	if c.NBuses(DirectionOutput) < 1 || c.NChannels(DirectionOutput, 0) != chans {
		return false
	}
	nIn := c.NBuses(DirectionInput)
	if instrument && (nIn == 0 || c.NChannels(DirectionInput, 0) == 0) {
		return true
	}
	return nIn >= 1 && c.NChannels(DirectionInput, 0) == chans
}

// match prefers, among matching configurations, the one with the most
// output buses and then the most input buses.
func (s *Set) match(chans int, instrument bool) (int, bool) {
	best := -1
	for i, c := range s.Configs {
		if !s.isMatch(c, chans, instrument) {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := s.Configs[best]
		nOut, bestOut := c.NBuses(DirectionOutput), b.NBuses(DirectionOutput)
		if nOut > bestOut || (nOut == bestOut && c.NBuses(DirectionInput) > b.NBuses(DirectionInput)) {
			best = i
		}
	}
	return best, best >= 0
}
