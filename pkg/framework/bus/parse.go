package bus

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseChannelIO parses a channel I/O string such as "1-1 2-2 2.2-2".
// Configurations are separated by spaces, directions by '-' and buses by
// '.'. Every bus after the first input bus is treated as a sidechain.
func ParseChannelIO(s string) (*Set, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ErrNoConfigurations
	}

	set := &Set{}
	for _, f := range fields {
		in, out, ok := strings.Cut(f, "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q has no '-'", ErrInvalidChannelIO, f)
		}
		inputs, err := parseBuses(in, true)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", f, err)
		}
		outputs, err := parseBuses(out, false)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", f, err)
		}
		set.Configs = append(set.Configs, &Configuration{Inputs: inputs, Outputs: outputs})
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func parseBuses(s string, input bool) ([]Info, error) {
	parts := strings.Split(s, ".")
	buses := make([]Info, 0, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad channel count %q", ErrInvalidChannelIO, p)
		}
		// A lone zero means the direction has no buses.
		if n == 0 && len(parts) == 1 {
			return nil, nil
		}
		buses = append(buses, Info{Channels: n, Aux: input && i > 0})
	}
	return buses, nil
}

// LoadSet decodes a YAML bus set.
func LoadSet(r io.Reader) (*Set, error) {
	var set Set
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("decode bus set: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadSetFile decodes a YAML bus set from a file.
func LoadSetFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bus set: %w", err)
	}
	defer f.Close()
	return LoadSet(f)
}

// Encode writes the set as YAML.
func (s *Set) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode bus set: %w", err)
	}
	return enc.Close()
}
