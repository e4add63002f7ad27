package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// Type decides how hosts exchange values for a parameter. Double parameters
// travel normalized, all others travel as plain values.
type Type int

const (
	TypeDouble Type = iota
	TypeInt
	TypeBool
	TypeEnum
)

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Source says where a parameter change came from.
type Source int

const (
	SourceReset Source = iota
	SourceHost
	SourcePreset
	SourceUI
)

func (s Source) String() string {
	switch s {
	case SourceReset:
		return "reset"
	case SourceHost:
		return "host"
	case SourcePreset:
		return "preset"
	case SourceUI:
		return "ui"
	default:
		return "unknown"
	}
}

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Group        string
	Type         Type
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32
	Flags        uint32

	// Normalized value as float64 bits, read by the audio thread.
	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
	labels     []string
}

// Flags for parameters
const (
	CanAutomate     uint32 = 1 << 0
	IsReadOnly      uint32 = 1 << 1
	IsWrapAround    uint32 = 1 << 2
	IsList          uint32 = 1 << 3
	IsHidden        uint32 = 1 << 4
	IsProgramChange uint32 = 1 << 15
	IsBypass        uint32 = 1 << 16
)

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue sets the normalized value (0-1)
func (p *Parameter) SetValue(value float64) {
	if math.IsNaN(value) || value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	p.value.Store(math.Float64bits(value))
}

// GetPlainValue converts normalized to plain value
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue converts plain to normalized value
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// IsContinuous reports whether the host exchanges normalized values.
func (p *Parameter) IsContinuous() bool {
	return p.Type == TypeDouble
}

// HostValue returns the value in the form the host expects: normalized for
// continuous parameters, plain otherwise.
func (p *Parameter) HostValue() float64 {
	return p.ToHost(p.GetValue())
}

// ToHost converts a normalized value to the host's representation.
func (p *Parameter) ToHost(normalized float64) float64 {
	if p.IsContinuous() {
		return normalized
	}
	return p.Denormalize(normalized)
}

// FromHost converts a host value to normalized.
func (p *Parameter) FromHost(v float64) float64 {
	if p.IsContinuous() {
		return v
	}
	return p.Normalize(v)
}

// SetHostValue applies a value received from the host.
func (p *Parameter) SetHostValue(v float64) {
	p.SetValue(p.FromHost(v))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// HostRange returns the min, max and default reported to the host.
func (p *Parameter) HostRange() (min, max, def float64) {
	if p.IsContinuous() {
		return 0, 1, p.DefaultValue
	}
	return p.Min, p.Max, p.Denormalize(p.DefaultValue)
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)

	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if len(p.labels) > 0 {
		idx := int(math.Round(plain - p.Min))
		if idx >= 0 && idx < len(p.labels) {
			return p.labels[idx]
		}
	}
	if p.Type == TypeBool {
		if plain >= 0.5 {
			return "On"
		}
		return "Off"
	}

	// Default formatting
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// DisplayText formats normalized and appends the unit label when the
// parameter has no custom formatter.
func (p *Parameter) DisplayText(normalized float64) string {
	text := p.FormatValue(normalized)
	if p.formatFunc == nil && len(p.labels) == 0 && p.Unit != "" {
		text += " " + p.Unit
	}
	return text
}

// ParseValue parses string to normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.Normalize(plain), nil
	}
	for i, label := range p.labels {
		if strings.EqualFold(label, str) {
			return p.Normalize(p.Min + float64(i)), nil
		}
	}
	if p.Type == TypeBool {
		switch strings.ToLower(str) {
		case "on", "true":
			return 1, nil
		case "off", "false":
			return 0, nil
		}
	}

	// Default parsing
	str = strings.TrimSpace(strings.TrimSuffix(str, p.Unit))
	plain, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q for %s: %w", str, p.Name, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value. Stepped parameters
// snap to the nearest step.
func (p *Parameter) Denormalize(normalized float64) float64 {
	if p.StepCount > 0 {
		step := math.Round(normalized * float64(p.StepCount))
		return p.Min + step*(p.Max-p.Min)/float64(p.StepCount)
	}
	return p.Min + normalized*(p.Max-p.Min)
}
