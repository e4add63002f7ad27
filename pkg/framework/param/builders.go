package param

import (
	"fmt"
	"strings"
)

// ChoiceOption represents a single choice in a list parameter
type ChoiceOption struct {
	Name    string
	Aliases []string
}

// Choice creates a list parameter whose plain values are option indexes.
func Choice(id uint32, name string, options []ChoiceOption) *Builder {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Name
	}

	parser := func(str string) (float64, error) {
		for i, opt := range options {
			if strings.EqualFold(str, opt.Name) {
				return float64(i), nil
			}
			for _, alias := range opt.Aliases {
				if strings.EqualFold(str, alias) {
					return float64(i), nil
				}
			}
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	b := New(id, name).Enum(labels...)
	b.param.parseFunc = parser
	return b
}

// GainParameter creates a standard gain parameter (-inf to +12dB)
func GainParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(-80, 12).
		Default(0).
		Unit("dB").
		Formatter(func(v float64) string {
			if v <= -80 {
				return "-∞ dB"
			}
			return fmt.Sprintf("%.1f dB", v)
		}, func(s string) (float64, error) {
			if strings.Contains(strings.ToLower(s), "inf") || strings.Contains(s, "∞") {
				return -80, nil
			}
			return DecibelParser(s)
		})
}

// MixParameter creates a standard mix/blend parameter (0-100%)
func MixParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 100).
		Default(100).
		Unit("%").
		Formatter(PercentFormatter, PercentParser)
}

// BypassParameter creates a bypass on/off switch
func BypassParameter(id uint32, name string) *Builder {
	return New(id, name).Toggle().Bypass()
}
