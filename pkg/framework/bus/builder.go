package bus

import (
	"errors"
	"fmt"
)

// Builder provides a fluent API for building bus configurations
type Builder struct {
	config *Configuration
	errors []error
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

// Named sets the configuration label reported to hosts.
func (b *Builder) Named(label string) *Builder {
	b.config.Label = label
	return b
}

// WithAudioInput adds an audio input bus
func (b *Builder) WithAudioInput(name string, channels int) *Builder {
	b.config.Inputs = append(b.config.Inputs, Info{Name: name, Channels: channels})
	return b
}

// WithAudioOutput adds an audio output bus
func (b *Builder) WithAudioOutput(name string, channels int) *Builder {
	b.config.Outputs = append(b.config.Outputs, Info{Name: name, Channels: channels})
	return b
}

// WithAuxInput adds an auxiliary audio input bus (e.g., sidechain)
func (b *Builder) WithAuxInput(name string, channels int) *Builder {
	if len(b.config.Inputs) == 0 {
		b.errors = append(b.errors, fmt.Errorf("aux input %q added before a main input", name))
	}
	b.config.Inputs = append(b.config.Inputs, Info{Name: name, Channels: channels, Aux: true})
	return b
}

// WithAuxOutput adds an auxiliary audio output bus
func (b *Builder) WithAuxOutput(name string, channels int) *Builder {
	if len(b.config.Outputs) == 0 {
		b.errors = append(b.errors, fmt.Errorf("aux output %q added before a main output", name))
	}
	b.config.Outputs = append(b.config.Outputs, Info{Name: name, Channels: channels, Aux: true})
	return b
}

// WithStereoInput is a convenience method for adding stereo input
func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, 2)
}

// WithStereoOutput is a convenience method for adding stereo output
func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 2)
}

// WithMonoInput is a convenience method for adding mono input
func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

// WithMonoOutput is a convenience method for adding mono output
func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

// WithSidechain adds a sidechain input bus (auxiliary stereo input)
func (b *Builder) WithSidechain(name string) *Builder {
	return b.WithAuxInput(name, 2)
}

// Validate checks if the configuration is valid
func (b *Builder) Validate() error {
	if len(b.errors) > 0 {
		return fmt.Errorf("builder errors: %w", errors.Join(b.errors...))
	}

	if len(b.config.Outputs) == 0 {
		return fmt.Errorf("%w: configuration must have at least one output bus", ErrInvalidChannelIO)
	}

	for _, buses := range [][]Info{b.config.Inputs, b.config.Outputs} {
		for _, bus := range buses {
			if bus.Channels <= 0 {
				return fmt.Errorf("%w: invalid channel count %d for bus %s", ErrInvalidChannelIO, bus.Channels, bus.Name)
			}
			if bus.Channels > MaxChannelsPerBus {
				return fmt.Errorf("%w: channel count %d exceeds maximum of %d for bus %s",
					ErrInvalidChannelIO, bus.Channels, MaxChannelsPerBus, bus.Name)
			}
		}
	}

	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
