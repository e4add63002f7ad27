package bus

// Common bus configuration templates for different plugin types

// NewEffectStereo creates a standard stereo effect configuration (1 stereo in, 1 stereo out)
func NewEffectStereo() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewEffectMono creates a mono effect configuration (1 mono in, 1 mono out)
func NewEffectMono() *Configuration {
	return NewBuilder().
		WithMonoInput("Mono In").
		WithMonoOutput("Mono Out").
		MustBuild()
}

// NewEffectStereoSidechain creates a stereo effect with sidechain input
func NewEffectStereoSidechain() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithSidechain("Sidechain In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewInstrumentStereo creates an instrument configuration with no audio input
func NewInstrumentStereo() *Configuration {
	return NewBuilder().
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewEffectSet offers mono, stereo and stereo with sidechain.
func NewEffectSet() *Set {
	return NewSet(NewEffectMono(), NewEffectStereo(), NewEffectStereoSidechain())
}

// NewInstrumentSet offers a stereo instrument with MIDI input.
func NewInstrumentSet() *Set {
	return NewSet(NewInstrumentStereo()).WithMIDI(true, false)
}
