package bus

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewEffectStereo(t *testing.T) {
	config := NewEffectStereo()

	if got := config.NBuses(DirectionInput); got != 1 {
		t.Errorf("Expected 1 audio input bus, got %d", got)
	}
	if got := config.NBuses(DirectionOutput); got != 1 {
		t.Errorf("Expected 1 audio output bus, got %d", got)
	}
	if got := config.NChannels(DirectionInput, 0); got != 2 {
		t.Errorf("Expected 2 input channels, got %d", got)
	}
	if got := config.NChannels(DirectionInput, 5); got != 0 {
		t.Errorf("Expected 0 channels for missing bus, got %d", got)
	}
	if got := config.BusName(DirectionInput, 0); got != "Stereo In" {
		t.Errorf("Expected input name 'Stereo In', got %s", got)
	}
}

func TestConfigurationName(t *testing.T) {
	tests := []struct {
		config   *Configuration
		expected string
	}{
		{NewEffectStereo(), "2-2"},
		{NewEffectMono(), "1-1"},
		{NewEffectStereoSidechain(), "2.2-2"},
		{NewInstrumentStereo(), "0-2"},
		{NewBuilder().Named("Surround").WithAudioInput("In", 6).WithAudioOutput("Out", 6).MustBuild(), "Surround"},
	}

	for _, tt := range tests {
		if got := tt.config.Name(); got != tt.expected {
			t.Errorf("Name() = %q, want %q", got, tt.expected)
		}
	}
}

func TestGeneratedBusNames(t *testing.T) {
	set, err := ParseChannelIO("2.2-2.2")
	if err != nil {
		t.Fatalf("ParseChannelIO failed: %v", err)
	}
	c := set.Get(0)

	if got := c.BusName(DirectionInput, 0); got != "Input 1" {
		t.Errorf("Expected 'Input 1', got %q", got)
	}
	if got := c.BusName(DirectionInput, 1); got != "Sidechain 1" {
		t.Errorf("Expected 'Sidechain 1', got %q", got)
	}
	if got := c.BusName(DirectionOutput, 1); got != "Output 2" {
		t.Errorf("Expected 'Output 2', got %q", got)
	}
	if got := c.BusName(DirectionOutput, 2); got != "" {
		t.Errorf("Expected empty name for missing bus, got %q", got)
	}
}

func TestParseChannelIO(t *testing.T) {
	set, err := ParseChannelIO("1-1 2-2 2.2-2 0-2")
	if err != nil {
		t.Fatalf("ParseChannelIO failed: %v", err)
	}

	if set.Count() != 4 {
		t.Fatalf("Expected 4 configurations, got %d", set.Count())
	}
	names := []string{"1-1", "2-2", "2.2-2", "0-2"}
	for i, want := range names {
		if got := set.Get(i).Name(); got != want {
			t.Errorf("Config %d: name %q, want %q", i, got, want)
		}
	}
	if !set.Get(2).Inputs[1].Aux {
		t.Error("Second input bus should be a sidechain")
	}
	if set.Get(3).NBuses(DirectionInput) != 0 {
		t.Error("'0' input should mean no input buses")
	}
}

func TestParseChannelIOErrors(t *testing.T) {
	for _, in := range []string{"", "2", "a-2", "2-b", "2--2", "64-2"} {
		if _, err := ParseChannelIO(in); err == nil {
			t.Errorf("ParseChannelIO(%q) should fail", in)
		}
	}

	_, err := ParseChannelIO("x-1")
	if !errors.Is(err, ErrInvalidChannelIO) {
		t.Errorf("Expected ErrInvalidChannelIO, got %v", err)
	}
}

func TestRequiredChannels(t *testing.T) {
	set, _ := ParseChannelIO("1-1 2.2-2 2-6")

	if got := set.MaxChannels(DirectionInput); got != 4 {
		t.Errorf("MaxChannels(input) = %d, want 4", got)
	}
	if got := set.MaxChannels(DirectionOutput); got != 6 {
		t.Errorf("MaxChannels(output) = %d, want 6", got)
	}
	if got := set.RequiredChannels(); got != 6 {
		t.Errorf("RequiredChannels() = %d, want 6", got)
	}
	if got := set.MaxBuses(DirectionInput); got != 2 {
		t.Errorf("MaxBuses(input) = %d, want 2", got)
	}
}

func TestDefaultIndex(t *testing.T) {
	effect, _ := ParseChannelIO("1-1 2-2 2.2-2 6-6")
	instrument, _ := ParseChannelIO("0-1 0-2 0-2.2")

	tests := []struct {
		name          string
		set           *Set
		trackChannels int
		haveTrack     bool
		instrument    bool
		expected      int
	}{
		{"NoTrackPrefersStereo", effect, 0, false, false, 2},
		{"MonoTrack", effect, 1, true, false, 0},
		{"SurroundTrack", effect, 6, true, false, 3},
		{"UnmatchedTrackFallsBackToStereo", effect, 4, true, false, 2},
		{"InstrumentMatchesWithoutInputs", instrument, 1, true, true, 0},
		{"InstrumentStereoPrefersMoreOutputs", instrument, 2, true, true, 2},
		{"EffectRulesRejectInstrumentConfigs", instrument, 2, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.DefaultIndex(tt.trackChannels, tt.haveTrack, tt.instrument)
			if got != tt.expected {
				t.Errorf("DefaultIndex() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestBuilderValidation(t *testing.T) {
	if _, err := NewBuilder().WithStereoInput("In").Build(); err == nil {
		t.Error("Expected error for configuration without outputs")
	}
	if _, err := NewBuilder().WithAudioOutput("Out", 0).Build(); err == nil {
		t.Error("Expected error for zero channels")
	}
	if _, err := NewBuilder().WithAudioOutput("Out", 33).Build(); err == nil {
		t.Error("Expected error for too many channels")
	}
	if _, err := NewBuilder().WithSidechain("SC").WithStereoOutput("Out").Build(); err == nil {
		t.Error("Expected error for sidechain without main input")
	}
}

func TestLoadSetYAML(t *testing.T) {
	doc := `
configs:
  - name: Stereo
    inputs:
      - {name: Main In, channels: 2}
      - {name: Key, channels: 1, aux: true}
    outputs:
      - {name: Main Out, channels: 2}
  - inputs: [{channels: 1}]
    outputs: [{channels: 1}]
midi_in: true
`
	set, err := LoadSet(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadSet failed: %v", err)
	}
	if set.Count() != 2 || !set.MIDIIn || set.MIDIOut {
		t.Fatalf("Unexpected set %+v", set)
	}
	if set.Get(0).Name() != "Stereo" || set.Get(1).Name() != "1-1" {
		t.Errorf("Unexpected names %q %q", set.Get(0).Name(), set.Get(1).Name())
	}
	if set.RequiredChannels() != 3 {
		t.Errorf("RequiredChannels() = %d, want 3", set.RequiredChannels())
	}

	var buf bytes.Buffer
	if err := set.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	again, err := LoadSet(&buf)
	if err != nil {
		t.Fatalf("LoadSet of encoded set failed: %v", err)
	}
	if again.Get(0).Inputs[1].Name != "Key" || !again.Get(0).Inputs[1].Aux {
		t.Errorf("Encoded set lost bus details: %+v", again.Get(0).Inputs)
	}
}

func TestLoadSetRejectsUnknownFields(t *testing.T) {
	_, err := LoadSet(strings.NewReader("configs: []\nsidechain: true\n"))
	if err == nil {
		t.Error("Expected error for unknown field")
	}
	_, err = LoadSet(strings.NewReader("configs: []\n"))
	if !errors.Is(err, ErrNoConfigurations) {
		t.Errorf("Expected ErrNoConfigurations, got %v", err)
	}
}
