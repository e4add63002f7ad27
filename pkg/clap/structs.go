package clap

// ParamInfo describes one parameter to the host.
type ParamInfo struct {
	ID           uint32
	Flags        uint32
	Cookie       uintptr
	Name         string
	Module       string
	MinValue     float64
	MaxValue     float64
	DefaultValue float64
}

// AudioPortInfo describes one audio port.
type AudioPortInfo struct {
	ID           uint32
	Name         string
	Flags        uint32
	ChannelCount uint32
	PortType     string
	InPlacePair  uint32
}

// AudioPortsConfig describes one selectable port configuration.
type AudioPortsConfig struct {
	ID                     uint32
	Name                   string
	InputPortCount         uint32
	OutputPortCount        uint32
	HasMainInput           bool
	MainInputChannelCount  uint32
	MainInputPortType      string
	HasMainOutput          bool
	MainOutputChannelCount uint32
	MainOutputPortType     string
}

// NotePortInfo describes one note port.
type NotePortInfo struct {
	ID                uint32
	SupportedDialects uint32
	PreferredDialect  uint32
	Name              string
}
