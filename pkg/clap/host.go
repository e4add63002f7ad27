package clap

// HostInfo identifies the host application.
type HostInfo struct {
	Name    string
	Vendor  string
	URL     string
	Version string
}

// Info returns h, so a bare HostInfo can serve as a Host.
func (h HostInfo) Info() HostInfo {
	return h
}

// Host is the plugin's view of the host. Optional extensions are discovered
// with type assertions against the interfaces below.
type Host interface {
	Info() HostInfo
}

// TailHost is implemented by hosts supporting the tail extension.
type TailHost interface {
	TailChanged()
}

// LatencyHost is implemented by hosts supporting the latency extension.
type LatencyHost interface {
	LatencyChanged()
}

// ParamsHost is implemented by hosts supporting the params extension.
type ParamsHost interface {
	RescanParams(flags uint32)
	RequestParamsFlush()
}

// TrackInfoHost is implemented by hosts supporting the track-info extension.
type TrackInfoHost interface {
	TrackInfo() (TrackInfo, bool)
}

// Track info flags
const (
	TrackInfoHasTrackName    uint64 = 1 << 0
	TrackInfoHasTrackColor   uint64 = 1 << 1
	TrackInfoHasAudioChannel uint64 = 1 << 2
)

// TrackInfo describes the track a plugin instance is inserted on.
type TrackInfo struct {
	Flags             uint64
	Name              string
	AudioChannelCount int32
	AudioPortType     string
}
