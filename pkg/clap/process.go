package clap

// Transport is the host's musical and timeline position for a block.
// Beat and second values are fixed point, scaled by BeatTimeFactor and
// SecTimeFactor.
type Transport struct {
	Flags            uint32
	SongPosBeats     int64
	SongPosSeconds   int64
	Tempo            float64
	TempoInc         float64
	LoopStartBeats   int64
	LoopEndBeats     int64
	LoopStartSeconds int64
	LoopEndSeconds   int64
	BarStart         int64
	BarNumber        int32
	TSigNum          uint16
	TSigDenom        uint16
}

// Has reports whether every bit in flag is set.
func (t *Transport) Has(flag uint32) bool {
	return t.Flags&flag == flag
}

// BeatsToFixed converts beats to the transport's fixed point format.
func BeatsToFixed(beats float64) int64 {
	return int64(beats * float64(BeatTimeFactor))
}

// SecondsToFixed converts seconds to the transport's fixed point format.
func SecondsToFixed(seconds float64) int64 {
	return int64(seconds * float64(SecTimeFactor))
}

// AudioBuffer is one audio port's channels for a block. Exactly one of
// Data32 and Data64 is set when ChannelCount > 0.
type AudioBuffer struct {
	Data32       [][]float32
	Data64       [][]float64
	ChannelCount uint32
	Latency      uint32
	ConstantMask uint64
}

// Is64 reports whether the port carries double precision samples.
func (b *AudioBuffer) Is64() bool {
	return b.Data64 != nil
}

// NewAudioBuffer32 allocates a single precision port buffer.
func NewAudioBuffer32(channels, frames int) AudioBuffer {
	data := make([][]float32, channels)
	for i := range data {
		data[i] = make([]float32, frames)
	}
	return AudioBuffer{Data32: data, ChannelCount: uint32(channels)}
}

// NewAudioBuffer64 allocates a double precision port buffer.
func NewAudioBuffer64(channels, frames int) AudioBuffer {
	data := make([][]float64, channels)
	for i := range data {
		data[i] = make([]float64, frames)
	}
	return AudioBuffer{Data64: data, ChannelCount: uint32(channels)}
}

// Process is the argument of the plugin process callback.
type Process struct {
	// SteadyTime is a monotonic sample counter, -1 when unavailable.
	SteadyTime   int64
	FramesCount  uint32
	Transport    *Transport
	AudioInputs  []AudioBuffer
	AudioOutputs []AudioBuffer
	InEvents     InputEvents
	OutEvents    OutputEvents
}
