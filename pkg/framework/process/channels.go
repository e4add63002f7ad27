package process

// ChannelSet holds flat per-channel views onto host buffers for one
// direction, in bus-then-channel order. Capacity is fixed at construction;
// attaching never copies samples and never allocates.
type ChannelSet struct {
	data32    [][]float32
	data64    [][]float64
	connected []bool
	active    int
}

// NewChannelSet allocates a set with room for capacity channels.
func NewChannelSet(capacity int) *ChannelSet {
	if capacity < 0 {
		capacity = 0
	}
	return &ChannelSet{
		data32:    make([][]float32, capacity),
		data64:    make([][]float64, capacity),
		connected: make([]bool, capacity),
	}
}

// Cap returns the fixed capacity.
func (s *ChannelSet) Cap() int {
	return len(s.connected)
}

// Active returns the channel count set by the last ResetConnections.
func (s *ChannelSet) Active() int {
	return s.active
}

// ResetConnections marks every slot disconnected and then the first n
// connected, clamping n to the capacity. It returns the clamped count.
// Calling it twice with the same n leaves the same state.
func (s *ChannelSet) ResetConnections(n int) int {
	n = max(0, min(n, len(s.connected)))
	for i := range s.connected {
		s.connected[i] = i < n
		s.data32[i] = nil
		s.data64[i] = nil
	}
	s.active = n
	return n
}

// Set32 attaches a 32-bit channel. It fails outside the capacity.
func (s *ChannelSet) Set32(i int, data []float32) bool {
	if i < 0 || i >= len(s.data32) {
		return false
	}
	s.data32[i] = data
	return true
}

// Set64 attaches a 64-bit channel. It fails outside the capacity.
func (s *ChannelSet) Set64(i int, data []float64) bool {
	if i < 0 || i >= len(s.data64) {
		return false
	}
	s.data64[i] = data
	return true
}

// Disconnect turns a slot into an empty, disconnected channel.
func (s *ChannelSet) Disconnect(i int) {
	if i < 0 || i >= len(s.connected) {
		return
	}
	s.connected[i] = false
	s.data32[i] = nil
	s.data64[i] = nil
}

// Connected reports whether slot i carries host audio this block.
func (s *ChannelSet) Connected(i int) bool {
	return i >= 0 && i < len(s.connected) && s.connected[i]
}

// Data32 returns the active 32-bit channels.
func (s *ChannelSet) Data32() [][]float32 {
	return s.data32[:s.active]
}

// Data64 returns the active 64-bit channels.
func (s *ChannelSet) Data64() [][]float64 {
	return s.data64[:s.active]
}
