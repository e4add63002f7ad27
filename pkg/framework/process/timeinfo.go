package process

// TimeField marks which TimeInfo fields a host has supplied at least once.
type TimeField uint32

const (
	TimeTempo TimeField = 1 << iota
	TimeSamplePos
	// TimeMusical covers PPQPos, LastBar, CycleStart and CycleEnd.
	TimeMusical
	TimeSignature
)

// TimeInfo is the musical time seen by the plugin core. Fields the host did
// not supply on a block keep the value from an earlier block.
type TimeInfo struct {
	Tempo      float64
	SamplePos  float64
	PPQPos     float64
	LastBar    float64
	CycleStart float64
	CycleEnd   float64

	Numerator   int
	Denominator int

	TransportIsRunning   bool
	TransportLoopEnabled bool

	Known TimeField
}

// DefaultTimeInfo returns 120 BPM in 4/4 with unknown positions.
func DefaultTimeInfo() TimeInfo {
	return TimeInfo{
		Tempo:       120,
		SamplePos:   -1,
		PPQPos:      -1,
		LastBar:     -1,
		CycleStart:  -1,
		CycleEnd:    -1,
		Numerator:   4,
		Denominator: 4,
	}
}

// Reset restores the defaults and forgets what the host supplied.
func (t *TimeInfo) Reset() {
	*t = DefaultTimeInfo()
}

// Has reports whether the host has supplied the field.
func (t *TimeInfo) Has(f TimeField) bool {
	return t.Known&f == f
}

// SamplesPerBeat returns the length of a quarter note, or 0 without a tempo.
func (t *TimeInfo) SamplesPerBeat(sampleRate float64) float64 {
	if t.Tempo <= 0 || sampleRate <= 0 {
		return 0
	}
	return sampleRate * 60 / t.Tempo
}

// BeatsPerBar returns the bar length in quarter notes.
func (t *TimeInfo) BeatsPerBar() float64 {
	if t.Denominator <= 0 {
		return 4
	}
	return float64(t.Numerator) * 4 / float64(t.Denominator)
}
