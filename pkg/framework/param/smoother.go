package param

import (
	"math"
)

// SmoothingType defines different parameter smoothing algorithms.
type SmoothingType int

const (
	// LinearSmoothing ramps in a fixed number of samples
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing uses a one-pole filter
	ExponentialSmoothing
)

// Smoother ramps a control value toward its target to prevent zipper
// noise. It belongs to the audio thread and never allocates.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	// samples for linear, pole coefficient for exponential
	rate        float64
	step        float64
	threshold   float64
	isSmoothing bool
}

// NewSmoother creates a new parameter smoother.
// rate: smoothing rate (0.9-0.999 for exponential, samples for linear)
func NewSmoother(smoothingType SmoothingType, rate float64) *Smoother {
	return &Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     0.0001,
	}
}

// SetTime derives the rate from a ramp time. Exponential smoothers reach
// -60 dB of the distance to the target after ms milliseconds.
func (s *Smoother) SetTime(sampleRate, ms float64) {
	samples := sampleRate * ms / 1000.0
	if samples < 1 {
		samples = 1
	}
	if s.smoothingType == LinearSmoothing {
		s.rate = samples
		return
	}
	s.rate = math.Exp(-6.908 / samples)
}

// SetTarget sets the target value for smoothing.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold && !s.isSmoothing {
		return
	}

	s.target = target
	s.isSmoothing = true
	if s.smoothingType == LinearSmoothing {
		if s.rate <= 1 {
			s.step = target - s.current
		} else {
			s.step = (target - s.current) / s.rate
		}
	}
}

// Next returns the next smoothed value.
func (s *Smoother) Next() float64 {
	if !s.isSmoothing {
		return s.current
	}

	switch s.smoothingType {
	case ExponentialSmoothing:
		// y = y + (1-a) * (x - y)
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.finish()
		}
	default:
		s.current += s.step
		if (s.step >= 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.finish()
		}
	}
	return s.current
}

func (s *Smoother) finish() {
	s.current = s.target
	s.isSmoothing = false
}

// Fill writes the next len(dst) values into dst. It returns false, leaving
// dst untouched, when the value is settled so callers can take a scalar
// path with Current.
func (s *Smoother) Fill(dst []float32) bool {
	if !s.isSmoothing {
		return false
	}
	for i := range dst {
		dst[i] = float32(s.Next())
	}
	return true
}

// IsSmoothing returns true if the smoother is currently smoothing.
func (s *Smoother) IsSmoothing() bool {
	return s.isSmoothing
}

// Current returns the last value produced.
func (s *Smoother) Current() float64 {
	return s.current
}

// Target returns the value being approached.
func (s *Smoother) Target() float64 {
	return s.target
}

// Reset jumps to value.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.isSmoothing = false
}

// SetThreshold sets the threshold for considering smoothing complete.
func (s *Smoother) SetThreshold(threshold float64) {
	s.threshold = threshold
}
