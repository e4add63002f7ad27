// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"

	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"
)

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	switch gain {
	case 1:
	case 0:
		clear(buffer)
	default:
		vek32.MulNumber_Inplace(buffer, gain)
	}
}

// ApplyBuffer64 is the float64 version of ApplyBuffer.
func ApplyBuffer64(buffer []float64, gain float64) {
	switch gain {
	case 1:
	case 0:
		clear(buffer)
	default:
		vek.MulNumber_Inplace(buffer, gain)
	}
}

// ApplyRamp multiplies buffer by per-sample gains. Only the common length
// is processed.
func ApplyRamp(buffer, gains []float32) {
	n := min(len(buffer), len(gains))
	vek32.Mul_Inplace(buffer[:n], gains[:n])
}

// Peak returns the largest absolute sample value.
func Peak(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	return max(vek32.Max(buffer), -vek32.Min(buffer))
}

// Peak64 is the float64 version of Peak.
func Peak64(buffer []float64) float64 {
	if len(buffer) == 0 {
		return 0
	}
	return max(vek.Max(buffer), -vek.Min(buffer))
}

// HardClipBuffer limits buffer to [-threshold, threshold].
func HardClipBuffer(buffer []float32, threshold float32) {
	vek32.MinimumNumber_Inplace(buffer, threshold)
	vek32.MaximumNumber_Inplace(buffer, -threshold)
}
