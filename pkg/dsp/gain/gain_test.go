package gain

import (
	"math"
	"testing"
)

func TestDbConversion(t *testing.T) {
	tests := []struct {
		name    string
		linear  float64
		db      float64
		epsilon float64
	}{
		{"Unity gain", 1.0, 0.0, 0.001},
		{"Half amplitude", 0.5, -6.02, 0.01},
		{"Double amplitude", 2.0, 6.02, 0.01},
		{"Quarter amplitude", 0.25, -12.04, 0.01},
		{"Zero amplitude", 0.0, MinDB, 0.001},
		{"Negative amplitude", -1.0, MinDB, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Test LinearToDb
			gotDb := LinearToDb(tt.linear)
			if math.Abs(gotDb-tt.db) > tt.epsilon {
				t.Errorf("LinearToDb(%f) = %f, want %f", tt.linear, gotDb, tt.db)
			}

			// Test DbToLinear (skip for MinDB cases)
			if tt.db != MinDB {
				gotLinear := DbToLinear(tt.db)
				if math.Abs(gotLinear-math.Abs(tt.linear)) > tt.epsilon {
					t.Errorf("DbToLinear(%f) = %f, want %f", tt.db, gotLinear, math.Abs(tt.linear))
				}
			}
		})
	}
}

func TestApplyBuffer(t *testing.T) {
	buffer := []float32{1.0, 0.5, -0.5, -1.0}
	expected := []float32{0.5, 0.25, -0.25, -0.5}

	ApplyBuffer(buffer, 0.5)

	for i, v := range buffer {
		if v != expected[i] {
			t.Errorf("ApplyBuffer: buffer[%d] = %f, want %f", i, v, expected[i])
		}
	}

	ApplyBuffer(buffer, 0)
	for i, v := range buffer {
		if v != 0 {
			t.Errorf("ApplyBuffer(0): buffer[%d] = %f", i, v)
		}
	}
}

func TestApplyBuffer64(t *testing.T) {
	buffer := []float64{1.0, -2.0}
	ApplyBuffer64(buffer, 0.25)
	if buffer[0] != 0.25 || buffer[1] != -0.5 {
		t.Errorf("ApplyBuffer64 = %v", buffer)
	}
}

func TestApplyRamp(t *testing.T) {
	buffer := []float32{1, 1, 1, 1, 1}
	ApplyRamp(buffer, []float32{0, 0.25, 0.5})

	expected := []float32{0, 0.25, 0.5, 1, 1}
	for i := range expected {
		if buffer[i] != expected[i] {
			t.Errorf("ApplyRamp: buffer[%d] = %f, want %f", i, buffer[i], expected[i])
		}
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float32{0.1, -0.8, 0.5}); got != 0.8 {
		t.Errorf("Peak = %f, want 0.8", got)
	}
	if got := Peak64([]float64{0.1, 0.9, -0.5}); got != 0.9 {
		t.Errorf("Peak64 = %f, want 0.9", got)
	}
	if Peak(nil) != 0 {
		t.Error("Peak of an empty buffer should be 0")
	}
}

func TestHardClipBuffer(t *testing.T) {
	buffer := []float32{0.5, 1.5, -1.5, 0}
	HardClipBuffer(buffer, 1)

	expected := []float32{0.5, 1, -1, 0}
	for i := range expected {
		if buffer[i] != expected[i] {
			t.Errorf("HardClipBuffer: buffer[%d] = %f, want %f", i, buffer[i], expected[i])
		}
	}
}

func BenchmarkApplyBuffer(b *testing.B) {
	buffer := make([]float32, 512)
	for i := range buffer {
		buffer[i] = 1
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ApplyBuffer(buffer, 0.999)
	}
}
