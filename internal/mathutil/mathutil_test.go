package mathutil_test

import (
	"testing"

	"cubescene/internal/mathutil"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{89, -89, 89, 89},
	}
	for _, tt := range tests {
		if got := mathutil.Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}

	if got := mathutil.Clamp(200, 1, 120); got != 120 {
		t.Errorf("Clamp int: got %d, want 120", got)
	}
}

func TestWrapDegrees(t *testing.T) {
	for _, deg := range []float64{0, 359, 360, 721.5, -725, 1e6} {
		got := mathutil.WrapDegrees(deg)
		if got <= -360 || got >= 360 {
			t.Errorf("WrapDegrees(%v) = %v, outside (-360, 360)", deg, got)
		}
	}
	if got := mathutil.WrapDegrees(450); got != 90 {
		t.Errorf("WrapDegrees(450) = %v, want 90", got)
	}
}
