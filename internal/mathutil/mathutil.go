package mathutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits v to the closed range [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees reduces an angle in degrees to the open range (-360, 360).
func WrapDegrees(deg float64) float64 {
	return math.Mod(deg, 360)
}
