package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Lerp interpolates between a and b, t in [0,1].
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// EaseOut is a cubic ease-out curve over t in [0,1].
func EaseOut(t float64) float64 {
	t = Clamp(t, 0, 1)
	u := 1 - t
	return 1 - u*u*u
}
