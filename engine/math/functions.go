package math

import gomath "math"

const (
	K_PI           float64 = gomath.Pi
	K_DEG2RAD_MULT float64 = K_PI / 180.0
	K_RAD2DEG_MULT float64 = 180.0 / K_PI
)

/**
 * @brief Wraps an angle in degrees into [-180, 180).
 * An input of exactly 180 (mod 360) maps to -180, so for
 * a difference of exactly half a turn both directions agree
 * on the negative sign.
 */
func NormalizeAngle(degrees float64) float64 {
	r := gomath.Mod(degrees+180, 360)
	if r < 0 {
		r += 360
	}
	// r+360 can round up to exactly 360 for tiny negative r
	if r >= 360 {
		r -= 360
	}
	return r - 180
}

// AngleDelta is the signed shortest rotation in [-180, 180) taking the
// (possibly unwrapped) angle from onto the angle to.
func AngleDelta(from, to float64) float64 {
	return NormalizeAngle(to - NormalizeAngle(from))
}

// AngleDistance is the unsigned shortest difference between two angles.
func AngleDistance(a, b float64) float64 {
	return gomath.Abs(NormalizeAngle(a - b))
}

func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULT
}

func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULT
}
