package math

func NewOrientation(pitch, yaw, roll float64) Orientation {
	return Orientation{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// Normalized wraps every axis into [-180, 180).
func (o Orientation) Normalized() Orientation {
	return Orientation{
		Pitch: NormalizeAngle(o.Pitch),
		Yaw:   NormalizeAngle(o.Yaw),
		Roll:  NormalizeAngle(o.Roll),
	}
}

func (o Orientation) Add(other Orientation) Orientation {
	return Orientation{
		Pitch: o.Pitch + other.Pitch,
		Yaw:   o.Yaw + other.Yaw,
		Roll:  o.Roll + other.Roll,
	}
}

// Lerp interpolates every axis without wrapping.
func (o Orientation) Lerp(to Orientation, t float64) Orientation {
	return Orientation{
		Pitch: Lerp(o.Pitch, to.Pitch, t),
		Yaw:   Lerp(o.Yaw, to.Yaw, t),
		Roll:  Lerp(o.Roll, to.Roll, t),
	}
}

// DeltaTo returns the per-axis shortest rotation from o onto target. Each
// component lies in [-180, 180), so adding it to o never turns any axis by
// more than half a revolution while keeping o's accumulated turn count.
func (o Orientation) DeltaTo(target Orientation) Orientation {
	return Orientation{
		Pitch: AngleDelta(o.Pitch, target.Pitch),
		Yaw:   AngleDelta(o.Yaw, target.Yaw),
		Roll:  AngleDelta(o.Roll, target.Roll),
	}
}

// DistanceSquared2D compares pitch and yaw only; roll does not change which
// face is presented.
func (o Orientation) DistanceSquared2D(other Orientation) float64 {
	dp := NormalizeAngle(o.Pitch - other.Pitch)
	dy := NormalizeAngle(o.Yaw - other.Yaw)
	return dp*dp + dy*dy
}
