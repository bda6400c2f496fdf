package dice

import (
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/facecube/engine/math"
)

// Face identifies one side of the cube, 1 through 6. NoFace is the zero value.
type Face uint8

const (
	NoFace    Face = 0
	FaceCount      = 6
)

func (f Face) Valid() bool {
	return f >= 1 && f <= FaceCount
}

func (f Face) String() string {
	if !f.Valid() {
		return "none"
	}
	return fmt.Sprintf("face-%d", uint8(f))
}

// CanonicalOrientation is the resting rotation at which Face points at the viewer.
type CanonicalOrientation struct {
	Face  Face
	Pitch float64
	Yaw   float64
}

func (c CanonicalOrientation) Orientation() math.Orientation {
	return math.NewOrientation(c.Pitch, c.Yaw, 0)
}

// canonicalOrder is also the search order of Nearest: on an exact tie the
// entry listed first wins.
var canonicalOrder = [FaceCount]CanonicalOrientation{
	{Face: 1, Pitch: 0, Yaw: 0},
	{Face: 6, Pitch: 0, Yaw: 180},
	{Face: 3, Pitch: 0, Yaw: 90},
	{Face: 4, Pitch: 0, Yaw: -90},
	{Face: 5, Pitch: -90, Yaw: 0},
	{Face: 2, Pitch: 90, Yaw: 0},
}

// Canonicals returns the fixed table in search order.
func Canonicals() []CanonicalOrientation {
	out := make([]CanonicalOrientation, len(canonicalOrder))
	copy(out, canonicalOrder[:])
	return out
}

// Canonical returns the resting orientation of face, roll zero.
// Invalid faces map to face 1.
func Canonical(face Face) math.Orientation {
	for _, c := range canonicalOrder {
		if c.Face == face {
			return c.Orientation()
		}
	}
	return canonicalOrder[0].Orientation()
}

// Nearest picks the face whose canonical orientation minimizes the summed
// squared pitch and yaw differences, each measured along the shortest arc.
// The set is fixed and non-empty so there is always an answer.
func Nearest(o math.Orientation) Face {
	best := canonicalOrder[0].Face
	bestD := gomath.Inf(1)
	for _, c := range canonicalOrder {
		d := o.DistanceSquared2D(c.Orientation())
		if d < bestD {
			bestD = d
			best = c.Face
		}
	}
	return best
}

// SnapTarget computes where a programmatic snap from `from` onto face ends.
// Pitch and yaw each turn by less than a half revolution and roll is brought
// to a normalized zero. The unwrapped turn count of `from` is preserved.
func SnapTarget(from math.Orientation, face Face) (dest math.Orientation, delta math.Orientation) {
	delta = from.DeltaTo(Canonical(face))
	return from.Add(delta), delta
}

// Faces lists face identifiers in ascending order.
func Faces() []Face {
	return []Face{1, 2, 3, 4, 5, 6}
}
