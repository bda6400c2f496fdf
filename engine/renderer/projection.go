package renderer

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/math"
)

// Faces whose normal points away by less than this are treated as edge-on.
const visibilityEpsilon = 1e-6

// Unit quad of a face before it is turned into place, y pointing down:
// top-left, top-right, bottom-right, bottom-left.
var quadCorners = [4]mgl64.Vec3{
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

// faceModels turns the front quad into the place of each face so that the
// face looks at the viewer, upright, exactly at its canonical orientation.
var faceModels = func() [dice.FaceCount + 1]mgl64.Mat3 {
	var m [dice.FaceCount + 1]mgl64.Mat3
	for _, c := range dice.Canonicals() {
		m[c.Face] = mgl64.Rotate3DY(mgl64.DegToRad(-c.Yaw)).Mul3(mgl64.Rotate3DX(mgl64.DegToRad(-c.Pitch)))
	}
	return m
}()

/**
 * @brief One face of the cube after projection onto the screen.
 * Corners are in pseudo-pixels in quadCorners order.
 */
type ProjectedFace struct {
	Face    dice.Face
	Corners [4]mgl64.Vec2
	// Z of the outward normal; 1 when the face looks straight at the viewer.
	NormalZ float64
	Visible bool
}

// Rotation builds the cube rotation for o: pitch about x, then yaw about y,
// then roll about the view axis, composed left to right.
func Rotation(o math.Orientation) mgl64.Mat3 {
	return mgl64.Rotate3DX(mgl64.DegToRad(o.Pitch)).
		Mul3(mgl64.Rotate3DY(mgl64.DegToRad(o.Yaw))).
		Mul3(mgl64.Rotate3DZ(mgl64.DegToRad(o.Roll)))
}

// ProjectCube projects every face of a cube of edge size centered on
// (cx, cy) with an orthographic camera looking down -z.
func ProjectCube(o math.Orientation, cx, cy, size float64) [dice.FaceCount]ProjectedFace {
	rot := Rotation(o)
	var out [dice.FaceCount]ProjectedFace
	for _, f := range dice.Faces() {
		m := rot.Mul3(faceModels[f])
		pf := ProjectedFace{Face: f}
		for i, c := range quadCorners {
			w := m.Mul3x1(c)
			pf.Corners[i] = mgl64.Vec2{cx + size*w.X(), cy + size*w.Y()}
		}
		pf.NormalZ = m.Mul3x1(mgl64.Vec3{0, 0, 1}).Z()
		pf.Visible = pf.NormalZ > visibilityEpsilon
		out[f-1] = pf
	}
	return out
}

// Contains reports whether (x, y) lies inside the projected quad. The quad is
// convex so the point must sit on the same side of every edge.
func (pf ProjectedFace) Contains(x, y float64) bool {
	n := len(pf.Corners)
	var sign float64
	for i := 0; i < n; i++ {
		a := pf.Corners[i]
		b := pf.Corners[(i+1)%n]
		cross := (b.X()-a.X())*(y-a.Y()) - (b.Y()-a.Y())*(x-a.X())
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (sign > 0) != (cross > 0) {
			return false
		}
	}
	return sign != 0
}

// Local maps a screen point onto face coordinates, (0,0) at the top-left
// corner and (1,1) at the bottom-right. ok is false for edge-on faces.
func (pf ProjectedFace) Local(x, y float64) (s, t float64, ok bool) {
	o := pf.Corners[0]
	ex := pf.Corners[1].Sub(o)
	ey := pf.Corners[3].Sub(o)
	det := ex.X()*ey.Y() - ex.Y()*ey.X()
	if gomath.Abs(det) < 1e-9 {
		return 0, 0, false
	}
	px, py := x-o.X(), y-o.Y()
	s = (px*ey.Y() - py*ey.X()) / det
	t = (ex.X()*py - ex.Y()*px) / det
	return s, t, true
}

// Center of the projected quad.
func (pf ProjectedFace) Center() mgl64.Vec2 {
	return pf.Corners[0].Add(pf.Corners[2]).Mul(0.5)
}

// Width of the top edge on screen.
func (pf ProjectedFace) Width() float64 {
	return pf.Corners[1].Sub(pf.Corners[0]).Len()
}

// FaceAt returns the frontmost visible face containing (x, y).
func FaceAt(faces [dice.FaceCount]ProjectedFace, x, y float64) (ProjectedFace, bool) {
	var best ProjectedFace
	found := false
	for _, pf := range faces {
		if !pf.Visible || !pf.Contains(x, y) {
			continue
		}
		if !found || pf.NormalZ > best.NormalZ {
			best = pf
			found = true
		}
	}
	return best, found
}
