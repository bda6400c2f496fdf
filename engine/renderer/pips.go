package renderer

import (
	gomath "math"
	"time"

	"github.com/spaghettifunk/facecube/engine/dice"
)

// Pip centers as fractions of the content area.
var pipLayouts = [dice.FaceCount + 1][][2]float64{
	1: {{0.50, 0.50}},
	2: {{0.20, 0.20}, {0.75, 0.75}},
	3: {{0.20, 0.20}, {0.50, 0.50}, {0.75, 0.75}},
	4: {{0.20, 0.20}, {0.20, 0.75}, {0.75, 0.20}, {0.75, 0.75}},
	5: {{0.20, 0.20}, {0.20, 0.75}, {0.50, 0.50}, {0.75, 0.20}, {0.75, 0.75}},
	6: {{0.20, 0.20}, {0.20, 0.50}, {0.20, 0.75}, {0.75, 0.20}, {0.75, 0.50}, {0.75, 0.75}},
}

// Terminal cells are coarse, pips below this radius vanish.
const minPipRadius = 0.09

const (
	bobAmplitude = 12.0
	bobPeriod    = 3 * time.Second
)

func pipRadius(size float64) float64 {
	if size <= 0 {
		return minPipRadius
	}
	r := gomath.Max(8, size*0.06) / 2 / size
	return gomath.Max(r, minPipRadius)
}

// onPip reports whether content coordinates (u, v) fall on a pip of face.
func onPip(face dice.Face, u, v, radius float64) bool {
	if !face.Valid() {
		return false
	}
	r2 := radius * radius
	for _, p := range pipLayouts[face] {
		du, dv := u-p[0], v-p[1]
		if du*du+dv*dv <= r2 {
			return true
		}
	}
	return false
}

// BobOffset is the vertical float of the cube, 0 at rest and -bobAmplitude at
// the top of its cycle.
func BobOffset(elapsed time.Duration) float64 {
	phase := 2 * gomath.Pi * float64(elapsed%bobPeriod) / float64(bobPeriod)
	return -bobAmplitude * (0.5 - 0.5*gomath.Cos(phase))
}
