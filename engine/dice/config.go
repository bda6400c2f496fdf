package dice

import (
	"image"
	"time"

	"github.com/spaghettifunk/facecube/engine/math"
)

// FaceVisual is what a face shows. A decoded Image wins over Label; with
// neither, the face shows its pips.
type FaceVisual struct {
	Label    string
	ImageRef string
	Image    image.Image
}

type Config struct {
	// Edge length of the cube on screen, in renderer units.
	Size int
	// Share of a face covered by its custom content, 0..1.
	FaceScale float64
	// Orientation restored at every mount.
	InitialOrientation math.Orientation

	// Idle drift speed in degrees per millisecond on all three axes.
	IdleRate float64
	// Largest elapsed time a single tick may drift by.
	IdleMaxStep time.Duration

	// Degrees of rotation per pointer unit while dragging.
	DragSensitivity float64
	// Pointer travel a press must exceed to count as a drag instead of a click.
	DragThreshold float64

	DragSnapDuration  time.Duration
	ClickSnapDuration time.Duration
	// Extra wait after a snap animation before the face counts as settled.
	SettleSlack time.Duration
	// Window after a snap starts during which new interactions are ignored.
	Cooldown time.Duration

	// Fired synchronously when a face region is clicked.
	OnFacePicked func(Face)
	// Fired once a snap animation has come to rest.
	OnFaceSettled func(Face)
}

func DefaultConfig() Config {
	return Config{
		Size:               240,
		FaceScale:          0.9,
		InitialOrientation: math.NewOrientation(-20, 30, 0),
		IdleRate:           0.015,
		IdleMaxStep:        32 * time.Millisecond,
		DragSensitivity:    0.4,
		DragThreshold:      0,
		DragSnapDuration:   300 * time.Millisecond,
		ClickSnapDuration:  400 * time.Millisecond,
		SettleSlack:        20 * time.Millisecond,
		Cooldown:           3000 * time.Millisecond,
	}
}
