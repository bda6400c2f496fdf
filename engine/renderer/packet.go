package renderer

import (
	"time"

	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/math"
)

type CubePacket struct {
	Orientation math.Orientation
	Visuals     map[dice.Face]dice.FaceVisual
	// Edge length in pseudo-pixels before fitting to the terminal.
	Size      float64
	FaceScale float64
	// Time since mount, drives the bob.
	Elapsed time.Duration
}

type PanelPacket struct {
	Title string
	Lines []string
	// Highlighted right after the panel was scrolled to.
	Focused bool
}

type HUDPacket struct {
	AppName  string
	Face     dice.Face
	Mode     dice.Mode
	Cooldown bool
	Loading  bool
	FPS      float64
	FrameMS  float64
	Session  string
	Status   string
}

/**
 * @brief Everything needed to draw one frame.
 */
type RenderPacket struct {
	DeltaTime float64
	Cube      CubePacket
	// nil when no panel is showing.
	Panel *PanelPacket
	HUD   HUDPacket
}
