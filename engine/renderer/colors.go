package renderer

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

var (
	ColorBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	ColorFace       = tcell.NewRGBColor(236, 236, 240) // card
	ColorFaceBorder = tcell.NewRGBColor(150, 150, 165)
	ColorPip        = tcell.NewRGBColor(30, 30, 40)
	ColorLabel      = tcell.NewRGBColor(20, 20, 30)
	ColorText       = tcell.NewRGBColor(200, 200, 210)
	ColorMuted      = tcell.NewRGBColor(130, 130, 150)
	ColorAccent     = tcell.NewRGBColor(122, 162, 247)
	ColorTag        = tcell.NewRGBColor(40, 52, 90)
	ColorHUD        = tcell.NewRGBColor(180, 180, 180)
	ColorCooldown   = tcell.NewRGBColor(255, 165, 0)
)

// shade darkens c by the lambert term of a face, 0..1.
func shade(c tcell.Color, lambert float64) tcell.Color {
	r, g, b := c.RGB()
	k := 0.55 + 0.45*lambert
	return tcell.NewRGBColor(int32(float64(r)*k), int32(float64(g)*k), int32(float64(b)*k))
}

// fromImageColor flattens c over the face color.
func fromImageColor(c color.Color, over tcell.Color) tcell.Color {
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
	}
	br, bg, bb := over.RGB()
	alpha := float64(a) / 0xffff
	mix := func(fg uint32, bgc int32) int32 {
		// fg is premultiplied
		return int32(float64(fg>>8) + float64(bgc)*(1-alpha))
	}
	return tcell.NewRGBColor(mix(r, br), mix(g, bg), mix(b, bb))
}
