package renderer

import (
	"image"
	gomath "math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/platform"
)

const (
	// Border width as a fraction of a face.
	borderWidth = 0.04
	// Labels go unreadable on steep faces.
	minLabelNormal = 0.5
	halfBlock      = '▀'
)

// drawCube rasterizes the visible faces into half-block cells, two samples
// per cell, and keeps the projection for hit testing.
func (r *Renderer) drawCube(cp *CubePacket, l Layout) {
	center := l.Center.Add(mgl64.Vec2{0, BobOffset(cp.Elapsed)})
	faces := ProjectCube(cp.Orientation, center.X(), center.Y(), l.CubeSize)
	r.faces = faces
	r.hasFaces = true

	scale := cp.FaceScale
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	radius := pipRadius(l.CubeSize)

	bounds := r.cubeBounds(faces).Intersect(l.Widget)
	for cy := bounds.Min.Y; cy < bounds.Max.Y; cy++ {
		for cx := bounds.Min.X; cx < bounds.Max.X; cx++ {
			px := float64(cx*platform.CellWidth) + platform.CellWidth/2
			py := float64(cy * platform.CellHeight)
			top, topOK := r.sample(faces, cp.Visuals, px, py+platform.CellHeight/4, scale, radius)
			bot, botOK := r.sample(faces, cp.Visuals, px, py+3*platform.CellHeight/4, scale, radius)
			if !topOK && !botOK {
				continue
			}
			if !topOK {
				top = ColorBackground
			}
			if !botOK {
				bot = ColorBackground
			}
			r.backend.SetCell(cx, cy, halfBlock, tcell.StyleDefault.Foreground(top).Background(bot))
		}
	}

	for _, pf := range faces {
		v := cp.Visuals[pf.Face]
		if !pf.Visible || pf.NormalZ <= minLabelNormal || v.Label == "" || v.Image != nil {
			continue
		}
		r.drawLabel(pf, v.Label, scale, l.Widget)
	}
}

func (r *Renderer) cubeBounds(faces [dice.FaceCount]ProjectedFace) image.Rectangle {
	minX, minY := gomath.Inf(1), gomath.Inf(1)
	maxX, maxY := gomath.Inf(-1), gomath.Inf(-1)
	for _, pf := range faces {
		if !pf.Visible {
			continue
		}
		for _, c := range pf.Corners {
			minX, maxX = gomath.Min(minX, c.X()), gomath.Max(maxX, c.X())
			minY, maxY = gomath.Min(minY, c.Y()), gomath.Max(maxY, c.Y())
		}
	}
	if gomath.IsInf(minX, 1) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(gomath.Floor(minX/platform.CellWidth)),
		int(gomath.Floor(minY/platform.CellHeight)),
		int(gomath.Ceil(maxX/platform.CellWidth))+1,
		int(gomath.Ceil(maxY/platform.CellHeight))+1,
	)
}

// sample returns the shaded color of the cube at (x, y).
func (r *Renderer) sample(faces [dice.FaceCount]ProjectedFace, visuals map[dice.Face]dice.FaceVisual, x, y, scale, radius float64) (tcell.Color, bool) {
	pf, ok := FaceAt(faces, x, y)
	if !ok {
		return 0, false
	}
	s, t, ok := pf.Local(x, y)
	if !ok {
		return 0, false
	}
	return shade(faceColor(pf.Face, visuals[pf.Face], s, t, scale, radius), pf.NormalZ), true
}

func faceColor(face dice.Face, v dice.FaceVisual, s, t, scale, radius float64) tcell.Color {
	if s < borderWidth || s > 1-borderWidth || t < borderWidth || t > 1-borderWidth {
		return ColorFaceBorder
	}
	inset := (1 - scale) / 2
	u, w := (s-inset)/scale, (t-inset)/scale
	inContent := u >= 0 && u < 1 && w >= 0 && w < 1

	switch {
	case v.Image != nil:
		if !inContent {
			return ColorFace
		}
		b := v.Image.Bounds()
		ix := b.Min.X + int(u*float64(b.Dx()))
		iy := b.Min.Y + int(w*float64(b.Dy()))
		return fromImageColor(v.Image.At(ix, iy), ColorFace)
	case v.Label != "":
		return ColorFace
	case inContent && onPip(face, u, w, radius):
		return ColorPip
	default:
		return ColorFace
	}
}

// drawLabel writes label across the middle row of a face that looks roughly
// at the viewer.
func (r *Renderer) drawLabel(pf ProjectedFace, label string, scale float64, clip image.Rectangle) {
	maxCols := int(pf.Width() * scale / platform.CellWidth)
	if maxCols <= 0 {
		return
	}
	text := runewidth.Truncate(label, maxCols, "…")
	c := pf.Center()
	row := int(c.Y() / platform.CellHeight)
	col := int(c.X()/platform.CellWidth) - runewidth.StringWidth(text)/2
	style := tcell.StyleDefault.Foreground(ColorLabel).Background(shade(ColorFace, pf.NormalZ)).Bold(true)
	r.drawText(col, row, text, style, clip)
}

// drawText writes text from (col, row), clipped to clip. It returns the
// column after the last cell written.
func (r *Renderer) drawText(col, row int, text string, style tcell.Style, clip image.Rectangle) int {
	if row < clip.Min.Y || row >= clip.Max.Y {
		return col
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col >= clip.Min.X && col+w <= clip.Max.X {
			r.backend.SetCell(col, row, ch, style)
		}
		col += w
	}
	return col
}
