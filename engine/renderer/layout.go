package renderer

import (
	"image"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spaghettifunk/facecube/engine/platform"
)

const (
	// A rotated cube spans up to its space diagonal.
	widgetSpan    = 1.75
	minPanelCols  = 32
	minPanelRows  = 6
	minCubeSize   = 32.0
	hudRows       = 1
	statusBarRows = 1
)

// Layout places the widget and the panel on a terminal of Cols x Rows cells.
type Layout struct {
	Cols, Rows int
	// Cell rectangle the widget owns; presses outside it are not drags.
	Widget image.Rectangle
	Panel  image.Rectangle
	// Cube center and edge in pseudo-pixels.
	Center   mgl64.Vec2
	CubeSize float64
}

// ComputeLayout fits a cube of edge size next to the panel when there is room,
// above it otherwise.
func ComputeLayout(cols, rows int, size float64, panel bool) Layout {
	l := Layout{Cols: cols, Rows: rows}
	top := hudRows
	bottom := rows - statusBarRows
	if bottom <= top {
		return l
	}

	widget := image.Rect(0, top, cols, bottom)
	if panel {
		side := sideBySide(cols, bottom-top, size)
		switch {
		case side > 0:
			widget = image.Rect(0, top, side, bottom)
			l.Panel = image.Rect(side, top, cols, bottom)
		case bottom-top >= 2*minPanelRows:
			split := top + (bottom-top)/2
			widget = image.Rect(0, top, cols, split)
			l.Panel = image.Rect(0, split, cols, bottom)
		default:
			l.Panel = widget
		}
	}
	l.Widget = widget

	wpx := float64(widget.Dx() * platform.CellWidth)
	hpx := float64(widget.Dy() * platform.CellHeight)
	fit := gomath.Min(wpx, hpx) / widgetSpan
	l.CubeSize = gomath.Max(gomath.Min(size, fit), gomath.Min(minCubeSize, fit))
	l.Center = mgl64.Vec2{
		float64(widget.Min.X*platform.CellWidth) + wpx/2,
		float64(widget.Min.Y*platform.CellHeight) + hpx/2,
	}
	return l
}

// sideBySide returns the column where the panel starts, or 0 when the panel
// does not fit beside the widget.
func sideBySide(cols, rows int, size float64) int {
	hpx := float64(rows * platform.CellHeight)
	cube := gomath.Min(size, hpx/widgetSpan)
	widgetCols := int(gomath.Ceil(cube*widgetSpan/platform.CellWidth)) + 2
	if cols-widgetCols < minPanelCols {
		return 0
	}
	return widgetCols
}

// InWidget reports whether the pseudo-pixel (x, y) is inside the widget.
func (l Layout) InWidget(x, y float64) bool {
	return image.Pt(int(x)/platform.CellWidth, int(y)/platform.CellHeight).In(l.Widget)
}

// InPanel reports whether the pseudo-pixel (x, y) is inside the panel.
func (l Layout) InPanel(x, y float64) bool {
	return image.Pt(int(x)/platform.CellWidth, int(y)/platform.CellHeight).In(l.Panel)
}
