package renderer

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/spaghettifunk/facecube/engine/core"
)

const helpText = "drag: rotate  click: pick face  1-6: jump  wheel: scroll  r: reload  q: quit"

func (r *Renderer) drawHUD(h *HUDPacket, l Layout) {
	if l.Rows < 1 || l.Cols < 1 {
		return
	}
	bar := tcell.StyleDefault.Foreground(ColorHUD).Background(ColorTag)
	top := image.Rect(0, 0, l.Cols, 1)
	for x := 0; x < l.Cols; x++ {
		r.backend.SetCell(x, 0, ' ', bar)
	}

	col := r.drawText(1, 0, h.AppName, bar.Bold(true), top)
	face := "-"
	if h.Face.Valid() {
		face = fmt.Sprintf("%d", h.Face)
	}
	col = r.drawText(col+2, 0, fmt.Sprintf("face %s  %s", face, h.Mode), bar, top)
	if h.Cooldown {
		col = r.drawText(col+2, 0, "cooldown", bar.Foreground(ColorCooldown), top)
	}
	if h.Loading {
		col = r.drawText(col+2, 0, "loading…", bar.Foreground(ColorAccent), top)
	}

	right := fmt.Sprintf("%.0f fps %.1f ms  %s ", h.FPS, h.FrameMS, core.ShortID(h.Session))
	r.drawText(l.Cols-len(right), 0, right, bar.Foreground(ColorMuted), top)

	if l.Rows < 2 {
		return
	}
	status := helpText
	if h.Status != "" {
		status = h.Status
	}
	bottom := image.Rect(0, l.Rows-1, l.Cols, l.Rows)
	r.drawText(1, l.Rows-1, status, tcell.StyleDefault.Foreground(ColorMuted).Background(ColorBackground), bottom)
}
