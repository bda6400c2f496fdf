package renderer

import (
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/dice"
)

type Renderer struct {
	backend RendererBackend
	layout  Layout

	// Projection of the last frame drawn, used for hit testing.
	faces    [dice.FaceCount]ProjectedFace
	hasFaces bool

	scroll      int
	panelRows   int
	panelHeight int
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string) error {
	if err := r.backend.Initialize(appName); err != nil {
		core.LogError("failed to initialize renderer backend: %s", err)
		return err
	}
	core.LogDebug("renderer initialized")
	return nil
}

func (r *Renderer) Shutdown() error {
	r.hasFaces = false
	return r.backend.Shutdown()
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	return r.backend.EndFrame(deltaTime)
}

func (r *Renderer) OnResize(width, height uint16) error {
	core.LogDebug("renderer resized to %dx%d", width, height)
	return r.backend.Resized(uint32(width), uint32(height))
}

// Layout returns the layout for the current terminal size.
func (r *Renderer) Layout(size float64, panel bool) Layout {
	w, h := r.backend.Size()
	return ComputeLayout(w, h, size, panel)
}

// LastLayout is the layout of the last frame drawn.
func (r *Renderer) LastLayout() Layout {
	return r.layout
}

func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError("failed to begin frame: %s", err)
		return err
	}

	r.layout = r.Layout(packet.Cube.Size, packet.Panel != nil)
	r.drawCube(&packet.Cube, r.layout)
	if packet.Panel != nil {
		r.drawPanel(packet.Panel, r.layout.Panel)
	}
	r.drawHUD(&packet.HUD, r.layout)

	if err := r.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("failed to end frame: %s", err)
		return err
	}
	return nil
}

// HitTest returns the frontmost visible face drawn under the pseudo-pixel
// (x, y) in the last frame.
func (r *Renderer) HitTest(x, y float64) dice.Face {
	if !r.hasFaces {
		return dice.NoFace
	}
	pf, ok := FaceAt(r.faces, x, y)
	if !ok {
		return dice.NoFace
	}
	return pf.Face
}

// ScrollPanel moves the panel by delta rows, clamped to its content.
func (r *Renderer) ScrollPanel(delta int) {
	r.scroll = clampScroll(r.scroll+delta, r.panelRows, r.panelHeight)
}

// ScrollPanelToTop brings the start of the panel into view.
func (r *Renderer) ScrollPanelToTop() {
	r.scroll = 0
}

func (r *Renderer) PanelScroll() int {
	return r.scroll
}
