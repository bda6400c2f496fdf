package testbed

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/facecube/engine"
	"github.com/spaghettifunk/facecube/engine/audio"
	"github.com/spaghettifunk/facecube/engine/binding"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/renderer"
	"github.com/spaghettifunk/facecube/engine/resources"
)

const (
	// How long the panel border stays highlighted after a reveal.
	panelFocusTime = time.Second
	statusTime     = 3 * time.Second
	pageRows       = 5
)

// Showcase is the portfolio game: a cube whose faces carry experience
// records, and a panel with the record of the face the cube settles on.
type Showcase struct {
	*engine.Game
}

type gameState struct {
	dice    *dice.Dice
	layer   *binding.Layer[resources.Experience]
	records []resources.Experience

	panel      *renderer.PanelPacket
	panelFace  dice.Face
	panelEpoch uint64
	focusUntil time.Time

	status      string
	statusUntil time.Time

	mountedAt time.Time
	width     uint32
	height    uint32
}

func NewShowcase(cfg *engine.Config) *Showcase {
	s := &Showcase{
		Game: &engine.Game{
			Config: cfg,
			State:  &gameState{},
		},
	}
	s.FnBoot = s.Boot
	s.FnInitialize = s.Initialize
	s.FnUpdate = s.Update
	s.FnRender = s.Render
	s.FnOnResize = s.OnResize
	s.FnShutdown = s.Shutdown
	return s
}

func (g *Showcase) state() *gameState {
	return g.State.(*gameState)
}

func (g *Showcase) Boot() error {
	core.LogInfo("booting %s...", g.Config.Application.Name)
	return nil
}

func (g *Showcase) Initialize() error {
	core.LogDebug("Showcase Initialize fn....")

	if g.SystemManager == nil || g.Events == nil || g.Renderer == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	state := g.state()

	cfg := g.Config.DiceConfig()
	cfg.OnFacePicked = func(f dice.Face) {
		g.Events.Fire(core.EventContext{Type: core.EVENT_CODE_FACE_PICKED, Data: uint8(f)})
	}
	cfg.OnFaceSettled = func(f dice.Face) {
		g.Events.Fire(core.EventContext{Type: core.EVENT_CODE_FACE_SETTLED, Data: uint8(f)})
	}
	state.dice = dice.New(cfg, g.Clock)
	state.dice.SetHitTester(g.Renderer)
	state.layer = binding.NewLayer[resources.Experience](&panelPresenter{game: g})

	for code, fn := range map[core.EventCode]core.FnOnEvent{
		core.EVENT_CODE_BUTTON_PRESSED:  g.onButtonPressed,
		core.EVENT_CODE_BUTTON_RELEASED: g.onButtonReleased,
		core.EVENT_CODE_MOUSE_MOVED:     g.onMouseMoved,
		core.EVENT_CODE_MOUSE_WHEEL:     g.onMouseWheel,
		core.EVENT_CODE_KEY_PRESSED:     g.onKey,
		core.EVENT_CODE_FACE_PICKED:     g.onFacePicked,
		core.EVENT_CODE_FACE_SETTLED:    g.onFaceSettled,
		core.EVENT_CODE_CONTENT_LOADED:  g.onContentLoaded,
		core.EVENT_CODE_CONTENT_CHANGED: g.onContentChanged,
		core.EVENT_CODE_IMAGE_LOADED:    g.onImageLoaded,
	} {
		if !g.Events.Register(code, g, fn) {
			return fmt.Errorf("failed to register listener for event %d", code)
		}
	}

	state.dice.Mount()
	state.mountedAt = g.Clock.Now()
	return nil
}

func (g *Showcase) Update(deltaTime float64) error {
	state := g.state()
	state.dice.Tick()

	now := g.Clock.Now()
	if state.status != "" && now.After(state.statusUntil) {
		state.status = ""
	}
	if state.panel != nil {
		state.panel.Focused = now.Before(state.focusUntil)
	}
	return nil
}

func (g *Showcase) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	state := g.state()
	d := state.dice
	cfg := d.Config()

	visuals := make(map[dice.Face]dice.FaceVisual, dice.FaceCount)
	for _, f := range dice.Faces() {
		if v, ok := d.FaceVisual(f); ok {
			visuals[f] = v
		}
	}
	packet.Cube = renderer.CubePacket{
		Orientation: d.Orientation(),
		Visuals:     visuals,
		Size:        float64(cfg.Size),
		FaceScale:   cfg.FaceScale,
		Elapsed:     g.Clock.Now().Sub(state.mountedAt),
	}
	packet.Panel = state.panel

	fps, frameMS := g.Metrics.Frame()
	packet.HUD = renderer.HUDPacket{
		AppName:  g.Config.Application.Name,
		Face:     d.SettledFace(),
		Mode:     d.Mode(),
		Cooldown: d.CooldownActive(),
		Loading:  g.SystemManager.ContentSystem().Loading(),
		FPS:      fps,
		FrameMS:  frameMS,
		Session:  d.Session(),
		Status:   state.status,
	}
	return nil
}

func (g *Showcase) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width, state.height = width, height
	return nil
}

func (g *Showcase) Shutdown() error {
	state := g.state()
	if state.dice != nil {
		state.dice.Unmount()
	}
	for _, code := range []core.EventCode{
		core.EVENT_CODE_BUTTON_PRESSED,
		core.EVENT_CODE_BUTTON_RELEASED,
		core.EVENT_CODE_MOUSE_MOVED,
		core.EVENT_CODE_MOUSE_WHEEL,
		core.EVENT_CODE_KEY_PRESSED,
		core.EVENT_CODE_FACE_PICKED,
		core.EVENT_CODE_FACE_SETTLED,
		core.EVENT_CODE_CONTENT_LOADED,
		core.EVENT_CODE_CONTENT_CHANGED,
		core.EVENT_CODE_IMAGE_LOADED,
	} {
		g.Events.Unregister(code, g)
	}
	return nil
}

// Dice exposes the widget, mostly for tests.
func (g *Showcase) Dice() *dice.Dice {
	return g.state().dice
}

// Layer exposes the binding layer, mostly for tests.
func (g *Showcase) Layer() *binding.Layer[resources.Experience] {
	return g.state().layer
}

// Panel is the panel currently on screen, nil when none is.
func (g *Showcase) Panel() *renderer.PanelPacket {
	return g.state().panel
}

func (g *Showcase) setStatus(format string, args ...interface{}) {
	state := g.state()
	state.status = fmt.Sprintf(format, args...)
	state.statusUntil = g.Clock.Now().Add(statusTime)
}

// refreshVisuals rebuilds the face visuals from the bound records. Faces
// whose logo is not decoded yet show the company name.
func (g *Showcase) refreshVisuals() {
	state := g.state()
	content := g.SystemManager.ContentSystem()
	visuals := make(map[dice.Face]dice.FaceVisual, dice.FaceCount)
	for _, f := range dice.Faces() {
		rec, ok := state.layer.Slot(f)
		if !ok {
			continue
		}
		v := dice.FaceVisual{Label: rec.Company, ImageRef: rec.ImageRef()}
		if img, ok := content.Image(v.ImageRef); ok {
			v.Image = img
		}
		visuals[f] = v
	}
	state.dice.SetFaceVisuals(visuals)
}

func (g *Showcase) playCue(cue audio.Cue) {
	if g.Audio != nil {
		g.Audio.Play(cue)
	}
}
