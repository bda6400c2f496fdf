package testbed

import (
	"github.com/spaghettifunk/facecube/engine/audio"
	"github.com/spaghettifunk/facecube/engine/binding"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/dice"
	"github.com/spaghettifunk/facecube/engine/renderer"
	"github.com/spaghettifunk/facecube/engine/resources"
)

func (g *Showcase) onButtonPressed(ctx core.EventContext) bool {
	me, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	// the widget only captures presses that start on it
	if !g.Renderer.LastLayout().InWidget(me.PosX, me.PosY) {
		return false
	}
	g.state().dice.Press(me.Button, me.PosX, me.PosY)
	return false
}

func (g *Showcase) onButtonReleased(ctx core.EventContext) bool {
	me, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	g.state().dice.Release(me.Button, me.PosX, me.PosY)
	return false
}

func (g *Showcase) onMouseMoved(ctx core.EventContext) bool {
	me, ok := ctx.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	g.state().dice.Move(me.PosX, me.PosY)
	return false
}

func (g *Showcase) onMouseWheel(ctx core.EventContext) bool {
	me, ok := ctx.Data.(*core.MouseEvent)
	if !ok || g.state().panel == nil {
		return false
	}
	// wheel up scrolls back towards the top
	g.Renderer.ScrollPanel(-int(me.Scroll))
	return true
}

func (g *Showcase) onKey(ctx core.EventContext) bool {
	ke, ok := ctx.Data.(*core.KeyEvent)
	if !ok {
		return false
	}
	state := g.state()

	switch ke.KeyCode {
	case core.KEY_UP:
		g.Renderer.ScrollPanel(-1)
		return true
	case core.KEY_DOWN:
		g.Renderer.ScrollPanel(1)
		return true
	case core.KEY_PRIOR:
		g.Renderer.ScrollPanel(-pageRows)
		return true
	case core.KEY_NEXT:
		g.Renderer.ScrollPanel(pageRows)
		return true
	case core.KEY_HOME:
		g.Renderer.ScrollPanelToTop()
		return true
	case core.KEY_SPACE, core.KEY_ENTER:
		state.dice.Click()
		return true
	case core.KEY_RUNE:
	default:
		return false
	}

	switch r := ke.Rune; {
	case r >= '1' && r <= '6':
		state.dice.ClickFace(dice.Face(r - '0'))
		return true
	case r == ' ':
		state.dice.Click()
		return true
	case r == 'r' || r == 'R':
		if err := g.SystemManager.ContentSystem().Reload(); err != nil {
			core.LogError("manual reload failed: %s", err)
			g.setStatus("reload failed: %s", err)
			return true
		}
		g.setStatus("reloading content…")
		return true
	}
	return false
}

func (g *Showcase) onFacePicked(ctx core.EventContext) bool {
	f, ok := ctx.Data.(uint8)
	if !ok {
		return false
	}
	core.LogDebug("face %d picked", f)
	g.playCue(audio.CuePick)
	return false
}

func (g *Showcase) onFaceSettled(ctx core.EventContext) bool {
	f, ok := ctx.Data.(uint8)
	if !ok {
		return false
	}
	g.state().layer.OnFaceSettled(dice.Face(f))
	g.playCue(audio.CueSettle)
	return false
}

func (g *Showcase) onContentLoaded(ctx core.EventContext) bool {
	records, ok := ctx.Data.([]resources.Experience)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	state := g.state()
	state.records = records
	state.layer.Bind(records)
	g.refreshVisuals()
	core.LogInfo("%d of %d records bound to the cube", state.layer.Bound(), len(records))
	return false
}

func (g *Showcase) onContentChanged(ctx core.EventContext) bool {
	g.setStatus("content changed, reloading…")
	return false
}

func (g *Showcase) onImageLoaded(ctx core.EventContext) bool {
	ie, ok := ctx.Data.(*core.ImageEvent)
	if !ok {
		return false
	}
	if ie.Err != nil {
		// the face keeps showing the company name
		core.LogWarn("logo %s unavailable: %s", ie.Ref, ie.Err)
		return false
	}
	g.refreshVisuals()
	return false
}

// panelPresenter turns binding reveals into the panel the renderer draws.
type panelPresenter struct {
	game *Showcase
}

func (p *panelPresenter) Reveal(panel binding.Panel[resources.Experience]) {
	state := p.game.state()
	state.panel = &renderer.PanelPacket{
		Title: panel.Record.Company,
		Lines: panel.Record.Summary().Lines(),
	}
	state.panelFace = panel.Face
	state.panelEpoch = panel.Epoch
}

func (p *panelPresenter) Hide() {
	state := p.game.state()
	state.panel = nil
	state.panelFace = dice.NoFace
}

func (p *panelPresenter) ScrollTo(panel binding.Panel[resources.Experience]) {
	state := p.game.state()
	p.game.Renderer.ScrollPanelToTop()
	state.focusUntil = p.game.Clock.Now().Add(panelFocusTime)
	if state.panel != nil {
		state.panel.Focused = true
	}
}
