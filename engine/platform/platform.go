package platform

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spaghettifunk/facecube/engine/core"
)

// A terminal cell is mapped onto a block of pseudo-pixels so pointer
// coordinates keep the aspect ratio of the glyphs.
const (
	CellWidth  = 8
	CellHeight = 16
)

const eventBufferSize = 256

type Platform struct {
	Screen tcell.Screen

	input  *core.Input
	events *core.EventSystem

	pending  chan tcell.Event
	quit     chan struct{}
	stopOnce sync.Once
	started  bool

	buttons tcell.ButtonMask
	width   int
	height  int
}

// New wraps screen, or a real terminal screen when screen is nil.
func New(screen tcell.Screen) (*Platform, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to create terminal screen: %w", err)
		}
		screen = s
	}
	return &Platform{
		Screen:  screen,
		pending: make(chan tcell.Event, eventBufferSize),
		quit:    make(chan struct{}),
	}, nil
}

func (p *Platform) Startup(applicationName string, input *core.Input, events *core.EventSystem) error {
	if err := p.Screen.Init(); err != nil {
		core.LogError("failed to initialize terminal: %s", err)
		return err
	}
	p.input = input
	p.events = events

	p.Screen.EnableMouse(tcell.MouseMotionEvents)
	p.Screen.HideCursor()
	p.Screen.SetStyle(tcell.StyleDefault)
	p.Screen.Clear()
	p.width, p.height = p.Screen.Size()
	p.started = true

	// PollEvent blocks; it returns nil once the screen is finalized
	go func() {
		for {
			ev := p.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case p.pending <- ev:
			case <-p.quit:
				return
			}
		}
	}()

	core.LogInfo("%s started on a %dx%d terminal", applicationName, p.width, p.height)
	return nil
}

func (p *Platform) Shutdown() error {
	p.stopOnce.Do(func() {
		close(p.quit)
		if p.started {
			p.Screen.Fini()
		}
	})
	return nil
}

// Size returns the terminal size in cells.
func (p *Platform) Size() (int, int) {
	return p.width, p.height
}

// PixelSize returns the terminal size in pseudo-pixels.
func (p *Platform) PixelSize() (float64, float64) {
	return float64(p.width * CellWidth), float64(p.height * CellHeight)
}

// CellToPixel maps a cell onto the pseudo-pixel at its center.
func CellToPixel(x, y int) (float64, float64) {
	return float64(x*CellWidth + CellWidth/2), float64(y*CellHeight + CellHeight/2)
}

// PumpMessages translates every terminal event received since the previous
// call into input state changes. Call once per frame.
func (p *Platform) PumpMessages() {
	for {
		select {
		case ev := <-p.pending:
			p.dispatch(ev)
		default:
			return
		}
	}
}

func (p *Platform) dispatch(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key, r := translateKey(e)
		// terminals only report presses
		p.input.ProcessKey(key, r, true)
		p.input.ProcessKey(key, r, false)

	case *tcell.EventMouse:
		x, y := e.Position()
		px, py := CellToPixel(x, y)
		p.input.ProcessMouseMove(px, py)

		mask := e.Buttons()
		for _, b := range []struct {
			mask   tcell.ButtonMask
			button core.Button
		}{
			{tcell.Button1, core.BUTTON_LEFT},
			{tcell.Button2, core.BUTTON_RIGHT},
			{tcell.Button3, core.BUTTON_MIDDLE},
		} {
			was, is := p.buttons&b.mask != 0, mask&b.mask != 0
			if was != is {
				p.input.ProcessButton(b.button, is)
			}
		}
		p.buttons = mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)

		switch {
		case mask&tcell.WheelUp != 0:
			p.input.ProcessMouseWheel(1)
		case mask&tcell.WheelDown != 0:
			p.input.ProcessMouseWheel(-1)
		}

	case *tcell.EventResize:
		p.Screen.Sync()
		w, h := e.Size()
		if w == p.width && h == p.height {
			return
		}
		p.width, p.height = w, h
		p.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.ResizeEvent{Width: uint32(w), Height: uint32(h)},
		})
	}
}

func translateKey(e *tcell.EventKey) (core.KeyCode, rune) {
	switch e.Key() {
	case tcell.KeyRune:
		if e.Rune() == ' ' {
			return core.KEY_SPACE, ' '
		}
		return core.KEY_RUNE, e.Rune()
	case tcell.KeyEscape:
		return core.KEY_ESCAPE, 0
	case tcell.KeyCtrlC:
		return core.KEY_CTRL_C, 0
	case tcell.KeyEnter:
		return core.KEY_ENTER, 0
	case tcell.KeyTab:
		return core.KEY_TAB, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return core.KEY_BACKSPACE, 0
	case tcell.KeyPgUp:
		return core.KEY_PRIOR, 0
	case tcell.KeyPgDn:
		return core.KEY_NEXT, 0
	case tcell.KeyHome:
		return core.KEY_HOME, 0
	case tcell.KeyEnd:
		return core.KEY_END, 0
	case tcell.KeyLeft:
		return core.KEY_LEFT, 0
	case tcell.KeyUp:
		return core.KEY_UP, 0
	case tcell.KeyRight:
		return core.KEY_RIGHT, 0
	case tcell.KeyDown:
		return core.KEY_DOWN, 0
	default:
		return core.KEY_RUNE, e.Rune()
	}
}
