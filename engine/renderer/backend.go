package renderer

import "github.com/gdamore/tcell/v2"

// RendererBackend is the surface frames are drawn onto, one glyph per cell.
type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	Size() (width, height int)
	SetCell(x, y int, r rune, style tcell.Style)
}

// TerminalBackend draws onto a tcell screen owned by the platform.
type TerminalBackend struct {
	screen tcell.Screen
	width  int
	height int
}

func NewTerminalBackend(screen tcell.Screen) *TerminalBackend {
	return &TerminalBackend{screen: screen}
}

func (tb *TerminalBackend) Initialize(appName string) error {
	tb.width, tb.height = tb.screen.Size()
	return nil
}

func (tb *TerminalBackend) Shutdown() error {
	return nil
}

func (tb *TerminalBackend) Resized(width, height uint32) error {
	tb.width, tb.height = int(width), int(height)
	return nil
}

func (tb *TerminalBackend) BeginFrame(deltaTime float64) error {
	tb.screen.SetStyle(tcell.StyleDefault.Background(ColorBackground))
	tb.screen.Clear()
	return nil
}

func (tb *TerminalBackend) EndFrame(deltaTime float64) error {
	tb.screen.Show()
	return nil
}

func (tb *TerminalBackend) Size() (int, int) {
	return tb.width, tb.height
}

func (tb *TerminalBackend) SetCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= tb.width || y >= tb.height {
		return
	}
	tb.screen.SetContent(x, y, r, nil, style)
}
