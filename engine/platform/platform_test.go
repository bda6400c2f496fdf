package platform

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spaghettifunk/facecube/engine/core"
)

type recorded struct {
	code core.EventCode
	data interface{}
}

func startSimulated(t *testing.T) (*Platform, tcell.SimulationScreen, *[]recorded) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	events := core.NewEventSystem()
	events.Initialize()

	var got []recorded
	for _, code := range []core.EventCode{
		core.EVENT_CODE_KEY_PRESSED,
		core.EVENT_CODE_BUTTON_PRESSED,
		core.EVENT_CODE_BUTTON_RELEASED,
		core.EVENT_CODE_MOUSE_MOVED,
		core.EVENT_CODE_MOUSE_WHEEL,
	} {
		events.Register(code, nil, func(ctx core.EventContext) bool {
			got = append(got, recorded{ctx.Type, ctx.Data})
			return false
		})
	}

	p, err := New(sim)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Startup("test", core.NewInput(events), events); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Shutdown() })
	return p, sim, &got
}

func pumpUntil(t *testing.T, p *Platform, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("event never arrived")
		}
		p.PumpMessages()
		time.Sleep(time.Millisecond)
	}
}

func has(got []recorded, code core.EventCode) (recorded, bool) {
	for _, r := range got {
		if r.code == code {
			return r, true
		}
	}
	return recorded{}, false
}

func TestMouseButtonsBecomePressAndRelease(t *testing.T) {
	p, sim, got := startSimulated(t)

	sim.InjectMouse(2, 3, tcell.Button1, tcell.ModNone)
	pumpUntil(t, p, func() bool { _, ok := has(*got, core.EVENT_CODE_BUTTON_PRESSED); return ok })

	r, _ := has(*got, core.EVENT_CODE_BUTTON_PRESSED)
	e := r.data.(*core.MouseEvent)
	wantX, wantY := CellToPixel(2, 3)
	if e.Button != core.BUTTON_LEFT || e.PosX != wantX || e.PosY != wantY {
		t.Errorf("press = %+v, want left at %v,%v", e, wantX, wantY)
	}

	sim.InjectMouse(2, 3, tcell.ButtonNone, tcell.ModNone)
	pumpUntil(t, p, func() bool { _, ok := has(*got, core.EVENT_CODE_BUTTON_RELEASED); return ok })
}

func TestKeysArriveAsPresses(t *testing.T) {
	p, sim, got := startSimulated(t)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	pumpUntil(t, p, func() bool { _, ok := has(*got, core.EVENT_CODE_KEY_PRESSED); return ok })

	r, _ := has(*got, core.EVENT_CODE_KEY_PRESSED)
	if k := r.data.(*core.KeyEvent); k.KeyCode != core.KEY_RUNE || k.Rune != 'q' {
		t.Errorf("key = %+v", k)
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want core.KeyCode
	}{
		{tcell.KeyEscape, 0, core.KEY_ESCAPE},
		{tcell.KeyCtrlC, 0, core.KEY_CTRL_C},
		{tcell.KeyLeft, 0, core.KEY_LEFT},
		{tcell.KeyRune, ' ', core.KEY_SPACE},
		{tcell.KeyRune, '3', core.KEY_RUNE},
	}
	for _, tt := range tests {
		got, _ := translateKey(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone))
		if got != tt.want {
			t.Errorf("translateKey(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestCellToPixel(t *testing.T) {
	x, y := CellToPixel(0, 0)
	if x != CellWidth/2 || y != CellHeight/2 {
		t.Errorf("CellToPixel(0,0) = %v,%v", x, y)
	}
	x, y = CellToPixel(10, 2)
	if x != 84 || y != 40 {
		t.Errorf("CellToPixel(10,2) = %v,%v", x, y)
	}
}
