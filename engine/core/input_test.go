package core

import "testing"

type recorded struct {
	codes []EventCode
	mouse []*MouseEvent
	keys  []*KeyEvent
}

func newRecordingInput(t *testing.T) (*Input, *recorded) {
	t.Helper()
	es := NewEventSystem()
	es.Initialize()
	rec := &recorded{}
	for _, code := range []EventCode{
		EVENT_CODE_KEY_PRESSED, EVENT_CODE_KEY_RELEASED,
		EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED,
		EVENT_CODE_MOUSE_MOVED, EVENT_CODE_MOUSE_WHEEL,
	} {
		es.Register(code, rec, func(ctx EventContext) bool {
			rec.codes = append(rec.codes, ctx.Type)
			switch d := ctx.Data.(type) {
			case *MouseEvent:
				rec.mouse = append(rec.mouse, d)
			case *KeyEvent:
				rec.keys = append(rec.keys, d)
			}
			return false
		})
	}
	return NewInput(es), rec
}

func TestInputButtonsFireOnChange(t *testing.T) {
	in, rec := newRecordingInput(t)

	in.ProcessMouseMove(12, 24)
	in.ProcessMouseMove(12, 24)
	in.ProcessButton(BUTTON_LEFT, true)
	in.ProcessButton(BUTTON_LEFT, true)
	in.ProcessButton(BUTTON_LEFT, false)
	in.ProcessButton(BUTTON_MAX_BUTTONS, true)

	want := []EventCode{EVENT_CODE_MOUSE_MOVED, EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED}
	if len(rec.codes) != len(want) {
		t.Fatalf("codes = %v, want %v", rec.codes, want)
	}
	for i := range want {
		if rec.codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", rec.codes, want)
		}
	}
	// button events carry the last pointer position
	if e := rec.mouse[1]; e.PosX != 12 || e.PosY != 24 || e.Button != BUTTON_LEFT {
		t.Errorf("press event = %+v", e)
	}
	if in.IsButtonDown(BUTTON_LEFT) {
		t.Error("button still down after release")
	}
}

func TestInputKeys(t *testing.T) {
	in, rec := newRecordingInput(t)

	in.ProcessKey(KEY_RUNE, '1', true)
	in.ProcessKey(KEY_RUNE, '1', false)
	in.ProcessKey(KEY_RUNE, '2', true)
	in.ProcessKey(KEY_ESCAPE, 0, true)
	in.ProcessKey(KEY_ESCAPE, 0, true)

	if len(rec.keys) != 4 {
		t.Fatalf("keys = %d, want 4", len(rec.keys))
	}
	if rec.keys[2].Rune != '2' {
		t.Errorf("rune = %q", rec.keys[2].Rune)
	}
	if !in.IsKeyDown(KEY_ESCAPE) {
		t.Error("escape should be down")
	}
	in.Update(0)
	if !in.WasKeyDown(KEY_ESCAPE) {
		t.Error("previous state not copied")
	}
}

func TestInputWheel(t *testing.T) {
	in, rec := newRecordingInput(t)
	in.ProcessMouseWheel(-1)
	if len(rec.mouse) != 1 || rec.mouse[0].Scroll != -1 {
		t.Errorf("wheel events = %+v", rec.mouse)
	}
}
