package core

import "testing"

func TestEventSystemRequiresInitialize(t *testing.T) {
	es := NewEventSystem()
	if es.Register(EVENT_CODE_KEY_PRESSED, nil, func(EventContext) bool { return true }) {
		t.Error("Register succeeded before Initialize")
	}
	if es.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}) {
		t.Error("Fire handled before Initialize")
	}
	if !es.Initialize() {
		t.Fatal("Initialize failed")
	}
	if es.Initialize() {
		t.Error("second Initialize should report false")
	}
}

func TestEventSystemDispatch(t *testing.T) {
	es := NewEventSystem()
	es.Initialize()

	type listener struct{ name string }
	a, b := &listener{"a"}, &listener{"b"}
	var calls []string

	es.Register(EVENT_CODE_FACE_SETTLED, a, func(ctx EventContext) bool {
		calls = append(calls, "a")
		return false
	})
	es.Register(EVENT_CODE_FACE_SETTLED, b, func(ctx EventContext) bool {
		calls = append(calls, "b")
		return ctx.Data.(uint8) == 3
	})
	if es.Register(EVENT_CODE_FACE_SETTLED, a, func(EventContext) bool { return false }) {
		t.Error("duplicate listener registered")
	}

	if es.Fire(EventContext{Type: EVENT_CODE_FACE_SETTLED, Data: uint8(1)}) {
		t.Error("event reported handled")
	}
	if !es.Fire(EventContext{Type: EVENT_CODE_FACE_SETTLED, Data: uint8(3)}) {
		t.Error("event reported unhandled")
	}
	if len(calls) != 4 {
		t.Fatalf("calls = %v", calls)
	}

	if !es.Unregister(EVENT_CODE_FACE_SETTLED, a) {
		t.Fatal("Unregister failed")
	}
	if es.Unregister(EVENT_CODE_FACE_SETTLED, a) {
		t.Error("Unregister of a removed listener succeeded")
	}
	calls = nil
	es.Fire(EventContext{Type: EVENT_CODE_FACE_SETTLED, Data: uint8(1)})
	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("calls after Unregister = %v", calls)
	}
}

func TestEventSystemStopsAtHandler(t *testing.T) {
	es := NewEventSystem()
	es.Initialize()

	second := false
	es.Register(EVENT_CODE_APPLICATION_QUIT, nil, func(EventContext) bool { return true })
	es.Register(EVENT_CODE_APPLICATION_QUIT, nil, func(EventContext) bool {
		second = true
		return false
	})
	es.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	if second {
		t.Error("listener after a handler was called")
	}
}

func TestEventSystemUnregisterDuringFire(t *testing.T) {
	es := NewEventSystem()
	es.Initialize()

	type listener struct{}
	l := &listener{}
	count := 0
	es.Register(EVENT_CODE_CONTENT_CHANGED, l, func(EventContext) bool {
		count++
		es.Unregister(EVENT_CODE_CONTENT_CHANGED, l)
		return false
	})
	es.Fire(EventContext{Type: EVENT_CODE_CONTENT_CHANGED})
	es.Fire(EventContext{Type: EVENT_CODE_CONTENT_CHANGED})
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
