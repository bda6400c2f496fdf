package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// BUTTON_PRIMARY is the only button wired to dragging and clicking.
const BUTTON_PRIMARY = BUTTON_LEFT

// Key code definitions. The terminal only reports a handful of named keys,
// everything else arrives as KEY_RUNE with the rune attached to the event.
type KeyCode uint16

const (
	KEY_RUNE      KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_PRIOR     KeyCode = 0x21
	KEY_NEXT      KeyCode = 0x22
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_CTRL_C    KeyCode = 0x03
	KEYS_MAX_KEYS KeyCode = 0xFF
)

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool // button states (pressed/released)
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS + 1]bool
}

// Input holds current and previous states for keyboard and mouse and turns
// state changes into events.
type Input struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState

	events *EventSystem
}

func NewInput(events *EventSystem) *Input {
	return &Input{events: events}
}

// Update copies current states to previous states. Call once at the end of a frame.
func (in *Input) Update(deltaTime float64) {
	in.KeyboardPrevious = in.KeyboardCurrent
	in.MousePrevious = in.MouseCurrent
}

// keyboard input
func (in *Input) IsKeyDown(key KeyCode) bool {
	return in.KeyboardCurrent.Keys[key]
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	return in.KeyboardPrevious.Keys[key]
}

// ProcessKey records a key transition. Terminals never report key releases,
// so platforms call it with pressed=true followed by pressed=false.
func (in *Input) ProcessKey(key KeyCode, r rune, pressed bool) {
	if in.KeyboardCurrent.Keys[key] == pressed && key != KEY_RUNE {
		return
	}
	in.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	in.events.Fire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key, Rune: r},
	})
}

// mouse input
func (in *Input) IsButtonDown(button Button) bool {
	return in.MouseCurrent.Buttons[button]
}

func (in *Input) WasButtonDown(button Button) bool {
	return in.MousePrevious.Buttons[button]
}

func (in *Input) MousePosition() (float64, float64) {
	return in.MouseCurrent.X, in.MouseCurrent.Y
}

func (in *Input) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	// If the state changed, fire an event.
	if in.MouseCurrent.Buttons[button] == pressed {
		return
	}
	in.MouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	in.events.Fire(EventContext{
		Type: code,
		Data: &MouseEvent{
			Button: button,
			PosX:   in.MouseCurrent.X,
			PosY:   in.MouseCurrent.Y,
		},
	})
}

func (in *Input) ProcessMouseMove(x, y float64) {
	// Only process if actually different
	if in.MouseCurrent.X == x && in.MouseCurrent.Y == y {
		return
	}
	in.MouseCurrent.X = x
	in.MouseCurrent.Y = y

	in.events.Fire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{
			PosX: x,
			PosY: y,
		},
	})
}

func (in *Input) ProcessMouseWheel(zDelta int8) {
	in.events.Fire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{
			Scroll: zDelta,
		},
	})
}
