package core

import "image"

type EventContext struct {
	Type EventCode
	Data interface{}
}

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * key := ctx.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed.
	/* Context usage:
	 * e := ctx.Data.(*MouseEvent) // Button, PosX, PosY
	 */
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved.
	/* Context usage:
	 * e := ctx.Data.(*MouseEvent) // PosX, PosY
	 */
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled.
	/* Context usage:
	 * e := ctx.Data.(*MouseEvent) // Scroll
	 */
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * e := ctx.Data.(*ResizeEvent)
	 */
	EVENT_CODE_RESIZED EventCode = 0x08

	MAX_EVENT_CODE EventCode = 0xFF
)

// Application event codes.
const (
	// A face region was clicked. Fired synchronously on the click.
	/* Context usage:
	 * face := ctx.Data.(uint8)
	 */
	EVENT_CODE_FACE_PICKED EventCode = MAX_EVENT_CODE + 1 + iota

	// The cube came to rest on a face after a snap.
	/* Context usage:
	 * face := ctx.Data.(uint8)
	 */
	EVENT_CODE_FACE_SETTLED

	// Content records were (re)loaded.
	/* Context usage:
	 * records := ctx.Data.([]resources.Experience)
	 */
	EVENT_CODE_CONTENT_LOADED

	// The content source changed on disk or a refresh is due.
	EVENT_CODE_CONTENT_CHANGED

	// A face image finished loading, or failed to.
	/* Context usage:
	 * e := ctx.Data.(*ImageEvent)
	 */
	EVENT_CODE_IMAGE_LOADED
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type KeyEvent struct {
	KeyCode KeyCode
	Rune    rune
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	Scroll int8
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

// Image is nil when Err is set.
type ImageEvent struct {
	Ref   string
	Image image.Image
	Err   error
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

// EventSystem dispatches events synchronously on the caller's goroutine.
type EventSystem struct {
	registered    [MAX_MESSAGE_CODES]eventCodeEntry
	isInitialized bool
}

func NewEventSystem() *EventSystem {
	return &EventSystem{}
}

func (es *EventSystem) Initialize() bool {
	if es.isInitialized {
		return false
	}
	es.isInitialized = true
	return true
}

func (es *EventSystem) Shutdown() error {
	// Free the events arrays. And objects pointed to should be destroyed on their own.
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		es.registered[i].events = nil
	}
	es.isInitialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/callback combos will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !es.isInitialized || code < 0 || code >= MAX_MESSAGE_CODES {
		return false
	}
	for _, e := range es.registered[code].events {
		if listener != nil && e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code].events = append(es.registered[code].events, &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 */
func (es *EventSystem) Unregister(code EventCode, listener interface{}) bool {
	if !es.isInitialized || code < 0 || code >= MAX_MESSAGE_CODES {
		return false
	}
	events := es.registered[code].events
	for i, e := range events {
		if e.listener == listener {
			es.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (es *EventSystem) Fire(ctx EventContext) bool {
	if !es.isInitialized || ctx.Type < 0 || ctx.Type >= MAX_MESSAGE_CODES {
		return false
	}
	// handlers may (un)register while we iterate
	events := append([]*registeredEvent(nil), es.registered[ctx.Type].events...)
	for _, e := range events {
		if e.callback(ctx) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
