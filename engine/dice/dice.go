package dice

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/math"
)

type Mode uint8

const (
	// No pointer held and no snap in flight. Drifts unless cooling down.
	ModeIdle Mode = iota
	// Primary button held; orientation follows the pointer.
	ModeDragging
	// A snap towards a target orientation is in flight.
	ModeAnimating
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeAnimating:
		return "animating"
	default:
		return "idle"
	}
}

// HitTester maps a pointer position to the face drawn under it, or NoFace
// when the pointer is on the widget but not on a face.
type HitTester interface {
	HitTest(x, y float64) Face
}

// Dice is the orientation engine of the cube widget. It is not safe for
// concurrent use: all calls come from the frame loop.
type Dice struct {
	cfg     Config
	clock   core.TimeProvider
	timers  *core.Timers
	capture *Capture
	hit     HitTester
	visuals map[Face]FaceVisual
	log     *log.Logger
	session string
	mounted bool

	// rot is the logical orientation; while animating it already holds the target.
	rot          math.Orientation
	animFrom     math.Orientation
	animStart    time.Time
	animDuration time.Duration
	lastDelta    math.Orientation

	animating bool
	cooldown  bool
	lastTick  time.Time

	animTimer     core.TimerHandle
	cooldownTimer core.TimerHandle

	settled Face
}

func New(cfg Config, clock core.TimeProvider) *Dice {
	if clock == nil {
		clock = core.NewRealTimeProvider()
	}
	return &Dice{
		cfg:     cfg,
		clock:   clock,
		timers:  core.NewTimers(clock),
		capture: newCapture(cfg.DragThreshold),
		visuals: make(map[Face]FaceVisual),
		log:     core.LogWith("widget", "dice"),
		rot:     cfg.InitialOrientation,
	}
}

// Mount resets every piece of session state and starts a new session.
func (d *Dice) Mount() {
	d.timers.CancelAll()
	d.capture.End()
	d.session = core.NewSessionID()
	d.log = core.LogWith("widget", "dice", "session", core.ShortID(d.session))
	d.rot = d.cfg.InitialOrientation
	d.animFrom = d.rot
	d.lastDelta = math.Orientation{}
	d.animating = false
	d.cooldown = false
	d.animTimer = 0
	d.cooldownTimer = 0
	d.settled = NoFace
	d.lastTick = d.clock.Now()
	d.mounted = true
	d.log.Debug("mounted", "orientation", d.rot)
}

// Unmount tears down the pointer capture and cancels pending timers so no
// notification can fire for a widget that is gone.
func (d *Dice) Unmount() {
	if !d.mounted {
		return
	}
	d.timers.CancelAll()
	d.capture.End()
	d.animating = false
	d.cooldown = false
	d.mounted = false
	d.log.Debug("unmounted")
}

func (d *Dice) SetHitTester(h HitTester) {
	d.hit = h
}

// SetFaceVisuals replaces the content drawn on the faces.
func (d *Dice) SetFaceVisuals(visuals map[Face]FaceVisual) {
	d.visuals = make(map[Face]FaceVisual, len(visuals))
	for f, v := range visuals {
		if f.Valid() {
			d.visuals[f] = v
		}
	}
}

func (d *Dice) FaceVisual(f Face) (FaceVisual, bool) {
	v, ok := d.visuals[f]
	return v, ok
}

func (d *Dice) Config() Config {
	return d.cfg
}

func (d *Dice) Session() string {
	return d.session
}

func (d *Dice) Mode() Mode {
	switch {
	case d.capture.Active():
		return ModeDragging
	case d.animating:
		return ModeAnimating
	default:
		return ModeIdle
	}
}

func (d *Dice) CooldownActive() bool {
	return d.cooldown
}

// SettledFace is the face reported by the most recent settle.
func (d *Dice) SettledFace() Face {
	return d.settled
}

// LastSnapDelta is the per-axis rotation applied by the most recent snap.
func (d *Dice) LastSnapDelta() math.Orientation {
	return d.lastDelta
}

// LogicalOrientation is the orientation the engine reasons with. During a
// snap it is already the target.
func (d *Dice) LogicalOrientation() math.Orientation {
	return d.rot
}

// Orientation is what should be drawn this frame: eased towards the target
// during a snap, otherwise the logical orientation.
func (d *Dice) Orientation() math.Orientation {
	if !d.animating || d.animDuration <= 0 {
		return d.rot
	}
	t := float64(d.clock.Now().Sub(d.animStart)) / float64(d.animDuration)
	return d.animFrom.Lerp(d.rot, math.EaseOut(t))
}

// Press starts a drag candidate. Only the primary button is wired; anything
// else, and any press during a drag, snap or cooldown, is ignored.
func (d *Dice) Press(button core.Button, x, y float64) {
	if !d.mounted {
		return
	}
	if button != core.BUTTON_PRIMARY {
		d.log.Debug("press ignored", "button", button)
		return
	}
	if d.busy() {
		d.log.Debug("press rejected", "mode", d.Mode(), "cooldown", d.cooldown)
		return
	}
	d.capture.Begin(x, y)
}

// Move feeds pointer motion to an active drag, 1:1 with no easing.
// Dragging up tilts the cube up.
func (d *Dice) Move(x, y float64) {
	dx, dy, ok := d.capture.Move(x, y)
	if !ok {
		return
	}
	d.rot.Pitch -= dy * d.cfg.DragSensitivity
	d.rot.Yaw += dx * d.cfg.DragSensitivity
}

// Release ends a drag candidate. A drag snaps to the nearest face; a press
// that never moved is handled as a click on whatever is under the pointer.
func (d *Dice) Release(button core.Button, x, y float64) {
	if !d.capture.Active() || button != core.BUTTON_PRIMARY {
		return
	}
	d.Move(x, y)
	if d.capture.End() {
		d.snap(Nearest(d.rot), d.cfg.DragSnapDuration)
		d.startCooldown()
		return
	}

	face := NoFace
	if d.hit != nil {
		face = d.hit.HitTest(x, y)
	}
	if face.Valid() {
		d.ClickFace(face)
		return
	}
	d.Click()
}

// Click settles the cube onto the face nearest to where it is now.
// Returns false when the click was rejected by a guard.
func (d *Dice) Click() bool {
	if !d.mounted || d.busy() {
		d.log.Debug("click rejected", "mode", d.Mode(), "cooldown", d.cooldown)
		return false
	}
	d.snap(Nearest(d.rot), d.cfg.ClickSnapDuration)
	d.startCooldown()
	return true
}

// ClickFace turns the cube straight to face and reports the pick right away;
// the settle notification follows once the snap has finished.
func (d *Dice) ClickFace(face Face) bool {
	if !d.mounted || !face.Valid() || d.busy() {
		d.log.Debug("face click rejected", "face", face, "mode", d.Mode(), "cooldown", d.cooldown)
		return false
	}
	d.snap(face, d.cfg.ClickSnapDuration)
	d.startCooldown()
	if d.cfg.OnFacePicked != nil {
		d.cfg.OnFacePicked(face)
	}
	return true
}

// Tick runs due timers and, when nothing else owns the orientation, drifts
// it by the elapsed time. A long stall only advances by IdleMaxStep.
func (d *Dice) Tick() {
	if !d.mounted {
		return
	}
	d.timers.Advance()

	now := d.clock.Now()
	dt := now.Sub(d.lastTick)
	d.lastTick = now
	if d.Mode() != ModeIdle || d.cooldown {
		return
	}
	dt = math.Clamp(dt, 0, d.cfg.IdleMaxStep)
	step := float64(dt) / float64(time.Millisecond) * d.cfg.IdleRate
	d.rot = d.rot.Add(math.NewOrientation(step, step, step))
}

func (d *Dice) busy() bool {
	return d.cooldown || d.animating || d.capture.Active()
}

func (d *Dice) snap(face Face, duration time.Duration) {
	now := d.clock.Now()
	d.animFrom = d.rot
	d.rot, d.lastDelta = SnapTarget(d.rot, face)
	d.animating = true
	d.animStart = now
	d.animDuration = duration
	d.animTimer = d.timers.After(duration+d.cfg.SettleSlack, d.finishSnap)
	d.log.Debug("snap", "target", face, "delta", d.lastDelta, "duration", duration)
}

func (d *Dice) finishSnap() {
	d.animating = false
	d.animTimer = 0
	face := Nearest(d.rot)
	d.settled = face
	d.log.Debug("settled", "face", face)
	if d.cfg.OnFaceSettled != nil {
		d.cfg.OnFaceSettled(face)
	}
}

func (d *Dice) startCooldown() {
	if d.cooldownTimer != 0 {
		d.timers.Cancel(d.cooldownTimer)
	}
	d.cooldown = true
	d.cooldownTimer = d.timers.After(d.cfg.Cooldown, func() {
		d.cooldown = false
		d.cooldownTimer = 0
	})
}
