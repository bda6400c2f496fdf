package dice

import gomath "math"

// Capture tracks a pointer from press to release. While active it receives
// every pointer move regardless of where the pointer is on screen; the
// owning Dice ends it on release and on unmount.
type Capture struct {
	active    bool
	lastX     float64
	lastY     float64
	travel    float64
	threshold float64
	moved     bool
}

func newCapture(threshold float64) *Capture {
	return &Capture{threshold: threshold}
}

func (c *Capture) Begin(x, y float64) {
	c.active = true
	c.lastX, c.lastY = x, y
	c.travel = 0
	c.moved = false
}

// Move reports the delta since the previous position. ok is false when no
// capture is in progress.
func (c *Capture) Move(x, y float64) (dx, dy float64, ok bool) {
	if !c.active {
		return 0, 0, false
	}
	dx, dy = x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.travel += gomath.Abs(dx) + gomath.Abs(dy)
	if c.travel > c.threshold {
		c.moved = true
	}
	return dx, dy, true
}

// End stops the capture and reports whether it turned into a drag.
func (c *Capture) End() (moved bool) {
	moved = c.active && c.moved
	c.active = false
	c.moved = false
	c.travel = 0
	return moved
}

func (c *Capture) Active() bool {
	return c.active
}

func (c *Capture) Moved() bool {
	return c.moved
}
