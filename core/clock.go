package core

// FrameClock measures the wall-clock time between frames.
type FrameClock struct {
	// MaxDelta caps a single tick, in seconds. Zero disables the cap.
	MaxDelta float32

	now     func() float64
	last    float64
	started bool
}

// NewFrameClock returns a clock that reads seconds from now.
// The window layer passes glfw.GetTime.
func NewFrameClock(now func() float64) *FrameClock {
	return &FrameClock{now: now}
}

// Tick returns the seconds elapsed since the previous call.
// The first call returns 0 and the result is never negative.
func (c *FrameClock) Tick() float32 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := float32(t - c.last)
	c.last = t
	if dt < 0 {
		dt = 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	return dt
}
