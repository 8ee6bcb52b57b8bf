// Package sim owns the simulation state: the wall-clock bridge and the
// orbital kinematics of every body.
package sim

import "time"

// MaxDelta caps the per-tick delta so a suspended process (backgrounded
// terminal, debugger pause) does not produce one huge simulation jump.
const MaxDelta = 0.05

// Clock bridges wall-clock time to simulation deltas. It is driven by the
// single frame loop; no locking.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
	paused  bool
}

// NewClock creates a clock backed by the system wall clock.
func NewClock() *Clock {
	return NewClockFunc(time.Now)
}

// NewClockFunc creates a clock with an injectable time source for tests.
func NewClockFunc(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick returns the elapsed seconds since the previous tick, clamped to
// MaxDelta. The first tick and every tick while paused return 0.
func (c *Clock) Tick() float64 {
	if c.paused {
		return 0
	}

	n := c.now()
	if !c.started {
		c.started = true
		c.last = n
		return 0
	}

	dt := n.Sub(c.last).Seconds()
	c.last = n

	if dt < 0 {
		return 0
	}
	if dt > MaxDelta {
		return MaxDelta
	}
	return dt
}

// Pause stops elapsed-time accumulation.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts accumulation. The interval spent paused is discarded so it
// never folds into the next delta.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.last = c.now()
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}
