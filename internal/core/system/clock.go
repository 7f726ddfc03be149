package system

import "time"

// FrameClock turns successive absolute frame timestamps into deltas.
// The first frame after construction or Reset yields 0, and a timestamp that
// goes backwards yields 0 instead of a negative delta.
type FrameClock struct {
	last    time.Duration
	started bool
}

// Advance records ts and returns the elapsed time since the previous frame.
func (c *FrameClock) Advance(ts time.Duration) time.Duration {
	if !c.started {
		c.started = true
		c.last = ts
		return 0
	}
	dt := ts - c.last
	c.last = ts
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset forgets the previous timestamp.
func (c *FrameClock) Reset() {
	c.started = false
	c.last = 0
}

// WallClock is the time source for deferred effects, which run on real time
// rather than on frame deltas.
type WallClock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
