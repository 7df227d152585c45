package common

// Clock supplies simulation time in seconds.
type Clock interface {
	Now() float64
}

// ManualClock is advanced explicitly. Tests and the headless simulator drive
// it tick by tick.
type ManualClock struct {
	now float64
}

func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward by dt and returns the new time. Negative
// steps are ignored.
func (c *ManualClock) Advance(dt float64) float64 {
	if c == nil {
		return 0
	}
	if dt > 0 {
		c.now += dt
	}
	return c.now
}

func (c *ManualClock) Set(now float64) {
	if c != nil {
		c.now = now
	}
}
