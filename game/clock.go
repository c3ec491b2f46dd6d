package game

import "time"

// Clock reads monotonic wall clock time in seconds. It is independent of frame delta time.
type Clock interface {
	Now() float64
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a clock counting from the moment it was created.
func NewSystemClock() Clock {
	return systemClock{start: time.Now()}
}

func (c systemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	T float64
}

func (c *ManualClock) Now() float64 {
	return c.T
}

func (c *ManualClock) Advance(seconds float64) {
	c.T += seconds
}
