package utils

import "time"

// Clock abstracts the wall clock so deadline checks can be tested.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

func (c *FixedClock) Set(t time.Time) {
	c.T = t
}
