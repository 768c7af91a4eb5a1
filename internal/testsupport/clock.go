package testsupport

import (
	"sync"
	"time"
)

// Clock hands out strictly increasing timestamps, one second apart.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// Frozen returns a clock function that always reports the same instant.
func Frozen(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
