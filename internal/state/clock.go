package state

import (
	"sync"
	"time"
)

// Clock hands out creation timestamps in milliseconds. Successive ticks
// are strictly increasing even when the wall clock stalls or steps back.
type Clock struct {
	Now  func() time.Time
	last int64
	mu   sync.Mutex
}

// Tick returns the next timestamp.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	ts := now().UnixMilli()
	if ts <= c.last {
		ts = c.last + 1
	}
	c.last = ts
	return ts
}

// Update moves the clock past a timestamp seen elsewhere, such as one read
// back from storage.
func (c *Clock) Update(timestamp int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timestamp > c.last {
		c.last = timestamp
	}
}
