package lod

import "time"

const (
	MinInterval     = 10 * time.Millisecond
	DefaultInterval = 500 * time.Millisecond
)

// Controller turns frame deltas into fixed-interval broadcasts.
type Controller struct {
	interval          time.Duration
	accumulator       time.Duration
	ConsiderDirection bool
}

func NewController(interval time.Duration, considerDirection bool) *Controller {
	c := &Controller{ConsiderDirection: considerDirection}
	c.SetInterval(interval)
	return c
}

func (c *Controller) Interval() time.Duration { return c.interval }

// SetInterval sets the tick length, never below MinInterval.
func (c *Controller) SetInterval(interval time.Duration) {
	c.interval = max(interval, MinInterval)
}

func (c *Controller) Accumulated() time.Duration { return c.accumulator }

// Advance adds dt and reports whether a tick is due. A due tick consumes one
// interval so leftover time carries into the next period.
func (c *Controller) Advance(dt time.Duration) bool {
	if c.interval < MinInterval {
		c.interval = MinInterval
	}
	c.accumulator += dt
	if c.accumulator > c.interval {
		c.accumulator -= c.interval
		return true
	}
	return false
}

// Update advances by dt and broadcasts a snapshot when a tick is due.
func (c *Controller) Update(dt time.Duration, snapshot func() PositionSnapshot, registry *Registry) bool {
	if !c.Advance(dt) {
		return false
	}
	registry.Broadcast(snapshot(), c.ConsiderDirection)
	return true
}
