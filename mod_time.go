package lightlod

import (
	"time"
)

// Time is the unscaled frame clock.
type Time struct {
	Time time.Time
	Dt   time.Duration
}

type TimeModule struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

type clock struct {
	now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	cmd.AddResources(&Time{Time: now(), Dt: 0}, &clock{now: now})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time, c *clock) {
	now := c.now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}
