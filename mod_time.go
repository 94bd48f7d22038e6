package lumen

import (
	"time"
)

// Time is the frame clock. Dt and Elapsed are in seconds.
type Time struct {
	Time    time.Time
	Dt      float32
	Elapsed float32
	Frame   uint64
	// FixedDt, when positive, replaces the wall clock delta.
	FixedDt float32
}

// Every reports whether the current frame falls on an n-frame cadence.
func (t *Time) Every(n uint64) bool {
	return n > 0 && t.Frame%n == 0
}

type TimeModule struct {
	FixedDt float32
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:    time.Now(),
		FixedDt: mod.FixedDt,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	if timeResource.FixedDt > 0 {
		timeResource.Dt = timeResource.FixedDt
	} else {
		timeResource.Dt = float32(now.Sub(timeResource.Time).Seconds())
	}
	timeResource.Time = now
	timeResource.Elapsed += timeResource.Dt
	timeResource.Frame++
}
