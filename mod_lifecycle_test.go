package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifetimeSystem_RemovesExpired(t *testing.T) {
	app := NewApp().UseModules(TimeModule{FixedDt: 0.5}, LifecycleModule{})
	cmd := app.Commands()
	short := cmd.AddEntity(&LifetimeComponent{TimeLeft: 1})
	long := cmd.AddEntity(&LifetimeComponent{TimeLeft: 10})

	app.Step()
	assert.True(t, cmd.EntityExists(short))
	app.Step()
	assert.False(t, cmd.EntityExists(short))
	assert.True(t, cmd.EntityExists(long))

	lt, _ := GetComponent[LifetimeComponent](cmd, long)
	assert.Equal(t, float32(9), lt.TimeLeft)
}

func TestLifetimeSystem_FrozenWhilePaused(t *testing.T) {
	app := NewApp().
		UseStates(StatePlaying, StatePaused).
		UseModules(TimeModule{FixedDt: 1}, LifecycleModule{})
	cmd := app.Commands()
	eid := cmd.AddEntity(&LifetimeComponent{TimeLeft: 2})

	app.Step()
	cmd.ChangeState(StatePaused)
	app.Step()
	assert.False(t, cmd.EntityExists(eid), "the frame that requests the pause still runs")

	eid = cmd.AddEntity(&LifetimeComponent{TimeLeft: 2})
	for i := 0; i < 5; i++ {
		app.Step()
	}
	assert.True(t, cmd.EntityExists(eid))
	lt, _ := GetComponent[LifetimeComponent](cmd, eid)
	assert.Equal(t, float32(2), lt.TimeLeft)
}
