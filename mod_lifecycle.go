package lumen

// LifetimeComponent removes its entity once TimeLeft seconds have run out.
type LifetimeComponent struct {
	TimeLeft float32
}

// LifecycleModule counts lifetimes down. In a stateful app they only run
// while playing, like the lighting systems, so a paused flare keeps burning
// where it left off.
type LifecycleModule struct{}

func (LifecycleModule) Install(app *App, cmd *Commands) {
	usePlaying(app, System(lifetimeSystem).InStage(PostUpdate))
}

func lifetimeSystem(t *Time, cmd *Commands) {
	if t.Dt <= 0 {
		return
	}
	MakeQuery1[LifetimeComponent](cmd).Map(func(eid EntityId, lt *LifetimeComponent) bool {
		lt.TimeLeft -= t.Dt
		if lt.TimeLeft <= 0 {
			cmd.Logger().Debugf("lifetime: %v expired at frame %d", eid, t.Frame)
			cmd.RemoveEntity(eid)
		}
		return true
	})
}
