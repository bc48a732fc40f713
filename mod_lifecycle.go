package lightlod

import "time"

// LifetimeComponent removes an entity once TimeLeft runs out. LOD sources on
// removed entities leave the registry on their own.
type LifetimeComponent struct {
	TimeLeft time.Duration
}

type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(lifetimeSystem).
			InStage(PostUpdate),
	)
}

func lifetimeSystem(t *Time, cmd *Commands) {
	if t.Dt <= 0 {
		return
	}
	MakeQuery1[LifetimeComponent](cmd).Map(func(eid EntityId, lt *LifetimeComponent) bool {
		lt.TimeLeft -= t.Dt
		if lt.TimeLeft <= 0 {
			cmd.app.Logger().Debugf("lifecycle removing entity %d", eid)
			cmd.RemoveEntity(eid)
		}
		return true
	})
}
