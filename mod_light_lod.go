package lightlod

import (
	"errors"
	"fmt"
	"time"

	"github.com/gekko3d/lightlod/lod"
)

// LightLODSourceComponent marks a light entity as LOD controlled.
type LightLODSourceComponent struct {
	Name     string
	Settings AssetId
	// RangeIsThreshold uses the light's range as the direction threshold instead of DotThreshold.
	RangeIsThreshold bool
	DotThreshold     float32
	// Enabled is switched off when the source is not properly set up.
	Enabled bool
}

func NewLightLODSource(settings AssetId) LightLODSourceComponent {
	return LightLODSourceComponent{Settings: settings, RangeIsThreshold: true, Enabled: true}
}

// LightLODControllerComponent broadcasts the entity's transform to all sources every UpdateTick.
type LightLODControllerComponent struct {
	UpdateTick        time.Duration
	ConsiderDirection bool

	ticker *lod.Controller
}

func NewLightLODController() LightLODControllerComponent {
	return LightLODControllerComponent{UpdateTick: lod.DefaultInterval, ConsiderDirection: true}
}

// Accumulated is the time gathered towards the next tick.
func (c *LightLODControllerComponent) Accumulated() time.Duration {
	if c.ticker == nil {
		return 0
	}
	return c.ticker.Accumulated()
}

type LightLODModule struct {
	// Diagnostics logs a warning for every source disabled because of missing setup.
	Diagnostics bool
	// Observer, when set, sees every tier write.
	Observer lod.Observer
}

func (m LightLODModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[AssetServer](app); !ok {
		app.addResources(NewAssetServer())
	}

	cmd.AddResources(
		lod.NewRegistry(),
		&LightLODState{
			members:     make(map[EntityId]*sourceMember),
			ecs:         app.ecs,
			logger:      app.Logger,
			diagnostics: m.Diagnostics,
			observer:    m.Observer,
		},
	)

	app.UseSystem(
		System(lightLODLifecycleSystem).InStage(PreUpdate),
	).UseSystem(
		System(lightLODControllerSystem).InStage(Update),
	)
}

// LightLODState tracks the runtime source behind every LightLODSourceComponent.
type LightLODState struct {
	members     map[EntityId]*sourceMember
	ecs         *Ecs
	logger      func() Logger
	diagnostics bool
	observer    lod.Observer
}

// Source returns the runtime source of an entity, if the lifecycle system has seen it.
func (state *LightLODState) Source(eid EntityId) (*lod.Source, bool) {
	m, ok := state.members[eid]
	if !ok {
		return nil, false
	}
	return m.source, true
}

func (state *LightLODState) Registered(eid EntityId) bool {
	m, ok := state.members[eid]
	return ok && m.registered
}

type sourceMember struct {
	eid    EntityId
	ecs    *Ecs
	source *lod.Source

	configured bool
	hasLight   bool
	settingsId AssetId
	version    uint
	registered bool
}

// Alive is false once the source was destroyed or its entity removed.
func (m *sourceMember) Alive() bool {
	return m.source.Alive() && m.ecs.hasEntity(m.eid)
}

func (m *sourceMember) ApplySettings(snapshot lod.PositionSnapshot, considerDirection bool) bool {
	return m.source.ApplySettings(snapshot, considerDirection)
}

func lightLODLifecycleSystem(cmd *Commands, state *LightLODState, registry *lod.Registry, server *AssetServer) {
	seen := make(set[EntityId])

	MakeQuery1[LightLODSourceComponent](cmd).Map(func(eid EntityId, src *LightLODSourceComponent) bool {
		seen[eid] = struct{}{}
		state.sync(eid, src, registry, server)
		return true
	})

	for eid, member := range state.members {
		if _, ok := seen[eid]; ok {
			continue
		}
		// The registry drops destroyed members on its next broadcast.
		member.source.Destroy()
		delete(state.members, eid)
	}
}

func (state *LightLODState) sync(eid EntityId, src *LightLODSourceComponent, registry *lod.Registry, server *AssetServer) {
	member, ok := state.members[eid]
	if !ok {
		member = &sourceMember{eid: eid, ecs: state.ecs, source: lod.NewSource(nil, nil)}
		if state.observer != nil {
			member.source.Observe(state.observer)
		}
		state.members[eid] = member
	}

	hasLight := getComponent[LightComponent](state.ecs, eid) != nil
	settings := server.Settings(src.Settings)

	var (
		err     error
		checked bool
	)
	if !member.configured || member.hasLight != hasLight || member.settingsId != src.Settings || settings != member.source.Settings() {
		var light lod.Light
		if hasLight {
			light = entityLight{ecs: state.ecs, eid: eid}
		}
		err = member.source.Set(light, settings)
		member.source.Invalidate()
		member.configured = true
		member.hasLight = hasLight
		member.settingsId = src.Settings
		member.version = server.Version(src.Settings)
		checked = true
	} else if v := server.Version(src.Settings); v != member.version {
		member.version = v
		member.source.Invalidate()
	}

	member.source.RangeIsThreshold = src.RangeIsThreshold
	member.source.SetDotThreshold(src.DotThreshold)

	if src.Enabled && !member.registered && !checked {
		err = member.source.Validate()
		checked = true
	}
	if src.Enabled && checked && err != nil {
		src.Enabled = false
		state.report(eid, src, err)
	}

	switch {
	case src.Enabled && !member.registered:
		registry.Register(member)
		member.registered = true
		state.logger().Debugf("light LOD source %s registered", sourceName(eid, src))
	case !src.Enabled && member.registered:
		registry.Unregister(member)
		member.registered = false
		state.logger().Debugf("light LOD source %s unregistered", sourceName(eid, src))
	}
}

func (state *LightLODState) report(eid EntityId, src *LightLODSourceComponent, err error) {
	if !state.diagnostics {
		return
	}
	log := state.logger()
	log.Warnf("'%s' is not properly set up and was disabled!", sourceName(eid, src))
	for _, problem := range []struct {
		err error
		msg string
	}{
		{lod.ErrMissingLight, "Light source is missing!"},
		{lod.ErrMissingSettings, "Settings are missing!"},
		{lod.ErrBakedLight, "Light Mode can not be 'Baked'!"},
	} {
		if errors.Is(err, problem.err) {
			log.Warnf("%s", problem.msg)
		}
	}
}

func sourceName(eid EntityId, src *LightLODSourceComponent) string {
	if src.Name != "" {
		return src.Name
	}
	return fmt.Sprintf("entity %d", eid)
}

func lightLODControllerSystem(cmd *Commands, t *Time, registry *lod.Registry) {
	MakeQuery2[TransformComponent, LightLODControllerComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, ctrl *LightLODControllerComponent) bool {
		if ctrl.ticker == nil {
			ctrl.ticker = lod.NewController(ctrl.UpdateTick, ctrl.ConsiderDirection)
		}
		ctrl.ticker.SetInterval(ctrl.UpdateTick)
		ctrl.UpdateTick = ctrl.ticker.Interval()
		ctrl.ticker.ConsiderDirection = ctrl.ConsiderDirection

		ctrl.ticker.Update(t.Dt, tr.Snapshot, registry)
		return true
	})
}
