package lightlod

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightlod/lod"
)

func TestLifecycle_TransientLightLeavesRegistry(t *testing.T) {
	h := newLODHarness(t, LightLODModule{Diagnostics: true}, LifecycleModule{})
	settings := h.settings(t, nearFarTiers()...)
	eid := h.light(t, settings, mgl32.Vec3{0, 0, -5})
	h.cmd.AddComponents(eid, &LifetimeComponent{TimeLeft: 200 * time.Millisecond})
	CreateLODController(h.cmd, mgl32.Vec3{}, mgl32.QuatIdent(), 100*time.Millisecond, false)

	h.frame(0)
	registry, _ := Resource[lod.Registry](h.app)
	require.Equal(t, 1, registry.Len())
	require.NotNil(t, Component[LifetimeComponent](h.cmd, eid))

	h.frame(150 * time.Millisecond)
	assert.True(t, h.cmd.HasEntity(eid))
	assert.Equal(t, 50*time.Millisecond, Component[LifetimeComponent](h.cmd, eid).TimeLeft)

	h.frame(50 * time.Millisecond)
	assert.False(t, h.cmd.HasEntity(eid))

	h.frame(100 * time.Millisecond)
	assert.Equal(t, 0, registry.Len())
	state, _ := Resource[LightLODState](h.app)
	assert.False(t, state.Registered(eid))
}
