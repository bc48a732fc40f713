package lightlod

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightlod/lod"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type lodHarness struct {
	app    *App
	cmd    *Commands
	clock  *fakeClock
	server *AssetServer
	out    *bytes.Buffer
	errs   *bytes.Buffer
}

func newLODHarness(t *testing.T, modules ...Module) *lodHarness {
	t.Helper()
	h := &lodHarness{clock: newFakeClock(), out: &bytes.Buffer{}, errs: &bytes.Buffer{}}

	builder := NewAppBuilder().UseModule(
		LoggingModule{Prefix: "test", Debug: true, Out: h.out, Err: h.errs},
		TimeModule{Now: h.clock.Now},
		AssetServerModule{},
	)
	if len(modules) == 0 {
		modules = []Module{LightLODModule{Diagnostics: true}}
	}
	h.app = builder.UseModule(modules...).Build()
	h.cmd = h.app.Commands()

	server, ok := Resource[AssetServer](h.app)
	require.True(t, ok)
	h.server = server
	return h
}

// frame advances the clock by dt and runs one Update.
func (h *lodHarness) frame(dt time.Duration) {
	h.clock.Advance(dt)
	h.app.Update()
}

func (h *lodHarness) settings(t *testing.T, tiers ...lod.QualityProfile) AssetId {
	t.Helper()
	id, err := h.server.CreateSettings(&lod.Settings{Name: "test", Tiers: tiers})
	require.NoError(t, err)
	return id
}

func nearFarTiers() []lod.QualityProfile {
	return []lod.QualityProfile{
		{
			MinDistance:      0,
			IsEnabled:        true,
			RenderMode:       lod.RenderModeForcePixel,
			ShadowQuality:    lod.ShadowsSoft,
			ShadowResolution: lod.ShadowResolutionVeryHigh,
		},
		{MinDistance: 20, IsEnabled: false},
	}
}

func (h *lodHarness) light(t *testing.T, settings AssetId, position mgl32.Vec3) EntityId {
	t.Helper()
	eid, err := CreateLODLight(h.cmd, lod.LightKindPoint, settings, position, mgl32.QuatIdent(), LODLightOptions{Name: "lamp"})
	require.NoError(t, err)
	return eid
}
