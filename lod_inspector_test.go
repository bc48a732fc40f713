package lightlod

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightlod/lod"
)

func warningMessages(r SourceReport) []string {
	var msgs []string
	for _, w := range r.Warnings {
		msgs = append(msgs, w.Message)
	}
	return msgs
}

func TestInspectLODSources_HealthySource(t *testing.T) {
	h := newLODHarness(t)
	settings := h.settings(t, nearFarTiers()...)
	eid := h.light(t, settings, mgl32.Vec3{0, 0, -5})
	CreateLODController(h.cmd, mgl32.Vec3{}, mgl32.QuatIdent(), 100*time.Millisecond, true)
	h.frame(0)
	h.frame(150 * time.Millisecond)

	reports := InspectLODSources(h.cmd)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, eid, r.Entity)
	assert.Equal(t, "lamp", r.Name)
	assert.True(t, r.Enabled)
	assert.True(t, r.Registered)
	assert.True(t, r.LightOn)
	assert.Equal(t, "point", r.LightType)
	assert.Equal(t, "test", r.Settings)
	assert.Equal(t, 2, r.TierCount)
	assert.Equal(t, 0, r.TierIndex)
	assert.True(t, r.Facing)
	assert.InDelta(t, -5, r.DirectionDot, 1e-4)
	assert.Equal(t, float32(10), r.Threshold)
	assert.Empty(t, r.Warnings)
	assert.Contains(t, r.String(), "lamp (#")
	assert.Contains(t, r.String(), "(light range)")
}

func TestInspectLODSources_Warnings(t *testing.T) {
	h := newLODHarness(t)
	settings := h.settings(t, nearFarTiers()...)

	sun, err := CreateLODLight(h.cmd, lod.LightKindDirectional, settings, mgl32.Vec3{}, mgl32.QuatIdent(), LODLightOptions{Name: "sun"})
	require.NoError(t, err)
	baked := h.light(t, settings, mgl32.Vec3{})
	orphanSrc := NewLightLODSource("missing")
	orphan := h.cmd.AddEntity(&orphanSrc)
	h.app.FlushCommands()
	Component[LightComponent](h.cmd, baked).BakeMode = BakeBaked

	byEntity := map[EntityId]SourceReport{}
	for _, r := range InspectLODSources(h.cmd) {
		byEntity[r.Entity] = r
	}
	require.Len(t, byEntity, 3)

	assert.Len(t, byEntity[sun].Warnings, 1)
	assert.Equal(t, WarningLevelWarning, byEntity[sun].Warnings[0].Level)

	assert.Equal(t, []string{"Lightmap Bake Type cannot be 'Baked'"}, warningMessages(byEntity[baked]))

	assert.ElementsMatch(t, []string{"Missing Light reference!", "Missing Settings reference!"}, warningMessages(byEntity[orphan]))
	assert.Equal(t, -1, byEntity[orphan].TierIndex)
	assert.Contains(t, byEntity[orphan].String(), "error: Missing Light reference!")
}
