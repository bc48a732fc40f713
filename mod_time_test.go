package lightlod

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeModule_DeltaFollowsClock(t *testing.T) {
	clock := newFakeClock()
	app := NewAppBuilder().UseModule(TimeModule{Now: clock.Now}).Build()
	tm, ok := Resource[Time](app)
	require.True(t, ok)

	app.Update()
	assert.Zero(t, tm.Dt)

	clock.Advance(16 * time.Millisecond)
	app.Update()
	assert.Equal(t, 16*time.Millisecond, tm.Dt)
	assert.Equal(t, clock.Now(), tm.Time)
}

func TestTransform_Forward(t *testing.T) {
	var zero TransformComponent
	assert.Equal(t, baseForward, zero.Forward())

	tr := NewTransform(mgl32.Vec3{1, 2, 3}, mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	fwd := tr.Forward()
	assert.InDelta(t, -1, fwd.X(), 1e-5)
	assert.InDelta(t, 0, fwd.Z(), 1e-5)

	snap := tr.Snapshot()
	assert.Equal(t, tr.Position, snap.Position)
	assert.Equal(t, fwd, snap.Forward)
}
