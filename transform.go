package lightlod

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightlod/lod"
)

// baseForward is the local forward axis of lights and controllers.
var baseForward = mgl32.Vec3{0, 0, -1}

type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat) TransformComponent {
	return TransformComponent{Position: position, Rotation: rotation, Scale: mgl32.Vec3{1, 1, 1}}
}

// Forward is the world-space facing direction. A zero rotation counts as identity.
func (t *TransformComponent) Forward() mgl32.Vec3 {
	if t.Rotation == (mgl32.Quat{}) {
		return baseForward
	}
	return t.Rotation.Rotate(baseForward)
}

func (t *TransformComponent) Snapshot() lod.PositionSnapshot {
	return lod.NewPositionSnapshot(t.Position, t.Forward())
}
