package lod

import "github.com/go-gl/mathgl/mgl32"

// PositionSnapshot is where an observer is and where it looks, sampled once per tick.
type PositionSnapshot struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
}

func NewPositionSnapshot(position, forward mgl32.Vec3) PositionSnapshot {
	return PositionSnapshot{Position: position, Forward: forward}
}
