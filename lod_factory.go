package lightlod

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightlod/lod"
)

const defaultLightRange = 10

type LODLightOptions struct {
	// Name defaults to the kind's name prefix.
	Name  string
	Color [3]float32
	// Range defaults to 10 when nil. Zero is a valid range.
	Range     *float32
	Intensity float32
	// Disabled spawns the source switched off; it is not checked until enabled.
	Disabled bool
}

// LightRange returns a range for LODLightOptions.
func LightRange(v float32) *float32 { return &v }

// CreateLODLight spawns a light entity controlled by the settings asset.
// Area-style kinds are rejected and nothing is spawned.
func CreateLODLight(cmd *Commands, kind lod.LightKind, settings AssetId, position mgl32.Vec3, rotation mgl32.Quat, opts LODLightOptions) (EntityId, error) {
	spec, err := kind.Spec()
	if err != nil {
		cmd.app.Logger().Errorf("%v", err)
		return 0, err
	}

	name := opts.Name
	if name == "" {
		name = spec.NamePrefix
	}
	rng := float32(defaultLightRange)
	if opts.Range != nil {
		rng = *opts.Range
	}
	color := opts.Color
	if color == ([3]float32{}) {
		color = [3]float32{1, 1, 1}
	}
	intensity := opts.Intensity
	if intensity <= 0 {
		intensity = 1
	}
	if rotation == (mgl32.Quat{}) {
		rotation = mgl32.QuatIdent()
	}

	source := NewLightLODSource(settings)
	source.Name = name
	source.Enabled = !opts.Disabled

	transform := NewTransform(position, rotation)
	return cmd.AddEntity(
		&transform,
		&LightComponent{
			Type:            lightTypeForKind(kind),
			Color:           color,
			Intensity:       intensity,
			Range:           rng,
			BounceIntensity: spec.BounceIntensity,
			Enabled:         true,
			Shadows:         lod.ShadowsHard,
		},
		&source,
	), nil
}

// CreateLODController spawns the entity whose transform drives the LOD ticks.
func CreateLODController(cmd *Commands, position mgl32.Vec3, rotation mgl32.Quat, updateTick time.Duration, considerDirection bool) EntityId {
	if rotation == (mgl32.Quat{}) {
		rotation = mgl32.QuatIdent()
	}
	transform := NewTransform(position, rotation)
	controller := NewLightLODController()
	controller.UpdateTick = updateTick
	controller.ConsiderDirection = considerDirection
	return cmd.AddEntity(&transform, &controller)
}
