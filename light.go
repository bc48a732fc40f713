package lightlod

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightlod/lod"
)

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
	LightTypeArea        LightType = 4
	LightTypeDisc        LightType = 5
)

func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeDirectional:
		return "directional"
	case LightTypeSpot:
		return "spot"
	case LightTypeAmbient:
		return "ambient"
	case LightTypeArea:
		return "area"
	case LightTypeDisc:
		return "disc"
	}
	return "unknown"
}

// IsArea reports light types that only exist as baked area lights.
func (t LightType) IsArea() bool {
	return t == LightTypeArea || t == LightTypeDisc
}

func lightTypeForKind(kind lod.LightKind) LightType {
	switch kind {
	case lod.LightKindSpot:
		return LightTypeSpot
	case lod.LightKindDirectional:
		return LightTypeDirectional
	case lod.LightKindArea:
		return LightTypeArea
	case lod.LightKindDisc:
		return LightTypeDisc
	}
	return LightTypePoint
}

type BakeMode uint8

const (
	BakeRealtime BakeMode = iota
	BakeMixed
	BakeBaked
)

// LightComponent is the ECS component for lights
type LightComponent struct {
	Type            LightType
	Color           [3]float32 // RGB
	Intensity       float32
	Range           float32 // For point/spot
	ConeAngle       float32 // Full cone angle in degrees (spot)
	BounceIntensity float32
	BakeMode        BakeMode

	Enabled          bool
	RenderMode       lod.RenderMode
	Shadows          lod.ShadowQuality
	ShadowResolution lod.ShadowResolution
}

// entityLight exposes an entity's transform and light to the LOD core. It
// reads the components on every call because storage moves on structural changes.
type entityLight struct {
	ecs *Ecs
	eid EntityId
}

var _ lod.Light = entityLight{}

func (l entityLight) light() *LightComponent {
	if c := getComponent[LightComponent](l.ecs, l.eid); c != nil {
		return c
	}
	return &LightComponent{}
}

func (l entityLight) transform() *TransformComponent {
	if c := getComponent[TransformComponent](l.ecs, l.eid); c != nil {
		return c
	}
	return &TransformComponent{}
}

func (l entityLight) Position() mgl32.Vec3 { return l.transform().Position }
func (l entityLight) Forward() mgl32.Vec3 { return l.transform().Forward() }
func (l entityLight) Range() float32 { return l.light().Range }
func (l entityLight) Baked() bool { return l.light().BakeMode == BakeBaked }

func (l entityLight) SetEnabled(enabled bool) { l.light().Enabled = enabled }

func (l entityLight) SetRenderMode(mode lod.RenderMode) { l.light().RenderMode = mode }

func (l entityLight) SetShadowQuality(quality lod.ShadowQuality) { l.light().Shadows = quality }

func (l entityLight) SetShadowResolution(resolution lod.ShadowResolution) {
	l.light().ShadowResolution = resolution
}
