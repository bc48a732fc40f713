package lod

import "github.com/go-gl/mathgl/mgl32"

type fakeLight struct {
	position mgl32.Vec3
	forward  mgl32.Vec3
	rng      float32
	baked    bool

	enabled          bool
	renderMode       RenderMode
	shadowQuality    ShadowQuality
	shadowResolution ShadowResolution

	enableWrites int
	attrWrites   int
}

func newFakeLight(position mgl32.Vec3) *fakeLight {
	return &fakeLight{position: position, forward: mgl32.Vec3{0, 0, -1}, rng: 10, enabled: true}
}

func (l *fakeLight) Position() mgl32.Vec3 { return l.position }
func (l *fakeLight) Forward() mgl32.Vec3 { return l.forward }
func (l *fakeLight) Range() float32 { return l.rng }
func (l *fakeLight) Baked() bool { return l.baked }

func (l *fakeLight) SetEnabled(enabled bool) {
	l.enabled = enabled
	l.enableWrites++
}

func (l *fakeLight) SetRenderMode(mode RenderMode) {
	l.renderMode = mode
	l.attrWrites++
}

func (l *fakeLight) SetShadowQuality(quality ShadowQuality) {
	l.shadowQuality = quality
	l.attrWrites++
}

func (l *fakeLight) SetShadowResolution(resolution ShadowResolution) {
	l.shadowResolution = resolution
	l.attrWrites++
}
