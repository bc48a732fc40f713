package lightlod

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lightsScene = `{
  "asset": {"version": "2.0"},
  "extensionsUsed": ["KHR_lights_punctual"],
  "extensions": {
    "KHR_lights_punctual": {
      "lights": [
        {"type": "point", "color": [1, 0.5, 0], "intensity": 3, "range": 6},
        {"type": "directional", "color": [1, 1, 1], "intensity": 2},
        {"type": "spot", "color": [1, 1, 1], "intensity": 1, "spot": {"outerConeAngle": 0.5}}
      ]
    }
  },
  "scene": 0,
  "scenes": [{"nodes": [0, 3]}],
  "nodes": [
    {"name": "room", "translation": [0, 0, 5], "children": [1, 2]},
    {"name": "bulb", "translation": [1, 0, 0], "extensions": {"KHR_lights_punctual": {"light": 0}}},
    {"name": "sun", "rotation": [0, 0.7071068, 0, 0.7071068], "extensions": {"KHR_lights_punctual": {"light": 1}}},
    {"name": "spot", "translation": [0, 2, 0], "extensions": {"KHR_lights_punctual": {"light": 2}}},
    {"name": "unused", "extensions": {"KHR_lights_punctual": {"light": 0}}}
  ]
}`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.gltf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportGLTFLights(t *testing.T) {
	h := newLODHarness(t)
	settings := h.settings(t, nearFarTiers()...)

	created, err := ImportGLTFLights(h.cmd, writeScene(t, lightsScene), settings)
	require.NoError(t, err)
	require.Len(t, created, 3)
	h.app.FlushCommands()

	bulb := Component[LightComponent](h.cmd, created[0])
	require.NotNil(t, bulb)
	assert.Equal(t, LightTypePoint, bulb.Type)
	assert.Equal(t, [3]float32{1, 0.5, 0}, bulb.Color)
	assert.Equal(t, float32(3), bulb.Intensity)
	assert.Equal(t, float32(6), bulb.Range)
	pos := Component[TransformComponent](h.cmd, created[0]).Position
	assert.InDelta(t, 1, pos.X(), 1e-5)
	assert.InDelta(t, 5, pos.Z(), 1e-5)
	assert.Equal(t, "bulb", Component[LightLODSourceComponent](h.cmd, created[0]).Name)
	assert.Equal(t, settings, Component[LightLODSourceComponent](h.cmd, created[0]).Settings)

	sun := Component[LightComponent](h.cmd, created[1])
	require.NotNil(t, sun)
	assert.Equal(t, LightTypeDirectional, sun.Type)
	// Infinite range falls back to the default.
	assert.Equal(t, float32(10), sun.Range)
	fwd := Component[TransformComponent](h.cmd, created[1]).Forward()
	assert.InDelta(t, -1, fwd.X(), 1e-4)
	assert.InDelta(t, 0, fwd.Z(), 1e-4)

	spot := Component[LightComponent](h.cmd, created[2])
	require.NotNil(t, spot)
	assert.Equal(t, LightTypeSpot, spot.Type)
	assert.InDelta(t, 2, Component[TransformComponent](h.cmd, created[2]).Position.Y(), 1e-5)
}

func TestImportGLTFLights_NoLights(t *testing.T) {
	h := newLODHarness(t)
	created, err := ImportGLTFLights(h.cmd, writeScene(t, `{"asset": {"version": "2.0"}, "nodes": [{"name": "empty"}]}`), "")
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestImportGLTFLights_BadFile(t *testing.T) {
	h := newLODHarness(t)
	_, err := ImportGLTFLights(h.cmd, filepath.Join(t.TempDir(), "missing.gltf"), "")
	assert.Error(t, err)

	_, err = ImportGLTFLights(h.cmd, writeScene(t, `{not json`), "")
	assert.Error(t, err)
}
