package lightlod

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightlod/lod"
)

func TestAssetServer_CreateSettings(t *testing.T) {
	server := NewAssetServer()

	id, err := server.CreateSettings(&lod.Settings{Name: "street", Tiers: nearFarTiers()})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "street", server.Settings(id).Name)
	assert.Contains(t, server.Ids(), id)

	_, err = server.CreateSettings(nil)
	assert.ErrorIs(t, err, lod.ErrMissingSettings)

	_, err = server.CreateSettings(&lod.Settings{Tiers: []lod.QualityProfile{{MinDistance: -1}}})
	assert.ErrorIs(t, err, lod.ErrNegativeDistance)

	assert.Nil(t, server.Settings("unknown"))
}

func TestAssetServer_UpdateSettingsBumpsVersion(t *testing.T) {
	server := NewAssetServer()
	settings := &lod.Settings{Tiers: nearFarTiers()}
	id, err := server.CreateSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, uint(0), server.Version(id))

	require.NoError(t, server.UpdateSettings(id, []lod.QualityProfile{lod.DefaultQualityProfile(0)}))
	assert.Equal(t, uint(1), server.Version(id))
	assert.Same(t, settings, server.Settings(id))
	assert.Len(t, settings.Tiers, 1)

	assert.ErrorIs(t, server.UpdateSettings(id, []lod.QualityProfile{{MinDistance: -5}}), lod.ErrNegativeDistance)
	assert.Equal(t, uint(1), server.Version(id))
	assert.Error(t, server.UpdateSettings("unknown", nil))
}

func TestAssetServer_RemoveSettings(t *testing.T) {
	server := NewAssetServer()
	id, err := server.CreateSettings(&lod.Settings{})
	require.NoError(t, err)

	server.RemoveSettings(id)
	assert.Nil(t, server.Settings(id))
	assert.Empty(t, server.Ids())
}

func TestAssetServer_SettingsFileRoundTrip(t *testing.T) {
	for _, name := range []string{"tiers.json", "tiers.yaml", "tiers.yml"} {
		t.Run(name, func(t *testing.T) {
			server := NewAssetServer()
			id, err := server.CreateSettings(&lod.Settings{Name: "hall", Tiers: nearFarTiers()})
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, server.SaveSettingsFile(id, path))

			loaded, err := server.LoadSettingsFile(path)
			require.NoError(t, err)
			assert.NotEqual(t, id, loaded)
			assert.Equal(t, path, server.SourcePath(loaded))
			assert.Equal(t, server.Settings(id), server.Settings(loaded))
		})
	}
}

func TestReadSettingsFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tiers:
  - minDistance: 0
    isEnabled: true
    renderMode: force_pixel
    shadowQuality: soft
    shadowResolution: high
  - minDistance: 25
    isEnabled: false
`), 0644))

	settings, err := ReadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "corridor", settings.Name)
	require.Len(t, settings.Tiers, 2)
	assert.Equal(t, lod.RenderModeForcePixel, settings.Tiers[0].RenderMode)
	assert.Equal(t, lod.ShadowsSoft, settings.Tiers[0].ShadowQuality)
	assert.Equal(t, lod.ShadowResolutionHigh, settings.Tiers[0].ShadowResolution)
	assert.Equal(t, float32(25), settings.Tiers[1].MinDistance)
}

func TestReadSettingsFile_Errors(t *testing.T) {
	_, err := ReadSettingsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tiers":[{"renderMode":"sometimes"}]}`), 0644))
	_, err = ReadSettingsFile(path)
	assert.Error(t, err)

	server := NewAssetServer()
	negative := filepath.Join(t.TempDir(), "negative.json")
	require.NoError(t, os.WriteFile(negative, []byte(`{"tiers":[{"minDistance":-1}]}`), 0644))
	_, err = server.LoadSettingsFile(negative)
	assert.ErrorIs(t, err, lod.ErrNegativeDistance)
}
