package lightlod

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/lightlod/lod"
)

type AssetId string

// SettingsAsset is a tier table shared by any number of LOD sources.
type SettingsAsset struct {
	version    uint
	settings   *lod.Settings
	sourcePath string
}

// AssetServer owns the LOD settings assets of an App.
type AssetServer struct {
	settings map[AssetId]*SettingsAsset
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func NewAssetServer() *AssetServer {
	return &AssetServer{settings: make(map[AssetId]*SettingsAsset)}
}

// CreateSettings registers settings as a new asset.
func (server *AssetServer) CreateSettings(settings *lod.Settings) (AssetId, error) {
	if settings == nil {
		return "", lod.ErrMissingSettings
	}
	if err := settings.Validate(); err != nil {
		return "", err
	}

	id := makeAssetId()
	server.settings[id] = &SettingsAsset{settings: settings}
	return id, nil
}

// Settings returns the tier table for id, or nil when the id is unknown.
func (server *AssetServer) Settings(id AssetId) *lod.Settings {
	if asset, ok := server.settings[id]; ok {
		return asset.settings
	}
	return nil
}

func (server *AssetServer) SourcePath(id AssetId) string {
	if asset, ok := server.settings[id]; ok {
		return asset.sourcePath
	}
	return ""
}

// Version changes every time the asset's tiers are replaced.
func (server *AssetServer) Version(id AssetId) uint {
	if asset, ok := server.settings[id]; ok {
		return asset.version
	}
	return 0
}

// UpdateSettings replaces the tiers of an existing asset in place so every
// source sharing it sees the change.
func (server *AssetServer) UpdateSettings(id AssetId, tiers []lod.QualityProfile) error {
	asset, ok := server.settings[id]
	if !ok {
		return fmt.Errorf("settings asset %s not found", id)
	}
	next := lod.Settings{Name: asset.settings.Name, Tiers: tiers}
	if err := next.Validate(); err != nil {
		return err
	}
	asset.settings.Tiers = tiers
	asset.version++
	return nil
}

func (server *AssetServer) RemoveSettings(id AssetId) {
	delete(server.settings, id)
}

// Ids lists every settings asset.
func (server *AssetServer) Ids() []AssetId {
	ids := make([]AssetId, 0, len(server.settings))
	for id := range server.settings {
		ids = append(ids, id)
	}
	return ids
}

// LoadSettingsFile reads a JSON or YAML tier table, chosen by file extension.
func (server *AssetServer) LoadSettingsFile(filename string) (AssetId, error) {
	settings, err := ReadSettingsFile(filename)
	if err != nil {
		return "", err
	}

	id, err := server.CreateSettings(settings)
	if err != nil {
		return "", fmt.Errorf("settings %s: %w", filename, err)
	}
	server.settings[id].sourcePath = filename
	return id, nil
}

func (server *AssetServer) SaveSettingsFile(id AssetId, filename string) error {
	settings := server.Settings(id)
	if settings == nil {
		return fmt.Errorf("settings asset %s not found", id)
	}
	return WriteSettingsFile(settings, filename)
}

func ReadSettingsFile(filename string) (*lod.Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var settings lod.Settings
	if isYAML(filename) {
		err = yaml.Unmarshal(data, &settings)
	} else {
		err = json.Unmarshal(data, &settings)
	}
	if err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", filename, err)
	}
	if settings.Name == "" {
		settings.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return &settings, nil
}

func WriteSettingsFile(settings *lod.Settings, filename string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(filename) {
		data, err = yaml.Marshal(settings)
	} else {
		data, err = json.MarshalIndent(settings, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func isYAML(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
