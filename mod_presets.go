package lightlod

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightlod/lod"
)

type LightData struct {
	ID               EntityId             `json:"id"`
	Name             string               `json:"name"`
	Position         mgl32.Vec3           `json:"position"`
	Rotation         mgl32.Quat           `json:"rotation"`
	Type             LightType            `json:"type"`
	Color            [3]float32           `json:"color"`
	Intensity        float32              `json:"intensity"`
	Range            float32              `json:"range"`
	ConeAngle        float32              `json:"cone_angle,omitempty"`
	BounceIntensity  float32              `json:"bounce_intensity"`
	BakeMode         BakeMode             `json:"bake_mode"`
	Settings         AssetId              `json:"settings,omitempty"`
	RangeIsThreshold bool                 `json:"range_is_threshold"`
	DotThreshold     float32              `json:"dot_threshold"`
	Enabled          bool                 `json:"enabled"`
	RenderMode       lod.RenderMode       `json:"render_mode"`
	Shadows          lod.ShadowQuality    `json:"shadows"`
	ShadowResolution lod.ShadowResolution `json:"shadow_resolution"`
}

type ControllerData struct {
	ID                EntityId      `json:"id"`
	Position          mgl32.Vec3    `json:"position"`
	Rotation          mgl32.Quat    `json:"rotation"`
	UpdateTick        time.Duration `json:"update_tick"`
	ConsiderDirection bool          `json:"consider_direction"`
}

type PresetData struct {
	Settings    map[AssetId]*lod.Settings `json:"settings"`
	Lights      []LightData               `json:"lights"`
	Controllers []ControllerData          `json:"controllers"`
}

// SavePreset writes every LOD light and controller plus the settings they use.
func SavePreset(cmd *Commands, server *AssetServer, filename string) error {
	preset := PresetData{Settings: make(map[AssetId]*lod.Settings)}

	MakeQuery3[TransformComponent, LightComponent, LightLODSourceComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, light *LightComponent, src *LightLODSourceComponent) bool {
		if settings := server.Settings(src.Settings); settings != nil {
			preset.Settings[src.Settings] = settings
		}
		preset.Lights = append(preset.Lights, LightData{
			ID:               eid,
			Name:             src.Name,
			Position:         tr.Position,
			Rotation:         tr.Rotation,
			Type:             light.Type,
			Color:            light.Color,
			Intensity:        light.Intensity,
			Range:            light.Range,
			ConeAngle:        light.ConeAngle,
			BounceIntensity:  light.BounceIntensity,
			BakeMode:         light.BakeMode,
			Settings:         src.Settings,
			RangeIsThreshold: src.RangeIsThreshold,
			DotThreshold:     src.DotThreshold,
			Enabled:          src.Enabled,
			RenderMode:       light.RenderMode,
			Shadows:          light.Shadows,
			ShadowResolution: light.ShadowResolution,
		})
		return true
	})

	MakeQuery2[TransformComponent, LightLODControllerComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, ctrl *LightLODControllerComponent) bool {
		preset.Controllers = append(preset.Controllers, ControllerData{
			ID:                eid,
			Position:          tr.Position,
			Rotation:          tr.Rotation,
			UpdateTick:        ctrl.UpdateTick,
			ConsiderDirection: ctrl.ConsiderDirection,
		})
		return true
	})

	bytes, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}

// LoadPreset spawns the lights and controllers of a preset. Settings are
// registered as new assets and the lights are pointed at them.
func LoadPreset(cmd *Commands, server *AssetServer, filename string) ([]EntityId, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var preset PresetData
	if err := json.Unmarshal(bytes, &preset); err != nil {
		return nil, err
	}

	// Map old asset ids to new ones
	assetMap := make(map[AssetId]AssetId, len(preset.Settings))
	for oldId, settings := range preset.Settings {
		newId, err := server.CreateSettings(settings)
		if err != nil {
			return nil, fmt.Errorf("preset settings %s: %w", oldId, err)
		}
		assetMap[oldId] = newId
	}

	var newEntities []EntityId
	for _, data := range preset.Lights {
		transform := NewTransform(data.Position, data.Rotation)
		eid := cmd.AddEntity(
			&transform,
			&LightComponent{
				Type:             data.Type,
				Color:            data.Color,
				Intensity:        data.Intensity,
				Range:            data.Range,
				ConeAngle:        data.ConeAngle,
				BounceIntensity:  data.BounceIntensity,
				BakeMode:         data.BakeMode,
				Enabled:          true,
				RenderMode:       data.RenderMode,
				Shadows:          data.Shadows,
				ShadowResolution: data.ShadowResolution,
			},
			&LightLODSourceComponent{
				Name:             data.Name,
				Settings:         assetMap[data.Settings],
				RangeIsThreshold: data.RangeIsThreshold,
				DotThreshold:     data.DotThreshold,
				Enabled:          data.Enabled,
			},
		)
		newEntities = append(newEntities, eid)
	}

	for _, data := range preset.Controllers {
		eid := CreateLODController(cmd, data.Position, data.Rotation, data.UpdateTick, data.ConsiderDirection)
		newEntities = append(newEntities, eid)
	}

	return newEntities, nil
}
