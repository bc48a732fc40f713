package lightlod

import (
	"fmt"
	"strings"

	"github.com/gekko3d/lightlod/lod"
)

type WarningLevel string

const (
	WarningLevelWarning WarningLevel = "warning"
	WarningLevelError   WarningLevel = "error"
)

type InspectorWarning struct {
	Level   WarningLevel `json:"level"`
	Message string       `json:"message"`
}

// SourceReport is what an inspector shows for one LOD source.
type SourceReport struct {
	Entity           EntityId           `json:"entity"`
	Name             string             `json:"name"`
	Enabled          bool               `json:"enabled"`
	Registered       bool               `json:"registered"`
	LightType        string             `json:"lightType,omitempty"`
	LightOn          bool               `json:"lightOn"`
	Settings         string             `json:"settings,omitempty"`
	TierCount        int                `json:"tierCount"`
	TierIndex        int                `json:"tierIndex"`
	Facing           bool               `json:"facing"`
	DirectionDot     float32            `json:"directionDot"`
	RangeIsThreshold bool               `json:"rangeIsThreshold"`
	Threshold        float32            `json:"threshold"`
	Warnings         []InspectorWarning `json:"warnings,omitempty"`
}

// InspectLODSources reports every entity with a LightLODSourceComponent in id order.
func InspectLODSources(cmd *Commands) []SourceReport {
	state, _ := Resource[LightLODState](cmd.app)
	server, _ := Resource[AssetServer](cmd.app)

	var reports []SourceReport
	MakeQuery1[LightLODSourceComponent](cmd).Map(func(eid EntityId, src *LightLODSourceComponent) bool {
		reports = append(reports, inspectSource(cmd, state, server, eid, src))
		return true
	})
	return reports
}

func inspectSource(cmd *Commands, state *LightLODState, server *AssetServer, eid EntityId, src *LightLODSourceComponent) SourceReport {
	report := SourceReport{
		Entity:           eid,
		Name:             sourceName(eid, src),
		Enabled:          src.Enabled,
		RangeIsThreshold: src.RangeIsThreshold,
		Threshold:        src.DotThreshold,
		TierIndex:        -1,
	}

	light := Component[LightComponent](cmd, eid)
	if light == nil {
		report.warn(WarningLevelError, "Missing Light reference!")
	} else {
		report.LightType = light.Type.String()
		report.LightOn = light.Enabled
		if src.RangeIsThreshold {
			report.Threshold = light.Range
		}
		if light.Type == LightTypeDirectional {
			report.warn(WarningLevelWarning, "While Directional lights might work, be aware that the transforms position is depending what settings will be applied wich is not how directional lights work.")
		}
		if light.BakeMode == BakeBaked {
			report.warn(WarningLevelError, "Lightmap Bake Type cannot be 'Baked'")
		}
		if light.Type.IsArea() {
			report.warn(WarningLevelError, "Area Lights are not supported")
		}
	}

	var settings *lod.Settings
	if server != nil {
		settings = server.Settings(src.Settings)
	}
	if settings == nil {
		report.warn(WarningLevelError, "Missing Settings reference!")
	} else {
		report.Settings = settings.Name
		report.TierCount = len(settings.Tiers)
	}

	if state != nil {
		if source, ok := state.Source(eid); ok {
			report.Registered = state.Registered(eid)
			report.TierIndex = source.LastTierIndex()
			report.Facing = source.LastFacing()
			report.DirectionDot = source.LastDot()
		}
	}
	return report
}

func (r *SourceReport) warn(level WarningLevel, message string) {
	r.Warnings = append(r.Warnings, InspectorWarning{Level: level, Message: message})
}

// String renders the report the way the inspector panel lays it out.
func (r SourceReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (#%d)\n", r.Name, r.Entity)
	fmt.Fprintf(&sb, "  enabled: %v  registered: %v  light on: %v\n", r.Enabled, r.Registered, r.LightOn)
	if r.Settings != "" {
		fmt.Fprintf(&sb, "  settings: %s (%d tiers)\n", r.Settings, r.TierCount)
	}
	fmt.Fprintf(&sb, "  tier: %d  facing: %v  dot: %.2f\n", r.TierIndex, r.Facing, r.DirectionDot)
	if r.RangeIsThreshold {
		fmt.Fprintf(&sb, "  threshold: %.2f (light range)\n", r.Threshold)
	} else {
		fmt.Fprintf(&sb, "  threshold: %.2f\n", r.Threshold)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "  %s: %s\n", w.Level, w.Message)
	}
	return sb.String()
}
