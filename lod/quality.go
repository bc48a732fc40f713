package lod

import (
	"errors"
	"fmt"
)

var ErrNegativeDistance = errors.New("min distance must not be negative")

// RenderMode mirrors the per-light render importance.
type RenderMode uint8

const (
	RenderModeAuto RenderMode = iota
	RenderModeForcePixel
	RenderModeForceVertex
)

var renderModeNames = []string{"auto", "force_pixel", "force_vertex"}

func (m RenderMode) String() string { return enumString(renderModeNames, int(m)) }

func (m RenderMode) MarshalText() ([]byte, error) { return enumMarshal(renderModeNames, int(m)) }

func (m *RenderMode) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(renderModeNames, text, "render mode")
	*m = RenderMode(v)
	return err
}

type ShadowQuality uint8

const (
	ShadowsOff ShadowQuality = iota
	ShadowsHard
	ShadowsSoft
)

var shadowQualityNames = []string{"off", "hard", "soft"}

func (q ShadowQuality) String() string { return enumString(shadowQualityNames, int(q)) }

func (q ShadowQuality) MarshalText() ([]byte, error) { return enumMarshal(shadowQualityNames, int(q)) }

func (q *ShadowQuality) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(shadowQualityNames, text, "shadow quality")
	*q = ShadowQuality(v)
	return err
}

type ShadowResolution uint8

const (
	ShadowResolutionFromQualitySettings ShadowResolution = iota
	ShadowResolutionLow
	ShadowResolutionMedium
	ShadowResolutionHigh
	ShadowResolutionVeryHigh
)

var shadowResolutionNames = []string{"from_quality_settings", "low", "medium", "high", "very_high"}

func (r ShadowResolution) String() string { return enumString(shadowResolutionNames, int(r)) }

func (r ShadowResolution) MarshalText() ([]byte, error) {
	return enumMarshal(shadowResolutionNames, int(r))
}

func (r *ShadowResolution) UnmarshalText(text []byte) error {
	v, err := enumUnmarshal(shadowResolutionNames, text, "shadow resolution")
	*r = ShadowResolution(v)
	return err
}

func enumString(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func enumMarshal(names []string, v int) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("value %d out of range", v)
	}
	return []byte(names[v]), nil
}

func enumUnmarshal(names []string, text []byte, what string) (int, error) {
	for i, name := range names {
		if name == string(text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, text)
}

// QualityProfile is one LOD tier: the distance it starts at and the light settings it applies.
type QualityProfile struct {
	// MinDistance is the distance from which this tier applies.
	MinDistance float32 `json:"minDistance" yaml:"minDistance" jsonschema:"minimum=0,description=Distance from the controller at which this tier starts"`
	// IsEnabled is whether the light is on at all in this tier.
	IsEnabled bool `json:"isEnabled" yaml:"isEnabled" jsonschema:"description=Whether the light is on in this tier"`
	// ForceIsEnabledState makes IsEnabled win over the direction check.
	ForceIsEnabledState bool             `json:"forceIsEnabledState" yaml:"forceIsEnabledState" jsonschema:"description=Ignore the direction check and always use isEnabled"`
	RenderMode          RenderMode       `json:"renderMode" yaml:"renderMode" jsonschema:"type=string,enum=auto,enum=force_pixel,enum=force_vertex"`
	ShadowQuality       ShadowQuality    `json:"shadowQuality" yaml:"shadowQuality" jsonschema:"type=string,enum=off,enum=hard,enum=soft"`
	ShadowResolution    ShadowResolution `json:"shadowResolution" yaml:"shadowResolution" jsonschema:"type=string,enum=from_quality_settings,enum=low,enum=medium,enum=high,enum=very_high"`
}

// DefaultQualityProfile returns an enabled, hard-shadowed tier starting at minDistance.
func DefaultQualityProfile(minDistance float32) QualityProfile {
	return QualityProfile{
		MinDistance:      minDistance,
		IsEnabled:        true,
		RenderMode:       RenderModeAuto,
		ShadowQuality:    ShadowsHard,
		ShadowResolution: ShadowResolutionFromQualitySettings,
	}
}

func (p QualityProfile) MinDistanceSquared() float32 {
	return p.MinDistance * p.MinDistance
}

// IsOn resolves the effective enabled state for the given visibility signal.
func (p QualityProfile) IsOn(visible bool) bool {
	if p.ForceIsEnabledState {
		return p.IsEnabled
	}
	return p.IsEnabled && visible
}

// ApplyTo writes the profile onto light. Render attributes are only touched when the light ends up on.
func (p QualityProfile) ApplyTo(light Light, visible bool) bool {
	on := p.IsOn(visible)
	if on {
		light.SetRenderMode(p.RenderMode)
		light.SetShadowResolution(p.ShadowResolution)
		light.SetShadowQuality(p.ShadowQuality)
	}
	light.SetEnabled(on)
	return on
}

// Settings is a shared, ordered tier table. Tiers are authored nearest first.
type Settings struct {
	Name  string           `json:"name,omitempty" yaml:"name,omitempty" jsonschema:"description=Display name of the settings asset"`
	Tiers []QualityProfile `json:"tiers" yaml:"tiers" jsonschema:"description=LOD tiers ordered by ascending minDistance"`
}

func (s *Settings) Validate() error {
	var errs []error
	for i, tier := range s.Tiers {
		if tier.MinDistance < 0 {
			errs = append(errs, fmt.Errorf("tier %d: %w", i, ErrNegativeDistance))
		}
	}
	return errors.Join(errs...)
}

// Select picks the tier for distanceSquared. Nil or empty settings yield index -1.
func (s *Settings) Select(distanceSquared float32) (QualityProfile, int) {
	if s == nil {
		return QualityProfile{}, -1
	}
	return SelectTier(distanceSquared, s.Tiers)
}
