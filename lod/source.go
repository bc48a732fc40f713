package lod

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrMissingLight    = errors.New("light source is missing")
	ErrMissingSettings = errors.New("settings are missing")
	ErrBakedLight      = errors.New("light mode can not be baked")
)

// Light is the engine light a Source controls. The Source is its only writer
// for the quality attributes.
type Light interface {
	Position() mgl32.Vec3
	Forward() mgl32.Vec3
	Range() float32
	Baked() bool

	SetEnabled(enabled bool)
	SetRenderMode(mode RenderMode)
	SetShadowQuality(quality ShadowQuality)
	SetShadowResolution(resolution ShadowResolution)
}

// Applied describes one write of a tier onto a light.
type Applied struct {
	TierIndex int
	Facing    bool
	On        bool
	Dot       float32
}

// Observer receives every tier write made by a Source.
type Observer interface {
	Applied(source *Source, event Applied)
}

type ObserverFunc func(source *Source, event Applied)

func (f ObserverFunc) Applied(source *Source, event Applied) { f(source, event) }

// Source drives one light through the tiers of its Settings.
type Source struct {
	light    Light
	settings *Settings

	RangeIsThreshold bool
	dotThreshold     float32

	lastIndex  int
	lastFacing bool
	lastDot    float32
	dead       bool

	observer Observer
	// Validity is called with the result of every validity check triggered by SetLight or SetSettings.
	Validity func(source *Source, err error)
}

func NewSource(light Light, settings *Settings) *Source {
	return &Source{
		light:            light,
		settings:         settings,
		RangeIsThreshold: true,
		lastIndex:        -1,
	}
}

func (s *Source) Light() Light { return s.light }
func (s *Source) Settings() *Settings { return s.settings }
func (s *Source) LastTierIndex() int { return s.lastIndex }
func (s *Source) LastFacing() bool { return s.lastFacing }
func (s *Source) LastDot() float32 { return s.lastDot }
func (s *Source) Observe(o Observer) { s.observer = o }
func (s *Source) Alive() bool { return !s.dead }
func (s *Source) Destroy() { s.dead = true }
func (s *Source) DotThreshold() float32 { return s.dotThreshold }
func (s *Source) SetDotThreshold(v float32) { s.dotThreshold = v }

func (s *Source) SetLight(light Light) error {
	s.light = light
	return s.revalidate()
}

func (s *Source) SetSettings(settings *Settings) error {
	s.settings = settings
	return s.revalidate()
}

// Set replaces the light and settings together and validates once.
func (s *Source) Set(light Light, settings *Settings) error {
	s.light = light
	s.settings = settings
	return s.revalidate()
}

// Invalidate forgets the last applied state so the next ApplySettings writes.
func (s *Source) Invalidate() {
	s.lastIndex = -1
	s.lastFacing = false
}

func (s *Source) revalidate() error {
	err := s.Validate()
	if s.Validity != nil {
		s.Validity(s, err)
	}
	return err
}

// Threshold is the direction gate cutoff: the light's range when RangeIsThreshold, else the dot threshold.
func (s *Source) Threshold() float32 {
	if s.RangeIsThreshold && s.light != nil {
		return s.light.Range()
	}
	return s.dotThreshold
}

// Validate reports every missing prerequisite for ApplySettings.
func (s *Source) Validate() error {
	var errs []error
	if s.light == nil {
		errs = append(errs, ErrMissingLight)
	}
	if s.settings == nil {
		errs = append(errs, ErrMissingSettings)
	}
	if s.light != nil && s.light.Baked() {
		errs = append(errs, ErrBakedLight)
	}
	return errors.Join(errs...)
}

// ApplySettings selects the tier for the snapshot and writes it to the light
// when the tier or the facing result changed since the last write. It reports
// whether the light was written.
func (s *Source) ApplySettings(snapshot PositionSnapshot, considerDirection bool) bool {
	if s.light == nil || s.settings == nil || len(s.settings.Tiers) == 0 {
		return false
	}

	own := PositionSnapshot{Position: s.light.Position(), Forward: s.light.Forward()}
	distanceSquared := own.Position.Sub(snapshot.Position).LenSqr()
	profile, index := s.settings.Select(distanceSquared)

	facing := true
	if considerDirection {
		facing, s.lastDot = IsFacing(own, snapshot, s.Threshold())
	}

	if index == s.lastIndex && facing == s.lastFacing {
		return false
	}

	s.lastIndex = index
	s.lastFacing = facing
	on := profile.ApplyTo(s.light, facing)

	if s.observer != nil {
		s.observer.Applied(s, Applied{TierIndex: index, Facing: facing, On: on, Dot: s.lastDot})
	}
	return true
}
