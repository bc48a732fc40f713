package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightlod"
	"github.com/gekko3d/lightlod/lod"
)

const (
	panelWidth = 34
	moveStep   = 2
	turnStep   = 15
)

var tierColors = []tcell.Color{tcell.ColorGreen, tcell.ColorYellow, tcell.ColorOrange, tcell.ColorRed, tcell.ColorPurple}

type config struct {
	settings  *lod.Settings
	grid      int
	spacing   float32
	tick      time.Duration
	direction bool
	// scale is world units per terminal column.
	scale  float32
	now    func() time.Time
	logOut io.Writer
	debug  bool
}

// inspector owns a small LOD scene: a grid of lights and one controller moved from the keyboard.
type inspector struct {
	app        *lightlod.App
	cmd        *lightlod.Commands
	controller lightlod.EntityId
	lights     []lightlod.EntityId
	yaw        float32
	scale      float32
}

func defaultSettings() *lod.Settings {
	return &lod.Settings{
		Name: "default",
		Tiers: []lod.QualityProfile{
			{MinDistance: 0, IsEnabled: true, RenderMode: lod.RenderModeForcePixel, ShadowQuality: lod.ShadowsSoft, ShadowResolution: lod.ShadowResolutionVeryHigh},
			{MinDistance: 15, IsEnabled: true, ShadowQuality: lod.ShadowsHard, ShadowResolution: lod.ShadowResolutionMedium},
			{MinDistance: 30, IsEnabled: true, RenderMode: lod.RenderModeForceVertex, ShadowQuality: lod.ShadowsOff},
			{MinDistance: 45, IsEnabled: false},
		},
	}
}

func newInspector(cfg config) (*inspector, error) {
	if cfg.settings == nil {
		cfg.settings = defaultSettings()
	}
	if cfg.scale <= 0 {
		cfg.scale = 1
	}

	app := lightlod.NewAppBuilder().
		UseModule(
			lightlod.LoggingModule{Prefix: "Light LOD System", Debug: cfg.debug, Out: cfg.logOut, Err: cfg.logOut},
			lightlod.TimeModule{Now: cfg.now},
			lightlod.AssetServerModule{},
			lightlod.LightLODModule{Diagnostics: true},
		).
		Build()
	cmd := app.Commands()

	server, _ := lightlod.Resource[lightlod.AssetServer](app)
	settings, err := server.CreateSettings(cfg.settings)
	if err != nil {
		return nil, err
	}

	in := &inspector{app: app, cmd: cmd, scale: cfg.scale}
	half := float32(cfg.grid-1) / 2
	for i := 0; i < cfg.grid; i++ {
		for j := 0; j < cfg.grid; j++ {
			position := mgl32.Vec3{(float32(i) - half) * cfg.spacing, 0, (float32(j) - half) * cfg.spacing}
			eid, err := lightlod.CreateLODLight(cmd, lod.LightKindPoint, settings, position, mgl32.QuatIdent(), lightlod.LODLightOptions{
				Name: fmt.Sprintf("light %d,%d", i, j),
			})
			if err != nil {
				return nil, err
			}
			in.lights = append(in.lights, eid)
		}
	}
	in.controller = lightlod.CreateLODController(cmd, mgl32.Vec3{}, mgl32.QuatIdent(), cfg.tick, cfg.direction)
	app.FlushCommands()
	return in, nil
}

func (in *inspector) transform() *lightlod.TransformComponent {
	return lightlod.Component[lightlod.TransformComponent](in.cmd, in.controller)
}

func (in *inspector) controllerComponent() *lightlod.LightLODControllerComponent {
	return lightlod.Component[lightlod.LightLODControllerComponent](in.cmd, in.controller)
}

// handleKey applies one key press. It returns false when the inspector should quit.
func (in *inspector) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	tr := in.transform()
	ctrl := in.controllerComponent()
	forward := tr.Forward()
	right := forward.Cross(mgl32.Vec3{0, 1, 0})

	switch r {
	case 'w':
		tr.Position = tr.Position.Add(forward.Mul(moveStep))
	case 's':
		tr.Position = tr.Position.Sub(forward.Mul(moveStep))
	case 'a':
		tr.Position = tr.Position.Sub(right.Mul(moveStep))
	case 'd':
		tr.Position = tr.Position.Add(right.Mul(moveStep))
	case 'q':
		in.turn(turnStep)
	case 'e':
		in.turn(-turnStep)
	case 'g':
		ctrl.ConsiderDirection = !ctrl.ConsiderDirection
	case ']':
		ctrl.UpdateTick *= 2
	case '[':
		ctrl.UpdateTick /= 2
	case 'x':
		return false
	}
	return true
}

func (in *inspector) turn(degrees float32) {
	in.yaw = float32(math.Mod(float64(in.yaw+degrees), 360))
	in.transform().Rotation = mgl32.QuatRotate(mgl32.DegToRad(in.yaw), mgl32.Vec3{0, 1, 0})
}

// cellOf maps a world position onto the map area. Terminal cells are about
// twice as tall as wide, so Z uses half the resolution.
func (in *inspector) cellOf(p mgl32.Vec3, width, height int) (int, int) {
	cx := width/2 + int(math.Round(float64(p.X()/in.scale)))
	cy := height/2 + int(math.Round(float64(p.Z()/(in.scale*2))))
	return cx, cy
}

func arrow(forward mgl32.Vec3) rune {
	if math.Abs(float64(forward.X())) > math.Abs(float64(forward.Z())) {
		if forward.X() > 0 {
			return '>'
		}
		return '<'
	}
	if forward.Z() > 0 {
		return 'v'
	}
	return '^'
}

func (in *inspector) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()
	mapWidth := max(width-panelWidth, 1)

	state, _ := lightlod.Resource[lightlod.LightLODState](in.app)
	for _, eid := range in.lights {
		tr := lightlod.Component[lightlod.TransformComponent](in.cmd, eid)
		light := lightlod.Component[lightlod.LightComponent](in.cmd, eid)
		if tr == nil || light == nil {
			continue
		}
		x, y := in.cellOf(tr.Position, mapWidth, height)
		if x < 0 || x >= mapWidth || y < 0 || y >= height {
			continue
		}

		glyph, style := '.', tcell.StyleDefault.Foreground(tcell.ColorGray)
		if light.Enabled {
			glyph = '*'
			if source, ok := state.Source(eid); ok && source.LastTierIndex() >= 0 {
				style = tcell.StyleDefault.Foreground(tierColors[source.LastTierIndex()%len(tierColors)])
			} else {
				style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
			}
		}
		screen.SetContent(x, y, glyph, nil, style)
	}

	tr := in.transform()
	if x, y := in.cellOf(tr.Position, mapWidth, height); x >= 0 && x < mapWidth && y >= 0 && y < height {
		screen.SetContent(x, y, arrow(tr.Forward()), nil, tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true))
	}

	for i, line := range in.status() {
		drawText(screen, mapWidth+1, i, line, tcell.StyleDefault)
	}
	screen.Show()
}

func (in *inspector) status() []string {
	tr := in.transform()
	ctrl := in.controllerComponent()

	on := 0
	for _, eid := range in.lights {
		if light := lightlod.Component[lightlod.LightComponent](in.cmd, eid); light != nil && light.Enabled {
			on++
		}
	}

	return []string{
		"Light LOD inspector",
		fmt.Sprintf("pos   %.1f, %.1f, %.1f", tr.Position.X(), tr.Position.Y(), tr.Position.Z()),
		fmt.Sprintf("yaw   %.0f", in.yaw),
		fmt.Sprintf("tick  %s", ctrl.UpdateTick),
		fmt.Sprintf("dir   %v", ctrl.ConsiderDirection),
		fmt.Sprintf("on    %d/%d", on, len(in.lights)),
		"",
		"wasd move  q/e turn",
		"g direction  [ ] tick",
		"esc quit",
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
