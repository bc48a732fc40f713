// Package tiermap draws a top-down picture of which LOD tier a light would use
// at every point around a reference position.
package tiermap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gekko3d/lightlod/lod"
)

const (
	defaultSize   = 256
	defaultExtent = 10
	legendPadding = 4
)

var (
	Background = color.RGBA{R: 16, G: 16, B: 16, A: 255}
	Marker     = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	DefaultPalette = []color.RGBA{
		{R: 230, G: 85, B: 13, A: 255},
		{R: 253, G: 174, B: 107, A: 255},
		{R: 49, G: 130, B: 189, A: 255},
		{R: 158, G: 202, B: 225, A: 255},
		{R: 116, G: 196, B: 118, A: 255},
		{R: 199, G: 233, B: 192, A: 255},
	}
)

type Options struct {
	// Size is the width and height in pixels.
	Size int
	// Extent is the world distance from the reference to the image edge. Zero
	// fits the farthest tier with some margin.
	Extent float32
	// Reference is the controller position and facing. The map is drawn on the XZ plane.
	Reference lod.PositionSnapshot
	// Direction applies the direction gate with Threshold.
	Direction bool
	Threshold float32
	// Labels draws a legend in the top left corner.
	Labels  bool
	Palette []color.RGBA
}

// Render draws the tier map for settings. Pixels where the light would be off
// are darkened; points outside every tier keep the background color.
func Render(settings *lod.Settings, opts Options) *image.RGBA {
	size := opts.Size
	if size <= 0 {
		size = defaultSize
	}
	extent := opts.Extent
	if extent <= 0 {
		extent = FitExtent(settings)
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	ref := opts.Reference
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			point := WorldPoint(px, py, size, extent, ref.Position)
			profile, index := settings.Select(point.Sub(ref.Position).LenSqr())
			if index < 0 {
				continue
			}

			facing := true
			if opts.Direction {
				facing, _ = lod.IsFacing(lod.PositionSnapshot{Position: point}, ref, opts.Threshold)
			}

			c := palette[index%len(palette)]
			if !profile.IsOn(facing) {
				c = darken(c)
			}
			img.SetRGBA(px, py, c)
		}
	}

	center := size / 2
	for d := -2; d <= 2; d++ {
		img.SetRGBA(center+d, center, Marker)
		img.SetRGBA(center, center+d, Marker)
	}

	if opts.Labels && settings != nil {
		drawLegend(img, settings, palette)
	}
	return img
}

// WorldPoint maps a pixel to the XZ plane around center. Up in the image is -Z.
func WorldPoint(px, py, size int, extent float32, center mgl32.Vec3) mgl32.Vec3 {
	scale := 2 * extent / float32(size)
	x := (float32(px) + 0.5 - float32(size)/2) * scale
	z := (float32(py) + 0.5 - float32(size)/2) * scale
	return mgl32.Vec3{center.X() + x, center.Y(), center.Z() + z}
}

// FitExtent returns a view distance that shows every tier boundary.
func FitExtent(settings *lod.Settings) float32 {
	var farthest float32
	if settings != nil {
		for _, tier := range settings.Tiers {
			farthest = max(farthest, tier.MinDistance)
		}
	}
	if farthest == 0 {
		return defaultExtent
	}
	return farthest * 1.5
}

func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: c.A}
}

func drawLegend(img *image.RGBA, settings *lod.Settings, palette []color.RGBA) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()

	d := &font.Drawer{Dst: img, Src: image.NewUniform(Marker), Face: face}
	for i, tier := range settings.Tiers {
		y := legendPadding + (i+1)*lineHeight
		swatch := image.Rect(legendPadding, y-lineHeight+3, legendPadding+8, y)
		draw.Draw(img, swatch, image.NewUniform(palette[i%len(palette)]), image.Point{}, draw.Src)

		d.Dot = fixed.P(legendPadding+12, y)
		d.DrawString(legendLine(tier))
	}
}

func legendLine(tier lod.QualityProfile) string {
	if !tier.IsEnabled {
		return fmt.Sprintf(">=%gm off", tier.MinDistance)
	}
	return fmt.Sprintf(">=%gm %s %s", tier.MinDistance, tier.RenderMode, tier.ShadowQuality)
}
