package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightlod"
	"github.com/gekko3d/lightlod/lod"
	"github.com/gekko3d/lightlod/tiermap"
)

func main() {
	var (
		settingsPath string
		outPath      string
		size         int
		extent       float64
		yaw          float64
		threshold    float64
		direction    bool
		labels       bool
	)
	flag.StringVar(&settingsPath, "settings", "", "JSON or YAML tier table")
	flag.StringVar(&outPath, "out", "tiers.png", "path to write the PNG")
	flag.IntVar(&size, "size", 256, "image size in pixels")
	flag.Float64Var(&extent, "extent", 0, "world distance from center to edge, 0 fits the tiers")
	flag.Float64Var(&yaw, "yaw", 0, "controller yaw in degrees")
	flag.Float64Var(&threshold, "threshold", 0, "direction threshold")
	flag.BoolVar(&direction, "direction", false, "apply the direction gate")
	flag.BoolVar(&labels, "labels", true, "draw a tier legend")
	flag.Parse()

	if settingsPath == "" {
		fmt.Fprintln(os.Stderr, "--settings is required")
		os.Exit(1)
	}

	if err := run(settingsPath, outPath, tiermap.Options{
		Size:      size,
		Extent:    float32(extent),
		Reference: reference(float32(yaw)),
		Direction: direction,
		Threshold: float32(threshold),
		Labels:    labels,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "lodmap: %v\n", err)
		os.Exit(1)
	}
}

func run(settingsPath, outPath string, opts tiermap.Options) error {
	settings, err := lightlod.ReadSettingsFile(settingsPath)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings %s: %w", settingsPath, err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := tiermap.Encode(f, tiermap.Render(settings, opts)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return f.Close()
}

func reference(yawDegrees float32) lod.PositionSnapshot {
	transform := lightlod.NewTransform(mgl32.Vec3{}, mgl32.QuatRotate(mgl32.DegToRad(yawDegrees), mgl32.Vec3{0, 1, 0}))
	return transform.Snapshot()
}
