package lightlod

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"

	"github.com/gekko3d/lightlod/lod"
)

const lightsPunctual = "KHR_lights_punctual"

// ImportGLTFLights spawns an LOD light for every node of the default scene that
// carries a KHR_lights_punctual light. All lights share the settings asset.
func ImportGLTFLights(cmd *Commands, filename string, settings AssetId) ([]EntityId, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(f).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}

	lights, _ := doc.Extensions[lightsPunctual].(lightspunctual.Lights)
	if len(lights) == 0 {
		return nil, nil
	}

	var (
		created []EntityId
		walk    func(index int, parent mgl32.Mat4) error
	)
	walk = func(index int, parent mgl32.Mat4) error {
		if index < 0 || index >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", index)
		}
		node := doc.Nodes[index]
		world := parent.Mul4(nodeMatrix(node))

		if ext, ok := node.Extensions[lightsPunctual]; ok {
			lightIndex, ok := ext.(lightspunctual.LightIndex)
			if !ok || int(lightIndex) >= len(lights) {
				return fmt.Errorf("node %q references a missing light", node.Name)
			}
			eid, err := spawnGLTFLight(cmd, node.Name, lights[lightIndex], world, settings)
			if err != nil {
				return fmt.Errorf("node %q: %w", node.Name, err)
			}
			created = append(created, eid)
		}

		for _, child := range node.Children {
			if err := walk(int(child), world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range sceneRoots(doc) {
		if err := walk(root, mgl32.Ident4()); err != nil {
			return created, err
		}
	}

	cmd.app.Logger().Debugf("imported %d lights from %s", len(created), filename)
	return created, nil
}

func spawnGLTFLight(cmd *Commands, name string, l *lightspunctual.Light, world mgl32.Mat4, settings AssetId) (EntityId, error) {
	var kind lod.LightKind
	switch l.Type {
	case lightspunctual.TypeDirectional:
		kind = lod.LightKindDirectional
	case lightspunctual.TypeSpot:
		kind = lod.LightKindSpot
	case lightspunctual.TypePoint:
		kind = lod.LightKindPoint
	default:
		return 0, fmt.Errorf("%w: %s", lod.ErrUnsupportedKind, l.Type)
	}

	if name == "" {
		name = l.Name
	}
	opts := LODLightOptions{
		Name:  name,
		Color: [3]float32{float32(l.Color[0]), float32(l.Color[1]), float32(l.Color[2])},
	}
	if l.Intensity != nil {
		opts.Intensity = float32(*l.Intensity)
	}
	// An infinite range falls back to the default.
	if l.Range != nil && !math.IsInf(float64(*l.Range), 0) {
		opts.Range = LightRange(float32(*l.Range))
	}

	position, rotation := decompose(world)
	return CreateLODLight(cmd, kind, settings, position, rotation, opts)
}

// sceneRoots returns the root nodes of the default scene, or every parentless
// node when the document has no scenes.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		scene := doc.Scenes[0]
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			scene = doc.Scenes[int(*doc.Scene)]
		}
		roots := make([]int, 0, len(scene.Nodes))
		for _, n := range scene.Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}

	isChild := make(map[int]bool)
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			isChild[int(child)] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix is the node's local transform. glTF matrices are column-major like mgl32.
func nodeMatrix(node *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i := range m {
		m[i] = float32(node.Matrix[i])
	}
	if m != mgl32.Ident4() && m != (mgl32.Mat4{}) {
		return m
	}

	t := mgl32.Translate3D(float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2]))
	r := mgl32.Quat{
		W: float32(node.Rotation[3]),
		V: mgl32.Vec3{float32(node.Rotation[0]), float32(node.Rotation[1]), float32(node.Rotation[2])},
	}
	if r.Len() == 0 {
		r = mgl32.QuatIdent()
	}
	scale := mgl32.Vec3{float32(node.Scale[0]), float32(node.Scale[1]), float32(node.Scale[2])}
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(r.Normalize().Mat4()).Mul4(s)
}

// decompose splits a world matrix into position and rotation, dropping scale.
func decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat) {
	position := m.Col(3).Vec3()

	var rot mgl32.Mat4
	for c := 0; c < 3; c++ {
		col := m.Col(c).Vec3()
		if l := col.Len(); l > 0 {
			col = col.Mul(1 / l)
		}
		rot.SetCol(c, col.Vec4(0))
	}
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return position, mgl32.Mat4ToQuat(rot).Normalize()
}
