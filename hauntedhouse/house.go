package hauntedhouse

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// World is the assembled scene, its camera and every material created for it.
type World struct {
	Scene     scene.Scene
	Camera    camera.Camera
	Materials []material.Material
}

type builder struct {
	logger   *slog.Logger
	aspect   float32
	textures map[string]string
	props    []scene.Node

	meshes    map[MeshSpec]geometry.Mesh
	materials []material.Material
}

// Build assembles the floor, the house group (walls, roof, door, bushes), the axes helper
// and the lights into a scene, and creates the camera looking at the origin.
//
// Parameters:
//   - options: a variadic list of BuildOption functions
//
// Returns:
//   - *World: the scene, camera and materials
//   - error: error if a node cannot be attached
func Build(options ...BuildOption) (*World, error) {
	b := &builder{
		logger: slog.Default(),
		aspect: 1,
		meshes: make(map[MeshSpec]geometry.Mesh),
	}
	for _, opt := range options {
		opt(b)
	}

	bushes := make([]scene.Node, 0, len(Bushes))
	for _, spec := range Bushes {
		bushes = append(bushes, b.object(spec))
	}

	house := scene.NewGroup(NameHouse,
		b.object(Walls),
		b.object(Roof),
		b.object(Door),
		scene.NewGroup(NameBushes, bushes...),
	)

	s := scene.NewScene("haunted-house",
		scene.WithBackground(Background),
		scene.WithLights(
			light.NewAmbientLight(Ambient.Color, Ambient.Intensity, light.WithName(Ambient.Name)),
			light.NewDirectionalLight(Directional.Color, Directional.Intensity, Directional.Position, light.WithName(Directional.Name)),
		),
	)
	if err := s.Add(b.object(Floor), house, b.object(Axes)); err != nil {
		return nil, fmt.Errorf("failed to assemble scene: %w", err)
	}
	if len(b.props) > 0 {
		if err := s.Add(scene.NewGroup(NameProps, b.props...)); err != nil {
			return nil, fmt.Errorf("failed to add props: %w", err)
		}
	}

	cam := camera.NewCamera(
		camera.WithFov(Camera.Fov),
		camera.WithAspect(b.aspect),
		camera.WithNear(Camera.Near),
		camera.WithFar(Camera.Far),
		camera.WithPosition(Camera.Position),
		camera.WithTarget(Camera.Target),
	)

	b.logger.Debug("scene built", "nodes", s.Count(), "meshes", len(b.meshes), "props", len(b.props))
	return &World{Scene: s, Camera: cam, Materials: b.materials}, nil
}

func (b *builder) object(spec ObjectSpec) scene.Node {
	options := []scene.NodeBuilderOption{
		scene.WithName(spec.Name),
		scene.WithMesh(b.mesh(spec.Mesh), b.material(spec)),
		scene.WithPosition(spec.Position),
		scene.WithRotation(spec.Rotation),
	}
	if spec.Scale != (mgl32.Vec3{}) {
		options = append(options, scene.WithScale(spec.Scale))
	}
	return scene.NewNode(options...)
}

// mesh generates each distinct MeshSpec once.
func (b *builder) mesh(spec MeshSpec) geometry.Mesh {
	if m, ok := b.meshes[spec]; ok {
		return m
	}
	var m geometry.Mesh
	switch spec.Shape {
	case ShapeBox:
		m = geometry.Box(spec.Width, spec.Height, spec.Depth)
	case ShapeCone:
		m = geometry.Cone(spec.Radius, spec.Height, spec.Segments)
	case ShapeSphere:
		m = geometry.Sphere(spec.Radius, spec.Segments, spec.HeightSegments)
	case ShapeAxes:
		m = geometry.Axes(spec.Width)
	default:
		m = geometry.Plane(spec.Width, spec.Height)
	}
	b.meshes[spec] = m
	return m
}

func (b *builder) material(spec ObjectSpec) material.Material {
	options := []material.MaterialBuilderOption{
		material.WithName(spec.Name),
		material.WithColor(spec.Material.Color),
		material.WithRoughness(spec.Material.Roughness),
		material.WithMetalness(spec.Material.Metalness),
	}
	if spec.Material.Unlit {
		options = append(options, material.WithUnlit())
	}
	if path := b.textures[spec.Name]; path != "" {
		options = append(options, material.WithTexturePath(path))
	}
	m := material.NewMaterial(options...)
	b.materials = append(b.materials, m)
	return m
}
