// Package hauntedhouse describes the haunted house scene as static data tables and assembles
// them into a scene graph.
package hauntedhouse

import (
	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Node names, used by lookups and debug events.
const (
	NameFloor  = "floor"
	NameHouse  = "house"
	NameWalls  = "walls"
	NameRoof   = "roof"
	NameDoor   = "door"
	NameBushes = "bushes"
	NameAxes   = "axes"
	NameProps  = "props"
)

// Shape selects a mesh generator.
type Shape int

const (
	ShapePlane Shape = iota
	ShapeBox
	ShapeCone
	ShapeSphere
	ShapeAxes
)

// MeshSpec parameterizes a generated mesh. Fields a shape does not use are ignored.
type MeshSpec struct {
	Shape          Shape
	Width          float32
	Height         float32
	Depth          float32
	Radius         float32
	Segments       int
	HeightSegments int
}

// MaterialSpec is a standard material.
type MaterialSpec struct {
	Color     common.Color
	Roughness float32
	Metalness float32
	Unlit     bool
}

// ObjectSpec is one mesh node. A zero Scale means unit scale.
type ObjectSpec struct {
	Name     string
	Mesh     MeshSpec
	Material MaterialSpec
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// LightSpec is an ambient or directional light. Position is ignored for ambient light.
type LightSpec struct {
	Name      string
	Color     common.Color
	Intensity float32
	Position  mgl32.Vec3
}

// CameraSpec is the initial perspective camera.
type CameraSpec struct {
	Fov      float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// House dimensions.
const (
	wallWidth  = 4
	wallHeight = 2.5
	wallDepth  = 4
	roofRadius = 3.5
	roofHeight = 1.5
	doorSize   = 2.2
)

var white = common.Color{1, 1, 1, 1}

// standard is an untextured material with the default roughness of 1 and metalness of 0.
func standard(c common.Color) MaterialSpec {
	return MaterialSpec{Color: c, Roughness: 1}
}

var (
	Background = common.Color{0, 0, 0, 1}

	Floor = ObjectSpec{
		Name:     NameFloor,
		Mesh:     MeshSpec{Shape: ShapePlane, Width: 20, Height: 20},
		Material: standard(white),
		Rotation: mgl32.Vec3{-math32.Pi / 2, 0, 0},
	}

	Walls = ObjectSpec{
		Name:     NameWalls,
		Mesh:     MeshSpec{Shape: ShapeBox, Width: wallWidth, Height: wallHeight, Depth: wallDepth},
		Material: standard(white),
		Position: mgl32.Vec3{0, wallHeight / 2, 0},
	}

	Roof = ObjectSpec{
		Name:     NameRoof,
		Mesh:     MeshSpec{Shape: ShapeCone, Radius: roofRadius, Height: roofHeight, Segments: 4},
		Material: standard(white),
		Position: mgl32.Vec3{0, wallHeight + roofHeight/2, 0},
		Rotation: mgl32.Vec3{0, math32.Pi / 4, 0},
	}

	Door = ObjectSpec{
		Name:     NameDoor,
		Mesh:     MeshSpec{Shape: ShapePlane, Width: doorSize, Height: doorSize},
		Material: standard(common.MustParseHexColor("#ff0000")),
		Position: mgl32.Vec3{0, doorSize / 2, wallDepth/2 + 0.01},
	}

	// Bushes share one unit sphere and differ by scale.
	Bushes = []ObjectSpec{
		bush("bush1", mgl32.Vec3{0.8, 0.2, 2.2}, 0.5),
		bush("bush2", mgl32.Vec3{1.4, 0.1, 2.1}, 0.25),
		bush("bush3", mgl32.Vec3{-0.8, 0.1, 2.2}, 0.4),
		bush("bush4", mgl32.Vec3{-1, 0.05, 2.6}, 0.15),
	}

	Axes = ObjectSpec{
		Name:     NameAxes,
		Mesh:     MeshSpec{Shape: ShapeAxes, Width: 5},
		Material: MaterialSpec{Color: white, Roughness: 1, Unlit: true},
	}

	Ambient = LightSpec{
		Name:      "ambient",
		Color:     common.MustParseHexColor("#ffffff"),
		Intensity: 0.5,
	}

	Directional = LightSpec{
		Name:      "directional",
		Color:     common.MustParseHexColor("#ffffff"),
		Intensity: 1.5,
		Position:  mgl32.Vec3{3, 2, -8},
	}

	Camera = CameraSpec{
		Fov:      75,
		Near:     0.1,
		Far:      100,
		Position: mgl32.Vec3{4, 2, 5},
	}
)

var bushSphere = MeshSpec{Shape: ShapeSphere, Radius: 1, Segments: 16, HeightSegments: 16}

func bush(name string, position mgl32.Vec3, s float32) ObjectSpec {
	return ObjectSpec{
		Name:     name,
		Mesh:     bushSphere,
		Material: standard(common.MustParseHexColor("#89c854")),
		Position: position,
		Scale:    mgl32.Vec3{s, s, s},
	}
}
