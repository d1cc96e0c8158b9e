package renderer

import (
	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLight is a directional light resolved for one frame.
type DirectionalLight struct {
	// Direction is the normalized direction the light travels.
	Direction mgl32.Vec3
	// Radiance is color * intensity.
	Radiance mgl32.Vec3
}

// DrawCommand is one mesh drawn with one material at one world transform.
type DrawCommand struct {
	NodeID   uint64
	Mesh     geometry.Mesh
	Material material.Material
	Model    mgl32.Mat4
	Normal   mgl32.Mat4
}

// Frame is everything a Backend needs to draw one image. It holds no API objects.
type Frame struct {
	// Width and Height are the backing size in physical pixels.
	Width, Height int

	Clear common.Color

	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
	CameraPosition mgl32.Vec3

	// Ambient is the summed radiance of every enabled ambient light.
	Ambient mgl32.Vec3
	Lights  []DirectionalLight

	Draws []DrawCommand

	// Culled counts the nodes rejected by frustum culling.
	Culled int
}

// reset empties the frame while keeping its slices' capacity.
func (f *Frame) reset() {
	f.Lights = f.Lights[:0]
	f.Draws = f.Draws[:0]
	f.Ambient = mgl32.Vec3{}
	f.Culled = 0
}

// maxScale returns the largest axis scale of an affine transform.
func maxScale(m mgl32.Mat4) float32 {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return max(sx, sy, sz)
}
