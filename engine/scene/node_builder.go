package scene

import (
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(*node)

// WithName sets the node's name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithMesh sets the node's mesh and material. A nil material draws with the default
// standard material.
//
// Parameters:
//   - mesh: the mesh
//   - mat: the material
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMesh(mesh geometry.Mesh, mat material.Material) NodeBuilderOption {
	return func(n *node) {
		n.mesh = mesh
		if mat == nil {
			mat = material.NewMaterial()
		}
		n.mat = mat
	}
}

// WithPosition sets the translation relative to the parent.
//
// Parameters:
//   - position: the position
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(position mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.position = position
	}
}

// WithRotation sets the Euler rotation in radians.
//
// Parameters:
//   - rotation: the rotation
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(rotation mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.rotation = rotation
	}
}

// WithScale sets the scale factors.
//
// Parameters:
//   - scale: the scale
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(scale mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.scale = scale
	}
}

// WithVisible sets the initial visibility.
//
// Parameters:
//   - visible: true to show
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *node) {
		n.visible.Store(visible)
	}
}
