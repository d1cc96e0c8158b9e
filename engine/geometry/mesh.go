// Package geometry generates indexed meshes for the primitive shapes the scene is built
// from, plus imported meshes from the glTF loader.
package geometry

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
)

// Topology is the primitive assembly mode of a mesh.
type Topology int

const (
	// Triangles draws every three indices as a filled triangle.
	Triangles Topology = iota
	// Lines draws every two indices as a line segment.
	Lines
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name           string
	topology       Topology
	vertices       []Vertex
	indices        []uint32
	boundingRadius float32
}

// Mesh is an immutable indexed vertex list. GPU resources for it are created lazily by
// the renderer backend and cached per Mesh.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Topology returns how indices are assembled into primitives.
	//
	// Returns:
	//   - Topology: the primitive topology
	Topology() Topology

	// Vertices returns the vertex list. Callers must not modify it.
	//
	// Returns:
	//   - []Vertex: the vertices
	Vertices() []Vertex

	// Indices returns the index list. Callers must not modify it.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// IndexCount returns the number of indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexData returns the vertices serialized for upload.
	//
	// Returns:
	//   - []byte: len(Vertices()) * VertexSize bytes
	VertexData() []byte

	// IndexData returns the indices serialized as little-endian uint32.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// BoundingRadius returns the maximum vertex distance from the mesh origin. Used by
	// frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh with the specified options applied and computes its
// bounding radius.
//
// Parameters:
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{}
	for _, opt := range options {
		opt(m)
	}
	for _, v := range m.vertices {
		m.boundingRadius = max(m.boundingRadius, mgl32.Vec3(v.Position).Len())
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Topology() Topology {
	return m.topology
}

func (m *mesh) Vertices() []Vertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) VertexData() []byte {
	buf := make([]byte, 0, len(m.vertices)*VertexSize)
	for i := range m.vertices {
		buf = m.vertices[i].AppendTo(buf)
	}
	return buf
}

func (m *mesh) IndexData() []byte {
	buf := make([]byte, 0, len(m.indices)*4)
	for _, idx := range m.indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return buf
}

func (m *mesh) BoundingRadius() float32 {
	return m.boundingRadius
}
