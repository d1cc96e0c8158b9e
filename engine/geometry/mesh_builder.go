package geometry

// MeshBuilderOption is a functional option for configuring a Mesh.
type MeshBuilderOption func(*mesh)

// WithName sets the mesh identifier.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: a function that applies the name
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithVertices sets the vertex list.
//
// Parameters:
//   - vertices: the vertices
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertices
func WithVertices(vertices []Vertex) MeshBuilderOption {
	return func(m *mesh) {
		m.vertices = vertices
	}
}

// WithIndices sets the index list.
//
// Parameters:
//   - indices: the indices
//
// Returns:
//   - MeshBuilderOption: a function that applies the indices
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.indices = indices
	}
}

// WithTopology sets the primitive topology. Defaults to Triangles.
//
// Parameters:
//   - topology: the topology
//
// Returns:
//   - MeshBuilderOption: a function that applies the topology
func WithTopology(topology Topology) MeshBuilderOption {
	return func(m *mesh) {
		m.topology = topology
	}
}
