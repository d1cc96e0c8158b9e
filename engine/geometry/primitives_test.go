package geometry_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkMesh asserts the structural invariants every generated mesh must satisfy.
func checkMesh(t *testing.T, m geometry.Mesh, wantVertices, wantIndices int) {
	t.Helper()
	require.Len(t, m.Vertices(), wantVertices)
	require.Equal(t, wantIndices, m.IndexCount())

	for _, idx := range m.Indices() {
		assert.Less(t, int(idx), wantVertices)
	}
	for _, v := range m.Vertices() {
		assert.InDelta(t, 1, mgl32.Vec3(v.Normal).Len(), 1e-5)
	}
	assert.Len(t, m.VertexData(), wantVertices*geometry.VertexSize)
	assert.Len(t, m.IndexData(), wantIndices*4)
}

// faceNormal returns the geometric normal of triangle i from its winding.
func faceNormal(m geometry.Mesh, i int) mgl32.Vec3 {
	idx := m.Indices()
	a := mgl32.Vec3(m.Vertices()[idx[i*3]].Position)
	b := mgl32.Vec3(m.Vertices()[idx[i*3+1]].Position)
	c := mgl32.Vec3(m.Vertices()[idx[i*3+2]].Position)
	return b.Sub(a).Cross(c.Sub(a))
}

func TestPlane(t *testing.T) {
	m := geometry.Plane(20, 20)
	checkMesh(t, m, 4, 6)
	assert.Equal(t, geometry.Triangles, m.Topology())
	assert.InDelta(t, math.Sqrt(200), m.BoundingRadius(), 1e-4)
	assert.Greater(t, faceNormal(m, 0).Z(), float32(0))
	assert.Greater(t, faceNormal(m, 1).Z(), float32(0))
}

func TestBox(t *testing.T) {
	m := geometry.Box(4, 2.5, 4)
	checkMesh(t, m, 24, 36)

	for _, v := range m.Vertices() {
		assert.InDelta(t, 2, math.Abs(float64(v.Position[0])), 1e-6)
		assert.InDelta(t, 1.25, math.Abs(float64(v.Position[1])), 1e-6)
		assert.InDelta(t, 2, math.Abs(float64(v.Position[2])), 1e-6)
	}

	// Every triangle winds counter-clockwise seen from outside.
	for i := range m.IndexCount() / 3 {
		v := m.Vertices()[m.Indices()[i*3]]
		assert.Greater(t, faceNormal(m, i).Dot(v.Normal), float32(0), "triangle %d", i)
	}
}

func TestConeRoof(t *testing.T) {
	m := geometry.Cone(3.5, 1.5, 4)
	checkMesh(t, m, 19, 24)
	assert.InDelta(t, math.Sqrt(3.5*3.5+0.75*0.75), m.BoundingRadius(), 1e-4)

	apexFound := false
	for _, v := range m.Vertices() {
		if v.Position[1] == 0.75 {
			apexFound = true
		}
		assert.GreaterOrEqual(t, v.Position[1], float32(-0.75))
	}
	assert.True(t, apexFound)

	// Torso faces point outward, cap faces point down.
	for i := range 4 {
		v := m.Vertices()[m.Indices()[i*3]]
		outward := mgl32.Vec3{v.Position[0], 0, v.Position[2]}
		assert.Greater(t, faceNormal(m, i).Dot(outward), float32(0))
	}
	for i := 4; i < 8; i++ {
		assert.Less(t, faceNormal(m, i).Y(), float32(0))
	}
}

func TestConeMinimumSegments(t *testing.T) {
	m := geometry.Cone(1, 1, 1)
	assert.Equal(t, 3*3*2, m.IndexCount())
}

func TestSphere(t *testing.T) {
	m := geometry.Sphere(1, 16, 8)
	checkMesh(t, m, 17*9, 224*3)
	assert.InDelta(t, 1, m.BoundingRadius(), 1e-5)

	for _, v := range m.Vertices() {
		assert.InDelta(t, 1, mgl32.Vec3(v.Position).Len(), 1e-5)
	}
}

func TestAxes(t *testing.T) {
	m := geometry.Axes(5)
	checkMesh(t, m, 6, 6)
	assert.Equal(t, geometry.Lines, m.Topology())
	assert.Equal(t, float32(5), m.BoundingRadius())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, m.Vertices()[1].Color)
}

func TestVertexLayout(t *testing.T) {
	v := geometry.Vertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		UV:       [2]float32{0.25, 0.75},
		Color:    [4]float32{1, 0, 0, 1},
	}
	assert.Equal(t, geometry.VertexSize, v.Size())

	buf := v.AppendTo(nil)
	require.Len(t, buf, geometry.VertexSize)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[32:])))
}
