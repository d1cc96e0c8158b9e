package loader_test

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/loader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleGLTF is a single red-ish triangle with an embedded buffer: three float32 positions
// followed by three uint16 indices and two bytes of padding. The node is translated to
// (1, 2, 3) and turned 45 degrees about +Y.
const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{
    "name": "Triangle",
    "mesh": 0,
    "translation": [1, 2, 3],
    "rotation": [0, 0.38268343, 0, 0.9238795]
  }],
  "meshes": [{
    "name": "tri",
    "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]
  }],
  "materials": [{
    "name": "paint",
    "pbrMetallicRoughness": {"baseColorFactor": [0.5, 0.25, 1, 1], "metallicFactor": 0.2, "roughnessFactor": 0.7}
  }],
  "buffers": [{
    "byteLength": 44,
    "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA="
  }],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadReader(t *testing.T) {
	l := loader.NewLoader(loader.WithLogger(quietLogger()))

	root, err := l.LoadReader("triangle", strings.NewReader(triangleGLTF))
	require.NoError(t, err)
	assert.Equal(t, "triangle", root.Name())
	assert.True(t, l.Cached("triangle"))

	children := root.Children()
	require.Len(t, children, 1)
	n := children[0]
	assert.Equal(t, "Triangle", n.Name())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, n.Position())
	assert.InDelta(t, 0, n.Rotation()[0], 1e-5)
	assert.InDelta(t, math.Pi/4, n.Rotation()[1], 1e-5)
	assert.InDelta(t, 0, n.Rotation()[2], 1e-5)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, n.Scale())

	mesh := n.Mesh()
	require.NotNil(t, mesh)
	assert.Equal(t, geometry.Triangles, mesh.Topology())
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices())
	require.Len(t, mesh.Vertices(), 3)
	assert.Equal(t, [3]float32{1, 0, 0}, mesh.Vertices()[1].Position)

	mat := n.Material()
	require.NotNil(t, mat)
	assert.Equal(t, "paint", mat.Name())
	assert.Equal(t, common.Color{0.5, 0.25, 1, 1}, mat.Color())
	assert.InDelta(t, 0.7, mat.Roughness(), 1e-6)
	assert.InDelta(t, 0.2, mat.Metalness(), 1e-6)
}

func TestLoadReaderInstancesShareMeshes(t *testing.T) {
	l := loader.NewLoader(loader.WithLogger(quietLogger()))

	a, err := l.LoadReader("triangle", strings.NewReader(triangleGLTF))
	require.NoError(t, err)
	// A cached name never touches the reader.
	b, err := l.LoadReader("triangle", bytes.NewReader(nil))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, a.Children()[0].Mesh(), b.Children()[0].Mesh())
}

func TestLoadFailures(t *testing.T) {
	l := loader.NewLoader(loader.WithLogger(quietLogger()))

	_, err := l.Load("ghost.obj")
	assert.ErrorIs(t, err, loader.ErrAssetLoad)

	_, err = l.Load(filepath.Join(t.TempDir(), "missing.gltf"))
	assert.ErrorIs(t, err, loader.ErrAssetLoad)

	_, err = l.LoadReader("garbage", strings.NewReader("not gltf"))
	assert.ErrorIs(t, err, loader.ErrAssetLoad)
	assert.False(t, l.Cached("garbage"))

	_, err = l.LoadReader("empty", strings.NewReader(`{"asset": {"version": "2.0"}}`))
	assert.ErrorIs(t, err, loader.ErrAssetLoad)
}

func TestPlaceSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.gltf")
	require.NoError(t, os.WriteFile(path, []byte(triangleGLTF), 0o644))

	l := loader.NewLoader(loader.WithLogger(quietLogger()))
	nodes := l.Place(
		loader.Placement{Path: filepath.Join(dir, "missing.gltf")},
		loader.Placement{Path: path, Position: mgl32.Vec3{-2, 0, 2}, Scale: mgl32.Vec3{2, 2, 2}},
		loader.Placement{Path: path, Position: mgl32.Vec3{2, 0, 2}},
	)

	require.Len(t, nodes, 2)
	assert.Equal(t, "triangle", nodes[0].Name())
	assert.Equal(t, mgl32.Vec3{-2, 0, 2}, nodes[0].Position())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, nodes[0].Scale())
	assert.Equal(t, mgl32.Vec3{2, 0, 2}, nodes[1].Position())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, nodes[1].Scale())
	assert.True(t, l.Cached(path))
}
