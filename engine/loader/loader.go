package loader

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrAssetLoad is returned, wrapped, when a prop file cannot be read or decoded.
var ErrAssetLoad = material.ErrAssetLoad

// Placement positions a loaded prop in the scene.
type Placement struct {
	Path     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// propNode is a decoded glTF node. Meshes and materials are shared by every instance.
type propNode struct {
	name     string
	mesh     geometry.Mesh
	mat      material.Material
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	children []*propNode
}

// prop is a decoded glTF file ready to be instanced.
type prop struct {
	name  string
	roots []*propNode
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	logger *slog.Logger

	propCache map[string]*prop
}

// Loader decodes glTF 2.0 props (.gltf or .glb) into scene graph nodes. Decoded files are
// cached by path, and every call returns a fresh node tree that shares the cached meshes and
// materials, so one file can be placed several times.
type Loader interface {
	// Load decodes the file at path, or reuses the cached decode, and returns a new group
	// node holding the file's default scene.
	//
	// Parameters:
	//   - path: the .gltf or .glb file path
	//
	// Returns:
	//   - scene.Node: the prop's root group
	//   - error: an error wrapping ErrAssetLoad if the file cannot be used
	Load(path string) (scene.Node, error)

	// LoadReader decodes a glTF stream and caches it under name. Buffers must be embedded
	// (GLB or data URIs) because there is no directory to resolve relative URIs against.
	//
	// Parameters:
	//   - name: the cache key and root node name
	//   - r: the glTF or GLB stream
	//
	// Returns:
	//   - scene.Node: the prop's root group
	//   - error: an error wrapping ErrAssetLoad if the stream cannot be used
	LoadReader(name string, r io.Reader) (scene.Node, error)

	// Place loads every placement and applies its transform. Failed props are skipped with
	// a logged warning.
	//
	// Parameters:
	//   - placements: the props to load
	//
	// Returns:
	//   - []scene.Node: the props that loaded, in order
	Place(placements ...Placement) []scene.Node

	// Cached reports whether name has already been decoded.
	//
	// Parameters:
	//   - name: the path or cache key
	//
	// Returns:
	//   - bool: true if cached
	Cached(name string) bool
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the given options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:    slog.Default(),
		propCache: make(map[string]*prop),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (scene.Node, error) {
	if p := l.cached(path); p != nil {
		return p.instance(), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".gltf" && ext != ".glb" {
		return nil, fmt.Errorf("%w: unsupported prop format %q", ErrAssetLoad, ext)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrAssetLoad, path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := decodeProp(name, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetLoad, path, err)
	}

	l.store(path, p)
	return p.instance(), nil
}

func (l *loader) LoadReader(name string, r io.Reader) (scene.Node, error) {
	if p := l.cached(name); p != nil {
		return p.instance(), nil
	}

	doc := gltf.NewDocument()
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %q: %v", ErrAssetLoad, name, err)
	}

	p, err := decodeProp(name, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrAssetLoad, name, err)
	}

	l.store(name, p)
	return p.instance(), nil
}

func (l *loader) Place(placements ...Placement) []scene.Node {
	nodes := make([]scene.Node, 0, len(placements))
	for _, pl := range placements {
		n, err := l.Load(pl.Path)
		if err != nil {
			l.logger.Warn("skipping prop", "path", pl.Path, "error", err)
			continue
		}
		n.SetPosition(pl.Position)
		n.SetRotation(pl.Rotation)
		if pl.Scale != (mgl32.Vec3{}) {
			n.SetScale(pl.Scale)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (l *loader) Cached(name string) bool {
	return l.cached(name) != nil
}

func (l *loader) cached(name string) *prop {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.propCache[name]
}

func (l *loader) store(name string, p *prop) {
	l.mu.Lock()
	l.propCache[name] = p
	l.mu.Unlock()
}

// instance builds a new node tree for the prop.
func (p *prop) instance() scene.Node {
	root := scene.NewGroup(p.name)
	for _, pn := range p.roots {
		// Freshly built nodes cannot form a cycle.
		_ = root.Add(pn.instance())
	}
	return root
}

func (pn *propNode) instance() scene.Node {
	opts := []scene.NodeBuilderOption{
		scene.WithName(pn.name),
		scene.WithPosition(pn.position),
		scene.WithRotation(pn.rotation),
		scene.WithScale(pn.scale),
	}
	if pn.mesh != nil {
		opts = append(opts, scene.WithMesh(pn.mesh, pn.mat))
	}
	n := scene.NewNode(opts...)
	for _, c := range pn.children {
		_ = n.Add(c.instance())
	}
	return n
}

// decodeProp converts the document's default scene into a prop.
func decodeProp(name string, doc *gltf.Document) (*prop, error) {
	mats := make([]material.Material, len(doc.Materials))
	for i, m := range doc.Materials {
		mats[i] = convertMaterial(m)
	}

	meshes := make([][]primitive, len(doc.Meshes))
	for i, m := range doc.Meshes {
		prims, err := convertMesh(doc, m, mats)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		meshes[i] = prims
	}

	var rootIndices []int
	switch {
	case len(doc.Scenes) > 0:
		s := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		rootIndices = doc.Scenes[s].Nodes
	default:
		rootIndices = rootNodes(doc)
	}
	if len(rootIndices) == 0 {
		return nil, fmt.Errorf("no nodes")
	}

	p := &prop{name: name}
	visiting := make(map[int]bool)
	for _, idx := range rootIndices {
		pn, err := convertNode(doc, idx, meshes, visiting)
		if err != nil {
			return nil, err
		}
		p.roots = append(p.roots, pn)
	}
	return p, nil
}

// rootNodes returns the nodes that are no other node's child.
func rootNodes(doc *gltf.Document) []int {
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func convertNode(doc *gltf.Document, idx int, meshes [][]primitive, visiting map[int]bool) (*propNode, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	n := doc.Nodes[idx]
	pn := &propNode{
		name:     common.Coalesce(n.Name, fmt.Sprintf("node%d", idx)),
		position: mgl32.Vec3{float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2])},
		rotation: quatToEuler(n.Rotation),
		scale:    mgl32.Vec3{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])},
	}
	if pn.scale == (mgl32.Vec3{}) {
		pn.scale = mgl32.Vec3{1, 1, 1}
	}

	if n.Mesh != nil {
		if *n.Mesh >= len(meshes) {
			return nil, fmt.Errorf("node %d references missing mesh %d", idx, *n.Mesh)
		}
		prims := meshes[*n.Mesh]
		if len(prims) == 1 {
			pn.mesh, pn.mat = prims[0].mesh, prims[0].mat
		} else {
			for _, pr := range prims {
				pn.children = append(pn.children, &propNode{
					name:  pr.mesh.Name(),
					mesh:  pr.mesh,
					mat:   pr.mat,
					scale: mgl32.Vec3{1, 1, 1},
				})
			}
		}
	}

	for _, c := range n.Children {
		cn, err := convertNode(doc, c, meshes, visiting)
		if err != nil {
			return nil, err
		}
		pn.children = append(pn.children, cn)
	}
	return pn, nil
}

// primitive is one drawable part of a glTF mesh.
type primitive struct {
	mesh geometry.Mesh
	mat  material.Material
}

func convertMesh(doc *gltf.Document, m *gltf.Mesh, mats []material.Material) ([]primitive, error) {
	var out []primitive
	for i, prim := range m.Primitives {
		var topology geometry.Topology
		switch prim.Mode {
		case gltf.PrimitiveTriangles:
			topology = geometry.Triangles
		case gltf.PrimitiveLines:
			topology = geometry.Lines
		default:
			// Strips, fans and points have no pipeline.
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			return nil, fmt.Errorf("primitive %d has no POSITION attribute", i)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("primitive %d positions: %w", i, err)
		}

		vertices := make([]geometry.Vertex, len(positions))
		for v, p := range positions {
			vertices[v].Position = p
			vertices[v].Color = [4]float32{1, 1, 1, 1}
		}

		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err := modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d normals: %w", i, err)
			}
			for v := range min(len(normals), len(vertices)) {
				vertices[v].Normal = normals[v]
			}
		}

		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d uvs: %w", i, err)
			}
			for v := range min(len(uvs), len(vertices)) {
				vertices[v].UV = uvs[v]
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("primitive %d indices: %w", i, err)
			}
		} else {
			indices = make([]uint32, len(vertices))
			for v := range indices {
				indices[v] = uint32(v)
			}
		}
		for _, idx := range indices {
			if int(idx) >= len(vertices) {
				return nil, fmt.Errorf("primitive %d index %d out of range", i, idx)
			}
		}

		var mat material.Material
		if prim.Material != nil && *prim.Material < len(mats) {
			mat = mats[*prim.Material]
		}

		out = append(out, primitive{
			mesh: geometry.NewMesh(
				geometry.WithName(fmt.Sprintf("%s#%d", common.Coalesce(m.Name, "mesh"), i)),
				geometry.WithVertices(vertices),
				geometry.WithIndices(indices),
				geometry.WithTopology(topology),
			),
			mat: mat,
		})
	}
	return out, nil
}

func convertMaterial(m *gltf.Material) material.Material {
	opts := []material.MaterialBuilderOption{material.WithName(m.Name)}
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		opts = append(opts,
			material.WithColor(common.Color{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}),
			material.WithRoughness(float32(pbr.RoughnessFactorOrDefault())),
			material.WithMetalness(float32(pbr.MetallicFactorOrDefault())),
		)
	}
	return material.NewMaterial(opts...)
}

// quatToEuler converts a glTF (x, y, z, w) rotation to Euler angles applied X, then Y, then Z.
func quatToEuler(q [4]float64) mgl32.Vec3 {
	if q == ([4]float64{}) {
		return mgl32.Vec3{}
	}
	m := mgl32.Quat{W: float32(q[3]), V: mgl32.Vec3{float32(q[0]), float32(q[1]), float32(q[2])}}.Normalize().Mat4()

	m13 := mgl32.Clamp(m.At(0, 2), -1, 1)
	y := float32(math.Asin(float64(m13)))
	if math.Abs(float64(m13)) < 0.9999999 {
		x := float32(math.Atan2(float64(-m.At(1, 2)), float64(m.At(2, 2))))
		z := float32(math.Atan2(float64(-m.At(0, 1)), float64(m.At(0, 0))))
		return mgl32.Vec3{x, y, z}
	}
	x := float32(math.Atan2(float64(m.At(2, 1)), float64(m.At(1, 1))))
	return mgl32.Vec3{x, y, 0}
}
