package scene

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// nodeCount is an atomic counter used to generate unique node IDs.
var nodeCount atomic.Uint64

// ErrCycle is returned when adding a node would make it its own ancestor.
var ErrCycle = errors.New("node cannot be added beneath itself")

type node struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	visible atomic.Bool

	mesh geometry.Mesh
	mat  material.Material

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	parent   *node
	children []*node
}

// Node is an element of the scene graph. A node with no mesh is a group: it only carries a
// transform for its children. Transforms are local to the parent; Euler rotations are applied
// X, then Y, then Z.
//
// Visibility is the only property mutated after the scene is built, and it may be toggled
// from any goroutine.
type Node interface {
	// ID returns the node's unique identifier.
	//
	// Returns:
	//   - uint64: the node ID
	ID() uint64

	// Name returns the node's name, used for lookup.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Mesh returns the node's mesh, or nil for a group.
	//
	// Returns:
	//   - geometry.Mesh: the mesh or nil
	Mesh() geometry.Mesh

	// Material returns the node's material, or nil for a group.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// Visible reports whether the node and its subtree are drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the node and its subtree.
	//
	// Parameters:
	//   - visible: the new visibility
	SetVisible(visible bool)

	// Position returns the translation relative to the parent.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// Scale returns the scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SetPosition sets the translation relative to the parent.
	//
	// Parameters:
	//   - position: the position
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rotation: the rotation
	SetRotation(rotation mgl32.Vec3)

	// SetScale sets the scale factors.
	//
	// Parameters:
	//   - scale: the scale
	SetScale(scale mgl32.Vec3)

	// LocalMatrix returns the transform relative to the parent.
	//
	// Returns:
	//   - mgl32.Mat4: the local matrix
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the transform relative to the scene root.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children returns a copy of the child list.
	//
	// Returns:
	//   - []Node: the children
	Children() []Node

	// Add attaches children to this node, detaching them from any previous parent.
	//
	// Parameters:
	//   - children: the nodes to attach
	//
	// Returns:
	//   - error: ErrCycle if a child is this node or one of its ancestors
	Add(children ...Node) error

	// Remove detaches a direct child. Unknown nodes are ignored.
	//
	// Parameters:
	//   - child: the node to detach
	Remove(child Node)
}

var _ Node = &node{}

// NewNode creates a visible Node with identity transform and the provided options applied.
//
// Parameters:
//   - options: variadic list of NodeBuilderOption functions to configure the node
//
// Returns:
//   - Node: the new node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{
		mu:    &sync.RWMutex{},
		id:    nodeCount.Add(1),
		scale: mgl32.Vec3{1, 1, 1},
	}
	n.visible.Store(true)
	for _, opt := range options {
		opt(n)
	}
	return n
}

// NewGroup creates a mesh-less Node used only to transform its children.
//
// Parameters:
//   - name: the group name
//   - children: nodes to attach
//
// Returns:
//   - Node: the group
func NewGroup(name string, children ...Node) Node {
	g := NewNode(WithName(name))
	_ = g.Add(children...)
	return g
}

func (n *node) ID() uint64 {
	return n.id
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Mesh() geometry.Mesh {
	return n.mesh
}

func (n *node) Material() material.Material {
	return n.mat
}

func (n *node) Visible() bool {
	return n.visible.Load()
}

func (n *node) SetVisible(visible bool) {
	n.visible.Store(visible)
}

func (n *node) Position() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) Rotation() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation
}

func (n *node) Scale() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

func (n *node) SetPosition(position mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = position
}

func (n *node) SetRotation(rotation mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = rotation
}

func (n *node) SetScale(scale mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = scale
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return common.ModelMatrix(n.position, n.rotation, n.scale)
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parentNode(); p != nil; p = p.parentNode() {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *node) Parent() Node {
	if p := n.parentNode(); p != nil {
		return p
	}
	return nil
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) Add(children ...Node) error {
	for _, child := range children {
		c, ok := child.(*node)
		if !ok || c == nil {
			continue
		}
		for a := n; a != nil; a = a.parentNode() {
			if a == c {
				return ErrCycle
			}
		}
		if old := c.parentNode(); old != nil {
			old.Remove(c)
		}

		n.mu.Lock()
		n.children = append(n.children, c)
		n.mu.Unlock()

		c.mu.Lock()
		c.parent = n
		c.mu.Unlock()
	}
	return nil
}

func (n *node) Remove(child Node) {
	c, ok := child.(*node)
	if !ok {
		return
	}

	n.mu.Lock()
	removed := false
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()

	if removed {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

// parentNode returns the concrete parent under the read lock.
func (n *node) parentNode() *node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}
