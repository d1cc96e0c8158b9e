// Package scene holds the scene graph: a tree of nodes with transforms, meshes and materials,
// plus the lights illuminating it.
package scene

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is a visible node with a mesh and its resolved world transform.
type DrawItem struct {
	Node  Node
	World mgl32.Mat4
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name       string
	root       Node
	lights     []light.Light
	background common.Color
}

// Scene is the root of a scene graph plus its lights and background color.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Root returns the root group node.
	//
	// Returns:
	//   - Node: the root
	Root() Node

	// Add attaches nodes beneath the root.
	//
	// Parameters:
	//   - nodes: the nodes to add
	//
	// Returns:
	//   - error: ErrCycle if a node cannot be attached
	Add(nodes ...Node) error

	// AddLight registers a light.
	//
	// Parameters:
	//   - l: the light
	AddLight(l light.Light)

	// RemoveLight unregisters a light. Unknown lights are ignored.
	//
	// Parameters:
	//   - l: the light
	RemoveLight(l light.Light)

	// Lights returns a copy of the registered lights.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// Background returns the clear color.
	//
	// Returns:
	//   - common.Color: the background color
	Background() common.Color

	// Find returns the first node with the given name in depth-first order, or nil.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - Node: the node or nil
	Find(name string) Node

	// Walk visits every visible node depth-first with its world matrix. Hidden nodes and
	// their subtrees are skipped. Returning false from fn stops the walk.
	//
	// Parameters:
	//   - fn: the visitor
	Walk(fn func(n Node, world mgl32.Mat4) bool)

	// DrawList returns every visible node that has a mesh, in depth-first order.
	//
	// Returns:
	//   - []DrawItem: the draw list
	DrawList() []DrawItem

	// Count returns the number of nodes beneath the root.
	//
	// Returns:
	//   - int: the node count
	Count() int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates an empty Scene with a black background.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		root:       NewNode(WithName(name)),
		background: common.Color{0, 0, 0, 1},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() Node {
	return s.root
}

func (s *scene) Add(nodes ...Node) error {
	return s.root.Add(nodes...)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) Find(name string) Node {
	var found Node
	var visit func(n Node) bool
	visit = func(n Node) bool {
		if n.Name() == name {
			found = n
			return false
		}
		for _, c := range n.Children() {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for _, c := range s.root.Children() {
		if !visit(c) {
			break
		}
	}
	return found
}

func (s *scene) Walk(fn func(n Node, world mgl32.Mat4) bool) {
	var visit func(n Node, parent mgl32.Mat4) bool
	visit = func(n Node, parent mgl32.Mat4) bool {
		if !n.Visible() {
			return true
		}
		world := parent.Mul4(n.LocalMatrix())
		if !fn(n, world) {
			return false
		}
		for _, c := range n.Children() {
			if !visit(c, world) {
				return false
			}
		}
		return true
	}
	visit(s.root, mgl32.Ident4())
}

func (s *scene) DrawList() []DrawItem {
	var items []DrawItem
	s.Walk(func(n Node, world mgl32.Mat4) bool {
		if n.Mesh() != nil {
			items = append(items, DrawItem{Node: n, World: world})
		}
		return true
	})
	return items
}

func (s *scene) Count() int {
	count := 0
	var visit func(n Node)
	visit = func(n Node) {
		for _, c := range n.Children() {
			count++
			visit(c)
		}
	}
	visit(s.root)
	return count
}
