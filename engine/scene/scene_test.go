package scene_test

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeDefaults(t *testing.T) {
	a := scene.NewNode(scene.WithName("a"))
	b := scene.NewNode()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Visible())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Scale())
	assert.Nil(t, a.Parent())
	assert.Nil(t, a.Mesh())
	assert.Equal(t, mgl32.Ident4(), a.LocalMatrix())
}

func TestWithMeshDefaultsMaterial(t *testing.T) {
	n := scene.NewNode(scene.WithMesh(geometry.Box(1, 1, 1), nil))
	require.NotNil(t, n.Material())
	assert.Equal(t, common.Color{1, 1, 1, 1}, n.Material().Color())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	house := scene.NewNode(scene.WithName("house"), scene.WithPosition(mgl32.Vec3{1, 0, 0}))
	door := scene.NewNode(scene.WithName("door"), scene.WithPosition(mgl32.Vec3{0, 1.1, 2.01}))
	require.NoError(t, house.Add(door))

	p := door.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 1, p[0], 1e-6)
	assert.InDelta(t, 1.1, p[1], 1e-6)
	assert.InDelta(t, 2.01, p[2], 1e-6)
	assert.Equal(t, house, door.Parent())
}

func TestAddRejectsCycles(t *testing.T) {
	a := scene.NewNode()
	b := scene.NewNode()
	require.NoError(t, a.Add(b))

	assert.ErrorIs(t, b.Add(a), scene.ErrCycle)
	assert.ErrorIs(t, a.Add(a), scene.ErrCycle)
}

func TestAddReparents(t *testing.T) {
	a := scene.NewNode()
	b := scene.NewNode()
	c := scene.NewNode()
	require.NoError(t, a.Add(c))
	require.NoError(t, b.Add(c))

	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)
	assert.Equal(t, b, c.Parent())

	b.Remove(c)
	assert.Nil(t, c.Parent())
}

func TestSceneTraversal(t *testing.T) {
	Convey("Given a floor and a house group with walls and a roof", t, func() {
		floor := scene.NewNode(scene.WithName("floor"), scene.WithMesh(geometry.Plane(20, 20), nil),
			scene.WithRotation(mgl32.Vec3{-math.Pi / 2, 0, 0}))
		walls := scene.NewNode(scene.WithName("walls"), scene.WithMesh(geometry.Box(4, 2.5, 4), nil))
		roof := scene.NewNode(scene.WithName("roof"), scene.WithMesh(geometry.Cone(3.5, 1.5, 4), nil))
		house := scene.NewGroup("house", walls, roof)
		s := scene.NewScene("haunted-house", scene.WithNodes(floor, house))

		Convey("the draw list holds only mesh nodes in depth-first order", func() {
			items := s.DrawList()
			So(len(items), ShouldEqual, 3)
			So(items[0].Node.Name(), ShouldEqual, "floor")
			So(items[1].Node.Name(), ShouldEqual, "walls")
			So(items[2].Node.Name(), ShouldEqual, "roof")
			So(s.Count(), ShouldEqual, 4)
		})

		Convey("hiding a group hides its subtree", func() {
			house.SetVisible(false)
			items := s.DrawList()
			So(len(items), ShouldEqual, 1)
			So(items[0].Node.Name(), ShouldEqual, "floor")

			house.SetVisible(true)
			So(len(s.DrawList()), ShouldEqual, 3)
		})

		Convey("nodes are found by name", func() {
			So(s.Find("roof"), ShouldEqual, roof)
			So(s.Find("chimney"), ShouldBeNil)
		})
	})
}

func TestSceneLights(t *testing.T) {
	ambient := light.NewAmbientLight(common.Color{1, 1, 1, 1}, 0.5)
	moon := light.NewDirectionalLight(common.Color{1, 1, 1, 1}, 1.5, mgl32.Vec3{3, 2, -8})
	s := scene.NewScene("s", scene.WithLights(ambient), scene.WithBackground(common.Color{0.1, 0, 0, 1}))
	s.AddLight(moon)

	assert.Len(t, s.Lights(), 2)
	s.RemoveLight(ambient)
	assert.Equal(t, []light.Light{moon}, s.Lights())
	assert.Equal(t, common.Color{0.1, 0, 0, 1}, s.Background())
}
