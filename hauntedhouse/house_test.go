package hauntedhouse_test

import (
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/hauntedhouse"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	Convey("Given the built haunted house", t, func() {
		w, err := hauntedhouse.Build()
		So(err, ShouldBeNil)
		s := w.Scene

		Convey("The house group holds walls, roof, door and bushes", func() {
			house := s.Find(hauntedhouse.NameHouse)
			So(house, ShouldNotBeNil)
			names := []string{}
			for _, c := range house.Children() {
				names = append(names, c.Name())
			}
			So(names, ShouldResemble, []string{
				hauntedhouse.NameWalls, hauntedhouse.NameRoof, hauntedhouse.NameDoor, hauntedhouse.NameBushes,
			})
		})

		Convey("The walls stand on the floor and the roof sits on the walls", func() {
			walls := s.Find(hauntedhouse.NameWalls)
			So(walls.Position(), ShouldResemble, mgl32.Vec3{0, 1.25, 0})
			roof := s.Find(hauntedhouse.NameRoof)
			So(roof.Position(), ShouldResemble, mgl32.Vec3{0, 3.25, 0})
			So(roof.Rotation()[1], ShouldAlmostEqual, math32.Pi/4, 1e-6)
		})

		Convey("The red door sits just in front of the front wall", func() {
			door := s.Find(hauntedhouse.NameDoor)
			So(door.Position()[1], ShouldAlmostEqual, 1.1, 1e-6)
			So(door.Position()[2], ShouldAlmostEqual, 2.01, 1e-6)
			So(door.Material().Color(), ShouldResemble, common.Color{1, 0, 0, 1})
		})

		Convey("The floor is laid flat", func() {
			floor := s.Find(hauntedhouse.NameFloor)
			So(floor.Rotation()[0], ShouldAlmostEqual, -math32.Pi/2, 1e-6)
			up := floor.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0})
			So(up[1], ShouldAlmostEqual, 1, 1e-6)
		})

		Convey("The axes helper is unlit lines", func() {
			axes := s.Find(hauntedhouse.NameAxes)
			So(axes.Mesh().Topology(), ShouldEqual, geometry.Lines)
			So(axes.Material().Unlit(), ShouldBeTrue)
		})

		Convey("The lights match the scene tables", func() {
			lights := s.Lights()
			So(len(lights), ShouldEqual, 2)
			So(lights[0].Type(), ShouldEqual, light.LightTypeAmbient)
			So(lights[0].Intensity(), ShouldEqual, float32(0.5))
			So(lights[1].Type(), ShouldEqual, light.LightTypeDirectional)
			So(lights[1].Intensity(), ShouldEqual, float32(1.5))
			So(lights[1].Position(), ShouldResemble, mgl32.Vec3{3, 2, -8})
		})

		Convey("The camera starts at (4, 2, 5) with a 75 degree field of view", func() {
			So(w.Camera.Position(), ShouldResemble, mgl32.Vec3{4, 2, 5})
			So(w.Camera.Fov(), ShouldEqual, float32(75))
			So(w.Camera.Near(), ShouldEqual, float32(0.1))
			So(w.Camera.Far(), ShouldEqual, float32(100))
		})
	})
}

func TestBushesShareOneMesh(t *testing.T) {
	w, err := hauntedhouse.Build()
	require.NoError(t, err)

	bushes := w.Scene.Find(hauntedhouse.NameBushes).Children()
	require.Len(t, bushes, 4)
	for _, b := range bushes[1:] {
		assert.Same(t, bushes[0].Mesh(), b.Mesh())
	}
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, bushes[0].Scale())
	assert.Len(t, w.Materials, 9)
}

func TestBuildOptions(t *testing.T) {
	prop := scene.NewNode(scene.WithName("grave"))
	w, err := hauntedhouse.Build(
		hauntedhouse.WithAspect(2),
		hauntedhouse.WithTextures(map[string]string{hauntedhouse.NameDoor: "door.png"}),
		hauntedhouse.WithProps(prop),
	)
	require.NoError(t, err)

	assert.Equal(t, float32(2), w.Camera.Aspect())
	assert.Equal(t, "door.png", w.Scene.Find(hauntedhouse.NameDoor).Material().TexturePath())
	assert.Empty(t, w.Scene.Find(hauntedhouse.NameWalls).Material().TexturePath())

	props := w.Scene.Find(hauntedhouse.NameProps)
	require.NotNil(t, props)
	assert.Equal(t, props, prop.Parent())
}
