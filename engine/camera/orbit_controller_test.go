package camera_test

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSceneCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{4, 2, 5}),
		camera.WithFov(75),
		camera.WithAspect(800.0/600.0),
	)
}

func TestOrbitDampingResidual(t *testing.T) {
	Convey("Given a damped controller with a pending azimuth delta of 0.3", t, func() {
		cam := newSceneCamera()
		oc := camera.NewOrbitController(cam, camera.WithDamping(0.05), camera.WithElement(viewport.New(800, 600)))
		_, _, theta0 := oc.Spherical()
		oc.RotateLeft(-0.3)

		Convey("three updates leave 0.3 * 0.95^3 pending", func() {
			for range 3 {
				oc.Update()
			}
			theta, phi := oc.PendingRotation()
			So(theta, ShouldAlmostEqual, 0.3*math.Pow(0.95, 3), 1e-6)
			So(phi, ShouldEqual, float32(0))

			_, _, th := oc.Spherical()
			applied := 0.3 * (1 - math.Pow(0.95, 3))
			So(th-theta0, ShouldAlmostEqual, applied, 1e-4)
		})

		Convey("the residual decays monotonically without changing sign", func() {
			prev, _ := oc.PendingRotation()
			for range 200 {
				oc.Update()
				cur, _ := oc.PendingRotation()
				So(cur, ShouldBeGreaterThanOrEqualTo, float32(0))
				So(cur, ShouldBeLessThan, prev)
				prev = cur
			}
			So(prev, ShouldBeLessThan, float32(0.3*0.0001))
		})
	})
}

func TestOrbitWithoutDampingAppliesWholeDelta(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam)
	_, _, theta0 := oc.Spherical()

	oc.RotateLeft(-0.3)
	require.True(t, oc.Update())

	theta, phi := oc.PendingRotation()
	assert.Zero(t, theta)
	assert.Zero(t, phi)
	_, _, th := oc.Spherical()
	assert.InDelta(t, theta0+0.3, th, 1e-4)
}

func TestOrbitUpdateWritesCameraPose(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam, camera.WithOrbitTarget(mgl32.Vec3{0, 1, 0}))

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Target())
	r, _, _ := oc.Spherical()
	assert.InDelta(t, cam.Position().Sub(cam.Target()).Len(), r, 1e-5)
	assert.False(t, oc.Update(), "no pending input means no movement")
}

func TestOrbitPointerRotate(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam, camera.WithElement(viewport.New(800, 600)))
	_, _, theta0 := oc.Spherical()

	oc.PointerDown(common.MouseButtonLeft, 100, 100)
	oc.PointerMove(160, 100)
	oc.PointerUp(common.MouseButtonLeft)

	theta, _ := oc.PendingRotation()
	assert.InDelta(t, -2*math.Pi*60/600, theta, 1e-5)

	oc.Update()
	_, _, th := oc.Spherical()
	assert.InDelta(t, theta0-2*math.Pi*60/600, th, 1e-4)

	// Moves after release are ignored.
	oc.PointerMove(500, 500)
	theta, phi := oc.PendingRotation()
	assert.Zero(t, theta)
	assert.Zero(t, phi)
}

func TestOrbitWheelDolly(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam)
	r0, _, _ := oc.Spherical()

	oc.Wheel(1)
	oc.Update()
	r1, _, _ := oc.Spherical()
	assert.InDelta(t, r0*0.95, r1, 1e-4)

	oc.Wheel(-1)
	oc.Update()
	r2, _, _ := oc.Spherical()
	assert.InDelta(t, r0, r2, 1e-4)
}

func TestOrbitRadiusAndPolarBounds(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam,
		camera.WithRadiusBounds(2, 8),
		camera.WithPolarBounds(0, math.Pi/2),
	)

	for range 100 {
		oc.Wheel(1)
	}
	oc.RotateUp(-10)
	oc.Update()

	r, phi, _ := oc.Spherical()
	assert.InDelta(t, 2, r, 1e-4)
	assert.InDelta(t, math.Pi/2, phi, 1e-4)
	assert.GreaterOrEqual(t, cam.Position().Y(), float32(-1e-4))
}

func TestOrbitPolarNeverReachesPole(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam)

	oc.RotateUp(10)
	oc.Update()

	_, phi, _ := oc.Spherical()
	assert.Greater(t, phi, float32(0))
	assert.False(t, math.IsNaN(float64(cam.ViewMatrix()[0])))
}

func TestOrbitAzimuthBounds(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam, camera.WithAzimuthBounds(-0.5, 1))

	oc.RotateLeft(-5)
	oc.Update()
	_, _, theta := oc.Spherical()
	assert.InDelta(t, 1, theta, 1e-4)
}

func TestOrbitKeyPan(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam, camera.WithElement(viewport.New(800, 600)))

	assert.False(t, oc.KeyDown(common.KeyA))
	assert.True(t, oc.KeyDown(common.KeyUp))
	pan := oc.PendingPan()
	assert.Greater(t, pan.Y(), float32(0), "panning up raises the target")

	oc.Update()
	assert.Greater(t, oc.Target().Y(), float32(0))
	assert.Equal(t, mgl32.Vec3{}, oc.PendingPan())
}

func TestOrbitDisabled(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam)
	pose := cam.Position()

	oc.SetEnabled(false)
	oc.PointerDown(common.MouseButtonLeft, 0, 0)
	oc.PointerMove(100, 100)
	oc.Wheel(3)
	assert.False(t, oc.KeyDown(common.KeyUp))

	assert.False(t, oc.Update())
	assert.Equal(t, pose, cam.Position())
}

func TestOrbitDampingSettings(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam)
	assert.False(t, oc.DampingEnabled())

	oc.SetDampingEnabled(true)
	oc.SetDampingFactor(0)
	oc.SetDampingFactor(1.5)
	assert.Equal(t, float32(0.05), oc.DampingFactor())

	oc.SetDampingFactor(0.1)
	assert.Equal(t, float32(0.1), oc.DampingFactor())
}

func TestOrbitAutoRotate(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam, camera.WithAutoRotate(2))
	_, _, theta0 := oc.Spherical()

	oc.Update()
	_, _, theta := oc.Spherical()
	assert.InDelta(t, theta0-2*math.Pi/60/60*2, theta, 1e-4)
}

func TestOrbitReset(t *testing.T) {
	cam := newSceneCamera()
	oc := camera.NewOrbitController(cam, camera.WithDamping(0.05))
	start := cam.Position()

	oc.RotateLeft(1)
	oc.Update()
	require.NotEqual(t, start, cam.Position())

	oc.Reset()
	theta, _ := oc.PendingRotation()
	assert.Zero(t, theta)
	assert.Equal(t, start, cam.Position())
}
