package camera_test

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraDefaults(t *testing.T) {
	c := camera.NewCamera()
	s := c.State()
	assert.Equal(t, float32(75), s.FieldOfView)
	assert.Equal(t, float32(1), s.Aspect)
	assert.Equal(t, float32(0.1), s.Near)
	assert.Equal(t, float32(100), s.Far)
}

func TestSetAspectRecomputesProjection(t *testing.T) {
	c := camera.NewCamera(camera.WithFov(90))
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	after := c.ProjectionMatrix()

	assert.InDelta(t, before[0]/2, after[0], 1e-6)
	assert.Equal(t, before[5], after[5])
	assert.Equal(t, after.Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := camera.NewCamera(camera.WithAspect(1.5))
	proj := c.ProjectionMatrix()

	c.SetAspect(0)
	c.SetAspect(-1)
	c.SetAspect(float32(math.NaN()))
	c.SetAspect(float32(math.Inf(1)))

	assert.Equal(t, float32(1.5), c.Aspect())
	assert.Equal(t, proj, c.ProjectionMatrix())
}

func TestSetPoseRecomputesView(t *testing.T) {
	c := camera.NewCamera()
	c.SetPose(mgl32.Vec3{4, 2, 5}, mgl32.Vec3{})

	// The target sits on the view-space -Z axis.
	v := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, v[0], 1e-5)
	assert.InDelta(t, 0, v[1], 1e-5)
	assert.InDelta(t, -math.Sqrt(45), v[2], 1e-5)
}

func TestSetFovRejectsOutOfRange(t *testing.T) {
	c := camera.NewCamera()
	c.SetFov(0)
	c.SetFov(180)
	assert.Equal(t, float32(75), c.Fov())
	c.SetFov(60)
	assert.Equal(t, float32(60), c.Fov())
}
