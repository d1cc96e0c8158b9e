package light_test

import (
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDirectionalLight(t *testing.T) {
	l := light.NewDirectionalLight(common.Color{1, 1, 1, 1}, 1.5, mgl32.Vec3{3, 2, -8})

	assert.Equal(t, light.LightTypeDirectional, l.Type())
	assert.True(t, l.Enabled())

	dir := l.Direction()
	want := mgl32.Vec3{-3, -2, 8}.Normalize()
	for i := range 3 {
		assert.InDelta(t, want[i], dir[i], 1e-6)
	}
	assert.Equal(t, mgl32.Vec3{1.5, 1.5, 1.5}, l.Radiance())
}

func TestDirectionalLightDegenerate(t *testing.T) {
	l := light.NewLight(light.LightTypeDirectional, light.WithPosition(mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
}

func TestAmbientLight(t *testing.T) {
	l := light.NewAmbientLight(common.MustParseHexColor("#ffffff"), 0.5, light.WithName("ambient"))
	assert.Equal(t, "ambient", l.Name())
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, l.Radiance())

	l.SetIntensity(-1)
	assert.Zero(t, l.Intensity())

	l.SetEnabled(false)
	assert.False(t, l.Enabled())
}
