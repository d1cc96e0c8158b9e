package viewport_test

import (
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/stretchr/testify/assert"
)

func TestResize(t *testing.T) {
	v := viewport.New(800, 600)
	assert.Equal(t, 800, v.Width())
	assert.Equal(t, 600, v.Height())
	assert.InDelta(t, 800.0/600.0, v.Aspect(), 1e-6)

	assert.False(t, v.Resize(0, 600))
	assert.False(t, v.Resize(1024, -1))
	w, h := v.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	assert.True(t, v.Resize(1024, 768))
	assert.Equal(t, 1024, v.Width())
}

func TestNewWithInvalidSize(t *testing.T) {
	v := viewport.New(0, 0)
	assert.Equal(t, 1, v.Width())
	assert.Equal(t, 1, v.Height())
	assert.Equal(t, float32(1), v.PixelDensity())
}

func TestPixelDensityCap(t *testing.T) {
	v := viewport.New(800, 600)
	for _, tc := range []struct {
		ratio float32
		want  float32
	}{
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{0, 1},
		{-2, 1},
	} {
		assert.Equal(t, tc.want, v.SetPixelDensity(tc.ratio), "ratio %v", tc.ratio)
		assert.LessOrEqual(t, v.PixelDensity(), viewport.MaxPixelDensity)
	}
}
