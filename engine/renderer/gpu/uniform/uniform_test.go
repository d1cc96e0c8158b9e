package uniform_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/gpu/uniform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestBlockSizes(t *testing.T) {
	assert.Equal(t, 240, uniform.FrameSize)
	assert.Equal(t, 160, uniform.ObjectSize)
	assert.Zero(t, uniform.FrameSize%16)
	assert.Zero(t, uniform.ObjectSize%16)
}

func TestPackFrame(t *testing.T) {
	f := &renderer.Frame{
		ViewProjection: mgl32.Translate3D(1, 2, 3),
		CameraPosition: mgl32.Vec3{4, 2, 5},
		Ambient:        mgl32.Vec3{0.5, 0.5, 0.5},
	}
	for i := range 6 {
		f.Lights = append(f.Lights, renderer.DirectionalLight{
			Direction: mgl32.Vec3{0, -1, 0},
			Radiance:  mgl32.Vec3{float32(i), 0, 0},
		})
	}

	buf := uniform.PackFrame(make([]byte, uniform.FrameSize), f)

	// Column-major: the translation sits in elements 12..14.
	assert.Equal(t, float32(1), floatAt(buf, uniform.FrameViewProjOffset+12*4))
	assert.Equal(t, float32(3), floatAt(buf, uniform.FrameViewProjOffset+14*4))
	assert.Equal(t, float32(5), floatAt(buf, uniform.FrameCameraOffset+8))
	assert.Equal(t, float32(1), floatAt(buf, uniform.FrameCameraOffset+12))
	assert.Equal(t, float32(0.5), floatAt(buf, uniform.FrameAmbientOffset))

	// Only four lights fit.
	assert.Equal(t, float32(4), floatAt(buf, uniform.FrameParamsOffset))
	assert.Equal(t, float32(-1), floatAt(buf, uniform.FrameLightDirOffset+3*16+4))
	assert.Equal(t, float32(3), floatAt(buf, uniform.FrameLightColorOffset+3*16))
}

func TestPackFrameClearsStaleLights(t *testing.T) {
	buf := make([]byte, uniform.FrameSize)
	uniform.PackFrame(buf, &renderer.Frame{Lights: []renderer.DirectionalLight{{Radiance: mgl32.Vec3{9, 9, 9}}}})
	uniform.PackFrame(buf, &renderer.Frame{})

	assert.Equal(t, float32(0), floatAt(buf, uniform.FrameParamsOffset))
	assert.Equal(t, float32(0), floatAt(buf, uniform.FrameLightColorOffset))
}

func TestPackObject(t *testing.T) {
	d := &renderer.DrawCommand{
		Model:  mgl32.Translate3D(0, 1.1, 2.01),
		Normal: mgl32.Ident4(),
		Material: material.NewMaterial(
			material.WithColor(common.Color{1, 0, 0, 1}),
			material.WithRoughness(0.5),
			material.WithUnlit(),
		),
	}

	buf := uniform.PackObject(make([]byte, uniform.ObjectSize), d)

	assert.InDelta(t, 1.1, floatAt(buf, uniform.ObjectModelOffset+13*4), 1e-6)
	assert.Equal(t, float32(1), floatAt(buf, uniform.ObjectNormalOffset))
	assert.Equal(t, float32(1), floatAt(buf, uniform.ObjectColorOffset))
	assert.Equal(t, float32(0), floatAt(buf, uniform.ObjectColorOffset+4))
	assert.Equal(t, float32(0.5), floatAt(buf, uniform.ObjectParamsOffset))
	assert.Equal(t, float32(0), floatAt(buf, uniform.ObjectParamsOffset+4))
	assert.Equal(t, float32(1), floatAt(buf, uniform.ObjectParamsOffset+8))
	assert.Equal(t, float32(0), floatAt(buf, uniform.ObjectParamsOffset+12))
}
