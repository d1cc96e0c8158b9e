// Package uniform packs renderer frames into the byte layouts of the lit shader's uniform
// blocks. Offsets follow WGSL uniform address space alignment: every member is a mat4x4 or a
// vec4, so the structs have no implicit padding.
package uniform

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	mat4Size = 64
	vec4Size = 16
)

// Frame block offsets.
const (
	FrameViewProjOffset   = 0
	FrameCameraOffset     = FrameViewProjOffset + mat4Size
	FrameAmbientOffset    = FrameCameraOffset + vec4Size
	FrameParamsOffset     = FrameAmbientOffset + vec4Size
	FrameLightDirOffset   = FrameParamsOffset + vec4Size
	FrameLightColorOffset = FrameLightDirOffset + light.MaxDirectionalLights*vec4Size

	// FrameSize is the size of the frame uniform block in bytes.
	FrameSize = FrameLightColorOffset + light.MaxDirectionalLights*vec4Size
)

// Object block offsets.
const (
	ObjectModelOffset  = 0
	ObjectNormalOffset = ObjectModelOffset + mat4Size
	ObjectColorOffset  = ObjectNormalOffset + mat4Size
	ObjectParamsOffset = ObjectColorOffset + vec4Size

	// ObjectSize is the size of the object uniform block in bytes.
	ObjectSize = ObjectParamsOffset + vec4Size
)

// PackFrame writes the per-frame block (camera, ambient and directional lights) into buf,
// which must be at least FrameSize bytes. Lights beyond MaxDirectionalLights are dropped.
//
// Parameters:
//   - buf: the destination buffer
//   - f: the frame
//
// Returns:
//   - []byte: buf[:FrameSize]
func PackFrame(buf []byte, f *renderer.Frame) []byte {
	buf = buf[:FrameSize]
	clear(buf)

	putMat4(buf, FrameViewProjOffset, f.ViewProjection)
	putVec4(buf, FrameCameraOffset, f.CameraPosition.Vec4(1))
	putVec4(buf, FrameAmbientOffset, f.Ambient.Vec4(0))

	count := min(len(f.Lights), light.MaxDirectionalLights)
	putVec4(buf, FrameParamsOffset, mgl32.Vec4{float32(count), 0, 0, 0})
	for i := range count {
		putVec4(buf, FrameLightDirOffset+i*vec4Size, f.Lights[i].Direction.Vec4(0))
		putVec4(buf, FrameLightColorOffset+i*vec4Size, f.Lights[i].Radiance.Vec4(0))
	}
	return buf
}

// PackObject writes the per-draw block (transforms and material factors) into buf, which must
// be at least ObjectSize bytes. The params vector holds roughness, metalness, an unlit flag and
// a has-texture flag.
//
// Parameters:
//   - buf: the destination buffer
//   - d: the draw command
//
// Returns:
//   - []byte: buf[:ObjectSize]
func PackObject(buf []byte, d *renderer.DrawCommand) []byte {
	buf = buf[:ObjectSize]
	putMat4(buf, ObjectModelOffset, d.Model)
	putMat4(buf, ObjectNormalOffset, d.Normal)

	m := d.Material
	putVec4(buf, ObjectColorOffset, mgl32.Vec4(m.Color()))
	var unlit, textured float32
	if m.Unlit() {
		unlit = 1
	}
	if m.Texture() != nil {
		textured = 1
	}
	putVec4(buf, ObjectParamsOffset, mgl32.Vec4{m.Roughness(), m.Metalness(), unlit, textured})
	return buf
}

func putMat4(buf []byte, offset int, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
	}
}

func putVec4(buf []byte, offset int, v mgl32.Vec4) {
	for i, c := range v {
		binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(c))
	}
}
