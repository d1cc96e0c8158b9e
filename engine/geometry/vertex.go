package geometry

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// VertexSize is the byte stride of one Vertex in a vertex buffer.
const VertexSize = 48

// VertexSource is the WGSL declaration of the VertexInput struct matching Vertex.
//
//go:embed vertex.wgsl
var VertexSource string

// Vertex is the GPU-aligned representation of a single mesh vertex.
// Matches the VertexInput struct of the lit pipeline.
type Vertex struct {
	Position [3]float32 // offset  0: model-space position (12 bytes)
	Normal   [3]float32 // offset 12: model-space normal (12 bytes)
	UV       [2]float32 // offset 24: texture coordinate (8 bytes)
	Color    [4]float32 // offset 32: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// AppendTo serializes the vertex onto buf in little-endian order.
//
// Parameters:
//   - buf: the destination buffer
//
// Returns:
//   - []byte: buf extended by VertexSize bytes
func (v *Vertex) AppendTo(buf []byte) []byte {
	for _, f := range v.Position {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, f := range v.Normal {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, f := range v.UV {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, f := range v.Color {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

// white is the default vertex color; materials tint it.
var white = [4]float32{1, 1, 1, 1}
