// Package material describes how mesh surfaces are shaded and loads their textures.
package material

import "github.com/Carmen-Shannon/haunted-house/common"

// material is the implementation of the Material interface.
type material struct {
	name        string
	color       common.Color
	roughness   float32
	metalness   float32
	unlit       bool
	texturePath string
	texture     *Texture
}

// Material describes a standard lit surface: a base color, roughness, metalness and an
// optional color texture. Unlit materials output vertex color times base color and are used
// for helpers such as the axes.
//
// Surface properties are fixed at construction. The texture is assigned once by the
// TextureLoader before the render loop starts.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the base RGBA color.
	//
	// Returns:
	//   - common.Color: the base color
	Color() common.Color

	// Roughness retrieves the roughness factor (0 smooth, 1 fully rough).
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Metalness retrieves the metalness factor (0 dielectric, 1 metal).
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// Unlit reports whether lighting is skipped for this material.
	//
	// Returns:
	//   - bool: true if unlit
	Unlit() bool

	// TexturePath returns the color texture file requested at construction, or "".
	//
	// Returns:
	//   - string: the texture path
	TexturePath() string

	// Texture returns the loaded color texture, or nil if none is set.
	//
	// Returns:
	//   - *Texture: the texture or nil
	Texture() *Texture

	// SetTexture assigns the color texture.
	//
	// Parameters:
	//   - t: the texture
	SetTexture(t *Texture)
}

var _ Material = &material{}

// NewMaterial creates a new Material. Defaults match a standard material: white, fully
// rough, non-metallic.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color:     common.Color{1, 1, 1, 1},
		roughness: 1.0,
		metalness: 0.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) Unlit() bool {
	return m.unlit
}

func (m *material) TexturePath() string {
	return m.texturePath
}

func (m *material) Texture() *Texture {
	return m.texture
}

func (m *material) SetTexture(t *Texture) {
	m.texture = t
}
