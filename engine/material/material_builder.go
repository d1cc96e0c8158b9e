package material

import "github.com/Carmen-Shannon/haunted-house/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the base RGBA color of the material.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithRoughness is an option builder that sets the roughness factor, clamped to [0, 1].
//
// Parameters:
//   - roughness: the roughness factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithMetalness is an option builder that sets the metalness factor, clamped to [0, 1].
//
// Parameters:
//   - metalness: the metalness factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = common.Clamp(metalness, 0, 1)
	}
}

// WithUnlit marks the material as unlit.
//
// Returns:
//   - MaterialBuilderOption: a function that disables lighting for the material
func WithUnlit() MaterialBuilderOption {
	return func(m *material) {
		m.unlit = true
	}
}

// WithTexturePath requests a color texture to be loaded by the TextureLoader.
//
// Parameters:
//   - path: image file path (PNG, JPEG, GIF, WebP, BMP or TIFF)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture path to a material
func WithTexturePath(path string) MaterialBuilderOption {
	return func(m *material) {
		m.texturePath = path
	}
}
