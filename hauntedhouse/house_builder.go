package hauntedhouse

import (
	"log/slog"

	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// BuildOption is a functional option applied by Build.
type BuildOption func(*builder)

// WithLogger sets the logger for build diagnostics.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - BuildOption: option function to apply
func WithLogger(logger *slog.Logger) BuildOption {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithAspect sets the camera's initial aspect ratio. The engine replaces it on the first
// resize.
//
// Parameters:
//   - aspect: width / height, ignored if not positive
//
// Returns:
//   - BuildOption: option function to apply
func WithAspect(aspect float32) BuildOption {
	return func(b *builder) {
		if aspect > 0 {
			b.aspect = aspect
		}
	}
}

// WithTextures assigns base color maps by node name. Unknown names are ignored.
//
// Parameters:
//   - textures: node name to image path
//
// Returns:
//   - BuildOption: option function to apply
func WithTextures(textures map[string]string) BuildOption {
	return func(b *builder) {
		b.textures = textures
	}
}

// WithProps adds decorative nodes under a group named props.
//
// Parameters:
//   - props: the nodes, typically from loader.Place
//
// Returns:
//   - BuildOption: option function to apply
func WithProps(props ...scene.Node) BuildOption {
	return func(b *builder) {
		b.props = append(b.props, props...)
	}
}
