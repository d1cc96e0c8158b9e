package material

import "log/slog"

// TextureLoaderOption is a functional option for configuring a TextureLoader.
type TextureLoaderOption func(*textureLoader)

// WithLogger sets the logger used for load warnings.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithLogger(logger *slog.Logger) TextureLoaderOption {
	return func(l *textureLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithWorkers sets the maximum number of concurrent decodes.
//
// Parameters:
//   - n: worker count, values below 1 are treated as 1
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithWorkers(n int) TextureLoaderOption {
	return func(l *textureLoader) {
		l.workers = max(n, 1)
	}
}

// WithMaxTextureSize sets the edge length above which textures are downscaled.
//
// Parameters:
//   - size: maximum edge length in pixels
//
// Returns:
//   - TextureLoaderOption: option function to apply
func WithMaxTextureSize(size int) TextureLoaderOption {
	return func(l *textureLoader) {
		if size > 0 {
			l.maxSize = size
		}
	}
}
