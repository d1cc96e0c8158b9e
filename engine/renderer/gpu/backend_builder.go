package gpu

import (
	"log/slog"

	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// BackendBuilderOption is a functional option applied to the backend during construction via
// NewBackend.
type BackendBuilderOption func(*backendImpl)

// WithLogger sets the logger used for device messages.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - BackendBuilderOption: a function that applies the logger option to a backend
func WithLogger(logger *slog.Logger) BackendBuilderOption {
	return func(b *backendImpl) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithPresentMode sets the surface present mode. VSync is the default, so frames are paced by
// the display refresh.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - BackendBuilderOption: a function that applies the present mode option to a backend
func WithPresentMode(mode renderer.PresentMode) BackendBuilderOption {
	return func(b *backendImpl) {
		switch mode {
		case renderer.PresentModeUncapped:
			b.presentMode = wgpu.PresentModeImmediate
		default:
			b.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithMSAA sets the multisample count. MSAA4x is the default; MSAAOff draws straight to the
// swapchain.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - BackendBuilderOption: a function that applies the MSAA option to a backend
func WithMSAA(count renderer.MSAASampleCount) BackendBuilderOption {
	return func(b *backendImpl) {
		if count == renderer.MSAAOff || count == renderer.MSAA4x {
			b.sampleCount = count
		}
	}
}

// WithForceFallbackAdapter requests the software fallback adapter.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - BackendBuilderOption: a function that applies the adapter option to a backend
func WithForceFallbackAdapter(force bool) BackendBuilderOption {
	return func(b *backendImpl) {
		b.forceFallbackAdapter = force
	}
}
