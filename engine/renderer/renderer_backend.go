package renderer

import "errors"

// ErrSurfaceUnavailable is returned, wrapped, when the backend cannot acquire or configure the
// window surface. It is fatal at startup.
var ErrSurfaceUnavailable = errors.New("render surface unavailable")

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Backend draws prepared frames on a concrete graphics API. Implementations own the surface
// and every GPU resource; the Renderer never touches them directly.
type Backend interface {
	// Configure (re)creates the surface and its size-dependent attachments.
	//
	// Parameters:
	//   - width: backing width in physical pixels
	//   - height: backing height in physical pixels
	//
	// Returns:
	//   - error: an error wrapping ErrSurfaceUnavailable if the surface cannot be configured
	Configure(width, height int) error

	// Draw records, submits and presents one frame.
	//
	// Parameters:
	//   - frame: the prepared frame
	//
	// Returns:
	//   - error: error if the frame could not be drawn
	Draw(frame *Frame) error

	// Release frees every GPU resource held by the backend.
	Release()
}
