// Package viewport holds the output surface dimensions and pixel density shared by the
// camera, the orbit controls and the renderer.
package viewport

// MaxPixelDensity caps the backing-buffer scale; density beyond 2 costs fill rate with no
// visible gain.
const MaxPixelDensity float32 = 2.0

// Viewport is the logical size of the display surface plus the pixel density applied to
// the render surface's backing buffer. It is mutated only by the engine's resize handler.
type Viewport struct {
	width        int
	height       int
	pixelDensity float32
}

// New creates a Viewport with the given initial logical size and a pixel density of 1.
// Non-positive dimensions are replaced by 1 so the aspect ratio is always defined.
//
// Parameters:
//   - width: initial width in logical pixels
//   - height: initial height in logical pixels
//
// Returns:
//   - *Viewport: the new viewport
func New(width, height int) *Viewport {
	v := &Viewport{width: 1, height: 1, pixelDensity: 1}
	v.Resize(width, height)
	return v
}

// Resize updates the logical size. Non-positive dimensions are ignored and the last known
// size is retained.
//
// Parameters:
//   - width: new width in logical pixels
//   - height: new height in logical pixels
//
// Returns:
//   - bool: true if the size was accepted
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	v.width = width
	v.height = height
	return true
}

// SetPixelDensity derives the pixel density from a host-reported device pixel ratio,
// capped at MaxPixelDensity. Non-positive ratios are treated as 1.
//
// Parameters:
//   - devicePixelRatio: the host display's reported ratio
//
// Returns:
//   - float32: the applied density
func (v *Viewport) SetPixelDensity(devicePixelRatio float32) float32 {
	v.pixelDensity = ClampPixelDensity(devicePixelRatio)
	return v.pixelDensity
}

// Width returns the logical width.
func (v *Viewport) Width() int { return v.width }

// Height returns the logical height.
func (v *Viewport) Height() int { return v.height }

// Size returns the logical width and height.
func (v *Viewport) Size() (int, int) { return v.width, v.height }

// PixelDensity returns the current pixel density.
func (v *Viewport) PixelDensity() float32 { return v.pixelDensity }

// Aspect returns width / height.
func (v *Viewport) Aspect() float32 {
	return float32(v.width) / float32(v.height)
}

// ClampPixelDensity returns min(devicePixelRatio, MaxPixelDensity), with non-positive
// ratios treated as 1.
func ClampPixelDensity(devicePixelRatio float32) float32 {
	if devicePixelRatio <= 0 {
		return 1
	}
	return min(devicePixelRatio, MaxPixelDensity)
}
