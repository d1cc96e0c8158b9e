package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithOrbitTarget sets the orbit pivot. Defaults to the camera's target.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithOrbitTarget(target mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = target
	}
}

// WithElement sets the element whose height scales rotation and pan input.
//
// Parameters:
//   - element: the input element
//
// Returns:
//   - OrbitControllerOption: functional option to set the element
func WithElement(element ElementSize) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.element = element
	}
}

// WithDamping enables inertial damping with the given factor. Factors outside (0, 1]
// keep the default of 0.05.
//
// Parameters:
//   - factor: fraction of pending motion applied per update
//
// Returns:
//   - OrbitControllerOption: functional option to enable damping
func WithDamping(factor float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.enableDamping = true
		if factor > 0 && factor <= 1 {
			oc.dampingFactor = factor
		}
	}
}

// WithRotateSpeed sets the pointer rotation speed multiplier.
//
// Parameters:
//   - speed: multiplier for rotation input
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pointer pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - OrbitControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.panSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans.
//
// Parameters:
//   - pixels: pan distance per key press
//
// Returns:
//   - OrbitControllerOption: functional option to set keyboard pan speed
func WithKeyPanSpeed(pixels float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.keyPanSpeed = pixels
	}
}

// WithAutoRotate enables auto-rotation. A speed of 2 completes one orbit in 30 seconds at
// 60 frames per second.
//
// Parameters:
//   - speed: auto-rotation speed
//
// Returns:
//   - OrbitControllerOption: functional option to enable auto-rotation
func WithAutoRotate(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.autoRotate = true
		oc.autoRotateSpeed = speed
	}
}

// WithRadiusBounds sets the minimum and maximum distance from the target.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minDistance = min
		oc.maxDistance = max
	}
}

// WithPolarBounds sets the minimum and maximum polar angle measured from +Y.
//
// Parameters:
//   - min: minimum polar angle in radians
//   - max: maximum polar angle in radians (π/2 keeps the camera above the ground)
//
// Returns:
//   - OrbitControllerOption: functional option to set polar bounds
func WithPolarBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minPolarAngle = min
		oc.maxPolarAngle = max
	}
}

// WithAzimuthBounds sets the minimum and maximum azimuth. Both must be finite to take effect.
//
// Parameters:
//   - min: minimum azimuth in radians
//   - max: maximum azimuth in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set azimuth bounds
func WithAzimuthBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minAzimuthAngle = min
		oc.maxAzimuthAngle = max
	}
}

// WithDisabledInput turns off individual input channels.
//
// Parameters:
//   - rotate: disable pointer rotation
//   - zoom: disable dolly
//   - pan: disable panning
//
// Returns:
//   - OrbitControllerOption: functional option to disable input channels
func WithDisabledInput(rotate, zoom, pan bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.enableRotate = !rotate
		oc.enableZoom = !zoom
		oc.enablePan = !pan
	}
}
