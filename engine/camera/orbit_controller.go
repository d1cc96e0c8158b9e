package camera

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the polar angle strictly inside (0, π) so the view never aligns
// with the up vector.
const polarEpsilon = 1e-6

// dragState is the interaction started by the most recent pointer press.
type dragState int

const (
	dragNone dragState = iota
	dragRotate
	dragDolly
	dragPan
)

// ElementSize reports the height of the element receiving pointer input, in logical pixels.
// Rotation and pan speeds are scaled by it so a full-height drag is a full turn at any
// window size. *viewport.Viewport satisfies it.
type ElementSize interface {
	Height() int
}

// spherical is an offset from the orbit target: polar angle phi from +Y and azimuth theta
// around +Y measured from +Z.
type spherical struct {
	radius float32
	phi    float32
	theta  float32
}

// orbitControllerImpl is the implementation of OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	camera  Camera
	element ElementSize

	enabled bool
	target  mgl32.Vec3

	spherical      spherical
	sphericalDelta spherical
	scale          float32
	panOffset      mgl32.Vec3

	enableDamping bool
	dampingFactor float32

	enableRotate bool
	enableZoom   bool
	enablePan    bool
	rotateSpeed  float32
	zoomSpeed    float32
	panSpeed     float32
	keyPanSpeed  float32

	autoRotate      bool
	autoRotateSpeed float32

	minDistance     float32
	maxDistance     float32
	minPolarAngle   float32
	maxPolarAngle   float32
	minAzimuthAngle float32
	maxAzimuthAngle float32

	state    dragState
	pointerX float32
	pointerY float32

	initialPosition mgl32.Vec3
	initialTarget   mgl32.Vec3
}

// OrbitController rotates, dollies and pans a Camera around a target point.
//
// Input events only accumulate pending deltas. Update drains them once per frame: with
// damping enabled it applies a fraction f of the pending rotation and pan and keeps the
// residual multiplied by (1 - f), so motion eases out over subsequent frames. Update must be
// called exactly once per rendered frame.
type OrbitController interface {
	// Update applies the pending deltas and writes the resulting pose to the camera.
	//
	// Returns:
	//   - bool: true if the camera position or target changed
	Update() bool

	// PointerDown starts a drag. Left rotates, middle dollies, right pans.
	//
	// Parameters:
	//   - button: the mouse button (common.MouseButton*)
	//   - x, y: pointer position in logical pixels
	PointerDown(button int, x, y float32)

	// PointerMove feeds pointer motion into the active drag.
	//
	// Parameters:
	//   - x, y: pointer position in logical pixels
	PointerMove(x, y float32)

	// PointerUp ends the active drag.
	//
	// Parameters:
	//   - button: the released mouse button
	PointerUp(button int)

	// Wheel dollies the camera. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: wheel notches
	Wheel(delta float32)

	// KeyDown pans with the arrow keys.
	//
	// Parameters:
	//   - key: the key code (common.Key*)
	//
	// Returns:
	//   - bool: true if the key was consumed
	KeyDown(key int) bool

	// RotateLeft adds an azimuth rotation to the pending delta.
	//
	// Parameters:
	//   - angle: radians
	RotateLeft(angle float32)

	// RotateUp adds a polar rotation to the pending delta.
	//
	// Parameters:
	//   - angle: radians
	RotateUp(angle float32)

	// PendingRotation returns the residual rotation not yet applied.
	//
	// Returns:
	//   - theta, phi: pending azimuth and polar deltas in radians
	PendingRotation() (theta, phi float32)

	// PendingPan returns the residual target translation not yet applied.
	//
	// Returns:
	//   - mgl32.Vec3: the pending pan offset
	PendingPan() mgl32.Vec3

	// Target returns the orbit target.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target
	Target() mgl32.Vec3

	// SetTarget moves the orbit target. The camera follows on the next Update.
	//
	// Parameters:
	//   - target: world-space target
	SetTarget(target mgl32.Vec3)

	// Spherical returns the current offset of the camera from the target.
	//
	// Returns:
	//   - radius, phi, theta: distance, polar angle, azimuth
	Spherical() (radius, phi, theta float32)

	// Enabled reports whether the controller reacts to input and moves the camera.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables the controller. Disabling cancels an active drag.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// DampingEnabled reports whether inertial damping is active.
	//
	// Returns:
	//   - bool: true if damping is enabled
	DampingEnabled() bool

	// SetDampingEnabled turns inertial damping on or off.
	//
	// Parameters:
	//   - enabled: the new state
	SetDampingEnabled(enabled bool)

	// DampingFactor returns the fraction of pending motion applied per Update.
	//
	// Returns:
	//   - float32: factor in (0, 1]
	DampingFactor() float32

	// SetDampingFactor sets the damping factor. Values outside (0, 1] are ignored.
	//
	// Parameters:
	//   - factor: the new factor
	SetDampingFactor(factor float32)

	// AutoRotate reports whether the camera orbits on its own while no drag is active.
	//
	// Returns:
	//   - bool: true if auto-rotating
	AutoRotate() bool

	// SetAutoRotate enables or disables auto-rotation.
	//
	// Parameters:
	//   - enabled: the new state
	SetAutoRotate(enabled bool)

	// Reset restores the pose the controller was created with and clears pending motion.
	Reset()
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an OrbitController driving cam. The orbit target defaults to
// the camera's current target and the spherical offset is derived from its position.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam Camera, options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:      &sync.Mutex{},
		camera:  cam,
		enabled: true,
		target:  cam.Target(),
		scale:   1,

		dampingFactor: 0.05,

		enableRotate: true,
		enableZoom:   true,
		enablePan:    true,
		rotateSpeed:  1,
		zoomSpeed:    1,
		panSpeed:     1,
		keyPanSpeed:  7,

		autoRotateSpeed: 2,

		minDistance:     0,
		maxDistance:     math32.Inf(1),
		minPolarAngle:   0,
		maxPolarAngle:   math32.Pi,
		minAzimuthAngle: math32.Inf(-1),
		maxAzimuthAngle: math32.Inf(1),
	}

	for _, option := range options {
		option(oc)
	}

	oc.initialPosition = cam.Position()
	oc.initialTarget = oc.target
	oc.syncSpherical()
	oc.update()
	return oc
}

func (oc *orbitControllerImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return false
	}
	return oc.update()
}

func (oc *orbitControllerImpl) PointerDown(button int, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}

	switch button {
	case common.MouseButtonLeft:
		if !oc.enableRotate {
			return
		}
		oc.state = dragRotate
	case common.MouseButtonMiddle:
		if !oc.enableZoom {
			return
		}
		oc.state = dragDolly
	case common.MouseButtonRight:
		if !oc.enablePan {
			return
		}
		oc.state = dragPan
	default:
		return
	}
	oc.pointerX, oc.pointerY = x, y
}

func (oc *orbitControllerImpl) PointerMove(x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || oc.state == dragNone {
		return
	}

	dx, dy := x-oc.pointerX, y-oc.pointerY
	oc.pointerX, oc.pointerY = x, y
	h := oc.elementHeight()

	switch oc.state {
	case dragRotate:
		oc.sphericalDelta.theta -= 2 * math32.Pi * dx * oc.rotateSpeed / h
		oc.sphericalDelta.phi -= 2 * math32.Pi * dy * oc.rotateSpeed / h
	case dragDolly:
		if dy > 0 {
			oc.scale /= oc.zoomScale()
		} else if dy < 0 {
			oc.scale *= oc.zoomScale()
		}
	case dragPan:
		oc.pan(dx*oc.panSpeed, dy*oc.panSpeed)
	}
}

func (oc *orbitControllerImpl) PointerUp(button int) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.state = dragNone
}

func (oc *orbitControllerImpl) Wheel(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || !oc.enableZoom || delta == 0 {
		return
	}
	s := math32.Pow(oc.zoomScale(), math32.Abs(delta))
	if delta > 0 {
		oc.scale *= s
	} else {
		oc.scale /= s
	}
}

func (oc *orbitControllerImpl) KeyDown(key int) bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled || !oc.enablePan {
		return false
	}

	switch key {
	case common.KeyUp:
		oc.pan(0, oc.keyPanSpeed)
	case common.KeyDown:
		oc.pan(0, -oc.keyPanSpeed)
	case common.KeyLeft:
		oc.pan(oc.keyPanSpeed, 0)
	case common.KeyRight:
		oc.pan(-oc.keyPanSpeed, 0)
	default:
		return false
	}
	return true
}

func (oc *orbitControllerImpl) RotateLeft(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.sphericalDelta.theta -= angle
}

func (oc *orbitControllerImpl) RotateUp(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.sphericalDelta.phi -= angle
}

func (oc *orbitControllerImpl) PendingRotation() (theta, phi float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.sphericalDelta.theta, oc.sphericalDelta.phi
}

func (oc *orbitControllerImpl) PendingPan() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.panOffset
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitControllerImpl) Spherical() (radius, phi, theta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.spherical.radius, oc.spherical.phi, oc.spherical.theta
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.state = dragNone
	}
}

func (oc *orbitControllerImpl) DampingEnabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableDamping
}

func (oc *orbitControllerImpl) SetDampingEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableDamping = enabled
}

func (oc *orbitControllerImpl) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.dampingFactor
}

func (oc *orbitControllerImpl) SetDampingFactor(factor float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if factor <= 0 || factor > 1 {
		return
	}
	oc.dampingFactor = factor
}

func (oc *orbitControllerImpl) AutoRotate() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.autoRotate
}

func (oc *orbitControllerImpl) SetAutoRotate(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.autoRotate = enabled
}

func (oc *orbitControllerImpl) Reset() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = oc.initialTarget
	oc.camera.SetPose(oc.initialPosition, oc.initialTarget)
	oc.sphericalDelta = spherical{}
	oc.panOffset = mgl32.Vec3{}
	oc.scale = 1
	oc.state = dragNone
	oc.syncSpherical()
}

// --- internal helpers ---

// update drains the pending deltas into the spherical offset and target and writes the
// pose to the camera. Caller must hold the mutex.
func (oc *orbitControllerImpl) update() bool {
	oc.syncSpherical()

	if oc.autoRotate && oc.state == dragNone {
		oc.sphericalDelta.theta -= 2 * math32.Pi / 60 / 60 * oc.autoRotateSpeed
	}

	f := float32(1)
	if oc.enableDamping {
		f = oc.dampingFactor
	}

	oc.spherical.theta = oc.clampAzimuth(oc.spherical.theta + oc.sphericalDelta.theta*f)
	oc.spherical.phi = common.Clamp(
		oc.spherical.phi+oc.sphericalDelta.phi*f,
		max(oc.minPolarAngle, polarEpsilon),
		min(oc.maxPolarAngle, math32.Pi-polarEpsilon),
	)
	oc.spherical.radius = common.Clamp(oc.spherical.radius*oc.scale, oc.minDistance, oc.maxDistance)
	oc.target = oc.target.Add(oc.panOffset.Mul(f))

	if oc.enableDamping {
		oc.sphericalDelta.theta *= 1 - f
		oc.sphericalDelta.phi *= 1 - f
		oc.panOffset = oc.panOffset.Mul(1 - f)
	} else {
		oc.sphericalDelta = spherical{}
		oc.panOffset = mgl32.Vec3{}
	}
	oc.scale = 1

	position := oc.target.Add(common.SphericalToCartesian(oc.spherical.radius, oc.spherical.phi, oc.spherical.theta))
	prevPosition, prevTarget := oc.camera.Position(), oc.camera.Target()
	oc.camera.SetPose(position, oc.target)

	return position.Sub(prevPosition).LenSqr() > polarEpsilon || prevTarget.Sub(oc.target).LenSqr() > polarEpsilon
}

// syncSpherical re-derives the spherical offset from the camera position so poses written
// directly to the camera are respected. Caller must hold the mutex.
func (oc *orbitControllerImpl) syncSpherical() {
	r, phi, theta := common.CartesianToSpherical(oc.camera.Position().Sub(oc.target))
	oc.spherical = spherical{radius: r, phi: phi, theta: theta}
}

// clampAzimuth limits theta to the azimuth bounds. A range wrapping through ±π is
// supported by keeping theta on the nearer bound. Caller must hold the mutex.
func (oc *orbitControllerImpl) clampAzimuth(theta float32) float32 {
	lo, hi := oc.minAzimuthAngle, oc.maxAzimuthAngle
	if math32.IsInf(lo, 0) || math32.IsInf(hi, 0) {
		return theta
	}

	lo, hi = wrapAngle(lo), wrapAngle(hi)
	if lo <= hi {
		return common.Clamp(theta, lo, hi)
	}
	if theta > (lo+hi)/2 {
		return max(lo, theta)
	}
	return min(hi, theta)
}

// pan converts a pointer displacement into a target translation in the camera's screen
// plane, scaled so the point under the cursor follows it at the target's depth.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) pan(dx, dy float32) {
	position := oc.camera.Position()
	offset := position.Sub(oc.target)
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(oc.camera.Fov())/2)
	h := oc.elementHeight()

	right, up := localAxes(position, oc.target)
	oc.panOffset = oc.panOffset.
		Add(right.Mul(-2 * dx * targetDistance / h)).
		Add(up.Mul(2 * dy * targetDistance / h))
}

// elementHeight returns the input element height, never less than 1.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) elementHeight() float32 {
	if oc.element == nil {
		return 1
	}
	return float32(max(oc.element.Height(), 1))
}

// zoomScale is the dolly factor for one wheel notch. Caller must hold the mutex.
func (oc *orbitControllerImpl) zoomScale() float32 {
	return math32.Pow(0.95, oc.zoomSpeed)
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix
// for world up (0, 1, 0). Coincident position and target yield zero vectors.
func localAxes(position, target mgl32.Vec3) (right, up mgl32.Vec3) {
	backward := position.Sub(target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	// cross((0,1,0), backward) = (bz, 0, -bx)
	right = mgl32.Vec3{backward[2], 0, -backward[0]}
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return right, up
}

// wrapAngle maps an angle outside [-π, π] back by one full turn.
func wrapAngle(a float32) float32 {
	switch {
	case a < -math32.Pi:
		return a + 2*math32.Pi
	case a > math32.Pi:
		return a - 2*math32.Pi
	}
	return a
}
