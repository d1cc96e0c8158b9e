package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix for WebGPU clip space, where depth
// maps to [0, 1] rather than OpenGL's [-1, 1]. mgl32.Perspective targets the latter, so the
// depth row is rebuilt here.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// LookAt creates a view matrix that positions and orients the camera.
// Degenerate inputs (eye == center) fall back to the identity matrix rather than NaNs.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	if eye.Sub(center).Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(eye, center, up)
}

// ModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is X, then Y, then Z applied to the vertex (three.js "XYZ" order),
// giving M = T * Rx * Ry * Rz * S.
//
// Parameters:
//   - position: translation in world space
//   - rotation: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the model matrix
func ModelMatrix(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position[0], position[1], position[2])
	r := mgl32.HomogRotate3DX(rotation[0]).
		Mul4(mgl32.HomogRotate3DY(rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(rotation[2]))
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(r).Mul4(s)
}

// NormalMatrix returns the inverse-transpose of a model matrix, used to transform normals
// under non-uniform scale. Singular matrices yield the identity.
//
// Parameters:
//   - model: the model matrix
//
// Returns:
//   - mgl32.Mat4: the normal matrix
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	if model.Det() == 0 {
		return mgl32.Ident4()
	}
	return model.Inv().Transpose()
}

// SphericalToCartesian converts a spherical offset (radius, polar angle from +Y, azimuth
// around +Y measured from +Z) to a cartesian offset.
//
// Parameters:
//   - radius: distance from the origin
//   - phi: polar angle in radians
//   - theta: azimuthal angle in radians
//
// Returns:
//   - mgl32.Vec3: the cartesian offset
func SphericalToCartesian(radius, phi, theta float32) mgl32.Vec3 {
	sinPhi := float32(math.Sin(float64(phi)))
	return mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}
}

// CartesianToSpherical is the inverse of SphericalToCartesian.
//
// Parameters:
//   - v: the cartesian offset
//
// Returns:
//   - radius, phi, theta: the spherical coordinates
func CartesianToSpherical(v mgl32.Vec3) (radius, phi, theta float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = float32(math.Atan2(float64(v[0]), float64(v[2])))
	phi = float32(math.Acos(float64(mgl32.Clamp(v[1]/radius, -1, 1))))
	return radius, phi, theta
}
