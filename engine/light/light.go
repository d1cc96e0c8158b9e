// Package light defines the light sources the lit pipeline evaluates.
package light

import (
	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly regardless of normal or position.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant source such as the moon. It shines from its
	// position toward its target; only the resulting direction matters for shading.
	LightTypeDirectional
)

// MaxDirectionalLights is the number of directional lights the lit pipeline evaluates.
// Additional directional lights are ignored by the renderer.
const MaxDirectionalLights = 4

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name      string
	lightType LightType
	position  mgl32.Vec3
	target    mgl32.Vec3
	color     common.Color
	intensity float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// Ambient lights only use color and intensity. Directional lights additionally use the
// direction from position to target.
type Light interface {
	// Name returns the light identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Target returns the point a directional light shines toward.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// Direction returns the normalized direction the light travels, from position toward
	// target. Coincident position and target yield straight down.
	//
	// Returns:
	//   - mgl32.Vec3: the direction
	Direction() mgl32.Vec3

	// Color returns the light color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Radiance returns color times intensity, the value the shader consumes.
	//
	// Returns:
	//   - mgl32.Vec3: RGB radiance
	Radiance() mgl32.Vec3

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the position
	SetPosition(position mgl32.Vec3)

	// SetColor sets the light color.
	//
	// Parameters:
	//   - color: the color
	SetColor(color common.Color)

	// SetIntensity sets the scalar intensity multiplier. Negative values are clamped to 0.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new white, enabled Light of the specified type with intensity 1 and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  mgl32.Vec3{0, 1, 0},
		color:     common.Color{1, 1, 1, 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAmbientLight is shorthand for NewLight(LightTypeAmbient, ...).
func NewAmbientLight(color common.Color, intensity float32, opts ...LightBuilderOption) Light {
	return NewLight(LightTypeAmbient, append([]LightBuilderOption{WithColor(color), WithIntensity(intensity)}, opts...)...)
}

// NewDirectionalLight is shorthand for NewLight(LightTypeDirectional, ...) shining from
// position toward the origin.
func NewDirectionalLight(color common.Color, intensity float32, position mgl32.Vec3, opts ...LightBuilderOption) Light {
	return NewLight(LightTypeDirectional, append([]LightBuilderOption{WithColor(color), WithIntensity(intensity), WithPosition(position)}, opts...)...)
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Radiance() mgl32.Vec3 {
	return mgl32.Vec3(l.color.RGB()).Mul(l.intensity)
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) SetColor(color common.Color) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = max(intensity, 0)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
