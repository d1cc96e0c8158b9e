package renderer

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
)

// View is the camera state the renderer reads each frame.
type View interface {
	Position() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewProjectionMatrix() mgl32.Mat4
}

// Stats are cumulative render counters.
type Stats struct {
	Frames     uint64
	Configures int
	// Draws and Culled describe the most recent frame.
	Draws  int
	Culled int
}

type renderer struct {
	mu *sync.Mutex

	backend Backend
	logger  *slog.Logger

	width, height int
	density       float32

	configuredWidth  int
	configuredHeight int

	culling bool

	frame Frame
	stats Stats
}

// Renderer is the render surface. It tracks the logical size and pixel density of the
// drawable, reconfigures the backend when the backing size changes, and turns a scene and a
// camera into a Frame for the backend.
type Renderer interface {
	// Resize sets the logical drawable size. Non-positive dimensions are ignored.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	Resize(width, height int)

	// SetPixelDensity sets the backing pixels per logical pixel, capped at
	// viewport.MaxPixelDensity.
	//
	// Parameters:
	//   - density: the device pixel ratio
	SetPixelDensity(density float32)

	// Size returns the logical drawable size.
	//
	// Returns:
	//   - int, int: width and height
	Size() (int, int)

	// PixelDensity returns the effective pixel density.
	//
	// Returns:
	//   - float32: the density
	PixelDensity() float32

	// BackingSize returns the physical size the backend renders at, round(size * density).
	//
	// Returns:
	//   - int, int: width and height in physical pixels
	BackingSize() (int, int)

	// RenderFrame draws the visible scene from the camera. The backend is reconfigured first
	// if the backing size changed since the last configuration. A zero-area surface draws
	// nothing.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: error if configuration or drawing failed
	RenderFrame(s scene.Scene, cam View) error

	// Stats returns the render counters.
	//
	// Returns:
	//   - Stats: a copy of the counters
	Stats() Stats

	// Release frees the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing through backend.
//
// Parameters:
//   - backend: the graphics backend
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(backend Backend, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:      &sync.Mutex{},
		backend: backend,
		logger:  slog.Default(),
		density: 1,
		culling: true,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
}

func (r *renderer) SetPixelDensity(density float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.density = viewport.ClampPixelDensity(density)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) PixelDensity() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.density
}

func (r *renderer) BackingSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backingSize()
}

func (r *renderer) RenderFrame(s scene.Scene, cam View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.backingSize()
	if w <= 0 || h <= 0 {
		return nil
	}

	if w != r.configuredWidth || h != r.configuredHeight {
		if err := r.backend.Configure(w, h); err != nil {
			return fmt.Errorf("failed to configure surface at %dx%d: %w", w, h, err)
		}
		r.configuredWidth, r.configuredHeight = w, h
		r.stats.Configures++
		r.logger.Debug("surface configured", "width", w, "height", h, "density", r.density)
	}

	r.build(s, cam, w, h)

	if err := r.backend.Draw(&r.frame); err != nil {
		return fmt.Errorf("failed to draw frame %d: %w", r.stats.Frames, err)
	}

	r.stats.Frames++
	r.stats.Draws = len(r.frame.Draws)
	r.stats.Culled = r.frame.Culled
	return nil
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend != nil {
		r.backend.Release()
	}
}

func (r *renderer) backingSize() (int, int) {
	w := int(math.Round(float64(float32(r.width) * r.density)))
	h := int(math.Round(float64(float32(r.height) * r.density)))
	return w, h
}

// build fills r.frame from the scene and camera.
func (r *renderer) build(s scene.Scene, cam View, w, h int) {
	f := &r.frame
	f.reset()

	f.Width, f.Height = w, h
	f.Clear = s.Background()
	f.View = cam.ViewMatrix()
	f.Projection = cam.ProjectionMatrix()
	f.ViewProjection = cam.ViewProjectionMatrix()
	f.CameraPosition = cam.Position()

	for _, l := range s.Lights() {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case light.LightTypeAmbient:
			f.Ambient = f.Ambient.Add(l.Radiance())
		case light.LightTypeDirectional:
			if len(f.Lights) == light.MaxDirectionalLights {
				continue
			}
			f.Lights = append(f.Lights, DirectionalLight{
				Direction: l.Direction(),
				Radiance:  l.Radiance(),
			})
		}
	}

	var frustum common.Frustum
	if r.culling {
		frustum = common.ExtractFrustum(f.ViewProjection)
	}

	for _, item := range s.DrawList() {
		mesh := item.Node.Mesh()
		if r.culling {
			center := item.World.Col(3).Vec3()
			radius := mesh.BoundingRadius() * maxScale(item.World)
			if !frustum.SphereVisible(center, radius) {
				f.Culled++
				continue
			}
		}
		f.Draws = append(f.Draws, DrawCommand{
			NodeID:   item.Node.ID(),
			Mesh:     mesh,
			Material: item.Node.Material(),
			Model:    item.World,
			Normal:   common.NormalMatrix(item.World),
		})
	}
}
