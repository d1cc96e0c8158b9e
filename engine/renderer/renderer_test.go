package renderer_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	configures [][2]int
	frames     []renderer.Frame
	drawErr    error
	configErr  error
	released   bool
}

func (b *fakeBackend) Configure(width, height int) error {
	if b.configErr != nil {
		return b.configErr
	}
	b.configures = append(b.configures, [2]int{width, height})
	return nil
}

func (b *fakeBackend) Draw(frame *renderer.Frame) error {
	if b.drawErr != nil {
		return b.drawErr
	}
	f := *frame
	f.Draws = append([]renderer.DrawCommand(nil), frame.Draws...)
	f.Lights = append([]renderer.DirectionalLight(nil), frame.Lights...)
	b.frames = append(b.frames, f)
	return nil
}

func (b *fakeBackend) Release() {
	b.released = true
}

func testScene(t *testing.T) scene.Scene {
	t.Helper()
	white := common.Color{1, 1, 1, 1}
	s := scene.NewScene("test",
		scene.WithBackground(common.Color{0.1, 0.1, 0.1, 1}),
		scene.WithLights(
			light.NewAmbientLight(white, 0.5),
			light.NewDirectionalLight(white, 1.5, mgl32.Vec3{3, 2, -8}),
			light.NewDirectionalLight(white, 1, mgl32.Vec3{1, 1, 1}, light.WithEnabled(false)),
		),
	)
	require.NoError(t, s.Add(
		scene.NewNode(scene.WithName("front"), scene.WithMesh(geometry.Box(1, 1, 1), nil)),
		scene.NewNode(scene.WithName("behind"), scene.WithMesh(geometry.Box(1, 1, 1), nil), scene.WithPosition(mgl32.Vec3{0, 0, 20})),
	))
	return s
}

func TestResizeIdempotence(t *testing.T) {
	Convey("Given a renderer at 800x600 with a pixel density of 2", t, func() {
		backend := &fakeBackend{}
		r := renderer.NewRenderer(backend, renderer.WithFrustumCulling(false))
		cam := camera.NewCamera()
		s := testScene(t)

		r.Resize(800, 600)
		r.SetPixelDensity(2)
		So(r.RenderFrame(s, cam), ShouldBeNil)

		Convey("The backend is configured once at the backing size", func() {
			So(backend.configures, ShouldResemble, [][2]int{{1600, 1200}})
		})

		Convey("Repeating the same resize does not reconfigure", func() {
			r.Resize(800, 600)
			r.SetPixelDensity(2)
			So(r.RenderFrame(s, cam), ShouldBeNil)
			r.Resize(800, 600)
			r.SetPixelDensity(3)
			So(r.RenderFrame(s, cam), ShouldBeNil)

			So(len(backend.configures), ShouldEqual, 1)
			So(r.Stats().Configures, ShouldEqual, 1)
			So(r.Stats().Frames, ShouldEqual, uint64(3))
		})

		Convey("A different size reconfigures on the next frame", func() {
			r.Resize(1024, 768)
			So(len(backend.configures), ShouldEqual, 1)
			So(r.RenderFrame(s, cam), ShouldBeNil)
			So(backend.configures[1], ShouldResemble, [2]int{2048, 1536})
		})
	})
}

func TestPixelDensityIsCapped(t *testing.T) {
	r := renderer.NewRenderer(&fakeBackend{}, renderer.WithSize(800, 600))

	r.SetPixelDensity(3)
	assert.Equal(t, float32(2), r.PixelDensity())
	w, h := r.BackingSize()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	r.SetPixelDensity(1.25)
	w, h = r.BackingSize()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 750, h)
}

func TestResizeIgnoresNonPositive(t *testing.T) {
	r := renderer.NewRenderer(&fakeBackend{}, renderer.WithSize(640, 480))
	r.Resize(0, 100)
	r.Resize(100, -1)

	w, h := r.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestZeroSizeDrawsNothing(t *testing.T) {
	backend := &fakeBackend{}
	r := renderer.NewRenderer(backend)

	require.NoError(t, r.RenderFrame(testScene(t), camera.NewCamera()))
	assert.Empty(t, backend.configures)
	assert.Empty(t, backend.frames)
}

func TestRenderFrameContents(t *testing.T) {
	backend := &fakeBackend{}
	r := renderer.NewRenderer(backend, renderer.WithSize(800, 600))
	cam := camera.NewCamera(camera.WithAspect(800.0 / 600.0))

	require.NoError(t, r.RenderFrame(testScene(t), cam))
	require.Len(t, backend.frames, 1)
	f := backend.frames[0]

	assert.Equal(t, 800, f.Width)
	assert.Equal(t, 600, f.Height)
	assert.Equal(t, common.Color{0.1, 0.1, 0.1, 1}, f.Clear)
	assert.Equal(t, cam.ViewProjectionMatrix(), f.ViewProjection)
	assert.Equal(t, cam.Position(), f.CameraPosition)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, f.Ambient)

	require.Len(t, f.Lights, 1)
	assert.Equal(t, mgl32.Vec3{1.5, 1.5, 1.5}, f.Lights[0].Radiance)

	// The camera at z=5 looks toward -Z, so the box at z=20 is behind it.
	require.Len(t, f.Draws, 1)
	assert.Equal(t, 1, f.Culled)
	assert.Equal(t, mgl32.Ident4(), f.Draws[0].Model)
	assert.Equal(t, 1, r.Stats().Draws)
	assert.Equal(t, 1, r.Stats().Culled)
}

func TestRenderFrameErrors(t *testing.T) {
	surfaceErr := errors.New("lost")
	backend := &fakeBackend{configErr: surfaceErr}
	r := renderer.NewRenderer(backend, renderer.WithSize(10, 10))

	err := r.RenderFrame(testScene(t), camera.NewCamera())
	assert.ErrorIs(t, err, surfaceErr)
	assert.Equal(t, 0, r.Stats().Configures)

	backend.configErr = nil
	backend.drawErr = errors.New("draw")
	err = r.RenderFrame(testScene(t), camera.NewCamera())
	assert.ErrorIs(t, err, backend.drawErr)
	assert.Equal(t, uint64(0), r.Stats().Frames)

	r.Release()
	assert.True(t, backend.released)
}
