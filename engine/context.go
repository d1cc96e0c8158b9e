package engine

import (
	"context"
	"errors"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/clock"
	"github.com/Carmen-Shannon/haunted-house/engine/frame"
	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
)

// ErrInvalidContext is returned by NewEngine when a required Context field is missing.
var ErrInvalidContext = errors.New("engine: invalid context")

// Context is everything one render loop reads and mutates. The engine owns no other state,
// so tests can build a Context out of fakes.
type Context struct {
	Viewport *viewport.Viewport
	Camera   camera.Camera
	Renderer renderer.Renderer
	Scene    scene.Scene
	Clock    clock.Clock

	// Controls is optional; without it the camera stays where it was placed.
	Controls camera.OrbitController

	// Profiler is optional.
	Profiler *profiler.Profiler
}

func (c *Context) validate() error {
	switch {
	case c == nil:
		return errors.Join(ErrInvalidContext, errors.New("nil context"))
	case c.Viewport == nil:
		return errors.Join(ErrInvalidContext, errors.New("missing viewport"))
	case c.Camera == nil:
		return errors.Join(ErrInvalidContext, errors.New("missing camera"))
	case c.Renderer == nil:
		return errors.Join(ErrInvalidContext, errors.New("missing renderer"))
	case c.Scene == nil:
		return errors.Join(ErrInvalidContext, errors.New("missing scene"))
	case c.Clock == nil:
		return errors.Join(ErrInvalidContext, errors.New("missing clock"))
	}
	return nil
}

// Host is the display the loop renders into. window.Window satisfies it.
type Host interface {
	Size() (int, int)
	DevicePixelRatio() float32
	IsVisible() bool
	RequestAnimationFrame(fn func()) frame.ID
	CancelAnimationFrame(id frame.ID)
	SetResizeCallback(callback func())
	SetVisibilityCallback(callback func(visible bool))
	ProcessMessages(ctx context.Context) error
}

// InputSource is implemented by hosts that deliver pointer and keyboard input. When the host
// implements it, the engine routes input to the orbit controls and key handlers.
type InputSource interface {
	SetPointerDownCallback(callback func(button int, x, y float32))
	SetPointerMoveCallback(callback func(x, y float32))
	SetPointerUpCallback(callback func(button int))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(key int))
}
