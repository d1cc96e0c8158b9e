package window

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/haunted-house/engine/frame"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the display host: a native window with a WebGPU-capable surface, input and
// visibility notifications, and display-synchronized frame callbacks.
//
// Sizes are logical window coordinates. The device pixel ratio converts them to framebuffer
// pixels.
type Window interface {
	// Size returns the logical window size.
	//
	// Returns:
	//   - int, int: width and height
	Size() (int, int)

	// DevicePixelRatio returns framebuffer pixels per logical pixel.
	//
	// Returns:
	//   - float32: the ratio, 1 if unknown
	DevicePixelRatio() float32

	// IsVisible reports whether the window is shown and not minimized.
	//
	// Returns:
	//   - bool: true if frames are being delivered
	IsVisible() bool

	// RequestAnimationFrame runs fn on the next refresh while the window is visible.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - frame.ID: handle for CancelAnimationFrame
	RequestAnimationFrame(fn func()) frame.ID

	// CancelAnimationFrame revokes a pending callback.
	//
	// Parameters:
	//   - id: the handle returned by RequestAnimationFrame
	CancelAnimationFrame(id frame.ID)

	// SetResizeCallback registers the handler for size and content-scale changes.
	//
	// Parameters:
	//   - callback: the handler
	SetResizeCallback(callback func())

	// SetVisibilityCallback registers the handler for minimize and restore.
	//
	// Parameters:
	//   - callback: the handler, passed the new visibility
	SetVisibilityCallback(callback func(visible bool))

	// SetPointerDownCallback registers the mouse button press handler.
	//
	// Parameters:
	//   - callback: the handler, passed the button and cursor position
	SetPointerDownCallback(callback func(button int, x, y float32))

	// SetPointerMoveCallback registers the cursor movement handler.
	//
	// Parameters:
	//   - callback: the handler, passed the cursor position
	SetPointerMoveCallback(callback func(x, y float32))

	// SetPointerUpCallback registers the mouse button release handler.
	//
	// Parameters:
	//   - callback: the handler, passed the button
	SetPointerUpCallback(callback func(button int))

	// SetScrollCallback registers the vertical scroll handler.
	//
	// Parameters:
	//   - callback: the handler, passed the scroll delta in notches
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback registers the key press and repeat handler.
	//
	// Parameters:
	//   - callback: the handler, passed the GLFW key code
	SetKeyDownCallback(callback func(key int))

	// SurfaceDescriptor returns the platform surface descriptor for the GPU backend.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true if open
	IsRunning() bool

	// ProcessMessages pumps window events and runs frame callbacks until the window closes or
	// ctx is done. It must be called on the thread that created the window.
	//
	// Parameters:
	//   - ctx: cancels the pump
	//
	// Returns:
	//   - error: ctx.Err() if cancelled, nil if the window closed
	ProcessMessages(ctx context.Context) error

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window is not initialized
	Close() error
}

type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int

	fbWidth  int
	fbHeight int

	visible bool

	scheduler frame.Scheduler

	internalWindow any

	onResize      func()
	onVisibility  func(visible bool)
	onPointerDown func(button int, x, y float32)
	onPointerMove func(x, y float32)
	onPointerUp   func(button int)
	onScroll      func(delta float32)
	onKeyDown     func(key int)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a platform window with the given options applied.
//
// Parameters:
//   - options: a variadic list of WindowBuilderOption functions
//
// Returns:
//   - Window: the new window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Haunted House",
		maxWidth:  -1,
		maxHeight: -1,
		minWidth:  200,
		minHeight: 150,
		width:     1280,
		height:    720,
		visible:   true,
		scheduler: frame.NewScheduler(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) DevicePixelRatio() float32 {
	return devicePixelRatio(w.fbWidth, w.width)
}

func (w *engineWindow) IsVisible() bool {
	return w.visible
}

func (w *engineWindow) RequestAnimationFrame(fn func()) frame.ID {
	return w.scheduler.Request(fn)
}

func (w *engineWindow) CancelAnimationFrame(id frame.ID) {
	w.scheduler.Cancel(id)
}

func (w *engineWindow) SetResizeCallback(callback func()) {
	w.onResize = callback
}

func (w *engineWindow) SetVisibilityCallback(callback func(visible bool)) {
	w.onVisibility = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(button int, x, y float32)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float32)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(button int)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages(ctx context.Context) error {
	for w.IsRunning() {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Block for events when there is nothing to draw; otherwise the present in the frame
		// callback paces the loop to the display refresh.
		idle := !w.visible || w.scheduler.Pending() == 0
		if !platformProcessMessages(w, idle) {
			break
		}

		w.scheduler.Flush()
	}
	return nil
}

// setVisible records a visibility change and notifies the handler.
func (w *engineWindow) setVisible(visible bool) {
	if w.visible == visible {
		return
	}
	w.visible = visible
	w.scheduler.SetVisible(visible)
	if w.onVisibility != nil {
		w.onVisibility(visible)
	}
}

// resized records the new logical and framebuffer sizes and notifies the handler.
func (w *engineWindow) resized(width, height, fbWidth, fbHeight int) {
	w.width, w.height = width, height
	w.fbWidth, w.fbHeight = fbWidth, fbHeight
	w.setVisible(platformIsVisible(w))
	if w.onResize != nil {
		w.onResize()
	}
}

// devicePixelRatio divides framebuffer width by window width. GLFW reports window sizes in
// screen coordinates, which are points on macOS and pixels elsewhere, so the ratio is the
// framebuffer scale on every platform.
func devicePixelRatio(fbWidth, width int) float32 {
	if width <= 0 || fbWidth <= 0 {
		return 1
	}
	return float32(fbWidth) / float32(width)
}
