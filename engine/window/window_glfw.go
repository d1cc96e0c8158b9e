package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// idleWaitSeconds bounds how long the pump blocks for events while no frame is pending, so
// context cancellation is noticed promptly.
const idleWaitSeconds = 0.1

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window, registers the input and window callbacks and
// stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))

	gw := &glfwWindow{
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		if action == glfw.Release {
			return
		}
		if w.onKeyDown != nil {
			w.onKeyDown(int(key))
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			if w.onPointerDown != nil {
				x, y := win.GetCursorPos()
				w.onPointerDown(mouseButton(button), float32(x), float32(y))
			}
		case glfw.Release:
			if w.onPointerUp != nil {
				w.onPointerUp(mouseButton(button))
			}
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.onPointerMove != nil {
			w.onPointerMove(float32(x), float32(y))
		}
	})

	// Window size, framebuffer size and content scale can each change without the others, for
	// example when the window is dragged to a monitor with a different scale.
	notify := func() {
		width, height := win.GetSize()
		fbWidth, fbHeight := win.GetFramebufferSize()
		w.resized(width, height, fbWidth, fbHeight)
	}
	win.SetSizeCallback(func(_ *glfw.Window, _, _ int) { notify() })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) { notify() })
	win.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) { notify() })

	win.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		w.setVisible(!iconified && platformIsVisible(w))
	})

	w.width, w.height = win.GetSize()
	w.fbWidth, w.fbHeight = win.GetFramebufferSize()
	w.setVisible(platformIsVisible(w))

	return nil
}

// sizeLimit maps a non-positive limit to glfw.DontCare.
func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// mouseButton maps a GLFW button to the common mouse button codes.
func mouseButton(b glfw.MouseButton) int {
	switch b {
	case glfw.MouseButtonLeft:
		return common.MouseButtonLeft
	case glfw.MouseButtonRight:
		return common.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return common.MouseButtonMiddle
	}
	return int(b)
}

// platformIsVisible reports whether the window is shown, not iconified and has a drawable
// framebuffer.
func platformIsVisible(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	if gw.window.GetAttrib(glfw.Iconified) == glfw.True {
		return false
	}
	if gw.window.GetAttrib(glfw.Visible) == glfw.False {
		return false
	}
	fbWidth, fbHeight := gw.window.GetFramebufferSize()
	return fbWidth > 0 && fbHeight > 0
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the
// GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages handles pending GLFW events. When idle it blocks until an event
// arrives or idleWaitSeconds elapse instead of spinning.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEventsTimeout
func platformProcessMessages(w *engineWindow, idle bool) bool {
	if idle {
		glfw.WaitEventsTimeout(idleWaitSeconds)
	} else {
		glfw.PollEvents()
	}
	return platformIsRunningCheck(w)
}
