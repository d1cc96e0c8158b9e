package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/Carmen-Shannon/haunted-house/engine/frame"
)

// State is the render loop lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrAlreadyRunning is returned by Start when the loop is not idle.
var ErrAlreadyRunning = errors.New("engine: already running")

// Stats counts loop activity since construction.
type Stats struct {
	Iterations uint64
	Failures   uint64
	Panics     uint64
	Resizes    uint64
}

// engine implements the Engine interface.
type engine struct {
	logger *slog.Logger
	host   Host
	ctx    *Context

	state   State
	pending frame.ID

	inFrame       bool
	resizePending bool

	keyHandlers []func(key int) bool

	stats Stats
}

// Engine drives one frame per display refresh: advance the clock, update the controls,
// render the scene, then reschedule.
//
// All methods must be called on the host thread. Host callbacks arrive on that thread while
// ProcessMessages runs, between iterations.
type Engine interface {
	// Context returns the objects the loop drives.
	//
	// Returns:
	//   - *Context: the context passed to NewEngine
	Context() *Context

	// State returns the lifecycle state.
	//
	// Returns:
	//   - State: idle, running or stopping
	State() State

	// Start moves idle to running and runs the first iteration immediately.
	//
	// Returns:
	//   - error: ErrAlreadyRunning if the loop is not idle
	Start() error

	// Stop revokes the pending frame callback and returns to idle. Called from inside an
	// iteration, the loop becomes stopping and goes idle when the iteration returns without
	// rescheduling. Stopping an idle loop does nothing.
	Stop()

	// Run starts the loop if idle and pumps host messages until the host closes or ctx is
	// done, then stops the loop.
	//
	// Parameters:
	//   - ctx: cancels the message pump
	//
	// Returns:
	//   - error: a host error; cancellation of ctx is not an error
	Run(ctx context.Context) error

	// HandleResize re-reads the host size and pixel ratio and applies them to the viewport,
	// camera and renderer. During an iteration the resize is deferred until the render
	// returns.
	HandleResize()

	// Stats returns loop counters.
	//
	// Returns:
	//   - Stats: the counters
	Stats() Stats
}

var _ Engine = &engine{}

// NewEngine binds a render loop to host. Resize and visibility callbacks are registered on
// the host, input callbacks too if it is an InputSource, and the initial size is applied.
//
// Parameters:
//   - host: the display host
//   - ctx: the objects to drive
//   - options: a variadic list of EngineBuilderOption functions
//
// Returns:
//   - Engine: the idle engine
//   - error: ErrInvalidContext if host or a required field is missing
func NewEngine(host Host, ctx *Context, options ...EngineBuilderOption) (Engine, error) {
	if host == nil {
		return nil, errors.Join(ErrInvalidContext, errors.New("nil host"))
	}
	if err := ctx.validate(); err != nil {
		return nil, err
	}

	e := &engine{
		logger: slog.Default(),
		host:   host,
		ctx:    ctx,
		state:  StateIdle,
	}
	for _, opt := range options {
		opt(e)
	}

	host.SetResizeCallback(e.HandleResize)
	host.SetVisibilityCallback(e.handleVisibility)
	if in, ok := host.(InputSource); ok {
		e.bindInput(in)
	}

	e.HandleResize()
	return e, nil
}

func (e *engine) Context() *Context {
	return e.ctx
}

func (e *engine) State() State {
	return e.state
}

func (e *engine) Stats() Stats {
	return e.stats
}

func (e *engine) Start() error {
	if e.state != StateIdle {
		return fmt.Errorf("%w: state is %s", ErrAlreadyRunning, e.state)
	}
	e.state = StateRunning
	e.logger.Debug("render loop started")
	e.iterate()
	return nil
}

func (e *engine) Stop() {
	switch e.state {
	case StateRunning:
		if e.inFrame {
			e.state = StateStopping
			return
		}
		e.cancelPending()
		e.state = StateIdle
		e.logger.Debug("render loop stopped")
	case StateStopping:
		e.cancelPending()
	}
}

func (e *engine) Run(ctx context.Context) error {
	if e.state == StateIdle {
		if err := e.Start(); err != nil {
			return err
		}
	}
	err := e.host.ProcessMessages(ctx)
	e.Stop()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (e *engine) HandleResize() {
	if e.inFrame {
		e.resizePending = true
		return
	}
	e.applyResize()
}

// applyResize runs the resize steps in order: viewport, camera aspect, renderer size, pixel
// density. A non-positive host size keeps the last known size.
func (e *engine) applyResize() {
	e.resizePending = false

	w, h := e.host.Size()
	if !e.ctx.Viewport.Resize(w, h) {
		w, h = e.ctx.Viewport.Size()
	}
	e.ctx.Camera.SetAspect(e.ctx.Viewport.Aspect())
	e.ctx.Renderer.Resize(w, h)
	density := e.ctx.Viewport.SetPixelDensity(e.host.DevicePixelRatio())
	e.ctx.Renderer.SetPixelDensity(density)

	e.stats.Resizes++
	e.logger.Debug("viewport resized", "width", w, "height", h, "density", density)
}

func (e *engine) handleVisibility(visible bool) {
	if visible {
		// The hidden interval is not frame time.
		e.ctx.Clock.Resume()
	}
	e.logger.Debug("visibility changed", "visible", visible)
}

// iterate is the frame callback. It never lets an error or panic end the loop.
func (e *engine) iterate() {
	e.pending = 0
	if e.state != StateRunning {
		return
	}

	if e.resizePending {
		e.applyResize()
	}

	e.inFrame = true
	e.runFrame()
	e.inFrame = false

	if e.resizePending {
		e.applyResize()
	}

	switch e.state {
	case StateStopping:
		e.state = StateIdle
		e.logger.Debug("render loop stopped")
	case StateRunning:
		e.pending = e.host.RequestAnimationFrame(e.iterate)
	}
}

func (e *engine) runFrame() {
	defer func() {
		if r := recover(); r != nil {
			e.stats.Panics++
			e.logger.Error("frame panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	e.stats.Iterations++
	e.ctx.Clock.Advance()
	if e.ctx.Controls != nil {
		e.ctx.Controls.Update()
	}
	if err := e.ctx.Renderer.RenderFrame(e.ctx.Scene, e.ctx.Camera); err != nil {
		e.stats.Failures++
		e.logger.Error("frame failed", "error", err)
	}
	if e.ctx.Profiler != nil {
		e.ctx.Profiler.Tick()
	}
}

func (e *engine) cancelPending() {
	if e.pending != 0 {
		e.host.CancelAnimationFrame(e.pending)
		e.pending = 0
	}
}

func (e *engine) bindInput(in InputSource) {
	if c := e.ctx.Controls; c != nil {
		in.SetPointerDownCallback(c.PointerDown)
		in.SetPointerMoveCallback(c.PointerMove)
		in.SetPointerUpCallback(c.PointerUp)
		in.SetScrollCallback(c.Wheel)
	}
	in.SetKeyDownCallback(e.keyDown)
}

// keyDown offers key to each handler in registration order, then to the controls.
func (e *engine) keyDown(key int) {
	for _, h := range e.keyHandlers {
		if h(key) {
			return
		}
	}
	if e.ctx.Controls != nil {
		e.ctx.Controls.KeyDown(key)
	}
}
