// Command hauntedhouse opens a window and renders the haunted house scene with orbit controls.
//
// Usage:
//
//	hauntedhouse [-config path] [-debug]
//
// Esc closes the window. With -debug, H toggles the axes helper and D toggles orbit damping.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/haunted-house/engine"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/clock"
	"github.com/Carmen-Shannon/haunted-house/engine/config"
	"github.com/Carmen-Shannon/haunted-house/engine/debug"
	"github.com/Carmen-Shannon/haunted-house/engine/loader"
	"github.com/Carmen-Shannon/haunted-house/engine/logging"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/gpu"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/Carmen-Shannon/haunted-house/engine/window"
	"github.com/Carmen-Shannon/haunted-house/hauntedhouse"
	"github.com/go-gl/mathgl/mgl32"
)

// GLFW and the GPU device must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	debugMode := flag.Bool("debug", false, "enable debug key bindings and debug logging")
	flag.Parse()

	if err := run(*configPath, *debugMode); err != nil {
		slog.Error("haunted house exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, debugMode bool) error {
	// ── Configuration + Logging ─────────────────────────────────────
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Debug = cfg.Debug || debugMode
	if cfg.Debug {
		cfg.Log.Level = "debug"
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level, cfg.Log.Format)
	slog.SetDefault(logger)

	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", renderer.ErrSurfaceUnavailable, err)
	}
	defer win.Close()

	// ── GPU backend ─────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAA4x
	if !cfg.Renderer.MSAA {
		msaa = renderer.MSAAOff
	}
	backend, err := gpu.NewBackend(win.SurfaceDescriptor(),
		gpu.WithLogger(logger),
		gpu.WithPresentMode(presentMode),
		gpu.WithMSAA(msaa),
	)
	if err != nil {
		return err
	}

	w, h := win.Size()
	vp := viewport.New(w, h)
	rend := renderer.NewRenderer(backend,
		renderer.WithLogger(logger),
		renderer.WithSize(w, h),
		renderer.WithFrustumCulling(cfg.Renderer.FrustumCulling),
	)
	defer rend.Release()

	// ── Scene ───────────────────────────────────────────────────────
	placements := make([]loader.Placement, 0, len(cfg.Props))
	for _, p := range cfg.Props {
		placements = append(placements, loader.Placement{
			Path:     p.Path,
			Position: mgl32.Vec3(p.Position),
			Rotation: mgl32.Vec3(p.Rotation),
			Scale:    mgl32.Vec3(p.Scale),
		})
	}
	props := loader.NewLoader(loader.WithLogger(logger)).Place(placements...)

	world, err := hauntedhouse.Build(
		hauntedhouse.WithLogger(logger),
		hauntedhouse.WithAspect(vp.Aspect()),
		hauntedhouse.WithTextures(cfg.Textures),
		hauntedhouse.WithProps(props...),
	)
	if err != nil {
		return err
	}

	// Failed textures are already replaced by placeholders.
	if err := material.NewTextureLoader(material.WithLogger(logger)).Load(world.Materials...); err != nil {
		logger.Warn("some textures failed to load", "error", err)
	}

	// ── Controls + Clock ────────────────────────────────────────────
	controlOptions := []camera.OrbitControllerOption{camera.WithElement(vp)}
	if cfg.Controls.Damping {
		controlOptions = append(controlOptions, camera.WithDamping(cfg.Controls.DampingFactor))
	}
	if cfg.Controls.AutoRotate {
		controlOptions = append(controlOptions, camera.WithAutoRotate(cfg.Controls.AutoRotateSpeed))
	}
	controls := camera.NewOrbitController(world.Camera, controlOptions...)

	ctx := &engine.Context{
		Viewport: vp,
		Camera:   world.Camera,
		Controls: controls,
		Renderer: rend,
		Scene:    world.Scene,
		Clock: clock.NewClock(
			clock.WithMaxDelta(cfg.Clock.MaxDelta),
			clock.WithTimescale(cfg.Clock.Timescale),
		),
	}
	if cfg.Profiler.Enabled {
		ctx.Profiler = profiler.NewProfiler(
			profiler.WithLogger(logger),
			profiler.WithInterval(cfg.Profiler.Interval),
		)
	}

	// ── Engine ──────────────────────────────────────────────────────
	engineOptions := []engine.EngineBuilderOption{engine.WithLogger(logger)}
	if cfg.Debug {
		disp := debug.NewDispatcher(debug.WithLogger(logger))
		debug.Register(disp, world.Scene, controls)
		bindings := debug.DefaultBindings(disp, hauntedhouse.NameAxes, controls)
		engineOptions = append(engineOptions, engine.WithKeyHandler(bindings.KeyDown))
	}

	eng, err := engine.NewEngine(win, ctx, engineOptions...)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("haunted house running", "width", w, "height", h, "nodes", world.Scene.Count(), "debug", cfg.Debug)
	if err := eng.Run(sigCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("haunted house stopped", "frames", eng.Stats().Iterations, "failures", eng.Stats().Failures)
	return nil
}
