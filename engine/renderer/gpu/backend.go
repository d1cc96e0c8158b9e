// Package gpu implements renderer.Backend on WebGPU.
package gpu

import (
	_ "embed"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/material"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/gpu/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed lit.wgsl
var litShaderSource string

// backendImpl is the WebGPU implementation of renderer.Backend.
type backendImpl struct {
	mu     *sync.Mutex
	logger *slog.Logger

	forceFallbackAdapter bool
	presentMode          wgpu.PresentMode
	sampleCount          renderer.MSAASampleCount

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	configured    bool

	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	renderPassDescriptor *wgpu.RenderPassDescriptor

	frameLayout  *wgpu.BindGroupLayout
	objectLayout *wgpu.BindGroupLayout
	pipelines    pipelineSet

	frameBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	sampler        *wgpu.Sampler
	white          *textureBinding

	meshes   map[geometry.Mesh]*meshBuffers
	objects  map[uint64]*objectBinding
	textures map[*material.Texture]*textureBinding

	frameScratch  []byte
	objectScratch []byte
}

var _ renderer.Backend = &backendImpl{}

// NewBackend creates a WebGPU device for the window surface described by descriptor. The
// calling goroutine is locked to its OS thread, which must be the thread that owns the window.
// Configure must be called before the first Draw.
//
// Parameters:
//   - descriptor: the platform surface descriptor of the window
//   - options: a variadic list of BackendBuilderOption functions
//
// Returns:
//   - renderer.Backend: the backend
//   - error: an error wrapping renderer.ErrSurfaceUnavailable if no adapter, device or surface
//     can be acquired
func NewBackend(descriptor *wgpu.SurfaceDescriptor, options ...BackendBuilderOption) (renderer.Backend, error) {
	runtime.LockOSThread()

	b := &backendImpl{
		mu:            &sync.Mutex{},
		logger:        slog.Default(),
		presentMode:   wgpu.PresentModeFifo,
		sampleCount:   renderer.MSAA4x,
		meshes:        make(map[geometry.Mesh]*meshBuffers),
		objects:       make(map[uint64]*objectBinding),
		textures:      make(map[*material.Texture]*textureBinding),
		frameScratch:  make([]byte, uniform.FrameSize),
		objectScratch: make([]byte, uniform.ObjectSize),
	}
	for _, option := range options {
		option(b)
	}

	if descriptor == nil {
		return nil, fmt.Errorf("%w: window has no surface descriptor", renderer.ErrSurfaceUnavailable)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(descriptor)
	if b.surface == nil {
		b.Release()
		return nil, fmt.Errorf("%w: failed to create surface", renderer.ErrSurfaceUnavailable)
	}

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: no compatible adapter: %v", renderer.ErrSurfaceUnavailable, err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Haunted House Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: failed to create device: %v", renderer.ErrSurfaceUnavailable, err)
	}
	b.device = device
	b.queue = device.GetQueue()

	if err := b.initShared(); err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: %v", renderer.ErrSurfaceUnavailable, err)
	}

	b.logger.Info("webgpu device ready", "msaa", uint32(b.sampleCount))
	return b, nil
}

func (b *backendImpl) Configure(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid surface size %dx%d", renderer.ErrSurfaceUnavailable, width, height)
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return fmt.Errorf("%w: surface reports no formats", renderer.ErrSurfaceUnavailable)
	}
	format := capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()
	if err := b.createAttachments(format, width, height); err != nil {
		return fmt.Errorf("%w: %v", renderer.ErrSurfaceUnavailable, err)
	}

	if !b.configured || format != b.surfaceFormat {
		b.pipelines.release()
		pipelines, err := b.createPipelines(format)
		if err != nil {
			return fmt.Errorf("%w: %v", renderer.ErrSurfaceUnavailable, err)
		}
		b.pipelines = pipelines
	}
	b.surfaceFormat = format
	b.configured = true
	return nil
}

func (b *backendImpl) Draw(frame *renderer.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return fmt.Errorf("%w: draw before configure", renderer.ErrSurfaceUnavailable)
	}

	b.queue.WriteBuffer(b.frameBuffer, 0, uniform.PackFrame(b.frameScratch, frame))

	// Uploads happen before the pass begins so the pass only records draws.
	bindings := make([]*objectBinding, len(frame.Draws))
	buffers := make([]*meshBuffers, len(frame.Draws))
	for i := range frame.Draws {
		d := &frame.Draws[i]
		mb, err := b.meshBuffers(d.Mesh)
		if err != nil {
			return err
		}
		ob, err := b.objectBinding(d)
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(ob.buffer, 0, uniform.PackObject(b.objectScratch, d))
		buffers[i], bindings[i] = mb, ob
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// With MSAA the multisampled texture is the attachment and the swapchain view receives the
	// resolve; without it the swapchain view is drawn to directly.
	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(frame.Clear[0]),
		G: float64(frame.Clear[1]),
		B: float64(frame.Clear[2]),
		A: float64(frame.Clear[3]),
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.frameBindGroup, nil)
	for i, d := range frame.Draws {
		mb := buffers[i]
		if mb.count == 0 {
			continue
		}
		pass.SetPipeline(b.pipelines.forTopology(d.Mesh.Topology()))
		pass.SetBindGroup(1, bindings[i].bindGroup, nil)
		pass.SetVertexBuffer(0, mb.vertex, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mb.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mb.count, 1, 0, 0, 0)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *backendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ob := range b.objects {
		ob.release()
	}
	b.objects = make(map[uint64]*objectBinding)
	for _, mb := range b.meshes {
		mb.release()
	}
	b.meshes = make(map[geometry.Mesh]*meshBuffers)
	for _, tb := range b.textures {
		tb.release()
	}
	b.textures = make(map[*material.Texture]*textureBinding)

	b.releaseAttachments()
	b.pipelines.release()
	b.pipelines = pipelineSet{}

	if b.white != nil {
		b.white.release()
		b.white = nil
	}
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
	if b.frameBuffer != nil {
		b.frameBuffer.Release()
		b.frameBuffer = nil
	}
	if b.objectLayout != nil {
		b.objectLayout.Release()
		b.objectLayout = nil
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
		b.frameLayout = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.configured = false
}

// createAttachments builds the depth texture, the MSAA color texture when enabled, and the
// cached render pass descriptor that references them.
func (b *backendImpl) createAttachments(format wgpu.TextureFormat, width, height int) error {
	count := uint32(b.sampleCount)
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if count > 1 {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        format,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return err
		}
	}

	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	b.depthTexture = depth
	if b.depthTextureView, err = depth.CreateView(nil); err != nil {
		return err
	}

	storeOp := wgpu.StoreOpStore
	if count > 1 {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *backendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
	b.renderPassDescriptor = nil
}
