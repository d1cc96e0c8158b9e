package gpu

import (
	"fmt"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/gpu/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshBuffers are the uploaded vertex and index data of one mesh.
type meshBuffers struct {
	vertex *wgpu.Buffer
	index  *wgpu.Buffer
	count  uint32
}

func (m *meshBuffers) release() {
	if m.vertex != nil {
		m.vertex.Release()
	}
	if m.index != nil {
		m.index.Release()
	}
}

// objectBinding is the uniform buffer and bind group of one scene node.
type objectBinding struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	texture   *textureBinding
}

func (o *objectBinding) release() {
	if o.bindGroup != nil {
		o.bindGroup.Release()
	}
	if o.buffer != nil {
		o.buffer.Release()
	}
}

// textureBinding is an uploaded RGBA8 texture.
type textureBinding struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (t *textureBinding) release() {
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// initShared creates the resources that do not depend on the surface: bind group layouts, the
// frame uniform buffer and bind group, the sampler and the 1x1 white texture bound when a
// material has no map.
func (b *backendImpl) initShared() error {
	var err error
	if b.frameLayout, err = b.device.CreateBindGroupLayout(&frameLayoutDescriptor); err != nil {
		return fmt.Errorf("failed to create bind group layout for group 0: %w", err)
	}
	if b.objectLayout, err = b.device.CreateBindGroupLayout(&objectLayoutDescriptor); err != nil {
		return fmt.Errorf("failed to create bind group layout for group 1: %w", err)
	}

	b.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uniform.FrameSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.frameBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Base Map Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}

	b.white, err = b.uploadTexture("White", common.TextureStagingData{
		Pixels: []byte{0xff, 0xff, 0xff, 0xff},
		Width:  1,
		Height: 1,
	})
	return err
}

// meshBuffers returns the GPU buffers of mesh, uploading it on first use.
func (b *backendImpl) meshBuffers(mesh geometry.Mesh) (*meshBuffers, error) {
	if mb, ok := b.meshes[mesh]; ok {
		return mb, nil
	}

	mb := &meshBuffers{count: uint32(mesh.IndexCount())}
	if mb.count > 0 {
		vertexData := mesh.VertexData()
		vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: mesh.Name() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", mesh.Name(), err)
		}
		b.queue.WriteBuffer(vertex, 0, vertexData)
		mb.vertex = vertex

		indexData := mesh.IndexData()
		index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: mesh.Name() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			mb.release()
			return nil, fmt.Errorf("failed to create index buffer for %s: %w", mesh.Name(), err)
		}
		b.queue.WriteBuffer(index, 0, indexData)
		mb.index = index
	}

	b.meshes[mesh] = mb
	return mb, nil
}

// objectBinding returns the bind group of the draw's node. The bind group is rebuilt when the
// material's texture changes.
func (b *backendImpl) objectBinding(d *renderer.DrawCommand) (*objectBinding, error) {
	tex, err := b.materialTexture(d)
	if err != nil {
		return nil, err
	}

	ob, ok := b.objects[d.NodeID]
	if ok && ob.texture == tex {
		return ob, nil
	}
	if !ok {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Object %d Uniform Buffer", d.NodeID),
			Size:  uniform.ObjectSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		ob = &objectBinding{buffer: buf}
		b.objects[d.NodeID] = ob
	}
	if ob.bindGroup != nil {
		ob.bindGroup.Release()
		ob.bindGroup = nil
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  fmt.Sprintf("Object %d Bind Group", d.NodeID),
		Layout: b.objectLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: ob.buffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: tex.view},
			{Binding: 2, Sampler: b.sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	ob.bindGroup = bindGroup
	ob.texture = tex
	return ob, nil
}

// materialTexture returns the uploaded base map of the draw's material, or the white texture.
func (b *backendImpl) materialTexture(d *renderer.DrawCommand) (*textureBinding, error) {
	t := d.Material.Texture()
	if t == nil || !t.Data.Valid() {
		return b.white, nil
	}
	if tb, ok := b.textures[t]; ok {
		return tb, nil
	}
	tb, err := b.uploadTexture(t.Path, t.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload texture %s: %w", t.Path, err)
	}
	b.textures[t] = tb
	return tb, nil
}

func (b *backendImpl) uploadTexture(label string, data common.TextureStagingData) (*textureBinding, error) {
	size := wgpu.Extent3D{Width: data.Width, Height: data.Height, DepthOrArrayLayers: 1}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &textureBinding{texture: tex, view: view}, nil
}
