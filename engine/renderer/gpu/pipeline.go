package gpu

import (
	"fmt"

	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/gpu/uniform"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipelineSet holds the lit pipeline in both primitive topologies the scene uses.
type pipelineSet struct {
	shader    *wgpu.ShaderModule
	layout    *wgpu.PipelineLayout
	triangles *wgpu.RenderPipeline
	lines     *wgpu.RenderPipeline
}

func (p pipelineSet) forTopology(t geometry.Topology) *wgpu.RenderPipeline {
	if t == geometry.Lines {
		return p.lines
	}
	return p.triangles
}

func (p pipelineSet) release() {
	if p.triangles != nil {
		p.triangles.Release()
	}
	if p.lines != nil {
		p.lines.Release()
	}
	if p.layout != nil {
		p.layout.Release()
	}
	if p.shader != nil {
		p.shader.Release()
	}
}

// vertexLayout matches geometry.Vertex.
var vertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: geometry.VertexSize,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
	},
}

// frameLayoutDescriptor is bind group 0: the per-frame uniform block.
var frameLayoutDescriptor = wgpu.BindGroupLayoutDescriptor{
	Label: "Frame Bind Group Layout",
	Entries: []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uniform.FrameSize,
			},
		},
	},
}

// objectLayoutDescriptor is bind group 1: the per-draw uniform block and base color map.
var objectLayoutDescriptor = wgpu.BindGroupLayoutDescriptor{
	Label: "Object Bind Group Layout",
	Entries: []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uniform.ObjectSize,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    2,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	},
}

// createPipelines compiles the lit shader and builds the triangle and line pipelines for the
// surface format. The bind group layouts are created once by initShared.
func (b *backendImpl) createPipelines(format wgpu.TextureFormat) (pipelineSet, error) {
	var set pipelineSet

	code, err := shader.NewPreProcessor().Process(litShaderSource)
	if err != nil {
		return set, fmt.Errorf("failed to pre-process lit shader: %w", err)
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "lit.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: code,
		},
	})
	if err != nil {
		return set, fmt.Errorf("failed to compile lit shader: %w", err)
	}
	set.shader = module

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Lit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.objectLayout},
	})
	if err != nil {
		set.release()
		return pipelineSet{}, err
	}
	set.layout = layout

	if set.triangles, err = b.createRenderPipeline(set, format, wgpu.PrimitiveTopologyTriangleList, "Lit Triangles"); err != nil {
		set.release()
		return pipelineSet{}, err
	}
	if set.lines, err = b.createRenderPipeline(set, format, wgpu.PrimitiveTopologyLineList, "Lit Lines"); err != nil {
		set.release()
		return pipelineSet{}, err
	}
	return set, nil
}

// createRenderPipeline builds one pipeline. Back faces are kept because the ground and door
// are single-sided planes seen from both sides.
func (b *backendImpl) createRenderPipeline(set pipelineSet, format wgpu.TextureFormat, topology wgpu.PrimitiveTopology, label string) (*wgpu.RenderPipeline, error) {
	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: set.layout,
		Vertex: wgpu.VertexState{
			Module:     set.shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     set.shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
}
