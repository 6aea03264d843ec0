package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/prism-gfx/prism-go/common"
	"github.com/prism-gfx/prism-go/engine/framebuffer"
	"github.com/prism-gfx/prism-go/engine/mesh"
	"github.com/prism-gfx/prism-go/engine/renderer/pipeline"
	"github.com/prism-gfx/prism-go/engine/renderer/shaders"
)

// VertexSlot pairs an uploaded GPU buffer with the byte offset it should be bound at
// for one vertex buffer slot of a draw call.
type VertexSlot struct {
	// Buffer is the GPU buffer to bind.
	Buffer *wgpu.Buffer
	// Offset is the byte offset into the buffer where this slot's data begins.
	Offset uint64
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// Offscreen pass state for framebuffer rendering
	fbEncoder *wgpu.CommandEncoder
	fbPass    *wgpu.RenderPassEncoder

	// activePass is whichever pass draw calls currently target: the main surface
	// pass between BeginFrame/EndFrame, or the offscreen pass between
	// BeginFramebufferPass/EndFramebufferPass.
	activePass *wgpu.RenderPassEncoder

	// Target description of the active pass. Pipelines are compiled against
	// these, so they feed the pipeline cache key via PassSignature.
	passColorFormats []wgpu.TextureFormat
	passDepthFormat  wgpu.TextureFormat
	passSampleCount  uint32
}

type wgpuRendererBackend interface {
	// Device retrieves the WebGPU device.
	Device() *wgpu.Device

	// Queue retrieves the WebGPU queue.
	Queue() *wgpu.Queue

	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterProgram creates the GPU resources backing a shader program: the bind
	// group layout derived from the program's uniform block and declared texture
	// slots, the uniform buffer, textures and samplers for each slot (substituting a
	// 1x1 white texture for slots without staged data), and the bind group tying them
	// together. All created resources are stored on the program's binding set.
	// Programs whose binding set already holds a bind group are skipped.
	//
	// Parameters:
	//   - p: the shader program to register
	//
	// Returns:
	//   - error: error if any GPU resource creation fails
	RegisterProgram(p shaders.Program) error

	// WriteUniforms writes the program's current uniform state to its GPU uniform buffer.
	//
	// Parameters:
	//   - p: the shader program whose uniforms to write
	//
	// Returns:
	//   - error: error if the program has not been registered
	WriteUniforms(p shaders.Program) error

	// UploadMesh creates a GPU vertex buffer for every mesh buffer that does not have
	// one yet and writes the staged vertex data to it.
	//
	// Parameters:
	//   - m: the mesh whose buffers to upload
	//
	// Returns:
	//   - error: error if buffer creation fails
	UploadMesh(m mesh.Mesh) error

	// InitFramebuffer creates GPU textures and views for every attachment on the
	// framebuffer, including the depth attachment when one is configured.
	//
	// Parameters:
	//   - fb: the framebuffer to initialize
	//
	// Returns:
	//   - error: error if texture creation fails
	InitFramebuffer(fb framebuffer.Framebuffer) error

	// BuildRenderPipeline compiles a render pipeline for the program against the
	// active pass target, using the given vertex buffer layouts and the pipeline's
	// configuration. The compiled pipeline is stored on cfg via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the shader program supplying the WGSL module and bind group layout
	//   - cfg: the pipeline configuration to compile and store the result on
	//   - vertexLayouts: the vertex buffer layouts derived from the mesh
	//
	// Returns:
	//   - error: error if shader module or pipeline creation fails
	BuildRenderPipeline(p shaders.Program, cfg pipeline.Pipeline, vertexLayouts []wgpu.VertexBufferLayout) error

	// PassSignature returns a string describing the active pass's color formats,
	// depth format, and sample count. Pipelines are only valid for passes with a
	// matching signature, so this feeds the pipeline cache key.
	//
	// Returns:
	//   - string: the pass target signature
	PassSignature() string

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame after all draw submissions.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes a single draw command on the active pass: sets the pipeline, the
	// program's bind group, every vertex buffer slot, and draws vertexCount vertices.
	//
	// Parameters:
	//   - cfg: the compiled pipeline to bind
	//   - p: the shader program whose bind group to set
	//   - slots: the vertex buffer slots in shader location order
	//   - vertexCount: the number of vertices to draw
	//
	// Returns:
	//   - error: error if no pass is active or the pipeline is not compiled
	Draw(cfg pipeline.Pipeline, p shaders.Program, slots []VertexSlot, vertexCount uint32) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface — call Present() after EndFrame to display the frame.
	// Must be called after BeginFrame and all draw submissions within a single frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// BeginFramebufferPass begins an offscreen render pass targeting the framebuffer's
	// mapped draw buffers and depth attachment. The framebuffer must have been
	// initialized via InitFramebuffer. Must be paired with EndFramebufferPass.
	//
	// Parameters:
	//   - fb: the framebuffer to render into
	//
	// Returns:
	//   - error: error if the framebuffer is not initialized or encoding fails
	BeginFramebufferPass(fb framebuffer.Framebuffer) error

	// EndFramebufferPass ends the offscreen render pass and submits the command
	// buffer to the GPU queue.
	EndFramebufferPass()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// Create the MSAA texture that the render pass draws into; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		// No MSAA — the render pass draws directly to the swapchain view.
		b.msaaTextureView = nil
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// Build the cached render pass descriptor for the main render target.
	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard // Don't store MSAA data, just resolve
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue: wgpu.Color{
					R: 0.1, G: 0.1, B: 0.1, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView, // Persistent until resize
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard, // Depth not needed after resolving
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) RegisterProgram(p shaders.Program) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set := p.Bindings()
	if set.BindGroup() != nil {
		return nil
	}

	uniforms := p.UniformBytes()
	layoutEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(len(uniforms)),
			},
		},
	}
	for _, tb := range p.TextureBindings() {
		layoutEntries = append(layoutEntries,
			wgpu.BindGroupLayoutEntry{
				Binding:    uint32(tb.View),
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			wgpu.BindGroupLayoutEntry{
				Binding:    uint32(tb.Sampler),
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		)
	}

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   p.Key() + " Bind Group Layout",
		Entries: layoutEntries,
	})
	if err != nil {
		return errors.Wrapf(err, "creating bind group layout for %s", p.Key())
	}
	set.SetBindGroupLayout(layout)

	uniformBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.Key() + " Uniform Buffer",
		Size:  uint64(len(uniforms)),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Wrapf(err, "creating uniform buffer for %s", p.Key())
	}
	b.queue.WriteBuffer(uniformBuffer, 0, uniforms)
	set.SetUniformBuffer(uniformBuffer)

	bindGroupEntries := []wgpu.BindGroupEntry{
		{
			Binding: 0,
			Buffer:  uniformBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		},
	}
	for _, tb := range p.TextureBindings() {
		data := tb.Data
		if len(data.Pixels) == 0 {
			// The bind group layout is fixed per program; slots the program
			// never staged still need a resident texture.
			data = whiteTexel()
		}
		view, texErr := b.createTextureView(p.Key(), data)
		if texErr != nil {
			return errors.Wrapf(texErr, "creating texture for %s binding %d", p.Key(), tb.View)
		}
		set.SetTextureView(tb.View, view)

		sampler, sampErr := b.createSampler(p.Key(), tb.SamplerData)
		if sampErr != nil {
			return errors.Wrapf(sampErr, "creating sampler for %s binding %d", p.Key(), tb.Sampler)
		}
		set.SetSampler(tb.Sampler, sampler)

		bindGroupEntries = append(bindGroupEntries,
			wgpu.BindGroupEntry{Binding: uint32(tb.View), TextureView: view},
			wgpu.BindGroupEntry{Binding: uint32(tb.Sampler), Sampler: sampler},
		)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   p.Key() + " Bind Group",
		Layout:  layout,
		Entries: bindGroupEntries,
	})
	if err != nil {
		return errors.Wrapf(err, "creating bind group for %s", p.Key())
	}
	set.SetBindGroup(bindGroup)

	return nil
}

// whiteTexel returns staging data for a 1x1 opaque white texture.
func whiteTexel() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{0xff, 0xff, 0xff, 0xff},
		Width:  1,
		Height: 1,
	}
}

func (b *wgpuRendererBackendImpl) createTextureView(label string, stagingData common.TextureStagingData) (*wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8Unorm,
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
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	return tex.CreateView(nil)
}

func (b *wgpuRendererBackendImpl) createSampler(label string, samplerStagingData common.SamplerStagingData) (*wgpu.Sampler, error) {
	return b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(samplerStagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerStagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerStagingData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(samplerStagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerStagingData.MaxAnisotropy, 1),
		Compare:       samplerStagingData.Compare,
	})
}

func (b *wgpuRendererBackendImpl) WriteUniforms(p shaders.Program) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf := p.Bindings().UniformBuffer()
	if buf == nil {
		return errors.Newf("program %s has no uniform buffer — call RegisterProgram first", p.Key())
	}
	b.queue.WriteBuffer(buf, 0, p.UniformBytes())
	return nil
}

func (b *wgpuRendererBackendImpl) UploadMesh(m mesh.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, buf := range m.Buffers() {
		if buf.GPUBuffer() != nil {
			continue
		}
		data := buf.Data()
		if len(data) == 0 {
			return errors.Newf("mesh buffer %q has no staged data", buf.Label())
		}
		gpuBuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: buf.Label(),
			Size:  uint64(len(data)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return errors.Wrapf(err, "creating vertex buffer %q", buf.Label())
		}
		b.queue.WriteBuffer(gpuBuf, 0, data)
		buf.SetGPUBuffer(gpuBuf)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) InitFramebuffer(fb framebuffer.Framebuffer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	width, height := fb.Size()
	for _, index := range fb.ColorAttachmentIndices() {
		a := fb.ColorAttachment(index)
		if a.Texture != nil {
			continue
		}
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: fmt.Sprintf("%s Color %d", fb.Label(), index),
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension2D,
			Format:        a.Format,
			Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
		})
		if err != nil {
			return errors.Wrapf(err, "creating color attachment %d for %s", index, fb.Label())
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return errors.Wrapf(err, "creating color attachment view %d for %s", index, fb.Label())
		}
		a.Texture = tex
		a.View = view
	}

	if fb.DepthFormat() != wgpu.TextureFormatUndefined && fb.DepthView() == nil {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: fb.Label() + " Depth",
			Size: wgpu.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension2D,
			Format:        fb.DepthFormat(),
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return errors.Wrapf(err, "creating depth attachment for %s", fb.Label())
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return errors.Wrapf(err, "creating depth attachment view for %s", fb.Label())
		}
		fb.SetDepthTexture(tex, view)
	}

	return nil
}

func (b *wgpuRendererBackendImpl) BuildRenderPipeline(p shaders.Program, cfg pipeline.Pipeline, vertexLayouts []wgpu.VertexBufferLayout) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	layout := p.Bindings().BindGroupLayout()
	if layout == nil {
		return errors.Newf("program %s has no bind group layout — call RegisterProgram first", p.Key())
	}
	if len(b.passColorFormats) == 0 {
		return errors.New("no active pass to compile a pipeline against")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return errors.Wrapf(err, "compiling shader module for %s", p.Key())
	}
	defer module.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            cfg.PipelineKey(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return errors.Wrapf(err, "creating pipeline layout for %s", p.Key())
	}
	defer pipelineLayout.Release()

	targets := make([]wgpu.ColorTargetState, len(b.passColorFormats))
	for i, format := range b.passColorFormats {
		state := wgpu.ColorTargetState{
			Format:    format,
			WriteMask: cfg.WriteMask(),
		}
		if cfg.BlendEnabled() {
			state.Blend = cfg.BlendState()
		}
		targets[i] = state
	}

	var depthStencil *wgpu.DepthStencilState
	if b.passDepthFormat != wgpu.TextureFormatUndefined {
		depthCompare := wgpu.CompareFunctionLess
		if !cfg.DepthTestEnabled() {
			depthCompare = wgpu.CompareFunctionAlways
		}
		depthStencil = &wgpu.DepthStencilState{
			Format:              b.passDepthFormat,
			DepthWriteEnabled:   cfg.DepthWriteEnabled(),
			DepthCompare:        depthCompare,
			DepthBias:           cfg.DepthBias(),
			DepthBiasSlopeScale: cfg.DepthBiasSlopeScale(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  cfg.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntry(),
			Targets:    targets,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  cfg.Topology(),
			FrontFace: cfg.FrontFace(),
			CullMode:  cfg.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: b.passSampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: depthStencil,
	})
	if err != nil {
		return errors.Wrapf(err, "creating render pipeline for %s", p.Key())
	}

	cfg.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) PassSignature() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fmt.Sprintf("%v/%d/%d", b.passColorFormats, b.passDepthFormat, b.passSampleCount)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If a previous frame's surface texture is still held, avoid attempting to
	// acquire another one. This prevents wgpu-native validation errors like
	// "Surface image is already acquired" when frames overlap.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return errors.Wrap(err, "acquiring swapchain texture")
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return errors.Wrap(err, "creating swapchain view")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return errors.Wrap(err, "creating command encoder")
	}

	// When MSAA is enabled, the MSAA texture is the color attachment View and
	// the swapchain view is the ResolveTarget. When MSAA is off, the swapchain
	// view is the color attachment View directly and ResolveTarget is nil.
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	b.activePass = pass
	b.passColorFormats = []wgpu.TextureFormat{*b.surfaceFormat}
	b.passDepthFormat = wgpu.TextureFormatDepth24Plus
	b.passSampleCount = uint32(b.sampleCount)

	return nil
}

func (b *wgpuRendererBackendImpl) Draw(cfg pipeline.Pipeline, p shaders.Program, slots []VertexSlot, vertexCount uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.activePass == nil {
		return errors.New("no active render pass")
	}
	compiled := cfg.Pipeline()
	if compiled == nil {
		return errors.Newf("pipeline %s is not compiled", cfg.PipelineKey())
	}

	b.activePass.SetPipeline(compiled)
	b.activePass.SetBindGroup(0, p.Bindings().BindGroup(), nil)
	for i, slot := range slots {
		b.activePass.SetVertexBuffer(uint32(i), slot.Buffer, slot.Offset, wgpu.WholeSize)
	}
	b.activePass.Draw(vertexCount, 1, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	b.framePass.End()
	b.activePass = nil
	b.passColorFormats = nil
	b.passDepthFormat = wgpu.TextureFormatUndefined
	b.passSampleCount = 0

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) BeginFramebufferPass(fb framebuffer.Framebuffer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.activePass != nil {
		return errors.New("another render pass is already active")
	}

	drawBuffers, err := fb.DrawBuffers()
	if err != nil {
		return errors.Wrapf(err, "resolving draw buffers for %s", fb.Label())
	}

	colorAttachments := make([]wgpu.RenderPassColorAttachment, len(drawBuffers))
	colorFormats := make([]wgpu.TextureFormat, len(drawBuffers))
	for i, a := range drawBuffers {
		if a.View == nil {
			return errors.Newf("framebuffer %s is not initialized — call InitFramebuffer first", fb.Label())
		}
		colorAttachments[i] = wgpu.RenderPassColorAttachment{
			View:       a.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearValue,
		}
		colorFormats[i] = a.Format
	}

	descriptor := &wgpu.RenderPassDescriptor{
		Label:            fb.Label() + " Pass",
		ColorAttachments: colorAttachments,
	}
	if fb.DepthView() != nil {
		descriptor.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            fb.DepthView(),
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "creating command encoder")
	}

	pass := encoder.BeginRenderPass(descriptor)

	b.fbEncoder = encoder
	b.fbPass = pass
	b.activePass = pass
	b.passColorFormats = colorFormats
	b.passDepthFormat = fb.DepthFormat()
	b.passSampleCount = 1

	return nil
}

func (b *wgpuRendererBackendImpl) EndFramebufferPass() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fbPass == nil {
		return
	}

	b.fbPass.End()
	b.activePass = nil
	b.passColorFormats = nil
	b.passDepthFormat = wgpu.TextureFormatUndefined
	b.passSampleCount = 0

	commandBuffer, err := b.fbEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}

	b.fbEncoder.Release()
	b.fbEncoder = nil
	b.fbPass = nil
}
