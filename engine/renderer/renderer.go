package renderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/prism-gfx/prism-go/engine/framebuffer"
	"github.com/prism-gfx/prism-go/engine/mesh"
	"github.com/prism-gfx/prism-go/engine/renderer/pipeline"
	"github.com/prism-gfx/prism-go/engine/renderer/shaders"
	"github.com/prism-gfx/prism-go/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// activeProgram is the program the current Draw call is submitting with; the
	// mesh calls back into the renderer through the submitter interface and needs
	// the program to resolve the pipeline and bind group.
	activeProgram shaders.Program

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and
// idiomatic flow. The Renderer caches one GPU pipeline per program variant, mesh layout,
// and pass target combination, compiling lazily on first use. It also implements the
// mesh package's submitter interface, so a mesh drawn with a program resolves its
// finalized attribute layout into vertex buffer bindings automatically.
type Renderer interface {
	mesh.Submitter

	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterProgram creates the GPU resources backing a shader program: bind group
	// layout, uniform buffer, staged textures and samplers (unstaged slots get a 1x1
	// white texture), and the bind group. Must be called once per program before
	// drawing with it; repeated calls are no-ops.
	//
	// Parameters:
	//   - p: the shader program to register
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	RegisterProgram(p shaders.Program) error

	// UploadMesh creates GPU vertex buffers for every buffer on the mesh that has
	// not been uploaded yet and writes the staged vertex data. The mesh's attribute
	// layout must be finalized before upload so offsets and strides are stable.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: an error if the mesh is not finalized or buffer creation fails
	UploadMesh(m mesh.Mesh) error

	// InitFramebuffer creates GPU textures for every attachment on the framebuffer.
	//
	// Parameters:
	//   - fb: the framebuffer to initialize
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitFramebuffer(fb framebuffer.Framebuffer) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	// Must be paired with EndFrame after all Draw invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw pushes the program's current uniform state to the GPU and submits the mesh
	// within the active render pass. The pipeline for the program/mesh/pass
	// combination is compiled and cached on first use.
	//
	// Parameters:
	//   - p: the shader program to draw with
	//   - m: the mesh to draw
	//
	// Returns:
	//   - error: an error if the program is unregistered, the mesh is not uploaded,
	//     or the mesh layout cannot be expressed as a GPU pipeline
	Draw(p shaders.Program, m mesh.Mesh) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface — call Present() after EndFrame to display the frame.
	// Must be called after BeginFrame and all Draw invocations within a single frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// BeginFramebufferPass begins an offscreen render pass targeting the
	// framebuffer's mapped draw buffers. Draw calls between this and
	// EndFramebufferPass render into the framebuffer instead of the surface.
	//
	// Parameters:
	//   - fb: the framebuffer to render into
	//
	// Returns:
	//   - error: an error if the framebuffer is not initialized
	BeginFramebufferPass(fb framebuffer.Framebuffer) error

	// EndFramebufferPass ends the offscreen render pass and submits its commands.
	EndFramebufferPass()

	// Release releases every cached pipeline.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, targeting
// the surface of the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window supplying the platform-specific surface descriptor
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache
}

func (r *renderer) RegisterProgram(p shaders.Program) error {
	return r.backend.RegisterProgram(p)
}

func (r *renderer) UploadMesh(m mesh.Mesh) error {
	if !m.Finalized() {
		m.Finalize()
	}
	return r.backend.UploadMesh(m)
}

func (r *renderer) InitFramebuffer(fb framebuffer.Framebuffer) error {
	return r.backend.InitFramebuffer(fb)
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(p shaders.Program, m mesh.Mesh) error {
	if err := r.backend.WriteUniforms(p); err != nil {
		return err
	}

	r.mu.Lock()
	r.activeProgram = p
	r.mu.Unlock()

	return m.Draw(r)
}

// DrawMesh implements the mesh package's submitter interface: it resolves the mesh's
// finalized attribute layout into WebGPU vertex buffer layouts, compiles (or looks up)
// the pipeline for the active program against the active pass, and encodes the draw.
func (r *renderer) DrawMesh(topology mesh.Topology, vertexCount int, buffers []mesh.Buffer) error {
	r.mu.Lock()
	p := r.activeProgram
	r.mu.Unlock()

	if p == nil {
		return errors.New("no active program — submit meshes through Draw")
	}

	wgpuTopology, err := pipeline.PrimitiveTopologyOf(topology)
	if err != nil {
		return err
	}

	layouts, slots, err := vertexBindings(buffers)
	if err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("%s|%s|%s", p.Key(), layoutSignature(layouts), r.backend.PassSignature())

	r.mu.Lock()
	cfg, exists := r.pipelineCache[cacheKey]
	r.mu.Unlock()

	if !exists {
		cfg = pipeline.NewPipeline(cacheKey, pipeline.WithTopology(wgpuTopology))
		if err := r.backend.BuildRenderPipeline(p, cfg, layouts); err != nil {
			return err
		}
		r.mu.Lock()
		r.pipelineCache[cacheKey] = cfg
		r.mu.Unlock()
	}

	return r.backend.Draw(cfg, p, slots, uint32(vertexCount))
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) BeginFramebufferPass(fb framebuffer.Framebuffer) error {
	return r.backend.BeginFramebufferPass(fb)
}

func (r *renderer) EndFramebufferPass() {
	r.backend.EndFramebufferPass()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cfg := range r.pipelineCache {
		cfg.Release()
	}
	r.pipelineCache = make(map[string]pipeline.Pipeline)
}

// vertexBindings derives the WebGPU vertex buffer layouts and the matching buffer
// binding slots from a mesh's finalized buffers. Interleaved buffers become a single
// slot with per-attribute record offsets; tightly packed buffers become one slot per
// attribute, bound at the attribute's block offset with the attribute size as stride.
func vertexBindings(buffers []mesh.Buffer) ([]wgpu.VertexBufferLayout, []VertexSlot, error) {
	var layouts []wgpu.VertexBufferLayout
	var slots []VertexSlot

	for _, b := range buffers {
		attributes := b.Attributes()
		if len(attributes) == 0 {
			continue
		}
		if b.GPUBuffer() == nil {
			return nil, nil, errors.Newf("mesh buffer %q has no GPU buffer — call UploadMesh first", b.Label())
		}

		if b.Interleaved() {
			wgpuAttributes := make([]wgpu.VertexAttribute, len(attributes))
			for i, a := range attributes {
				format, err := pipeline.VertexFormatOf(mesh.Format{Components: a.Components, Kind: a.Kind})
				if err != nil {
					return nil, nil, errors.Wrapf(err, "attribute at location %d", a.Location)
				}
				wgpuAttributes[i] = wgpu.VertexAttribute{
					Format:         format,
					Offset:         a.Offset,
					ShaderLocation: a.Location,
				}
			}
			layouts = append(layouts, wgpu.VertexBufferLayout{
				ArrayStride: attributes[0].Stride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes:  wgpuAttributes,
			})
			slots = append(slots, VertexSlot{Buffer: b.GPUBuffer(), Offset: 0})
		} else {
			// Tightly packed attribute blocks have stride 0 in the mesh layout,
			// which WebGPU cannot express. Each attribute gets its own vertex
			// buffer slot bound at the block offset, with the attribute size as
			// the effective stride.
			for _, a := range attributes {
				format, err := pipeline.VertexFormatOf(mesh.Format{Components: a.Components, Kind: a.Kind})
				if err != nil {
					return nil, nil, errors.Wrapf(err, "attribute at location %d", a.Location)
				}
				size := uint64(a.Components) * uint64(a.Kind.Size())
				layouts = append(layouts, wgpu.VertexBufferLayout{
					ArrayStride: size,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         format,
							Offset:         0,
							ShaderLocation: a.Location,
						},
					},
				})
				slots = append(slots, VertexSlot{Buffer: b.GPUBuffer(), Offset: a.Offset})
			}
		}
	}

	return layouts, slots, nil
}

// layoutSignature renders the vertex buffer layouts as a stable string for pipeline
// cache keying. Two meshes with identical layouts share a pipeline.
func layoutSignature(layouts []wgpu.VertexBufferLayout) string {
	var sb strings.Builder
	for _, l := range layouts {
		fmt.Fprintf(&sb, "s%d[", l.ArrayStride)
		for _, a := range l.Attributes {
			fmt.Fprintf(&sb, "@%d:%d+%d", a.ShaderLocation, a.Format, a.Offset)
		}
		sb.WriteString("]")
	}
	return sb.String()
}
