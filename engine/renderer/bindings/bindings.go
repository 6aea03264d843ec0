package bindings

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindingSet is the unexported implementation of BindingSet.
type bindingSet struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no
	// longer needed. They are populated by the Renderer when a shader program is
	// registered, not by user code.

	// bindGroup is the GPU bind group created for this set, or nil if not initialized.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this set, or nil if not initialized.
	bindGroupLayout *wgpu.BindGroupLayout
	// uniformBuffer is the GPU uniform buffer holding the program's uniform block, or nil if not initialized.
	uniformBuffer *wgpu.Buffer
	// textureViews holds the GPU texture views created for this set, keyed by binding index.
	textureViews map[int]*wgpu.TextureView
	// samplers holds the GPU samplers created for this set, keyed by binding index.
	samplers map[int]*wgpu.Sampler
}

// BindingSet defines the interface for the GPU bind group resources backing one shader
// program instance: a uniform buffer at binding 0 plus any texture views and samplers
// the program's flags call for.
//
// Usage pattern:
//  1. A shader program creates an empty BindingSet with a debug label
//  2. Renderer.RegisterProgram creates the GPU resources and stores them on the set
//  3. Renderer.DrawMesh writes the program's current uniform bytes and binds the group
//  4. The program's Release frees all GPU resources via the set's Release
type BindingSet interface {
	// Label returns the debug label for this binding set.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding, or nil if GPU
	// resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil if GPU resources
	// have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// UniformBuffer returns the uniform buffer for data writes, or nil if GPU resources
	// have not been initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the uniform buffer or nil
	UniformBuffer() *wgpu.Buffer

	// TextureView returns the GPU texture view for a specific binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// TextureViews returns all texture views in this set, keyed by binding index.
	//
	// Returns:
	//   - map[int]*wgpu.TextureView: the texture views keyed by binding index
	TextureViews() map[int]*wgpu.TextureView

	// Sampler returns the GPU sampler for a specific binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// Samplers returns all samplers in this set, keyed by binding index.
	//
	// Returns:
	//   - map[int]*wgpu.Sampler: the samplers keyed by binding index
	Samplers() map[int]*wgpu.Sampler

	// SetBindGroup stores the bind group after GPU initialization.
	// Called by Renderer.RegisterProgram.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the bind group layout after GPU initialization.
	// Called by Renderer.RegisterProgram.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetUniformBuffer stores the uniform buffer after GPU initialization.
	// Called by Renderer.RegisterProgram.
	//
	// Parameters:
	//   - buf: the created uniform buffer
	SetUniformBuffer(buf *wgpu.Buffer)

	// SetTextureView stores a GPU texture view for a specific binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view to store
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a GPU sampler for a specific binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the sampler to store
	SetSampler(binding int, s *wgpu.Sampler)

	// Release releases all GPU resources held by this set and removes them from it.
	Release()
}

// Compile-time check that bindingSet implements BindingSet
var _ BindingSet = &bindingSet{}

// NewBindingSet creates a new BindingSet with the provided debug label and options.
//
// Parameters:
//   - label: the debug label for this set
//   - options: a variadic list of options to configure the set
//
// Returns:
//   - BindingSet: a new instance of BindingSet configured with the provided options
func NewBindingSet(label string, options ...BindingSetOption) BindingSet {
	s := &bindingSet{
		label:        label,
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *bindingSet) Label() string {
	return s.label
}

func (s *bindingSet) BindGroup() *wgpu.BindGroup {
	return s.bindGroup
}

func (s *bindingSet) BindGroupLayout() *wgpu.BindGroupLayout {
	return s.bindGroupLayout
}

func (s *bindingSet) UniformBuffer() *wgpu.Buffer {
	return s.uniformBuffer
}

func (s *bindingSet) TextureView(binding int) *wgpu.TextureView {
	return s.textureViews[binding]
}

func (s *bindingSet) TextureViews() map[int]*wgpu.TextureView {
	return s.textureViews
}

func (s *bindingSet) Sampler(binding int) *wgpu.Sampler {
	return s.samplers[binding]
}

func (s *bindingSet) Samplers() map[int]*wgpu.Sampler {
	return s.samplers
}

func (s *bindingSet) SetBindGroup(bg *wgpu.BindGroup) {
	s.bindGroup = bg
}

func (s *bindingSet) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	s.bindGroupLayout = bgl
}

func (s *bindingSet) SetUniformBuffer(buf *wgpu.Buffer) {
	s.uniformBuffer = buf
}

func (s *bindingSet) SetTextureView(binding int, tv *wgpu.TextureView) {
	if s.textureViews == nil {
		s.textureViews = make(map[int]*wgpu.TextureView)
	}
	s.textureViews[binding] = tv
}

func (s *bindingSet) SetSampler(binding int, smp *wgpu.Sampler) {
	if s.samplers == nil {
		s.samplers = make(map[int]*wgpu.Sampler)
	}
	s.samplers[binding] = smp
}

func (s *bindingSet) Release() {
	for i, tv := range s.textureViews {
		if tv != nil {
			tv.Release()
			delete(s.textureViews, i)
		}
	}
	for i, smp := range s.samplers {
		if smp != nil {
			smp.Release()
			delete(s.samplers, i)
		}
	}
	if s.uniformBuffer != nil {
		s.uniformBuffer.Release()
		s.uniformBuffer = nil
	}
	if s.bindGroup != nil {
		s.bindGroup.Release()
		s.bindGroup = nil
	}
	if s.bindGroupLayout != nil {
		s.bindGroupLayout.Release()
		s.bindGroupLayout = nil
	}
}
