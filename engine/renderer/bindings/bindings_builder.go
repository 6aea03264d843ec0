package bindings

import "github.com/cogentcore/webgpu/wgpu"

// BindingSetOption is a functional option used to configure a BindingSet during construction.
type BindingSetOption func(*bindingSet)

// WithBindGroup sets the bind group for this binding set.
//
// Parameters:
//   - bg: the bind group to set
//
// Returns:
//   - BindingSetOption: a function that sets the bind group for this set
func WithBindGroup(bg *wgpu.BindGroup) BindingSetOption {
	return func(s *bindingSet) {
		s.bindGroup = bg
	}
}

// WithBindGroupLayout sets the bind group layout for this binding set.
//
// Parameters:
//   - bgl: the bind group layout to set
//
// Returns:
//   - BindingSetOption: a function that sets the bind group layout for this set
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindingSetOption {
	return func(s *bindingSet) {
		s.bindGroupLayout = bgl
	}
}

// WithUniformBuffer sets the uniform buffer for this binding set.
//
// Parameters:
//   - buf: the uniform buffer to set
//
// Returns:
//   - BindingSetOption: a function that sets the uniform buffer for this set
func WithUniformBuffer(buf *wgpu.Buffer) BindingSetOption {
	return func(s *bindingSet) {
		s.uniformBuffer = buf
	}
}

// WithTextureView sets a texture view for a specific binding index.
//
// Parameters:
//   - binding: the binding index for this texture view
//   - tv: the texture view to associate with the binding
//
// Returns:
//   - BindingSetOption: a function that sets the texture view for the specified binding
func WithTextureView(binding int, tv *wgpu.TextureView) BindingSetOption {
	return func(s *bindingSet) {
		s.textureViews[binding] = tv
	}
}

// WithSampler sets a sampler for a specific binding index.
//
// Parameters:
//   - binding: the binding index for this sampler
//   - smp: the sampler to associate with the binding
//
// Returns:
//   - BindingSetOption: a function that sets the sampler for the specified binding
func WithSampler(binding int, smp *wgpu.Sampler) BindingSetOption {
	return func(s *bindingSet) {
		s.samplers[binding] = smp
	}
}
