package framebuffer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// FramebufferOption is a functional option used to configure a Framebuffer during construction.
type FramebufferOption func(*framebuffer)

// WithColorAttachment sets the storage format for the color attachment at the given index.
//
// Parameters:
//   - index: the attachment index
//   - format: the texture format for the attachment's storage
//
// Returns:
//   - FramebufferOption: a function that attaches the color storage to a framebuffer
func WithColorAttachment(index int, format wgpu.TextureFormat) FramebufferOption {
	return func(f *framebuffer) {
		f.colorAttachments[index] = &ColorAttachment{Format: format}
	}
}

// WithDepthAttachment sets the storage format for the depth attachment.
//
// Parameters:
//   - format: the depth texture format
//
// Returns:
//   - FramebufferOption: a function that attaches the depth storage to a framebuffer
func WithDepthAttachment(format wgpu.TextureFormat) FramebufferOption {
	return func(f *framebuffer) {
		f.depthFormat = format
	}
}

// WithClearColor sets the clear color for the attachment at the given index.
//
// Parameters:
//   - index: the attachment index
//   - color: the clear color
//
// Returns:
//   - FramebufferOption: a function that sets the clear color on a framebuffer
func WithClearColor(index int, color wgpu.Color) FramebufferOption {
	return func(f *framebuffer) {
		if a, ok := f.colorAttachments[index]; ok {
			a.ClearValue = color
		}
	}
}
