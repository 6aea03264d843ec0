package framebuffer

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ColorAttachment describes a single indexed color attachment on a framebuffer:
// its storage format plus the GPU texture the renderer created for it.
type ColorAttachment struct {
	// Format is the texture format for this attachment's storage.
	Format wgpu.TextureFormat

	// ClearValue is the color this attachment is cleared to at the start of a pass.
	ClearValue wgpu.Color

	// Texture and View are populated by the renderer when the framebuffer is
	// initialized; nil until then.
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// framebuffer is the implementation of the Framebuffer interface.
type framebuffer struct {
	label  string
	width  uint32
	height uint32

	colorAttachments map[int]*ColorAttachment

	// drawBuffers maps shader fragment output locations to attachment indices.
	// An empty map means output 0 draws to attachment 0.
	drawBuffers map[int]int

	depthFormat  wgpu.TextureFormat
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView
}

// Framebuffer defines the interface for an offscreen render target with indexed
// color attachments, an optional depth attachment, and a mapping from shader
// fragment outputs to attachments. The framebuffer tracks attachment storage
// bookkeeping on the CPU; GPU textures are created by the renderer when the
// framebuffer is registered with it.
type Framebuffer interface {
	// Label retrieves the label for this framebuffer.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Size retrieves the dimensions shared by every attachment.
	//
	// Returns:
	//   - uint32: the width in pixels
	//   - uint32: the height in pixels
	Size() (uint32, uint32)

	// AttachColor sets the storage format for the color attachment at the given
	// index, replacing any previous attachment at that index.
	//
	// Parameters:
	//   - index: the attachment index
	//   - format: the texture format for the attachment's storage
	AttachColor(index int, format wgpu.TextureFormat)

	// AttachDepth sets the storage format for the depth attachment.
	//
	// Parameters:
	//   - format: the depth texture format
	AttachDepth(format wgpu.TextureFormat)

	// SetClearColor sets the clear color for the attachment at the given index.
	// No-op when the index has no attachment.
	//
	// Parameters:
	//   - index: the attachment index
	//   - color: the clear color
	SetClearColor(index int, color wgpu.Color)

	// MapForDraw maps shader fragment output locations to attachment indices for
	// subsequent passes. Every mapped attachment index must exist.
	//
	// Parameters:
	//   - outputs: a map of fragment output location to attachment index
	//
	// Returns:
	//   - error: error if an output is mapped to a missing attachment
	MapForDraw(outputs map[int]int) error

	// DrawBuffers retrieves the current output-to-attachment mapping as a slice of
	// attachments ordered by fragment output location. With no explicit mapping,
	// output 0 draws to attachment 0.
	//
	// Returns:
	//   - []*ColorAttachment: the attachments in fragment output order
	//   - error: error if the mapping references a missing attachment
	DrawBuffers() ([]*ColorAttachment, error)

	// ColorAttachment retrieves the attachment at the given index, or nil if none.
	//
	// Parameters:
	//   - index: the attachment index
	//
	// Returns:
	//   - *ColorAttachment: the attachment, or nil
	ColorAttachment(index int) *ColorAttachment

	// ColorAttachmentIndices retrieves the occupied attachment indices in ascending order.
	//
	// Returns:
	//   - []int: the sorted attachment indices
	ColorAttachmentIndices() []int

	// DepthFormat retrieves the depth attachment format, or wgpu.TextureFormatUndefined
	// when no depth attachment is configured.
	//
	// Returns:
	//   - wgpu.TextureFormat: the depth format
	DepthFormat() wgpu.TextureFormat

	// DepthView retrieves the depth texture view, or nil if the framebuffer has not
	// been initialized by the renderer or has no depth attachment.
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view
	DepthView() *wgpu.TextureView

	// SetDepthTexture stores the GPU depth texture and view created by the renderer.
	//
	// Parameters:
	//   - tex: the depth texture
	//   - view: the depth texture view
	SetDepthTexture(tex *wgpu.Texture, view *wgpu.TextureView)

	// Release releases all GPU textures held by the attachments.
	Release()
}

var _ Framebuffer = &framebuffer{}

// NewFramebuffer creates a new Framebuffer with the specified options applied.
//
// Parameters:
//   - label: the label for this framebuffer
//   - width: the width of every attachment in pixels
//   - height: the height of every attachment in pixels
//   - options: a variadic list of FramebufferOption functions to configure the framebuffer
//
// Returns:
//   - Framebuffer: a new instance of Framebuffer configured with the provided options
func NewFramebuffer(label string, width, height uint32, options ...FramebufferOption) Framebuffer {
	f := &framebuffer{
		label:            label,
		width:            width,
		height:           height,
		colorAttachments: make(map[int]*ColorAttachment),
		drawBuffers:      make(map[int]int),
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (f *framebuffer) Label() string {
	return f.label
}

func (f *framebuffer) Size() (uint32, uint32) {
	return f.width, f.height
}

func (f *framebuffer) AttachColor(index int, format wgpu.TextureFormat) {
	f.colorAttachments[index] = &ColorAttachment{Format: format}
}

func (f *framebuffer) AttachDepth(format wgpu.TextureFormat) {
	f.depthFormat = format
}

func (f *framebuffer) SetClearColor(index int, color wgpu.Color) {
	if a, ok := f.colorAttachments[index]; ok {
		a.ClearValue = color
	}
}

func (f *framebuffer) MapForDraw(outputs map[int]int) error {
	for output, attachment := range outputs {
		if _, ok := f.colorAttachments[attachment]; !ok {
			return errors.Newf("fragment output %d mapped to missing attachment %d", output, attachment)
		}
	}
	f.drawBuffers = outputs
	return nil
}

func (f *framebuffer) DrawBuffers() ([]*ColorAttachment, error) {
	if len(f.drawBuffers) == 0 {
		a, ok := f.colorAttachments[0]
		if !ok {
			return nil, errors.New("framebuffer has no color attachment 0 and no draw mapping")
		}
		return []*ColorAttachment{a}, nil
	}

	outputs := make([]int, 0, len(f.drawBuffers))
	for output := range f.drawBuffers {
		outputs = append(outputs, output)
	}
	sort.Ints(outputs)

	// Fragment outputs must be contiguous from 0; WebGPU color targets are
	// positional.
	attachments := make([]*ColorAttachment, 0, len(outputs))
	for want, output := range outputs {
		if output != want {
			return nil, errors.Newf("fragment outputs must be contiguous from 0, missing output %d", want)
		}
		a, ok := f.colorAttachments[f.drawBuffers[output]]
		if !ok {
			return nil, errors.Newf("fragment output %d mapped to missing attachment %d", output, f.drawBuffers[output])
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}

func (f *framebuffer) ColorAttachment(index int) *ColorAttachment {
	return f.colorAttachments[index]
}

func (f *framebuffer) ColorAttachmentIndices() []int {
	indices := make([]int, 0, len(f.colorAttachments))
	for i := range f.colorAttachments {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

func (f *framebuffer) DepthFormat() wgpu.TextureFormat {
	return f.depthFormat
}

func (f *framebuffer) DepthView() *wgpu.TextureView {
	return f.depthView
}

func (f *framebuffer) SetDepthTexture(tex *wgpu.Texture, view *wgpu.TextureView) {
	f.depthTexture = tex
	f.depthView = view
}

func (f *framebuffer) Release() {
	for _, a := range f.colorAttachments {
		if a.View != nil {
			a.View.Release()
			a.View = nil
		}
		if a.Texture != nil {
			a.Texture.Release()
			a.Texture = nil
		}
	}
	if f.depthView != nil {
		f.depthView.Release()
		f.depthView = nil
	}
	if f.depthTexture != nil {
		f.depthTexture.Release()
		f.depthTexture = nil
	}
}
