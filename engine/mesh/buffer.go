package mesh

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// buffer is the implementation of the Buffer interface.
type buffer struct {
	label       string
	interleaved bool

	// data is the staged CPU-side contents, pending GPU upload by the renderer.
	data []byte

	// attributes is the ordered list of attributes bound to this buffer. Order matters:
	// layout offsets are assigned in bind order when the owning mesh is finalized.
	attributes []Attribute

	// gpuBuffer is the uploaded GPU buffer, or nil if the renderer has not initialized it yet.
	gpuBuffer *wgpu.Buffer
}

// Buffer defines the interface for a vertex buffer owned by a Mesh. Buffers are
// created exclusively through Mesh.AddBuffer and released by the owning mesh;
// no other component may outlive or independently free them.
//
// A buffer is either interleaved (one full vertex record stored contiguously per
// vertex) or non-interleaved (each attribute's whole array stored back-to-back).
// The mode is fixed at creation and determines how attribute offsets and strides
// are computed when the mesh is finalized.
type Buffer interface {
	// Label retrieves the debug label for this buffer.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Interleaved reports whether this buffer stores one full vertex record per vertex.
	//
	// Returns:
	//   - bool: true if the buffer is interleaved
	Interleaved() bool

	// SetData stages raw vertex bytes for GPU upload. The caller is responsible for
	// matching the staged contents to the attributes bound against this buffer; the
	// mesh never revalidates data length against its vertex count.
	//
	// Parameters:
	//   - data: the raw vertex bytes to stage
	SetData(data []byte)

	// Data retrieves the staged CPU-side contents.
	//
	// Returns:
	//   - []byte: the staged bytes, or nil if none have been set
	Data() []byte

	// Attributes retrieves the ordered list of attributes bound to this buffer.
	// Offset and Stride fields are only meaningful after the owning mesh has been finalized.
	//
	// Returns:
	//   - []Attribute: the bound attributes in bind order
	Attributes() []Attribute

	// GPUBuffer retrieves the uploaded GPU buffer, or nil if the renderer has not
	// initialized it yet.
	//
	// Returns:
	//   - *wgpu.Buffer: the GPU buffer or nil
	GPUBuffer() *wgpu.Buffer

	// SetGPUBuffer stores the uploaded GPU buffer. Called by the renderer after upload.
	//
	// Parameters:
	//   - buf: the created GPU buffer
	SetGPUBuffer(buf *wgpu.Buffer)

	// Release frees the GPU buffer if one was created and drops the staged CPU data.
	// Called by the owning mesh on its own Release.
	Release()
}

var _ Buffer = &buffer{}

func (b *buffer) Label() string {
	return b.label
}

func (b *buffer) Interleaved() bool {
	return b.interleaved
}

func (b *buffer) SetData(data []byte) {
	b.data = data
}

func (b *buffer) Data() []byte {
	return b.data
}

func (b *buffer) Attributes() []Attribute {
	return b.attributes
}

func (b *buffer) GPUBuffer() *wgpu.Buffer {
	return b.gpuBuffer
}

func (b *buffer) SetGPUBuffer(buf *wgpu.Buffer) {
	b.gpuBuffer = buf
}

func (b *buffer) Release() {
	if b.gpuBuffer != nil {
		b.gpuBuffer.Release()
		b.gpuBuffer = nil
	}
	b.data = nil
}
