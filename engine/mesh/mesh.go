package mesh

import (
	"fmt"

	"github.com/google/uuid"
)

// Submitter is the draw-submission abstraction the mesh delegates to. The renderer's
// GPU backend implements it by binding each buffer at its computed attribute layout
// and issuing the primitive draw call; tests use a recording fake.
type Submitter interface {
	// DrawMesh binds the given buffers at their finalized attribute offsets and strides,
	// then issues a non-indexed draw of vertexCount vertices with the given topology.
	// Submission is fire-and-forget: the call returns without waiting for GPU completion.
	//
	// Parameters:
	//   - topology: the primitive topology to draw
	//   - vertexCount: the number of vertices to draw
	//   - buffers: the finalized vertex buffers with their bound attributes
	//
	// Returns:
	//   - error: an error if the draw could not be encoded
	DrawMesh(topology Topology, vertexCount int, buffers []Buffer) error
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	label       string
	topology    Topology
	vertexCount int

	// finalized locks attribute registration once layout has been computed.
	// Set exactly once, on the first Finalize or Draw call, never reset.
	finalized bool

	// buffers holds every buffer this mesh created, in creation order. The mesh is the
	// exclusive owner of these buffers and releases all of them on Release.
	buffers []*buffer

	// locations is the set of all attribute locations currently bound, used to reject
	// duplicate-location registration.
	locations map[uint32]struct{}
}

// Mesh defines the interface for a non-indexed drawable primitive. It tracks which
// buffers hold which typed vertex attributes, computes the byte layout (offset and
// stride) of every attribute once, on first draw, and rejects further attribute
// registration after that point.
//
// Usage pattern:
//  1. Create the mesh with a topology and vertex count
//  2. Add one or more backing buffers via AddBuffer, interleaved or not
//  3. Fill each buffer with SetData and bind typed attributes via BindAttribute
//  4. Draw; the first draw finalizes the layout, subsequent draws reuse it
//
// Invalid registrations (duplicate location, foreign buffer, post-finalization bind)
// are silently ignored rather than surfaced as errors, favoring uninterrupted
// rendering over strict validation. This matches the best-effort binding contract
// used across the shader layer.
type Mesh interface {
	// Label retrieves the debug label for this mesh.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Topology retrieves the primitive topology fixed at construction.
	//
	// Returns:
	//   - Topology: the primitive topology
	Topology() Topology

	// VertexCount retrieves the vertex count fixed at construction. It is never
	// revalidated against buffer contents; that is the caller's responsibility.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// AddBuffer allocates a new backing buffer owned by this mesh and registers an
	// empty attribute list for it. The returned buffer is used to stage vertex data
	// and to bind attributes against.
	//
	// Parameters:
	//   - interleaved: true to store one full vertex record contiguously per vertex,
	//     false to store each attribute's whole array back-to-back
	//
	// Returns:
	//   - Buffer: the newly created buffer
	AddBuffer(interleaved bool) Buffer

	// BindAttribute registers an attribute at the given location on the given buffer.
	// Offset and stride are not computed here; layout is resolved once, at finalize
	// time, because interleaved layout needs the full set of attributes sharing a
	// buffer before strides can be assigned.
	//
	// The call is a silent no-op if the mesh is already finalized, the location is
	// already bound, or the buffer was not created by this mesh's AddBuffer.
	//
	// Parameters:
	//   - buf: the buffer to bind the attribute to
	//   - location: the shader input slot, unique across the whole mesh
	//   - format: the component count and scalar kind of the attribute
	BindAttribute(buf Buffer, location uint32, format Format)

	// Bound reports whether an attribute is registered at the given location.
	//
	// Parameters:
	//   - location: the shader input slot to check
	//
	// Returns:
	//   - bool: true if an attribute is bound at the location
	Bound(location uint32) bool

	// Buffers retrieves every buffer this mesh created, in creation order.
	//
	// Returns:
	//   - []Buffer: the owned buffers
	Buffers() []Buffer

	// Finalized reports whether attribute layout has been computed and registration locked.
	//
	// Returns:
	//   - bool: true once the first Finalize or Draw call has run
	Finalized() bool

	// Finalize computes the offset and stride of every bound attribute in its buffer
	// and locks further attribute registration. Idempotent; calls after the first are
	// no-ops and leave the computed layout untouched.
	//
	// For a non-interleaved buffer each attribute occupies its own contiguous region:
	// the offset of attribute i is the cumulative per-vertex size of attributes 0..i-1
	// multiplied by the vertex count, and the stride is 0 (tightly packed arrays).
	// For an interleaved buffer every attribute shares the vertex record: the stride is
	// the total record size and the offset of attribute i is the cumulative size of
	// attributes 0..i-1 within one record.
	Finalize()

	// Draw finalizes the mesh if needed, then delegates to the submitter to bind each
	// buffer at its computed layout and issue the draw call. Failures of the underlying
	// GPU submission propagate uninterpreted.
	//
	// Parameters:
	//   - s: the draw-submission backend
	//
	// Returns:
	//   - error: an error if the submitter rejected the draw
	Draw(s Submitter) error

	// Release releases every buffer this mesh created. The mesh is the exclusive owner
	// of its buffers for their entire lifetime.
	Release()
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh with the given topology and vertex count, applying the
// specified options.
//
// Parameters:
//   - topology: the primitive topology, immutable for the mesh's lifetime
//   - vertexCount: the number of vertices drawn per draw call
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: a new instance of Mesh configured with the provided options
func NewMesh(topology Topology, vertexCount int, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		topology:    topology,
		vertexCount: vertexCount,
		locations:   make(map[uint32]struct{}),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.label == "" {
		m.label = uuid.NewString()
	}
	return m
}

func (m *mesh) Label() string {
	return m.label
}

func (m *mesh) Topology() Topology {
	return m.topology
}

func (m *mesh) VertexCount() int {
	return m.vertexCount
}

func (m *mesh) AddBuffer(interleaved bool) Buffer {
	b := &buffer{
		label:       fmt.Sprintf("%s/buffer-%d", m.label, len(m.buffers)),
		interleaved: interleaved,
	}
	m.buffers = append(m.buffers, b)
	return b
}

func (m *mesh) BindAttribute(buf Buffer, location uint32, format Format) {
	if m.finalized {
		return
	}
	if _, bound := m.locations[location]; bound {
		return
	}
	owned := m.owns(buf)
	if owned == nil {
		return
	}

	owned.attributes = append(owned.attributes, Attribute{
		Location:   location,
		Components: format.Components,
		Kind:       format.Kind,
	})
	m.locations[location] = struct{}{}
}

func (m *mesh) Bound(location uint32) bool {
	_, bound := m.locations[location]
	return bound
}

func (m *mesh) Buffers() []Buffer {
	out := make([]Buffer, len(m.buffers))
	for i, b := range m.buffers {
		out[i] = b
	}
	return out
}

func (m *mesh) Finalized() bool {
	return m.finalized
}

func (m *mesh) Finalize() {
	if m.finalized {
		return
	}

	for _, b := range m.buffers {
		if b.interleaved {
			var record uint64
			for _, a := range b.attributes {
				record += a.byteSize()
			}
			var offset uint64
			for i := range b.attributes {
				b.attributes[i].Offset = offset
				b.attributes[i].Stride = record
				offset += b.attributes[i].byteSize()
			}
		} else {
			var cumulative uint64
			for i := range b.attributes {
				b.attributes[i].Offset = cumulative * uint64(m.vertexCount)
				b.attributes[i].Stride = 0
				cumulative += b.attributes[i].byteSize()
			}
		}
	}

	m.finalized = true
}

func (m *mesh) Draw(s Submitter) error {
	m.Finalize()
	return s.DrawMesh(m.topology, m.vertexCount, m.Buffers())
}

func (m *mesh) Release() {
	for _, b := range m.buffers {
		b.Release()
	}
}

// owns returns the concrete buffer if buf was created by this mesh's AddBuffer,
// nil otherwise. Identity is pointer identity, not structural equality.
func (m *mesh) owns(buf Buffer) *buffer {
	for _, b := range m.buffers {
		if Buffer(b) == buf {
			return b
		}
	}
	return nil
}
