package mesh

// Topology identifies the primitive topology used to interpret the vertex stream.
// It is fixed when the mesh is created and never changes for the lifetime of the mesh.
type Topology int

const (
	// TopologyPoints renders each vertex as a single point.
	TopologyPoints Topology = iota

	// TopologyLines renders each pair of vertices as an independent line segment.
	TopologyLines

	// TopologyLineStrip renders the vertices as one connected polyline.
	TopologyLineStrip

	// TopologyLineLoop renders the vertices as a polyline whose last vertex connects back to the first.
	TopologyLineLoop

	// TopologyTriangles renders each group of three vertices as an independent triangle.
	TopologyTriangles

	// TopologyTriangleStrip renders the first three vertices as a triangle and every following
	// vertex as another triangle sharing the previous two vertices.
	TopologyTriangleStrip

	// TopologyTriangleFan renders the first vertex as a shared center, every following vertex
	// forming a triangle with the previous vertex and the center.
	TopologyTriangleFan
)

// ComponentKind identifies the scalar type of a single vertex attribute component.
type ComponentKind int

const (
	// ComponentByte is a signed 8-bit integer component.
	ComponentByte ComponentKind = iota

	// ComponentUnsignedByte is an unsigned 8-bit integer component.
	ComponentUnsignedByte

	// ComponentShort is a signed 16-bit integer component.
	ComponentShort

	// ComponentUnsignedShort is an unsigned 16-bit integer component.
	ComponentUnsignedShort

	// ComponentInt is a signed 32-bit integer component.
	ComponentInt

	// ComponentUnsignedInt is an unsigned 32-bit integer component.
	ComponentUnsignedInt

	// ComponentFloat is a 32-bit IEEE floating point component.
	ComponentFloat

	// ComponentDouble is a 64-bit IEEE floating point component.
	ComponentDouble
)

// Size returns the width of a single component of this kind in bytes.
//
// Returns:
//   - int: the component width in bytes, or 0 for an unknown kind
func (k ComponentKind) Size() int {
	switch k {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentInt, ComponentUnsignedInt, ComponentFloat:
		return 4
	case ComponentDouble:
		return 8
	default:
		return 0
	}
}

// Format describes the shape of one vertex attribute: how many components it has
// and the scalar kind of each component. The typed Format constants below cover
// the common scalar and vector element types so callers rarely construct one by hand.
type Format struct {
	// Components is the number of scalar components per vertex (1 to 4).
	Components int
	// Kind is the scalar type of each component.
	Kind ComponentKind
}

var (
	// FormatByte is a single signed byte per vertex.
	FormatByte = Format{Components: 1, Kind: ComponentByte}
	// FormatUnsignedByte is a single unsigned byte per vertex.
	FormatUnsignedByte = Format{Components: 1, Kind: ComponentUnsignedByte}
	// FormatShort is a single signed 16-bit integer per vertex.
	FormatShort = Format{Components: 1, Kind: ComponentShort}
	// FormatUnsignedShort is a single unsigned 16-bit integer per vertex.
	FormatUnsignedShort = Format{Components: 1, Kind: ComponentUnsignedShort}
	// FormatInt is a single signed 32-bit integer per vertex.
	FormatInt = Format{Components: 1, Kind: ComponentInt}
	// FormatUnsignedInt is a single unsigned 32-bit integer per vertex.
	FormatUnsignedInt = Format{Components: 1, Kind: ComponentUnsignedInt}
	// FormatFloat is a single 32-bit float per vertex.
	FormatFloat = Format{Components: 1, Kind: ComponentFloat}
	// FormatDouble is a single 64-bit float per vertex.
	FormatDouble = Format{Components: 1, Kind: ComponentDouble}
	// FormatFloat2 is a 2-component 32-bit float vector per vertex (e.g. texture coordinates).
	FormatFloat2 = Format{Components: 2, Kind: ComponentFloat}
	// FormatFloat3 is a 3-component 32-bit float vector per vertex (e.g. position, normal).
	FormatFloat3 = Format{Components: 3, Kind: ComponentFloat}
	// FormatFloat4 is a 4-component 32-bit float vector per vertex (e.g. RGBA color, tangent).
	FormatFloat4 = Format{Components: 4, Kind: ComponentFloat}
)

// ByteSize returns the total size of one vertex worth of this format in bytes.
//
// Returns:
//   - int: component width multiplied by component count
func (f Format) ByteSize() int {
	return f.Kind.Size() * f.Components
}

// Attribute is the descriptor for a single vertex attribute bound to a buffer.
// Offset and Stride are undefined until the owning mesh has been finalized; they
// are computed exactly once, on the first Finalize or Draw call.
type Attribute struct {
	// Location is the shader input slot this attribute feeds. Unique across the whole mesh.
	Location uint32
	// Components is the number of scalar components per vertex (1 to 4).
	Components int
	// Kind is the scalar type of each component.
	Kind ComponentKind
	// Offset is the byte distance from the start of the buffer to the first value of this attribute.
	Offset uint64
	// Stride is the byte distance between consecutive values of this attribute, 0 for tightly
	// packed per-attribute arrays in non-interleaved buffers.
	Stride uint64
}

// byteSize returns the per-vertex size of the attribute in bytes.
func (a Attribute) byteSize() uint64 {
	return uint64(a.Kind.Size() * a.Components)
}
