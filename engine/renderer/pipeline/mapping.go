package pipeline

import (
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/prism-gfx/prism-go/engine/mesh"
)

// PrimitiveTopologyOf maps a mesh topology to the corresponding WebGPU primitive
// topology. Line loops and triangle fans have no WebGPU equivalent and must be
// converted to line strips or triangle lists before drawing.
//
// Parameters:
//   - t: the mesh topology to map
//
// Returns:
//   - wgpu.PrimitiveTopology: the corresponding WebGPU topology
//   - error: error if the topology cannot be expressed in WebGPU
func PrimitiveTopologyOf(t mesh.Topology) (wgpu.PrimitiveTopology, error) {
	switch t {
	case mesh.TopologyPoints:
		return wgpu.PrimitiveTopologyPointList, nil
	case mesh.TopologyLines:
		return wgpu.PrimitiveTopologyLineList, nil
	case mesh.TopologyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip, nil
	case mesh.TopologyTriangles:
		return wgpu.PrimitiveTopologyTriangleList, nil
	case mesh.TopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip, nil
	case mesh.TopologyLineLoop, mesh.TopologyTriangleFan:
		return 0, errors.Newf("topology %d is not supported by WebGPU", t)
	default:
		return 0, errors.Newf("unknown topology %d", t)
	}
}

// VertexFormatOf maps an attribute format to the corresponding WebGPU vertex format.
// Double-precision components have no WebGPU vertex format, and 8-bit and 16-bit
// components only exist in 2- and 4-component widths.
//
// Parameters:
//   - f: the attribute format to map
//
// Returns:
//   - wgpu.VertexFormat: the corresponding WebGPU vertex format
//   - error: error if the format cannot be expressed in WebGPU
func VertexFormatOf(f mesh.Format) (wgpu.VertexFormat, error) {
	switch f.Kind {
	case mesh.ComponentFloat:
		switch f.Components {
		case 1:
			return wgpu.VertexFormatFloat32, nil
		case 2:
			return wgpu.VertexFormatFloat32x2, nil
		case 3:
			return wgpu.VertexFormatFloat32x3, nil
		case 4:
			return wgpu.VertexFormatFloat32x4, nil
		}
	case mesh.ComponentInt:
		switch f.Components {
		case 1:
			return wgpu.VertexFormatSint32, nil
		case 2:
			return wgpu.VertexFormatSint32x2, nil
		case 3:
			return wgpu.VertexFormatSint32x3, nil
		case 4:
			return wgpu.VertexFormatSint32x4, nil
		}
	case mesh.ComponentUnsignedInt:
		switch f.Components {
		case 1:
			return wgpu.VertexFormatUint32, nil
		case 2:
			return wgpu.VertexFormatUint32x2, nil
		case 3:
			return wgpu.VertexFormatUint32x3, nil
		case 4:
			return wgpu.VertexFormatUint32x4, nil
		}
	case mesh.ComponentByte:
		switch f.Components {
		case 2:
			return wgpu.VertexFormatSint8x2, nil
		case 4:
			return wgpu.VertexFormatSint8x4, nil
		}
	case mesh.ComponentUnsignedByte:
		switch f.Components {
		case 2:
			return wgpu.VertexFormatUint8x2, nil
		case 4:
			return wgpu.VertexFormatUint8x4, nil
		}
	case mesh.ComponentShort:
		switch f.Components {
		case 2:
			return wgpu.VertexFormatSint16x2, nil
		case 4:
			return wgpu.VertexFormatSint16x4, nil
		}
	case mesh.ComponentUnsignedShort:
		switch f.Components {
		case 2:
			return wgpu.VertexFormatUint16x2, nil
		case 4:
			return wgpu.VertexFormatUint16x4, nil
		}
	case mesh.ComponentDouble:
		return 0, errors.New("double-precision vertex formats are not supported by WebGPU")
	}
	return 0, errors.Newf("no WebGPU vertex format for %d components of kind %d", f.Components, f.Kind)
}
