package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/prism-gfx/prism-go/engine/mesh"
)

func TestPrimitiveTopologyOf(t *testing.T) {
	cases := []struct {
		in   mesh.Topology
		want wgpu.PrimitiveTopology
	}{
		{mesh.TopologyPoints, wgpu.PrimitiveTopologyPointList},
		{mesh.TopologyLines, wgpu.PrimitiveTopologyLineList},
		{mesh.TopologyLineStrip, wgpu.PrimitiveTopologyLineStrip},
		{mesh.TopologyTriangles, wgpu.PrimitiveTopologyTriangleList},
		{mesh.TopologyTriangleStrip, wgpu.PrimitiveTopologyTriangleStrip},
	}
	for _, c := range cases {
		got, err := PrimitiveTopologyOf(c.in)
		if err != nil {
			t.Fatalf("PrimitiveTopologyOf(%d): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("PrimitiveTopologyOf(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPrimitiveTopologyOfUnsupported(t *testing.T) {
	for _, topo := range []mesh.Topology{mesh.TopologyLineLoop, mesh.TopologyTriangleFan} {
		if _, err := PrimitiveTopologyOf(topo); err == nil {
			t.Errorf("PrimitiveTopologyOf(%d): expected error, got nil", topo)
		}
	}
}

func TestVertexFormatOf(t *testing.T) {
	cases := []struct {
		in   mesh.Format
		want wgpu.VertexFormat
	}{
		{mesh.FormatFloat, wgpu.VertexFormatFloat32},
		{mesh.FormatFloat2, wgpu.VertexFormatFloat32x2},
		{mesh.FormatFloat3, wgpu.VertexFormatFloat32x3},
		{mesh.FormatFloat4, wgpu.VertexFormatFloat32x4},
		{mesh.Format{Components: 2, Kind: mesh.ComponentInt}, wgpu.VertexFormatSint32x2},
		{mesh.Format{Components: 1, Kind: mesh.ComponentUnsignedInt}, wgpu.VertexFormatUint32},
		{mesh.Format{Components: 4, Kind: mesh.ComponentUnsignedByte}, wgpu.VertexFormatUint8x4},
		{mesh.Format{Components: 2, Kind: mesh.ComponentShort}, wgpu.VertexFormatSint16x2},
	}
	for _, c := range cases {
		got, err := VertexFormatOf(c.in)
		if err != nil {
			t.Fatalf("VertexFormatOf(%+v): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("VertexFormatOf(%+v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestVertexFormatOfUnsupported(t *testing.T) {
	cases := []mesh.Format{
		{Components: 1, Kind: mesh.ComponentDouble},
		{Components: 3, Kind: mesh.ComponentDouble},
		{Components: 1, Kind: mesh.ComponentByte},
		{Components: 3, Kind: mesh.ComponentUnsignedShort},
	}
	for _, c := range cases {
		if _, err := VertexFormatOf(c); err == nil {
			t.Errorf("VertexFormatOf(%+v): expected error, got nil", c)
		}
	}
}
