package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/prism-gfx/prism-go/engine/mesh"
)

func TestVertexBindingsInterleaved(t *testing.T) {
	m := mesh.NewMesh(mesh.TopologyTriangles, 3)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, mesh.FormatFloat3)
	m.BindAttribute(buf, 1, mesh.FormatFloat2)
	m.Finalize()
	buf.SetGPUBuffer(&wgpu.Buffer{})

	layouts, slots, err := vertexBindings(m.Buffers())
	if err != nil {
		t.Fatalf("vertexBindings: unexpected error: %v", err)
	}
	if len(layouts) != 1 || len(slots) != 1 {
		t.Fatalf("expected 1 layout and 1 slot, got %d and %d", len(layouts), len(slots))
	}
	if layouts[0].ArrayStride != 20 {
		t.Errorf("unexpected stride %d, want 20", layouts[0].ArrayStride)
	}
	if len(layouts[0].Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(layouts[0].Attributes))
	}
	if layouts[0].Attributes[1].Offset != 12 {
		t.Errorf("unexpected offset %d, want 12", layouts[0].Attributes[1].Offset)
	}
	if layouts[0].Attributes[1].Format != wgpu.VertexFormatFloat32x2 {
		t.Errorf("unexpected format %d", layouts[0].Attributes[1].Format)
	}
	if slots[0].Offset != 0 {
		t.Errorf("unexpected slot offset %d", slots[0].Offset)
	}
}

func TestVertexBindingsTightlyPacked(t *testing.T) {
	m := mesh.NewMesh(mesh.TopologyTriangles, 10)
	buf := m.AddBuffer(false)
	m.BindAttribute(buf, 0, mesh.FormatFloat3)
	m.BindAttribute(buf, 3, mesh.FormatFloat4)
	m.Finalize()
	buf.SetGPUBuffer(&wgpu.Buffer{})

	layouts, slots, err := vertexBindings(m.Buffers())
	if err != nil {
		t.Fatalf("vertexBindings: unexpected error: %v", err)
	}
	if len(layouts) != 2 || len(slots) != 2 {
		t.Fatalf("expected 2 layouts and 2 slots, got %d and %d", len(layouts), len(slots))
	}
	// Each packed attribute becomes its own slot with the attribute size as stride.
	if layouts[0].ArrayStride != 12 || layouts[1].ArrayStride != 16 {
		t.Errorf("unexpected strides %d, %d", layouts[0].ArrayStride, layouts[1].ArrayStride)
	}
	// Second attribute block begins after 10 vertices of the first.
	if slots[0].Offset != 0 || slots[1].Offset != 120 {
		t.Errorf("unexpected slot offsets %d, %d", slots[0].Offset, slots[1].Offset)
	}
	if layouts[1].Attributes[0].ShaderLocation != 3 {
		t.Errorf("unexpected shader location %d", layouts[1].Attributes[0].ShaderLocation)
	}
	if layouts[1].Attributes[0].Offset != 0 {
		t.Errorf("packed attribute offset within slot should be 0, got %d", layouts[1].Attributes[0].Offset)
	}
}

func TestVertexBindingsUnuploadedBuffer(t *testing.T) {
	m := mesh.NewMesh(mesh.TopologyTriangles, 3)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, mesh.FormatFloat3)
	m.Finalize()

	if _, _, err := vertexBindings(m.Buffers()); err == nil {
		t.Fatal("expected error for buffer without GPU upload")
	}
}

func TestVertexBindingsDoubleRejected(t *testing.T) {
	m := mesh.NewMesh(mesh.TopologyTriangles, 3)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, mesh.Format{Components: 3, Kind: mesh.ComponentDouble})
	m.Finalize()
	buf.SetGPUBuffer(&wgpu.Buffer{})

	if _, _, err := vertexBindings(m.Buffers()); err == nil {
		t.Fatal("expected error for double-precision attribute")
	}
}

func TestLayoutSignatureStable(t *testing.T) {
	build := func() []wgpu.VertexBufferLayout {
		m := mesh.NewMesh(mesh.TopologyTriangles, 3)
		buf := m.AddBuffer(true)
		m.BindAttribute(buf, 0, mesh.FormatFloat3)
		m.BindAttribute(buf, 2, mesh.FormatFloat3)
		m.Finalize()
		buf.SetGPUBuffer(&wgpu.Buffer{})
		layouts, _, err := vertexBindings(m.Buffers())
		if err != nil {
			t.Fatalf("vertexBindings: %v", err)
		}
		return layouts
	}

	a := layoutSignature(build())
	b := layoutSignature(build())
	if a != b {
		t.Errorf("signatures for identical layouts differ: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("empty signature")
	}
}
