package mesh

import (
	"testing"
)

// recordingSubmitter captures draw submissions for inspection without a live GPU.
type recordingSubmitter struct {
	calls    int
	topology Topology
	count    int
	buffers  []Buffer
	err      error
}

func (r *recordingSubmitter) DrawMesh(topology Topology, vertexCount int, buffers []Buffer) error {
	r.calls++
	r.topology = topology
	r.count = vertexCount
	r.buffers = buffers
	return r.err
}

func TestInterleavedLayout(t *testing.T) {
	m := NewMesh(TopologyTriangles, 3)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, FormatFloat3) // 12 bytes
	m.BindAttribute(buf, 1, FormatFloat2) // 8 bytes

	m.Finalize()

	attrs := buf.Attributes()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Offset != 0 || attrs[0].Stride != 20 {
		t.Errorf("attribute 0: expected offset 0 stride 20, got offset %d stride %d", attrs[0].Offset, attrs[0].Stride)
	}
	if attrs[1].Offset != 12 || attrs[1].Stride != 20 {
		t.Errorf("attribute 1: expected offset 12 stride 20, got offset %d stride %d", attrs[1].Offset, attrs[1].Stride)
	}
}

func TestNonInterleavedLayout(t *testing.T) {
	m := NewMesh(TopologyTriangles, 10)
	buf := m.AddBuffer(false)
	m.BindAttribute(buf, 0, FormatFloat3) // 12 bytes per vertex
	m.BindAttribute(buf, 1, FormatFloat2) // 8 bytes per vertex

	m.Finalize()

	attrs := buf.Attributes()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Offset != 0 || attrs[0].Stride != 0 {
		t.Errorf("attribute 0: expected offset 0 stride 0, got offset %d stride %d", attrs[0].Offset, attrs[0].Stride)
	}
	// Attribute 1 starts after the whole position array: 12 bytes x 10 vertices.
	if attrs[1].Offset != 120 || attrs[1].Stride != 0 {
		t.Errorf("attribute 1: expected offset 120 stride 0, got offset %d stride %d", attrs[1].Offset, attrs[1].Stride)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	m := NewMesh(TopologyTriangleStrip, 4)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, FormatFloat3)
	m.BindAttribute(buf, 1, FormatFloat4)

	m.Finalize()
	first := append([]Attribute(nil), buf.Attributes()...)

	sub := &recordingSubmitter{}
	for i := 0; i < 3; i++ {
		m.Finalize()
		if err := m.Draw(sub); err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
	}

	for i, a := range buf.Attributes() {
		if a != first[i] {
			t.Errorf("attribute %d changed after repeated finalize: %+v != %+v", i, a, first[i])
		}
	}
	if sub.calls != 3 {
		t.Errorf("expected 3 draw submissions, got %d", sub.calls)
	}
}

func TestDuplicateLocationRejected(t *testing.T) {
	m := NewMesh(TopologyTriangles, 3)
	a := m.AddBuffer(true)
	b := m.AddBuffer(false)

	m.BindAttribute(a, 0, FormatFloat3)
	m.BindAttribute(a, 0, FormatFloat2) // same buffer, duplicate location
	m.BindAttribute(b, 0, FormatFloat4) // different buffer, duplicate location

	if got := len(a.Attributes()); got != 1 {
		t.Fatalf("expected 1 attribute on buffer a, got %d", got)
	}
	if got := len(b.Attributes()); got != 0 {
		t.Fatalf("expected 0 attributes on buffer b, got %d", got)
	}

	// The surviving descriptor must match the first successful bind.
	attr := a.Attributes()[0]
	if attr.Components != 3 || attr.Kind != ComponentFloat {
		t.Errorf("expected the first bind (3 x float) to survive, got %d x %v", attr.Components, attr.Kind)
	}
}

func TestForeignBufferRejected(t *testing.T) {
	m := NewMesh(TopologyTriangles, 3)
	other := NewMesh(TopologyTriangles, 3)
	foreign := other.AddBuffer(true)

	m.BindAttribute(foreign, 0, FormatFloat3)

	if m.Bound(0) {
		t.Error("binding to a foreign buffer must not register the location")
	}
	if got := len(foreign.Attributes()); got != 0 {
		t.Errorf("foreign buffer gained %d attributes", got)
	}
}

func TestBindAfterFinalizeRejected(t *testing.T) {
	m := NewMesh(TopologyLines, 2)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, FormatFloat3)

	sub := &recordingSubmitter{}
	if err := m.Draw(sub); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if !m.Finalized() {
		t.Fatal("mesh must be finalized after first draw")
	}

	m.BindAttribute(buf, 1, FormatFloat2)
	if m.Bound(1) {
		t.Error("post-finalization bind must have no effect")
	}
	if got := len(buf.Attributes()); got != 1 {
		t.Errorf("expected 1 attribute, got %d", got)
	}
}

func TestDrawDelegatesTopologyAndCount(t *testing.T) {
	m := NewMesh(TopologyTriangleFan, 7)
	buf := m.AddBuffer(false)
	m.BindAttribute(buf, 0, FormatFloat3)

	sub := &recordingSubmitter{}
	if err := m.Draw(sub); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if sub.topology != TopologyTriangleFan {
		t.Errorf("expected topology %v, got %v", TopologyTriangleFan, sub.topology)
	}
	if sub.count != 7 {
		t.Errorf("expected vertex count 7, got %d", sub.count)
	}
	if len(sub.buffers) != 1 {
		t.Errorf("expected 1 buffer in submission, got %d", len(sub.buffers))
	}
}

func TestMixedKindsLayout(t *testing.T) {
	// One interleaved record mixing scalar kinds: byte (1) + short (2) + double (8).
	m := NewMesh(TopologyPoints, 5)
	buf := m.AddBuffer(true)
	m.BindAttribute(buf, 0, FormatByte)
	m.BindAttribute(buf, 1, FormatShort)
	m.BindAttribute(buf, 2, FormatDouble)

	m.Finalize()

	attrs := buf.Attributes()
	wantOffsets := []uint64{0, 1, 3}
	for i, a := range attrs {
		if a.Offset != wantOffsets[i] {
			t.Errorf("attribute %d: expected offset %d, got %d", i, wantOffsets[i], a.Offset)
		}
		if a.Stride != 11 {
			t.Errorf("attribute %d: expected stride 11, got %d", i, a.Stride)
		}
	}
}

func TestMultipleBuffersLayout(t *testing.T) {
	// Layout must be computed independently per buffer.
	m := NewMesh(TopologyTriangles, 6)
	inter := m.AddBuffer(true)
	flat := m.AddBuffer(false)

	m.BindAttribute(inter, 0, FormatFloat3)
	m.BindAttribute(inter, 1, FormatFloat2)
	m.BindAttribute(flat, 2, FormatFloat4)
	m.BindAttribute(flat, 3, FormatFloat)

	m.Finalize()

	ia := inter.Attributes()
	if ia[1].Offset != 12 || ia[1].Stride != 20 {
		t.Errorf("interleaved attribute 1: got offset %d stride %d", ia[1].Offset, ia[1].Stride)
	}
	fa := flat.Attributes()
	if fa[0].Offset != 0 || fa[0].Stride != 0 {
		t.Errorf("flat attribute 0: got offset %d stride %d", fa[0].Offset, fa[0].Stride)
	}
	if fa[1].Offset != 16*6 || fa[1].Stride != 0 {
		t.Errorf("flat attribute 1: expected offset %d, got %d", 16*6, fa[1].Offset)
	}
}

func TestReleaseDropsStagedData(t *testing.T) {
	m := NewMesh(TopologyTriangles, 3)
	buf := m.AddBuffer(true)
	buf.SetData(make([]byte, 36))

	m.Release()

	if buf.Data() != nil {
		t.Error("expected staged data to be dropped on release")
	}
}

func TestComponentKindSizes(t *testing.T) {
	cases := []struct {
		kind ComponentKind
		want int
	}{
		{ComponentByte, 1},
		{ComponentUnsignedByte, 1},
		{ComponentShort, 2},
		{ComponentUnsignedShort, 2},
		{ComponentInt, 4},
		{ComponentUnsignedInt, 4},
		{ComponentFloat, 4},
		{ComponentDouble, 8},
	}
	for _, c := range cases {
		if got := c.kind.Size(); got != c.want {
			t.Errorf("kind %v: expected size %d, got %d", c.kind, c.want, got)
		}
	}
	if got := FormatFloat3.ByteSize(); got != 12 {
		t.Errorf("FormatFloat3: expected 12 bytes, got %d", got)
	}
}
