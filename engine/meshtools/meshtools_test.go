package meshtools

import (
	"bytes"
	"testing"

	"github.com/prism-gfx/prism-go/common"
)

func TestDuplicateExpandsRecords(t *testing.T) {
	// Two float3 records, quad-style index pattern.
	src := common.SliceToBytes([]float32{
		1, 2, 3,
		4, 5, 6,
	})
	indices := []uint32{0, 1, 1, 0}

	out, err := Duplicate(indices, 12, src)
	if err != nil {
		t.Fatalf("Duplicate: unexpected error: %v", err)
	}
	if len(out) != 4*12 {
		t.Fatalf("unexpected output length %d, want 48", len(out))
	}

	want := common.SliceToBytes([]float32{
		1, 2, 3,
		4, 5, 6,
		4, 5, 6,
		1, 2, 3,
	})
	if !bytes.Equal(out, want) {
		t.Errorf("unexpected expansion\ngot:  %v\nwant: %v", out, want)
	}
}

func TestDuplicateIndexOutOfRange(t *testing.T) {
	src := make([]byte, 24)
	if _, err := Duplicate([]uint32{0, 2}, 12, src); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestDuplicateRaggedSource(t *testing.T) {
	if _, err := Duplicate([]uint32{0}, 12, make([]byte, 20)); err == nil {
		t.Fatal("expected error for source not a multiple of stride")
	}
}

func TestDuplicateInvalidStride(t *testing.T) {
	if _, err := Duplicate([]uint32{0}, 0, nil); err == nil {
		t.Fatal("expected error for zero stride")
	}
}

func TestDuplicateEmptyIndices(t *testing.T) {
	out, err := Duplicate(nil, 12, make([]byte, 24))
	if err != nil {
		t.Fatalf("Duplicate: unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(out))
	}
}

func TestDuplicateLargeMatchesSerial(t *testing.T) {
	// Big enough to cross the parallel threshold: 16-byte records, 128k indices.
	const stride = 16
	const records = 1024

	src := make([]byte, records*stride)
	for i := range src {
		src[i] = byte(i)
	}
	indices := make([]uint32, duplicateParallelThreshold/stride+1)
	for i := range indices {
		indices[i] = uint32((i * 7) % records)
	}

	got, err := Duplicate(indices, stride, src)
	if err != nil {
		t.Fatalf("Duplicate: unexpected error: %v", err)
	}

	want := make([]byte, len(indices)*stride)
	duplicateRange(want, indices, stride, src, 0, len(indices))

	if !bytes.Equal(got, want) {
		t.Error("parallel expansion differs from serial expansion")
	}
}

func TestVertexIndices(t *testing.T) {
	got := VertexIndices(4)
	want := []float32{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("unexpected length %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}

	if len(VertexIndices(0)) != 0 {
		t.Error("expected empty slice for n=0")
	}
}
