package framebuffer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestDrawBuffersDefaultsToAttachmentZero(t *testing.T) {
	fb := NewFramebuffer("test", 64, 64,
		WithColorAttachment(0, wgpu.TextureFormatRGBA8Unorm),
	)

	buffers, err := fb.DrawBuffers()
	if err != nil {
		t.Fatalf("DrawBuffers: unexpected error: %v", err)
	}
	if len(buffers) != 1 {
		t.Fatalf("expected 1 draw buffer, got %d", len(buffers))
	}
	if buffers[0].Format != wgpu.TextureFormatRGBA8Unorm {
		t.Errorf("unexpected format %d", buffers[0].Format)
	}
}

func TestDrawBuffersNoAttachmentZero(t *testing.T) {
	fb := NewFramebuffer("test", 64, 64,
		WithColorAttachment(1, wgpu.TextureFormatRGBA8Unorm),
	)

	if _, err := fb.DrawBuffers(); err == nil {
		t.Fatal("expected error with no attachment 0 and no mapping")
	}
}

func TestMapForDrawOrdersByOutput(t *testing.T) {
	fb := NewFramebuffer("test", 64, 64,
		WithColorAttachment(0, wgpu.TextureFormatRGBA8Unorm),
		WithColorAttachment(1, wgpu.TextureFormatR32Uint),
	)

	if err := fb.MapForDraw(map[int]int{0: 0, 1: 1}); err != nil {
		t.Fatalf("MapForDraw: unexpected error: %v", err)
	}

	buffers, err := fb.DrawBuffers()
	if err != nil {
		t.Fatalf("DrawBuffers: unexpected error: %v", err)
	}
	if len(buffers) != 2 {
		t.Fatalf("expected 2 draw buffers, got %d", len(buffers))
	}
	if buffers[0].Format != wgpu.TextureFormatRGBA8Unorm {
		t.Errorf("output 0: unexpected format %d", buffers[0].Format)
	}
	if buffers[1].Format != wgpu.TextureFormatR32Uint {
		t.Errorf("output 1: unexpected format %d", buffers[1].Format)
	}
}

func TestMapForDrawMissingAttachment(t *testing.T) {
	fb := NewFramebuffer("test", 64, 64,
		WithColorAttachment(0, wgpu.TextureFormatRGBA8Unorm),
	)

	if err := fb.MapForDraw(map[int]int{0: 0, 1: 3}); err == nil {
		t.Fatal("expected error mapping to missing attachment")
	}
}

func TestDrawBuffersNonContiguousOutputs(t *testing.T) {
	fb := NewFramebuffer("test", 64, 64,
		WithColorAttachment(0, wgpu.TextureFormatRGBA8Unorm),
		WithColorAttachment(1, wgpu.TextureFormatR32Uint),
	)

	if err := fb.MapForDraw(map[int]int{0: 0, 2: 1}); err != nil {
		t.Fatalf("MapForDraw: unexpected error: %v", err)
	}
	if _, err := fb.DrawBuffers(); err == nil {
		t.Fatal("expected error for non-contiguous fragment outputs")
	}
}

func TestClearColor(t *testing.T) {
	fb := NewFramebuffer("test", 64, 64,
		WithColorAttachment(0, wgpu.TextureFormatRGBA8Unorm),
		WithClearColor(0, wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}),
	)

	a := fb.ColorAttachment(0)
	if a == nil {
		t.Fatal("missing attachment 0")
	}
	if a.ClearValue.G != 0.2 {
		t.Errorf("unexpected clear value %+v", a.ClearValue)
	}

	fb.SetClearColor(0, wgpu.Color{R: 1})
	if a.ClearValue.R != 1 || a.ClearValue.G != 0 {
		t.Errorf("SetClearColor did not replace clear value: %+v", a.ClearValue)
	}

	// no-op for missing index
	fb.SetClearColor(7, wgpu.Color{R: 1})
}

func TestColorAttachmentIndicesSorted(t *testing.T) {
	fb := NewFramebuffer("test", 4, 4)
	fb.AttachColor(2, wgpu.TextureFormatR32Uint)
	fb.AttachColor(0, wgpu.TextureFormatRGBA8Unorm)

	got := fb.ColorAttachmentIndices()
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("unexpected indices %v", got)
	}
}
