package distancefield

import (
	"image"
	"image/color"
	"testing"
)

// halfFilled returns a w x h alpha mask with the left half covered.
func halfFilled(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var a uint8
			if x < w/2 {
				a = 0xff
			}
			img.SetNRGBA(x, y, color.NRGBA{A: a})
		}
	}
	return img
}

func TestFromAlphaEdgeValues(t *testing.T) {
	field, err := FromAlpha(halfFilled(16, 16), 4)
	if err != nil {
		t.Fatalf("FromAlpha: unexpected error: %v", err)
	}

	// Pixels adjacent to the coverage boundary are one pixel from the edge.
	insideEdge := field.GrayAt(7, 8).Y
	outsideEdge := field.GrayAt(8, 8).Y
	if insideEdge <= 0x80 {
		t.Errorf("inside edge pixel should be above 0.5, got %d", insideEdge)
	}
	if outsideEdge >= 0x80 {
		t.Errorf("outside edge pixel should be below 0.5, got %d", outsideEdge)
	}

	// Values must step monotonically across the edge.
	if insideEdge <= outsideEdge {
		t.Errorf("field not decreasing across edge: %d vs %d", insideEdge, outsideEdge)
	}
}

func TestFromAlphaSaturation(t *testing.T) {
	field, err := FromAlpha(halfFilled(32, 32), 2)
	if err != nil {
		t.Fatalf("FromAlpha: unexpected error: %v", err)
	}

	// Far from the edge the field saturates fully.
	if got := field.GrayAt(0, 16).Y; got != 0xff {
		t.Errorf("deep inside should saturate to 255, got %d", got)
	}
	if got := field.GrayAt(31, 16).Y; got != 0 {
		t.Errorf("deep outside should saturate to 0, got %d", got)
	}
}

func TestFromAlphaEmptySource(t *testing.T) {
	if _, err := FromAlpha(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 4); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestProcessDownsamples(t *testing.T) {
	out, err := Process(halfFilled(64, 64), 8, 16, 16)
	if err != nil {
		t.Fatalf("Process: unexpected error: %v", err)
	}

	b := out.Bounds()
	if b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("unexpected output size %dx%d", b.Dx(), b.Dy())
	}

	// Downsampling preserves the inside/outside gradient.
	if inside, outside := out.GrayAt(2, 8).Y, out.GrayAt(13, 8).Y; inside <= outside {
		t.Errorf("gradient lost after downsample: inside %d, outside %d", inside, outside)
	}
}

func TestProcessValidation(t *testing.T) {
	src := halfFilled(8, 8)
	if _, err := Process(src, 0, 4, 4); err == nil {
		t.Error("expected error for zero radius")
	}
	if _, err := Process(src, 4, 0, 4); err == nil {
		t.Error("expected error for zero target width")
	}
}
