package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG encodes a 2x2 test image with distinct corner colors.
func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{G: 0xff, A: 0xff})
	img.SetNRGBA(0, 1, color.NRGBA{B: 0xff, A: 0xff})
	img.SetNRGBA(1, 1, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestImportedTextureDecodeEmbedded(t *testing.T) {
	tex := &ImportedTexture{Name: "test", Data: encodePNG(t), MimeType: "image/png"}

	pixels, width, height, err := tex.Decode()
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if width != 2 || height != 2 {
		t.Fatalf("unexpected size %dx%d", width, height)
	}
	if len(pixels) != 2*2*4 {
		t.Fatalf("unexpected pixel data length %d", len(pixels))
	}
	if pixels[0] != 0xff || pixels[1] != 0 || pixels[2] != 0 || pixels[3] != 0xff {
		t.Errorf("top-left pixel should be opaque red, got %v", pixels[:4])
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Errorf("dimensions not recorded on the texture: %dx%d", tex.Width, tex.Height)
	}
}

func TestImportedTextureDecodeErrors(t *testing.T) {
	var nilTex *ImportedTexture
	if _, _, _, err := nilTex.Decode(); err == nil {
		t.Error("expected error for nil texture")
	}
	if _, _, _, err := (&ImportedTexture{Name: "empty"}).Decode(); err == nil {
		t.Error("expected error for texture with neither data nor path")
	}
	if _, _, _, err := (&ImportedTexture{Name: "garbage", Data: []byte{1, 2, 3}}).Decode(); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestStaging(t *testing.T) {
	tex := &ImportedTexture{Name: "test", Data: encodePNG(t)}

	staging, err := tex.Staging()
	if err != nil {
		t.Fatalf("Staging: unexpected error: %v", err)
	}
	if staging.Width != 2 || staging.Height != 2 {
		t.Errorf("unexpected staging size %dx%d", staging.Width, staging.Height)
	}
	if len(staging.Pixels) != 16 {
		t.Errorf("unexpected staging pixel length %d", len(staging.Pixels))
	}
}

func TestDecodeAll(t *testing.T) {
	data := encodePNG(t)
	textures := []*ImportedTexture{
		{Name: "a", Data: data},
		{Name: "b", Data: data},
		{Name: "c", Data: data},
	}

	results, err := DecodeAll(textures)
	if err != nil {
		t.Fatalf("DecodeAll: unexpected error: %v", err)
	}
	if len(results) != len(textures) {
		t.Fatalf("expected %d results, got %d", len(textures), len(results))
	}
	for i, r := range results {
		if r.Width != 2 || r.Height != 2 {
			t.Errorf("result %d: unexpected size %dx%d", i, r.Width, r.Height)
		}
	}
}

func TestDecodeAllPropagatesFailure(t *testing.T) {
	textures := []*ImportedTexture{
		{Name: "good", Data: encodePNG(t)},
		{Name: "bad", Data: []byte{0xde, 0xad}},
	}
	if _, err := DecodeAll(textures); err == nil {
		t.Fatal("expected error when one decode fails")
	}
}

func TestDefaultSamplerStagingData(t *testing.T) {
	s := DefaultSamplerStagingData()
	if s.MaxAnisotropy != 1 {
		t.Errorf("unexpected default anisotropy %d", s.MaxAnisotropy)
	}
	if s.LodMaxClamp != 32 {
		t.Errorf("unexpected default lod clamp %f", s.LodMaxClamp)
	}
}
