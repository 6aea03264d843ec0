package shaders

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/common"
)

func float32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte buffer", offset, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func uint32At(t *testing.T, buf []byte, offset int) uint32 {
	t.Helper()
	if offset+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte buffer", offset, len(buf))
	}
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

func TestUniformBlockSizes(t *testing.T) {
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"phong", len((&PhongUniforms{}).Marshal()), 272},
		{"flat", len((&FlatUniforms{}).Marshal()), 96},
		{"vertex_color", len((&VertexColorUniforms{}).Marshal()), 64},
		{"vector", len((&VectorUniforms{}).Marshal()), 80},
		{"distance_field_vector", len((&DistanceFieldVectorUniforms{}).Marshal()), 112},
		{"mesh_visualizer", len((&MeshVisualizerUniforms{}).Marshal()), 192},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s uniform block: got %d bytes, want %d", c.name, c.got, c.want)
		}
	}
}

func TestPhongUniformOffsets(t *testing.T) {
	u := PhongUniforms{
		Transformation: [16]float32{0: 1.5},
		Projection:     [16]float32{0: 2.5},
		NormalMatrix:   [9]float32{0: 3.5, 3: 4.5, 6: 5.5},
		AmbientColor:   [4]float32{0.1, 0.2, 0.3, 0.4},
		DiffuseColor:   [4]float32{0: 0.5},
		SpecularColor:  [4]float32{0: 0.6},
		LightPosition:  [3]float32{7, 8, 9},
		Shininess:      80,
		LightColor:     [3]float32{1, 0.5, 0.25},
		AlphaMask:      0.75,
		Flags:          uint32(PhongFlagDiffuseTexture),
	}
	buf := u.Marshal()

	if got := float32At(t, buf, 0); got != 1.5 {
		t.Errorf("transformation at 0: got %f", got)
	}
	if got := float32At(t, buf, 64); got != 2.5 {
		t.Errorf("projection at 64: got %f", got)
	}
	// mat3x3 columns are vec4-padded: 16 bytes apart.
	if got := float32At(t, buf, 128); got != 3.5 {
		t.Errorf("normal matrix col 0 at 128: got %f", got)
	}
	if got := float32At(t, buf, 144); got != 4.5 {
		t.Errorf("normal matrix col 1 at 144: got %f", got)
	}
	if got := float32At(t, buf, 160); got != 5.5 {
		t.Errorf("normal matrix col 2 at 160: got %f", got)
	}
	if got := float32At(t, buf, 140); got != 0 {
		t.Errorf("normal matrix col 0 padding at 140: got %f", got)
	}
	if got := float32At(t, buf, 176); got != 0.1 {
		t.Errorf("ambient color at 176: got %f", got)
	}
	if got := float32At(t, buf, 192); got != 0.5 {
		t.Errorf("diffuse color at 192: got %f", got)
	}
	if got := float32At(t, buf, 208); got != 0.6 {
		t.Errorf("specular color at 208: got %f", got)
	}
	if got := float32At(t, buf, 224); got != 7 {
		t.Errorf("light position at 224: got %f", got)
	}
	if got := float32At(t, buf, 236); got != 80 {
		t.Errorf("shininess at 236: got %f", got)
	}
	if got := float32At(t, buf, 240); got != 1 {
		t.Errorf("light color at 240: got %f", got)
	}
	if got := float32At(t, buf, 252); got != 0.75 {
		t.Errorf("alpha mask at 252: got %f", got)
	}
	if got := uint32At(t, buf, 256); got != uint32(PhongFlagDiffuseTexture) {
		t.Errorf("flags at 256: got %d", got)
	}
}

func TestFlatUniformOffsets(t *testing.T) {
	u := FlatUniforms{
		TransformationProjection: [16]float32{0: 1.5},
		Color:                    [4]float32{0.25, 0.5, 0.75, 1},
		ObjectID:                 42,
		AlphaMask:                0.5,
		Flags:                    uint32(FlatFlagObjectID),
	}
	buf := u.Marshal()

	if got := float32At(t, buf, 64); got != 0.25 {
		t.Errorf("color at 64: got %f", got)
	}
	if got := uint32At(t, buf, 80); got != 42 {
		t.Errorf("object id at 80: got %d", got)
	}
	if got := float32At(t, buf, 84); got != 0.5 {
		t.Errorf("alpha mask at 84: got %f", got)
	}
	if got := uint32At(t, buf, 88); got != uint32(FlatFlagObjectID) {
		t.Errorf("flags at 88: got %d", got)
	}
}

func TestMeshVisualizerUniformOffsets(t *testing.T) {
	u := MeshVisualizerUniforms{
		ViewportSize:   [2]float32{800, 600},
		WireframeWidth: 2,
		Smoothness:     1.5,
		Flags:          uint32(MeshVisualizerFlagWireframe),
	}
	buf := u.Marshal()

	if got := float32At(t, buf, 160); got != 800 {
		t.Errorf("viewport width at 160: got %f", got)
	}
	if got := float32At(t, buf, 164); got != 600 {
		t.Errorf("viewport height at 164: got %f", got)
	}
	if got := float32At(t, buf, 168); got != 2 {
		t.Errorf("wireframe width at 168: got %f", got)
	}
	if got := float32At(t, buf, 172); got != 1.5 {
		t.Errorf("smoothness at 172: got %f", got)
	}
	if got := uint32At(t, buf, 176); got != uint32(MeshVisualizerFlagWireframe) {
		t.Errorf("flags at 176: got %d", got)
	}
}

func TestProgramKeysEncodeFlags(t *testing.T) {
	plain := NewPhong()
	textured := NewPhong(WithPhongFlags(PhongFlagDiffuseTexture))
	if plain.Key() == textured.Key() {
		t.Error("phong variants with different flags must have different keys")
	}

	flat := NewFlat()
	flatID := NewFlat(WithFlatFlags(FlatFlagObjectID))
	if flat.Key() == flatID.Key() {
		t.Error("flat variants with different flags must have different keys")
	}

	// Same configuration yields the same key for pipeline cache sharing.
	if NewPhong().Key() != NewPhong().Key() {
		t.Error("identical phong configurations must share a key")
	}
}

func TestFlatFragmentEntrySelection(t *testing.T) {
	if got := NewFlat().FragmentEntry(); got != "fs_main" {
		t.Errorf("plain flat entry: got %q", got)
	}
	if got := NewFlat(WithFlatFlags(FlatFlagObjectID)).FragmentEntry(); got != "fs_main_object_id" {
		t.Errorf("object-id flat entry: got %q", got)
	}
}

func TestPhongTextureSlotsAlwaysDeclared(t *testing.T) {
	p := NewPhong(WithPhongFlags(PhongFlagDiffuseTexture))

	// All three texture slots must be declared so the bind group layout is
	// independent of what the caller stages.
	tbs := p.TextureBindings()
	if len(tbs) != 3 {
		t.Fatalf("expected 3 declared texture slots, got %d", len(tbs))
	}
	for _, tb := range tbs {
		if len(tb.Data.Pixels) != 0 {
			t.Errorf("unstaged slot %d should have no pixel data", tb.View)
		}
	}

	p.BindDiffuseTexture(common.TextureStagingData{Pixels: []byte{1, 2, 3, 4}, Width: 1, Height: 1})
	tbs = p.TextureBindings()
	if len(tbs) != 3 {
		t.Fatalf("expected 3 declared texture slots after staging, got %d", len(tbs))
	}
	staged := 0
	for _, tb := range tbs {
		if len(tb.Data.Pixels) > 0 {
			staged++
			if tb.View != 3 || tb.Sampler != 4 {
				t.Errorf("diffuse slot bound at view %d, sampler %d", tb.View, tb.Sampler)
			}
		}
	}
	if staged != 1 {
		t.Errorf("expected exactly 1 staged slot, got %d", staged)
	}
}

func TestVertexColorHasNoTextureSlots(t *testing.T) {
	if got := NewVertexColor().TextureBindings(); len(got) != 0 {
		t.Errorf("vertex color should declare no texture slots, got %d", len(got))
	}
}

func TestPhongDefaults(t *testing.T) {
	buf := NewPhong().UniformBytes()

	// Diffuse defaults to opaque white at offset 192.
	for i := 0; i < 4; i++ {
		if got := float32At(t, buf, 192+i*4); got != 1 {
			t.Errorf("diffuse default component %d: got %f, want 1", i, got)
		}
	}
	// Ambient defaults to black with alpha 1 at offset 176.
	if got := float32At(t, buf, 176); got != 0 {
		t.Errorf("ambient default: got %f, want 0", got)
	}
	if got := float32At(t, buf, 188); got != 1 {
		t.Errorf("ambient alpha default: got %f, want 1", got)
	}
	// Shininess defaults to 80.
	if got := float32At(t, buf, 236); got != 80 {
		t.Errorf("shininess default: got %f, want 80", got)
	}
	// Transformation defaults to identity.
	if got := float32At(t, buf, 0); got != 1 {
		t.Errorf("transformation default not identity: got %f", got)
	}
}

func TestDistanceFieldVectorDefaults(t *testing.T) {
	buf := NewDistanceFieldVector().UniformBytes()

	// Outline disabled by default: start == end == 0.5.
	if got := float32At(t, buf, 96); got != 0.5 {
		t.Errorf("outline start default: got %f, want 0.5", got)
	}
	if got := float32At(t, buf, 100); got != 0.5 {
		t.Errorf("outline end default: got %f, want 0.5", got)
	}
	if got := float32At(t, buf, 104); math.Abs(float64(got)-0.04) > 1e-6 {
		t.Errorf("smoothness default: got %f, want 0.04", got)
	}
}

func TestMeshVisualizerSetters(t *testing.T) {
	m := NewMeshVisualizer(WithMeshVisualizerFlags(MeshVisualizerFlagWireframe))
	m.SetViewportSize(mgl32.Vec2{1024, 768})
	m.SetWireframeWidth(3)
	m.SetWireframeColor(mgl32.Vec4{1, 0, 0, 1})

	buf := m.UniformBytes()
	if got := float32At(t, buf, 160); got != 1024 {
		t.Errorf("viewport size not applied: got %f", got)
	}
	if got := float32At(t, buf, 168); got != 3 {
		t.Errorf("wireframe width not applied: got %f", got)
	}
	if got := float32At(t, buf, 144); got != 1 {
		t.Errorf("wireframe color not applied: got %f", got)
	}
	if got := uint32At(t, buf, 176); got != uint32(MeshVisualizerFlagWireframe) {
		t.Errorf("flags not applied: got %d", got)
	}
}

func TestProgramSourcesEmbedEntryPoints(t *testing.T) {
	sources := map[string]string{
		"phong":                 PhongSource,
		"flat":                  FlatSource,
		"vertex_color":          VertexColorSource,
		"vector":                VectorSource,
		"distance_field_vector": DistanceFieldVectorSource,
		"mesh_visualizer":       MeshVisualizerSource,
	}
	for name, src := range sources {
		if src == "" {
			t.Errorf("%s source is empty", name)
			continue
		}
		for _, entry := range []string{"vs_main", "fs_main"} {
			if !containsEntry(src, entry) {
				t.Errorf("%s source missing %s entry point", name, entry)
			}
		}
	}
	if !containsEntry(FlatSource, "fs_main_object_id") {
		t.Error("flat source missing fs_main_object_id entry point")
	}
}

func containsEntry(src, entry string) bool {
	for i := 0; i+len(entry) <= len(src); i++ {
		if src[i:i+len(entry)] == entry {
			return true
		}
	}
	return false
}
