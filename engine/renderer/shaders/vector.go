package shaders

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/common"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// VectorSource is the WGSL source for the Vector program.
//
//go:embed assets/vector.wgsl
var VectorSource string

// Bind group binding indices for the Vector and DistanceFieldVector programs.
// Binding 0 is the uniform block.
const (
	vectorTextureBinding = 1
	vectorSamplerBinding = 2
)

// vector is the implementation of the Vector interface.
type vector struct {
	color                    mgl32.Vec4
	transformationProjection mgl32.Mat4

	texture *TextureBinding

	bindings bindings.BindingSet
}

// Vector defines the interface for the vector graphics program: the red channel of the
// bound vector texture is treated as coverage and multiplied with the fill color.
// Intended for antialiased 2D vector art rasterized into an alpha mask; for crisper
// results at arbitrary scales use DistanceFieldVector with a distance field texture.
type Vector interface {
	Program

	// SetColor sets the fill color.
	//
	// Parameters:
	//   - color: the RGBA fill color
	SetColor(color mgl32.Vec4)

	// SetTransformationProjectionMatrix sets the combined transformation-projection matrix.
	//
	// Parameters:
	//   - m: the combined matrix
	SetTransformationProjectionMatrix(m mgl32.Mat4)

	// BindVectorTexture stages pixel data for the vector texture slot.
	//
	// Parameters:
	//   - data: the staged texture pixel data
	BindVectorTexture(data common.TextureStagingData)
}

var _ Vector = &vector{}

// NewVector creates a new Vector program with the specified options applied.
//
// Parameters:
//   - options: a variadic list of VectorOption functions to configure the program
//
// Returns:
//   - Vector: a new instance of Vector configured with the provided options
func NewVector(options ...VectorOption) Vector {
	v := &vector{
		color:                    mgl32.Vec4{1, 1, 1, 1},
		transformationProjection: mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(v)
	}
	v.bindings = bindings.NewBindingSet(v.Key())
	return v
}

func (v *vector) Key() string {
	return "shaders/vector"
}

func (v *vector) Source() string {
	return VectorSource
}

func (v *vector) FragmentEntry() string {
	return "fs_main"
}

func (v *vector) UniformBytes() []byte {
	u := VectorUniforms{
		TransformationProjection: [16]float32(v.transformationProjection),
		Color:                    [4]float32(v.color),
	}
	return u.Marshal()
}

func (v *vector) TextureBindings() []TextureBinding {
	if v.texture != nil {
		return []TextureBinding{*v.texture}
	}
	return []TextureBinding{{View: vectorTextureBinding, Sampler: vectorSamplerBinding}}
}

func (v *vector) Bindings() bindings.BindingSet {
	return v.bindings
}

func (v *vector) SetColor(color mgl32.Vec4) {
	v.color = color
}

func (v *vector) SetTransformationProjectionMatrix(m mgl32.Mat4) {
	v.transformationProjection = m
}

func (v *vector) BindVectorTexture(data common.TextureStagingData) {
	v.texture = &TextureBinding{
		View:        vectorTextureBinding,
		Sampler:     vectorSamplerBinding,
		Data:        data,
		SamplerData: common.DefaultSamplerStagingData(),
	}
}

func (v *vector) Release() {
	v.bindings.Release()
}
