package shaders

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/common"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// DistanceFieldVectorSource is the WGSL source for the DistanceFieldVector program.
//
//go:embed assets/distance_field_vector.wgsl
var DistanceFieldVectorSource string

// distanceFieldVector is the implementation of the DistanceFieldVector interface.
type distanceFieldVector struct {
	color                    mgl32.Vec4
	outlineColor             mgl32.Vec4
	outlineStart             float32
	outlineEnd               float32
	smoothness               float32
	transformationProjection mgl32.Mat4

	texture *TextureBinding

	bindings bindings.BindingSet
}

// DistanceFieldVector defines the interface for the distance-field vector graphics
// program. The bound texture is a signed distance field (0.5 on the shape edge); the
// program reconstructs a crisp antialiased edge at any scale and can add an outline
// between the configured start and end distance values.
type DistanceFieldVector interface {
	Program

	// SetColor sets the fill color.
	//
	// Parameters:
	//   - color: the RGBA fill color
	SetColor(color mgl32.Vec4)

	// SetOutlineColor sets the outline color.
	//
	// Parameters:
	//   - color: the RGBA outline color
	SetOutlineColor(color mgl32.Vec4)

	// SetOutlineRange sets the distance field band rendered as outline. Start must be
	// greater than end for the outline to appear outside the shape edge; equal values
	// disable the outline.
	//
	// Parameters:
	//   - start: the distance field value where the outline starts
	//   - end: the distance field value where the outline ends
	SetOutlineRange(start, end float32)

	// SetSmoothness sets the edge smoothing radius in distance field units.
	//
	// Parameters:
	//   - smoothness: the smoothing radius
	SetSmoothness(smoothness float32)

	// SetTransformationProjectionMatrix sets the combined transformation-projection matrix.
	//
	// Parameters:
	//   - m: the combined matrix
	SetTransformationProjectionMatrix(m mgl32.Mat4)

	// BindVectorTexture stages pixel data for the distance field texture slot.
	//
	// Parameters:
	//   - data: the staged texture pixel data
	BindVectorTexture(data common.TextureStagingData)
}

var _ DistanceFieldVector = &distanceFieldVector{}

// NewDistanceFieldVector creates a new DistanceFieldVector program with the specified
// options applied.
//
// Parameters:
//   - options: a variadic list of DistanceFieldVectorOption functions to configure the program
//
// Returns:
//   - DistanceFieldVector: a new instance of DistanceFieldVector configured with the provided options
func NewDistanceFieldVector(options ...DistanceFieldVectorOption) DistanceFieldVector {
	d := &distanceFieldVector{
		color:                    mgl32.Vec4{1, 1, 1, 1},
		outlineStart:             0.5,
		outlineEnd:               0.5,
		smoothness:               0.04,
		transformationProjection: mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(d)
	}
	d.bindings = bindings.NewBindingSet(d.Key())
	return d
}

func (d *distanceFieldVector) Key() string {
	return "shaders/distance_field_vector"
}

func (d *distanceFieldVector) Source() string {
	return DistanceFieldVectorSource
}

func (d *distanceFieldVector) FragmentEntry() string {
	return "fs_main"
}

func (d *distanceFieldVector) UniformBytes() []byte {
	u := DistanceFieldVectorUniforms{
		TransformationProjection: [16]float32(d.transformationProjection),
		Color:                    [4]float32(d.color),
		OutlineColor:             [4]float32(d.outlineColor),
		OutlineStart:             d.outlineStart,
		OutlineEnd:               d.outlineEnd,
		Smoothness:               d.smoothness,
	}
	return u.Marshal()
}

func (d *distanceFieldVector) TextureBindings() []TextureBinding {
	if d.texture != nil {
		return []TextureBinding{*d.texture}
	}
	return []TextureBinding{{View: vectorTextureBinding, Sampler: vectorSamplerBinding}}
}

func (d *distanceFieldVector) Bindings() bindings.BindingSet {
	return d.bindings
}

func (d *distanceFieldVector) SetColor(color mgl32.Vec4) {
	d.color = color
}

func (d *distanceFieldVector) SetOutlineColor(color mgl32.Vec4) {
	d.outlineColor = color
}

func (d *distanceFieldVector) SetOutlineRange(start, end float32) {
	d.outlineStart = start
	d.outlineEnd = end
}

func (d *distanceFieldVector) SetSmoothness(smoothness float32) {
	d.smoothness = smoothness
}

func (d *distanceFieldVector) SetTransformationProjectionMatrix(m mgl32.Mat4) {
	d.transformationProjection = m
}

func (d *distanceFieldVector) BindVectorTexture(data common.TextureStagingData) {
	d.texture = &TextureBinding{
		View:        vectorTextureBinding,
		Sampler:     vectorSamplerBinding,
		Data:        data,
		SamplerData: common.DefaultSamplerStagingData(),
	}
}

func (d *distanceFieldVector) Release() {
	d.bindings.Release()
}
