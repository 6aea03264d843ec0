package shaders

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// VertexColorSource is the WGSL source for the VertexColor program.
//
//go:embed assets/vertex_color.wgsl
var VertexColorSource string

// vertexColor is the implementation of the VertexColor interface.
type vertexColor struct {
	transformationProjection mgl32.Mat4

	bindings bindings.BindingSet
}

// VertexColor defines the interface for the vertex coloring program: fragment color is
// interpolated from the per-vertex color attribute at ColorLocation, with no further
// shading. The only uniform state is the combined transformation-projection matrix.
type VertexColor interface {
	Program

	// SetTransformationProjectionMatrix sets the combined transformation-projection matrix.
	//
	// Parameters:
	//   - m: the combined matrix
	SetTransformationProjectionMatrix(m mgl32.Mat4)
}

var _ VertexColor = &vertexColor{}

// NewVertexColor creates a new VertexColor program with the specified options applied.
//
// Parameters:
//   - options: a variadic list of VertexColorOption functions to configure the program
//
// Returns:
//   - VertexColor: a new instance of VertexColor configured with the provided options
func NewVertexColor(options ...VertexColorOption) VertexColor {
	v := &vertexColor{
		transformationProjection: mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(v)
	}
	v.bindings = bindings.NewBindingSet(v.Key())
	return v
}

func (v *vertexColor) Key() string {
	return "shaders/vertex_color"
}

func (v *vertexColor) Source() string {
	return VertexColorSource
}

func (v *vertexColor) FragmentEntry() string {
	return "fs_main"
}

func (v *vertexColor) UniformBytes() []byte {
	u := VertexColorUniforms{
		TransformationProjection: [16]float32(v.transformationProjection),
	}
	return u.Marshal()
}

func (v *vertexColor) TextureBindings() []TextureBinding {
	return nil
}

func (v *vertexColor) Bindings() bindings.BindingSet {
	return v.bindings
}

func (v *vertexColor) SetTransformationProjectionMatrix(m mgl32.Mat4) {
	v.transformationProjection = m
}

func (v *vertexColor) Release() {
	v.bindings.Release()
}
