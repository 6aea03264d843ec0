package shaders

import "github.com/go-gl/mathgl/mgl32"

// VertexColorOption is a functional option for configuring a VertexColor program via
// NewVertexColor.
type VertexColorOption func(*vertexColor)

// WithVertexColorTransformationProjection is an option builder that sets the initial
// combined transformation-projection matrix.
//
// Parameters:
//   - m: the combined matrix
//
// Returns:
//   - VertexColorOption: a function that applies the matrix option to the program
func WithVertexColorTransformationProjection(m mgl32.Mat4) VertexColorOption {
	return func(v *vertexColor) {
		v.transformationProjection = m
	}
}
