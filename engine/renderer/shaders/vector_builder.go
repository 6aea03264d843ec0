package shaders

import "github.com/go-gl/mathgl/mgl32"

// VectorOption is a functional option for configuring a Vector program via NewVector.
type VectorOption func(*vector)

// WithVectorColor is an option builder that sets the initial fill color.
//
// Parameters:
//   - color: the RGBA fill color
//
// Returns:
//   - VectorOption: a function that applies the color option to the program
func WithVectorColor(color mgl32.Vec4) VectorOption {
	return func(v *vector) {
		v.color = color
	}
}
