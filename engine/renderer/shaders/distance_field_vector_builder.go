package shaders

import "github.com/go-gl/mathgl/mgl32"

// DistanceFieldVectorOption is a functional option for configuring a
// DistanceFieldVector program via NewDistanceFieldVector.
type DistanceFieldVectorOption func(*distanceFieldVector)

// WithDistanceFieldVectorColor is an option builder that sets the initial fill color.
//
// Parameters:
//   - color: the RGBA fill color
//
// Returns:
//   - DistanceFieldVectorOption: a function that applies the color option to the program
func WithDistanceFieldVectorColor(color mgl32.Vec4) DistanceFieldVectorOption {
	return func(d *distanceFieldVector) {
		d.color = color
	}
}

// WithDistanceFieldVectorOutline is an option builder that sets the initial outline
// color and range.
//
// Parameters:
//   - color: the RGBA outline color
//   - start: the distance field value where the outline starts
//   - end: the distance field value where the outline ends
//
// Returns:
//   - DistanceFieldVectorOption: a function that applies the outline option to the program
func WithDistanceFieldVectorOutline(color mgl32.Vec4, start, end float32) DistanceFieldVectorOption {
	return func(d *distanceFieldVector) {
		d.outlineColor = color
		d.outlineStart = start
		d.outlineEnd = end
	}
}
