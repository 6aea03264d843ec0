package shaders

import "github.com/go-gl/mathgl/mgl32"

// FlatOption is a functional option for configuring a Flat program via NewFlat.
type FlatOption func(*flat)

// WithFlatFlags is an option builder that sets the variant flags of the program.
//
// Parameters:
//   - flags: the flag bitmask to set
//
// Returns:
//   - FlatOption: a function that applies the flags option to the program
func WithFlatFlags(flags FlatFlag) FlatOption {
	return func(f *flat) {
		f.flags = flags
	}
}

// WithFlatColor is an option builder that sets the initial flat color.
//
// Parameters:
//   - color: the RGBA color
//
// Returns:
//   - FlatOption: a function that applies the color option to the program
func WithFlatColor(color mgl32.Vec4) FlatOption {
	return func(f *flat) {
		f.color = color
	}
}

// WithFlatObjectID is an option builder that sets the initial object ID.
//
// Parameters:
//   - id: the object ID
//
// Returns:
//   - FlatOption: a function that applies the object ID option to the program
func WithFlatObjectID(id uint32) FlatOption {
	return func(f *flat) {
		f.objectID = id
	}
}
