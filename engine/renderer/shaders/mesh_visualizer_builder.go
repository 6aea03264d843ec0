package shaders

import "github.com/go-gl/mathgl/mgl32"

// MeshVisualizerOption is a functional option for configuring a MeshVisualizer program
// via NewMeshVisualizer.
type MeshVisualizerOption func(*meshVisualizer)

// WithMeshVisualizerFlags is an option builder that sets the variant flags of the program.
//
// Parameters:
//   - flags: the flag bitmask to set
//
// Returns:
//   - MeshVisualizerOption: a function that applies the flags option to the program
func WithMeshVisualizerFlags(flags MeshVisualizerFlag) MeshVisualizerOption {
	return func(m *meshVisualizer) {
		m.flags = flags
	}
}

// WithMeshVisualizerColors is an option builder that sets the initial base and
// wireframe colors.
//
// Parameters:
//   - color: the RGBA base color
//   - wireframe: the RGBA wireframe color
//
// Returns:
//   - MeshVisualizerOption: a function that applies the colors option to the program
func WithMeshVisualizerColors(color, wireframe mgl32.Vec4) MeshVisualizerOption {
	return func(m *meshVisualizer) {
		m.color = color
		m.wireframeColor = wireframe
	}
}

// WithMeshVisualizerViewportSize is an option builder that sets the initial viewport size.
//
// Parameters:
//   - size: the viewport width and height in pixels
//
// Returns:
//   - MeshVisualizerOption: a function that applies the viewport size option to the program
func WithMeshVisualizerViewportSize(size mgl32.Vec2) MeshVisualizerOption {
	return func(m *meshVisualizer) {
		m.viewportSize = size
	}
}
