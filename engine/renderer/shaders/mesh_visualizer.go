package shaders

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// MeshVisualizerSource is the WGSL source for the MeshVisualizer program.
//
//go:embed assets/mesh_visualizer.wgsl
var MeshVisualizerSource string

// MeshVisualizerFlag is a bitmask selecting optional features of the MeshVisualizer program.
type MeshVisualizerFlag uint32

const (
	// MeshVisualizerFlagWireframe overlays triangle edges in the wireframe color on
	// top of the base color.
	MeshVisualizerFlagWireframe MeshVisualizerFlag = 1 << iota

	// MeshVisualizerFlagVertexIndex derives barycentric coordinates from a per-vertex
	// index attribute at VertexIndexLocation instead of the built-in vertex index.
	// Use with meshes whose vertex order does not follow plain triangle-list order,
	// feeding the attribute from meshtools.VertexIndices.
	MeshVisualizerFlagVertexIndex
)

// meshVisualizer is the implementation of the MeshVisualizer interface.
type meshVisualizer struct {
	flags MeshVisualizerFlag

	color          mgl32.Vec4
	wireframeColor mgl32.Vec4
	wireframeWidth float32
	smoothness     float32
	viewportSize   mgl32.Vec2

	transformation mgl32.Mat4
	projection     mgl32.Mat4

	bindings bindings.BindingSet
}

// MeshVisualizer defines the interface for the mesh visualization program: renders the
// mesh surface in a base color with triangle edges overlaid in a contrasting wireframe
// color. Wireframe width is measured in pixels, so the viewport size must be kept in
// sync with the render target.
type MeshVisualizer interface {
	Program

	// Flags retrieves the flag bitmask the program was created with.
	//
	// Returns:
	//   - MeshVisualizerFlag: the variant flags
	Flags() MeshVisualizerFlag

	// SetColor sets the base surface color.
	//
	// Parameters:
	//   - color: the RGBA base color
	SetColor(color mgl32.Vec4)

	// SetWireframeColor sets the wireframe overlay color.
	//
	// Parameters:
	//   - color: the RGBA wireframe color
	SetWireframeColor(color mgl32.Vec4)

	// SetWireframeWidth sets the wireframe line width in pixels.
	//
	// Parameters:
	//   - width: the line width in pixels
	SetWireframeWidth(width float32)

	// SetSmoothness sets the wireframe edge smoothing radius in pixels.
	//
	// Parameters:
	//   - smoothness: the smoothing radius in pixels
	SetSmoothness(smoothness float32)

	// SetViewportSize sets the render target size in pixels, required for correct
	// pixel-space wireframe width.
	//
	// Parameters:
	//   - size: the viewport width and height in pixels
	SetViewportSize(size mgl32.Vec2)

	// SetTransformationMatrix sets the model-to-camera transformation matrix.
	//
	// Parameters:
	//   - m: the transformation matrix
	SetTransformationMatrix(m mgl32.Mat4)

	// SetProjectionMatrix sets the camera-to-clip projection matrix.
	//
	// Parameters:
	//   - m: the projection matrix
	SetProjectionMatrix(m mgl32.Mat4)
}

var _ MeshVisualizer = &meshVisualizer{}

// NewMeshVisualizer creates a new MeshVisualizer program with the specified options applied.
//
// Parameters:
//   - options: a variadic list of MeshVisualizerOption functions to configure the program
//
// Returns:
//   - MeshVisualizer: a new instance of MeshVisualizer configured with the provided options
func NewMeshVisualizer(options ...MeshVisualizerOption) MeshVisualizer {
	m := &meshVisualizer{
		color:          mgl32.Vec4{1, 1, 1, 1},
		wireframeColor: mgl32.Vec4{0, 0, 0, 1},
		wireframeWidth: 1,
		smoothness:     2,
		transformation: mgl32.Ident4(),
		projection:     mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(m)
	}
	m.bindings = bindings.NewBindingSet(m.Key())
	return m
}

func (m *meshVisualizer) Key() string {
	return fmt.Sprintf("shaders/mesh_visualizer?flags=%d", m.flags)
}

func (m *meshVisualizer) Source() string {
	return MeshVisualizerSource
}

func (m *meshVisualizer) FragmentEntry() string {
	return "fs_main"
}

func (m *meshVisualizer) Flags() MeshVisualizerFlag {
	return m.flags
}

func (m *meshVisualizer) UniformBytes() []byte {
	u := MeshVisualizerUniforms{
		Transformation: [16]float32(m.transformation),
		Projection:     [16]float32(m.projection),
		Color:          [4]float32(m.color),
		WireframeColor: [4]float32(m.wireframeColor),
		ViewportSize:   [2]float32(m.viewportSize),
		WireframeWidth: m.wireframeWidth,
		Smoothness:     m.smoothness,
		Flags:          uint32(m.flags),
	}
	return u.Marshal()
}

func (m *meshVisualizer) TextureBindings() []TextureBinding {
	return nil
}

func (m *meshVisualizer) Bindings() bindings.BindingSet {
	return m.bindings
}

func (m *meshVisualizer) SetColor(color mgl32.Vec4) {
	m.color = color
}

func (m *meshVisualizer) SetWireframeColor(color mgl32.Vec4) {
	m.wireframeColor = color
}

func (m *meshVisualizer) SetWireframeWidth(width float32) {
	m.wireframeWidth = width
}

func (m *meshVisualizer) SetSmoothness(smoothness float32) {
	m.smoothness = smoothness
}

func (m *meshVisualizer) SetViewportSize(size mgl32.Vec2) {
	m.viewportSize = size
}

func (m *meshVisualizer) SetTransformationMatrix(mat mgl32.Mat4) {
	m.transformation = mat
}

func (m *meshVisualizer) SetProjectionMatrix(mat mgl32.Mat4) {
	m.projection = mat
}

func (m *meshVisualizer) Release() {
	m.bindings.Release()
}
