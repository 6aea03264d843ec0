// package shaders provides the built-in shader programs of the engine: Phong lighting,
// flat shading, per-vertex coloring, (distance-field) vector graphics, and mesh
// visualization. Each program is a typed wrapper over a WGSL shader pair: flag
// configuration selects the rendering variant, setters update the uniform block, and
// Bind* methods stage textures for GPU upload.
//
// All programs share one generic vertex attribute location scheme so a single mesh can
// be drawn by any of them:
//
//	location 0: position
//	location 1: texture coordinates
//	location 2: normal
//	location 3: color
//	location 4: tangent
//	location 5: vertex index (mesh visualizer fallback)
package shaders

import (
	"github.com/prism-gfx/prism-go/common"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// Generic vertex attribute locations shared by all built-in shader programs.
const (
	// PositionLocation is the vertex position input slot.
	PositionLocation uint32 = 0
	// TextureCoordinatesLocation is the UV texture coordinate input slot.
	TextureCoordinatesLocation uint32 = 1
	// NormalLocation is the vertex normal input slot.
	NormalLocation uint32 = 2
	// ColorLocation is the per-vertex color input slot.
	ColorLocation uint32 = 3
	// TangentLocation is the tangent vector input slot.
	TangentLocation uint32 = 4
	// VertexIndexLocation is the per-vertex index input slot used by the mesh
	// visualizer's no-geometry-shader wireframe fallback.
	VertexIndexLocation uint32 = 5
)

// TextureBinding describes one staged texture a program wants uploaded: the view and
// sampler binding indices in the program's bind group, the staged pixel data, and the
// sampler configuration. Programs expose these through TextureBindings; the renderer
// uploads them during RegisterProgram and substitutes a 1x1 white dummy for any
// declared texture slot the program has not staged.
type TextureBinding struct {
	// View is the binding index of the texture view in the program's bind group.
	View int
	// Sampler is the binding index of the sampler in the program's bind group.
	Sampler int
	// Data holds the staged pixel data to upload.
	Data common.TextureStagingData
	// SamplerData holds the sampler configuration to create.
	SamplerData common.SamplerStagingData
}

// Program defines the interface shared by every built-in shader program. The renderer
// consumes it to create the GPU pipeline and bind group for the program and to push the
// program's current uniform state before each draw.
type Program interface {
	// Key retrieves the pipeline cache key for this program. The key encodes the
	// program name and its flag configuration so distinct variants get distinct
	// pipelines.
	//
	// Returns:
	//   - string: the pipeline cache key
	Key() string

	// Source retrieves the WGSL source for this program, containing both the vertex
	// and fragment entry points (vs_main, fs_main).
	//
	// Returns:
	//   - string: the WGSL source code
	Source() string

	// FragmentEntry retrieves the fragment entry point name to compile the pipeline
	// against. Most programs use fs_main; variants that change the fragment output
	// signature (e.g. the Flat object-ID variant) select a different entry point.
	//
	// Returns:
	//   - string: the fragment entry point name
	FragmentEntry() string

	// UniformBytes serializes the program's current uniform state into the byte
	// layout of its WGSL uniform block, ready for a GPU buffer write.
	//
	// Returns:
	//   - []byte: the marshaled uniform block
	UniformBytes() []byte

	// TextureBindings retrieves every texture slot this program declares, with
	// whatever pixel data has been staged so far. Slots without staged data have a
	// zero-value Data field; the renderer substitutes a dummy texture for those.
	//
	// Returns:
	//   - []TextureBinding: the declared texture slots in binding order
	TextureBindings() []TextureBinding

	// Bindings retrieves the GPU binding set backing this program. The set is empty
	// until the renderer registers the program.
	//
	// Returns:
	//   - bindings.BindingSet: the program's binding set
	Bindings() bindings.BindingSet

	// Release releases all GPU resources backing this program.
	Release()
}
