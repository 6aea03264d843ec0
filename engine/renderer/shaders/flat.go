package shaders

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/common"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// FlatSource is the WGSL source for the Flat program.
//
//go:embed assets/flat.wgsl
var FlatSource string

// FlatFlag is a bitmask selecting optional features of the Flat program.
type FlatFlag uint32

const (
	// FlatFlagTextured multiplies the flat color with a texture.
	FlatFlagTextured FlatFlag = 1 << iota

	// FlatFlagAlphaMask discards fragments whose final alpha falls below the
	// configured mask threshold.
	FlatFlagAlphaMask

	// FlatFlagObjectID writes the configured object ID to the second color output,
	// for object picking via an offscreen framebuffer attachment.
	FlatFlagObjectID
)

// Bind group binding indices for the Flat program. Binding 0 is the uniform block.
const (
	flatTextureBinding = 1
	flatSamplerBinding = 2
)

// ColorOutput and ObjectIDOutput are the fragment output indices of the Flat program,
// used when mapping framebuffer attachments for the object-ID workflow.
const (
	// ColorOutput is the color fragment output index.
	ColorOutput = 0
	// ObjectIDOutput is the object-ID fragment output index, active with FlatFlagObjectID.
	ObjectIDOutput = 1
)

// flat is the implementation of the Flat interface.
type flat struct {
	flags FlatFlag

	color     mgl32.Vec4
	objectID  uint32
	alphaMask float32

	transformationProjection mgl32.Mat4

	texture *TextureBinding

	bindings bindings.BindingSet
}

// Flat defines the interface for the flat shading program: every fragment gets one
// color, optionally multiplied with a texture. With FlatFlagObjectID the program also
// writes a per-draw object ID to a second color output for picking.
type Flat interface {
	Program

	// Flags retrieves the flag bitmask the program was created with.
	//
	// Returns:
	//   - FlatFlag: the variant flags
	Flags() FlatFlag

	// SetColor sets the flat color. With FlatFlagTextured the color is multiplied
	// with the texture.
	//
	// Parameters:
	//   - color: the RGBA color
	SetColor(color mgl32.Vec4)

	// SetObjectID sets the object ID written to the second color output with
	// FlatFlagObjectID.
	//
	// Parameters:
	//   - id: the object ID
	SetObjectID(id uint32)

	// SetAlphaMask sets the fragment discard threshold used with FlatFlagAlphaMask.
	//
	// Parameters:
	//   - mask: the alpha threshold in the 0..1 range
	SetAlphaMask(mask float32)

	// SetTransformationProjectionMatrix sets the combined transformation-projection matrix.
	//
	// Parameters:
	//   - m: the combined matrix
	SetTransformationProjectionMatrix(m mgl32.Mat4)

	// BindTexture stages pixel data for the texture slot. Only sampled when the
	// program was created with FlatFlagTextured.
	//
	// Parameters:
	//   - data: the staged texture pixel data
	BindTexture(data common.TextureStagingData)
}

var _ Flat = &flat{}

// NewFlat creates a new Flat program with the specified options applied.
//
// Parameters:
//   - options: a variadic list of FlatOption functions to configure the program
//
// Returns:
//   - Flat: a new instance of Flat configured with the provided options
func NewFlat(options ...FlatOption) Flat {
	f := &flat{
		color:                    mgl32.Vec4{1, 1, 1, 1},
		transformationProjection: mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(f)
	}
	f.bindings = bindings.NewBindingSet(f.Key())
	return f
}

func (f *flat) Key() string {
	return fmt.Sprintf("shaders/flat?flags=%d", f.flags)
}

func (f *flat) Source() string {
	return FlatSource
}

func (f *flat) FragmentEntry() string {
	if f.flags&FlatFlagObjectID != 0 {
		return "fs_main_object_id"
	}
	return "fs_main"
}

func (f *flat) Flags() FlatFlag {
	return f.flags
}

func (f *flat) UniformBytes() []byte {
	u := FlatUniforms{
		TransformationProjection: [16]float32(f.transformationProjection),
		Color:                    [4]float32(f.color),
		ObjectID:                 f.objectID,
		AlphaMask:                f.alphaMask,
		Flags:                    uint32(f.flags),
	}
	return u.Marshal()
}

func (f *flat) TextureBindings() []TextureBinding {
	if f.texture != nil {
		return []TextureBinding{*f.texture}
	}
	return []TextureBinding{{View: flatTextureBinding, Sampler: flatSamplerBinding}}
}

func (f *flat) Bindings() bindings.BindingSet {
	return f.bindings
}

func (f *flat) SetColor(color mgl32.Vec4) {
	f.color = color
}

func (f *flat) SetObjectID(id uint32) {
	f.objectID = id
}

func (f *flat) SetAlphaMask(mask float32) {
	f.alphaMask = mask
}

func (f *flat) SetTransformationProjectionMatrix(m mgl32.Mat4) {
	f.transformationProjection = m
}

func (f *flat) BindTexture(data common.TextureStagingData) {
	f.texture = &TextureBinding{
		View:        flatTextureBinding,
		Sampler:     flatSamplerBinding,
		Data:        data,
		SamplerData: common.DefaultSamplerStagingData(),
	}
}

func (f *flat) Release() {
	f.bindings.Release()
}
