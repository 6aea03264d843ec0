package shaders

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prism-gfx/prism-go/common"
	"github.com/prism-gfx/prism-go/engine/renderer/bindings"
)

// PhongSource is the WGSL source for the Phong program.
//
//go:embed assets/phong.wgsl
var PhongSource string

// PhongFlag is a bitmask selecting optional features of the Phong program.
type PhongFlag uint32

const (
	// PhongFlagAmbientTexture multiplies the ambient color with a texture.
	PhongFlagAmbientTexture PhongFlag = 1 << iota

	// PhongFlagDiffuseTexture multiplies the diffuse color with a texture.
	PhongFlagDiffuseTexture

	// PhongFlagSpecularTexture multiplies the specular color with a texture.
	PhongFlagSpecularTexture

	// PhongFlagAlphaMask discards fragments whose final alpha falls below the
	// configured mask threshold.
	PhongFlagAlphaMask
)

// Bind group binding indices for the Phong program. Binding 0 is the uniform block.
const (
	phongAmbientTextureBinding  = 1
	phongAmbientSamplerBinding  = 2
	phongDiffuseTextureBinding  = 3
	phongDiffuseSamplerBinding  = 4
	phongSpecularTextureBinding = 5
	phongSpecularSamplerBinding = 6
)

// phong is the implementation of the Phong interface.
type phong struct {
	flags PhongFlag

	ambientColor  mgl32.Vec4
	diffuseColor  mgl32.Vec4
	specularColor mgl32.Vec4
	shininess     float32
	alphaMask     float32
	lightPosition mgl32.Vec3
	lightColor    mgl32.Vec3

	transformation mgl32.Mat4
	projection     mgl32.Mat4
	normalMatrix   mgl32.Mat3

	ambientTexture  *TextureBinding
	diffuseTexture  *TextureBinding
	specularTexture *TextureBinding

	bindings bindings.BindingSet
}

// Phong defines the interface for the Phong lighting program: ambient, diffuse and
// specular terms from a single point light, each color optionally multiplied with a
// texture selected by the corresponding flag.
//
// Configure the variant with flags at construction, then update uniform state with the
// setters between draws. Matrices default to identity, colors to the classic Phong
// defaults (black ambient, white diffuse and specular), shininess to 80.
type Phong interface {
	Program

	// Flags retrieves the flag bitmask the program was created with.
	//
	// Returns:
	//   - PhongFlag: the variant flags
	Flags() PhongFlag

	// SetAmbientColor sets the ambient color. With PhongFlagAmbientTexture the color
	// is multiplied with the ambient texture.
	//
	// Parameters:
	//   - color: the ambient RGBA color
	SetAmbientColor(color mgl32.Vec4)

	// SetDiffuseColor sets the diffuse color. With PhongFlagDiffuseTexture the color
	// is multiplied with the diffuse texture.
	//
	// Parameters:
	//   - color: the diffuse RGBA color
	SetDiffuseColor(color mgl32.Vec4)

	// SetSpecularColor sets the specular highlight color. With
	// PhongFlagSpecularTexture the color is multiplied with the specular texture.
	//
	// Parameters:
	//   - color: the specular RGBA color
	SetSpecularColor(color mgl32.Vec4)

	// SetShininess sets the specular exponent. Larger values produce tighter highlights.
	//
	// Parameters:
	//   - shininess: the specular exponent
	SetShininess(shininess float32)

	// SetAlphaMask sets the fragment discard threshold used with PhongFlagAlphaMask.
	// Fragments whose final alpha is below the threshold are discarded.
	//
	// Parameters:
	//   - mask: the alpha threshold in the 0..1 range
	SetAlphaMask(mask float32)

	// SetLightPosition sets the point light position in camera space.
	//
	// Parameters:
	//   - position: the light position
	SetLightPosition(position mgl32.Vec3)

	// SetLightColor sets the light color applied to the diffuse and specular terms.
	//
	// Parameters:
	//   - color: the light RGB color
	SetLightColor(color mgl32.Vec3)

	// SetTransformationMatrix sets the model-to-camera transformation matrix.
	//
	// Parameters:
	//   - m: the transformation matrix
	SetTransformationMatrix(m mgl32.Mat4)

	// SetNormalMatrix sets the matrix used to transform normals into camera space,
	// usually the inverse transpose of the transformation's rotation-scale part.
	//
	// Parameters:
	//   - m: the normal matrix
	SetNormalMatrix(m mgl32.Mat3)

	// SetProjectionMatrix sets the camera-to-clip projection matrix.
	//
	// Parameters:
	//   - m: the projection matrix
	SetProjectionMatrix(m mgl32.Mat4)

	// BindAmbientTexture stages pixel data for the ambient texture slot. Only sampled
	// when the program was created with PhongFlagAmbientTexture.
	//
	// Parameters:
	//   - data: the staged texture pixel data
	BindAmbientTexture(data common.TextureStagingData)

	// BindDiffuseTexture stages pixel data for the diffuse texture slot. Only sampled
	// when the program was created with PhongFlagDiffuseTexture.
	//
	// Parameters:
	//   - data: the staged texture pixel data
	BindDiffuseTexture(data common.TextureStagingData)

	// BindSpecularTexture stages pixel data for the specular texture slot. Only
	// sampled when the program was created with PhongFlagSpecularTexture.
	//
	// Parameters:
	//   - data: the staged texture pixel data
	BindSpecularTexture(data common.TextureStagingData)
}

var _ Phong = &phong{}

// NewPhong creates a new Phong program with the specified options applied.
//
// Parameters:
//   - options: a variadic list of PhongOption functions to configure the program
//
// Returns:
//   - Phong: a new instance of Phong configured with the provided options
func NewPhong(options ...PhongOption) Phong {
	p := &phong{
		ambientColor:   mgl32.Vec4{0, 0, 0, 1},
		diffuseColor:   mgl32.Vec4{1, 1, 1, 1},
		specularColor:  mgl32.Vec4{1, 1, 1, 1},
		shininess:      80,
		lightColor:     mgl32.Vec3{1, 1, 1},
		transformation: mgl32.Ident4(),
		projection:     mgl32.Ident4(),
		normalMatrix:   mgl32.Ident3(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.bindings = bindings.NewBindingSet(p.Key())
	return p
}

func (p *phong) Key() string {
	return fmt.Sprintf("shaders/phong?flags=%d", p.flags)
}

func (p *phong) Source() string {
	return PhongSource
}

func (p *phong) FragmentEntry() string {
	return "fs_main"
}

func (p *phong) Flags() PhongFlag {
	return p.flags
}

func (p *phong) UniformBytes() []byte {
	u := PhongUniforms{
		Transformation: [16]float32(p.transformation),
		Projection:     [16]float32(p.projection),
		NormalMatrix:   [9]float32(p.normalMatrix),
		AmbientColor:   [4]float32(p.ambientColor),
		DiffuseColor:   [4]float32(p.diffuseColor),
		SpecularColor:  [4]float32(p.specularColor),
		LightPosition:  [3]float32(p.lightPosition),
		Shininess:      p.shininess,
		LightColor:     [3]float32(p.lightColor),
		AlphaMask:      p.alphaMask,
		Flags:          uint32(p.flags),
	}
	return u.Marshal()
}

func (p *phong) TextureBindings() []TextureBinding {
	slots := []struct {
		view, sampler int
		staged        *TextureBinding
	}{
		{phongAmbientTextureBinding, phongAmbientSamplerBinding, p.ambientTexture},
		{phongDiffuseTextureBinding, phongDiffuseSamplerBinding, p.diffuseTexture},
		{phongSpecularTextureBinding, phongSpecularSamplerBinding, p.specularTexture},
	}

	out := make([]TextureBinding, 0, len(slots))
	for _, s := range slots {
		if s.staged != nil {
			out = append(out, *s.staged)
			continue
		}
		out = append(out, TextureBinding{View: s.view, Sampler: s.sampler})
	}
	return out
}

func (p *phong) Bindings() bindings.BindingSet {
	return p.bindings
}

func (p *phong) SetAmbientColor(color mgl32.Vec4) {
	p.ambientColor = color
}

func (p *phong) SetDiffuseColor(color mgl32.Vec4) {
	p.diffuseColor = color
}

func (p *phong) SetSpecularColor(color mgl32.Vec4) {
	p.specularColor = color
}

func (p *phong) SetShininess(shininess float32) {
	p.shininess = shininess
}

func (p *phong) SetAlphaMask(mask float32) {
	p.alphaMask = mask
}

func (p *phong) SetLightPosition(position mgl32.Vec3) {
	p.lightPosition = position
}

func (p *phong) SetLightColor(color mgl32.Vec3) {
	p.lightColor = color
}

func (p *phong) SetTransformationMatrix(m mgl32.Mat4) {
	p.transformation = m
}

func (p *phong) SetNormalMatrix(m mgl32.Mat3) {
	p.normalMatrix = m
}

func (p *phong) SetProjectionMatrix(m mgl32.Mat4) {
	p.projection = m
}

func (p *phong) BindAmbientTexture(data common.TextureStagingData) {
	p.ambientTexture = &TextureBinding{
		View:        phongAmbientTextureBinding,
		Sampler:     phongAmbientSamplerBinding,
		Data:        data,
		SamplerData: common.DefaultSamplerStagingData(),
	}
}

func (p *phong) BindDiffuseTexture(data common.TextureStagingData) {
	p.diffuseTexture = &TextureBinding{
		View:        phongDiffuseTextureBinding,
		Sampler:     phongDiffuseSamplerBinding,
		Data:        data,
		SamplerData: common.DefaultSamplerStagingData(),
	}
}

func (p *phong) BindSpecularTexture(data common.TextureStagingData) {
	p.specularTexture = &TextureBinding{
		View:        phongSpecularTextureBinding,
		Sampler:     phongSpecularSamplerBinding,
		Data:        data,
		SamplerData: common.DefaultSamplerStagingData(),
	}
}

func (p *phong) Release() {
	p.bindings.Release()
}
