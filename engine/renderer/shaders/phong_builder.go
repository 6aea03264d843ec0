package shaders

import "github.com/go-gl/mathgl/mgl32"

// PhongOption is a functional option for configuring a Phong program via NewPhong.
type PhongOption func(*phong)

// WithPhongFlags is an option builder that sets the variant flags of the program.
//
// Parameters:
//   - flags: the flag bitmask to set
//
// Returns:
//   - PhongOption: a function that applies the flags option to the program
func WithPhongFlags(flags PhongFlag) PhongOption {
	return func(p *phong) {
		p.flags = flags
	}
}

// WithPhongDiffuseColor is an option builder that sets the initial diffuse color.
//
// Parameters:
//   - color: the diffuse RGBA color
//
// Returns:
//   - PhongOption: a function that applies the diffuse color option to the program
func WithPhongDiffuseColor(color mgl32.Vec4) PhongOption {
	return func(p *phong) {
		p.diffuseColor = color
	}
}

// WithPhongShininess is an option builder that sets the initial specular exponent.
//
// Parameters:
//   - shininess: the specular exponent
//
// Returns:
//   - PhongOption: a function that applies the shininess option to the program
func WithPhongShininess(shininess float32) PhongOption {
	return func(p *phong) {
		p.shininess = shininess
	}
}

// WithPhongLightPosition is an option builder that sets the initial light position.
//
// Parameters:
//   - position: the light position in camera space
//
// Returns:
//   - PhongOption: a function that applies the light position option to the program
func WithPhongLightPosition(position mgl32.Vec3) PhongOption {
	return func(p *phong) {
		p.lightPosition = position
	}
}
