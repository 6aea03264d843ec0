package shaders

import (
	"encoding/binary"
	"math"
)

// putFloats writes float32 values into buf at the given byte offset in GPU byte order
// and returns the offset past the last value written.
func putFloats(buf []byte, offset int, vals ...float32) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
		offset += 4
	}
	return offset
}

// putMat3 writes a column-major 3x3 matrix as three vec4-padded columns (48 bytes),
// matching the WGSL mat3x3<f32> uniform layout, and returns the offset past it.
func putMat3(buf []byte, offset int, m [9]float32) int {
	for col := 0; col < 3; col++ {
		putFloats(buf, offset, m[col*3], m[col*3+1], m[col*3+2], 0)
		offset += 16
	}
	return offset
}

// PhongUniforms is the GPU-aligned uniform block for the Phong program.
// Matches the WGSL PhongUniforms struct layout exactly (see phong.wgsl).
// Size: 272 bytes (std140-compatible, mat3x3 stored as three vec4-padded columns).
type PhongUniforms struct {
	Transformation [16]float32 // offset   0: model-to-camera transformation matrix (64 bytes)
	Projection     [16]float32 // offset  64: camera-to-clip projection matrix (64 bytes)
	NormalMatrix   [9]float32  // offset 128: normal matrix, 3 vec4-padded columns (48 bytes)
	AmbientColor   [4]float32  // offset 176: ambient RGBA color (16 bytes)
	DiffuseColor   [4]float32  // offset 192: diffuse RGBA color (16 bytes)
	SpecularColor  [4]float32  // offset 208: specular RGBA color (16 bytes)
	LightPosition  [3]float32  // offset 224: light position in camera space (12 bytes)
	Shininess      float32     // offset 236: specular exponent (4 bytes)
	LightColor     [3]float32  // offset 240: light RGB color (12 bytes)
	AlphaMask      float32     // offset 252: alpha mask threshold (4 bytes)
	Flags          uint32      // offset 256: variant flag bitmask (4 bytes + 12 bytes padding)
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size of the block in bytes.
func (u *PhongUniforms) Size() int {
	return 272
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 272-byte buffer ready for GPU upload.
func (u *PhongUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := putFloats(buf, 0, u.Transformation[:]...)
	off = putFloats(buf, off, u.Projection[:]...)
	off = putMat3(buf, off, u.NormalMatrix)
	off = putFloats(buf, off, u.AmbientColor[:]...)
	off = putFloats(buf, off, u.DiffuseColor[:]...)
	off = putFloats(buf, off, u.SpecularColor[:]...)
	off = putFloats(buf, off, u.LightPosition[:]...)
	off = putFloats(buf, off, u.Shininess)
	off = putFloats(buf, off, u.LightColor[:]...)
	off = putFloats(buf, off, u.AlphaMask)
	binary.LittleEndian.PutUint32(buf[off:off+4], u.Flags)
	return buf
}

// FlatUniforms is the GPU-aligned uniform block for the Flat program.
// Matches the WGSL FlatUniforms struct layout exactly (see flat.wgsl).
// Size: 96 bytes.
type FlatUniforms struct {
	TransformationProjection [16]float32 // offset  0: combined transformation-projection matrix (64 bytes)
	Color                    [4]float32  // offset 64: flat RGBA color (16 bytes)
	ObjectID                 uint32      // offset 80: object ID written to the second color output (4 bytes)
	AlphaMask                float32     // offset 84: alpha mask threshold (4 bytes)
	Flags                    uint32      // offset 88: variant flag bitmask (4 bytes + 4 bytes padding)
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size of the block in bytes.
func (u *FlatUniforms) Size() int {
	return 96
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (u *FlatUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := putFloats(buf, 0, u.TransformationProjection[:]...)
	off = putFloats(buf, off, u.Color[:]...)
	binary.LittleEndian.PutUint32(buf[off:off+4], u.ObjectID)
	off = putFloats(buf, off+4, u.AlphaMask)
	binary.LittleEndian.PutUint32(buf[off:off+4], u.Flags)
	return buf
}

// VertexColorUniforms is the GPU-aligned uniform block for the VertexColor program.
// Matches the WGSL VertexColorUniforms struct layout exactly (see vertex_color.wgsl).
// Size: 64 bytes.
type VertexColorUniforms struct {
	TransformationProjection [16]float32 // offset 0: combined transformation-projection matrix (64 bytes)
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size of the block in bytes.
func (u *VertexColorUniforms) Size() int {
	return 64
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (u *VertexColorUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	putFloats(buf, 0, u.TransformationProjection[:]...)
	return buf
}

// VectorUniforms is the GPU-aligned uniform block for the Vector program.
// Matches the WGSL VectorUniforms struct layout exactly (see vector.wgsl).
// Size: 80 bytes.
type VectorUniforms struct {
	TransformationProjection [16]float32 // offset  0: combined transformation-projection matrix (64 bytes)
	Color                    [4]float32  // offset 64: fill RGBA color (16 bytes)
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size of the block in bytes.
func (u *VectorUniforms) Size() int {
	return 80
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (u *VectorUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := putFloats(buf, 0, u.TransformationProjection[:]...)
	putFloats(buf, off, u.Color[:]...)
	return buf
}

// DistanceFieldVectorUniforms is the GPU-aligned uniform block for the
// DistanceFieldVector program. Matches the WGSL DistanceFieldVectorUniforms struct
// layout exactly (see distance_field_vector.wgsl).
// Size: 112 bytes.
type DistanceFieldVectorUniforms struct {
	TransformationProjection [16]float32 // offset  0: combined transformation-projection matrix (64 bytes)
	Color                    [4]float32  // offset 64: fill RGBA color (16 bytes)
	OutlineColor             [4]float32  // offset 80: outline RGBA color (16 bytes)
	OutlineStart             float32     // offset 96: distance field value where the outline starts (4 bytes)
	OutlineEnd               float32     // offset 100: distance field value where the outline ends (4 bytes)
	Smoothness               float32     // offset 104: edge smoothness radius (4 bytes + 4 bytes padding)
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size of the block in bytes.
func (u *DistanceFieldVectorUniforms) Size() int {
	return 112
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload.
func (u *DistanceFieldVectorUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := putFloats(buf, 0, u.TransformationProjection[:]...)
	off = putFloats(buf, off, u.Color[:]...)
	off = putFloats(buf, off, u.OutlineColor[:]...)
	putFloats(buf, off, u.OutlineStart, u.OutlineEnd, u.Smoothness)
	return buf
}

// MeshVisualizerUniforms is the GPU-aligned uniform block for the MeshVisualizer
// program. Matches the WGSL MeshVisualizerUniforms struct layout exactly (see
// mesh_visualizer.wgsl).
// Size: 192 bytes.
type MeshVisualizerUniforms struct {
	Transformation [16]float32 // offset   0: model-to-camera transformation matrix (64 bytes)
	Projection     [16]float32 // offset  64: camera-to-clip projection matrix (64 bytes)
	Color          [4]float32  // offset 128: base RGBA color (16 bytes)
	WireframeColor [4]float32  // offset 144: wireframe RGBA color (16 bytes)
	ViewportSize   [2]float32  // offset 160: framebuffer size in pixels (8 bytes)
	WireframeWidth float32     // offset 168: wireframe line width in pixels (4 bytes)
	Smoothness     float32     // offset 172: line edge smoothness in pixels (4 bytes)
	Flags          uint32      // offset 176: variant flag bitmask (4 bytes + 12 bytes padding)
}

// Size returns the size of the uniform block in bytes.
//
// Returns:
//   - int: the size of the block in bytes.
func (u *MeshVisualizerUniforms) Size() int {
	return 192
}

// Marshal serializes the uniform block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 192-byte buffer ready for GPU upload.
func (u *MeshVisualizerUniforms) Marshal() []byte {
	buf := make([]byte, u.Size())
	off := putFloats(buf, 0, u.Transformation[:]...)
	off = putFloats(buf, off, u.Projection[:]...)
	off = putFloats(buf, off, u.Color[:]...)
	off = putFloats(buf, off, u.WireframeColor[:]...)
	off = putFloats(buf, off, u.ViewportSize[:]...)
	off = putFloats(buf, off, u.WireframeWidth, u.Smoothness)
	binary.LittleEndian.PutUint32(buf[off:off+4], u.Flags)
	return buf
}
