package gpu_upload

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/MasterZap/render-time-instancing/common"
)

// GPUInstanceTransform is the GPU-aligned representation of one instance
// transform sample, a full column-major model matrix.
// Size: 64 bytes (std430 aligned).
type GPUInstanceTransform struct {
	Model [16]float32 // offset 0, size 64 (mat4x4<f32>)
}

// FromMatrix3 expands an affine instance transform into a column-major 4x4
// model matrix. The three rotation/scale rows become the matrix's basis
// columns and the translation lands in the fourth column.
//
// Parameters:
//   - m: the affine transform to expand
//
// Returns:
//   - GPUInstanceTransform: the GPU-ready model matrix
func FromMatrix3(m common.Matrix3) GPUInstanceTransform {
	return GPUInstanceTransform{Model: [16]float32{
		m.R0.X, m.R0.Y, m.R0.Z, 0,
		m.R1.X, m.R1.Y, m.R1.Z, 0,
		m.R2.X, m.R2.Y, m.R2.Z, 0,
		m.T.X, m.T.Y, m.T.Z, 1,
	}}
}

// Size returns the size of the GPUInstanceTransform struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (g *GPUInstanceTransform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstanceTransform struct into a byte buffer
// suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUInstanceTransform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}
