package edgefx

import "math"

// Mat4 represents a 4x4 transformation matrix stored in column-major
// order, matching the WGSL/wgpu convention used on the GPU side:
//
//	m[col*4+row]
//
// Element access via At uses the same (col, row) order as WGSL's
// m[col][row] indexing, so formulas like P[3][2] read identically in
// Go and shader code.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given column and row.
func (m Mat4) At(col, row int) float64 {
	return m[col*4+row]
}

// Mul multiplies two matrices (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 transforms a homogeneous vector (m * v).
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// Inverse returns the inverse of the matrix and whether it exists.
// For a singular matrix it returns the identity and false.
func (m Mat4) Inverse() (Mat4, bool) {
	var inv Mat4

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] -
		m[9]*m[6]*m[15] + m[9]*m[7]*m[14] +
		m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] +
		m[8]*m[6]*m[15] - m[8]*m[7]*m[14] -
		m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] -
		m[8]*m[5]*m[15] + m[8]*m[7]*m[13] +
		m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] +
		m[8]*m[5]*m[14] - m[8]*m[6]*m[13] -
		m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] +
		m[9]*m[2]*m[15] - m[9]*m[3]*m[14] -
		m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] -
		m[8]*m[2]*m[15] + m[8]*m[3]*m[14] +
		m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] +
		m[8]*m[1]*m[15] - m[8]*m[3]*m[13] -
		m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] -
		m[8]*m[1]*m[14] + m[8]*m[2]*m[13] +
		m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] -
		m[5]*m[2]*m[15] + m[5]*m[3]*m[14] +
		m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] +
		m[4]*m[2]*m[15] - m[4]*m[3]*m[14] -
		m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] -
		m[4]*m[1]*m[15] + m[4]*m[3]*m[13] +
		m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] +
		m[4]*m[1]*m[14] - m[4]*m[2]*m[13] -
		m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] +
		m[5]*m[2]*m[11] - m[5]*m[3]*m[10] -
		m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] -
		m[4]*m[2]*m[11] + m[4]*m[3]*m[10] +
		m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] +
		m[4]*m[1]*m[11] - m[4]*m[3]*m[9] -
		m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] -
		m[4]*m[1]*m[10] + m[4]*m[2]*m[9] +
		m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 {
		return Identity(), false
	}

	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}

// Perspective returns a right-handed perspective projection with depth
// mapped to [0, 1] (wgpu convention). fovY is the vertical field of
// view in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	m := Mat4{}
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = far * near / (near - far)
	return m
}

// PerspectiveReverseZ returns a right-handed infinite perspective
// projection with reversed depth: the near plane maps to NDC depth 1
// and infinity to 0. This is the convention the depth linearization
// formula view_z = -near/ndc assumes; the near plane distance is
// recoverable as P[3][2].
func PerspectiveReverseZ(fovY, aspect, near float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	m := Mat4{}
	m[0] = f / aspect
	m[5] = f
	m[11] = -1
	m[14] = near
	return m
}

// Orthographic returns a right-handed orthographic projection with
// depth mapped to [0, 1].
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	m := Identity()
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = 1 / (near - far)
	m[12] = (left + right) / (left - right)
	m[13] = (bottom + top) / (bottom - top)
	m[14] = near / (near - far)
	return m
}

// LookAt returns a right-handed view matrix (world to view) for a
// camera at eye looking toward target.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Identity()
	m[0] = s.X
	m[4] = s.Y
	m[8] = s.Z
	m[1] = u.X
	m[5] = u.Y
	m[9] = u.Z
	m[2] = -f.X
	m[6] = -f.Y
	m[10] = -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	return m
}
