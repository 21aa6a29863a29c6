package edgefx

import "math"

// Vec3 represents a 3D vector. It is used for world positions, view
// directions, and decoded surface normals.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the length (magnitude) of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the original vector has zero length.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec3) Approx(w Vec3, epsilon float64) bool {
	return math.Abs(v.X-w.X) < epsilon &&
		math.Abs(v.Y-w.Y) < epsilon &&
		math.Abs(v.Z-w.Z) < epsilon
}

// Vec4 represents a 4D homogeneous vector, used when unprojecting
// points through 4x4 matrices.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// XYZ returns the first three components as a Vec3, dropping W.
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// PerspectiveDivide divides the vector by its W component.
// W == 0 produces non-finite components; this is accepted at the clip
// planes rather than special-cased.
func (v Vec4) PerspectiveDivide() Vec3 {
	return Vec3{X: v.X / v.W, Y: v.Y / v.W, Z: v.Z / v.W}
}
