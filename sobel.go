package edgefx

import "math"

// sobelTap is one sample of the 3x3 Sobel stencil: a unit offset from
// the center pixel and its signed weight. The center column/row has
// weight zero and is omitted.
type sobelTap struct {
	dx, dy int
	weight float32
}

// sobelX approximates the horizontal derivative (weights 1,2,1 on the
// right column, negated on the left).
var sobelX = [6]sobelTap{
	{1, 1, 1}, {1, 0, 2}, {1, -1, 1},
	{-1, 1, -1}, {-1, 0, -2}, {-1, -1, -1},
}

// sobelY approximates the vertical derivative, rows and columns
// swapped relative to sobelX.
var sobelY = [6]sobelTap{
	{1, 1, 1}, {0, 1, 2}, {-1, 1, 1},
	{1, -1, -1}, {0, -1, -2}, {-1, -1, -1},
}

// maxAbs32 reduces a two-axis gradient to a scalar by max of absolute
// values. Unlike the Euclidean norm this cannot overflow float32 when
// the per-axis derivatives are already near the float32 limit, which
// happens for view-space depth at grazing angles and near the clip
// planes. Sufficient for a thresholded edge decision.
func maxAbs32(gx, gy float32) float32 {
	ax := abs32(gx)
	ay := abs32(gy)
	if ax > ay {
		return ax
	}
	return ay
}

// length3_32 is the float32 Euclidean norm of a 3-component gradient.
// Safe for color gradients, which are bounded by the [0, 1] input
// range; not used for depth (see maxAbs32).
func length3_32(r, g, b float32) float32 {
	return float32(math.Sqrt(float64(r)*float64(r) +
		float64(g)*float64(g) + float64(b)*float64(b)))
}

// length3Naive32 squares and sums entirely in float32. Kept as the
// counter-example for the depth reduction: feeding it view-space depth
// gradients near the float32 limit overflows to +Inf where maxAbs32
// stays finite. Exercised by the overflow regression test only.
func length3Naive32(r, g, b float32) float32 {
	sum := r*r + g*g + b*b
	return sqrt32(sum)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
