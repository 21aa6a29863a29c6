package edgefx

// normalEdge runs the Sobel stencil per channel of the decoded
// view-space normal around pixel (x, y) and returns 1 if the gradient
// exceeds the threshold, else 0.
//
// The vector gradients reduce via component-wise max-absolute, then
// max over the two axes. No steep-angle adjustment: normal
// discontinuities are angle-invariant by construction.
func normalEdge(s *frameSampler, cfg *Config, x, y int) float32 {
	t := cfg.NormalThickness

	var gxX, gxY, gxZ float32
	for _, tap := range sobelX {
		n := s.normal(x, y, tap.dx, tap.dy, t)
		gxX += tap.weight * float32(n.X)
		gxY += tap.weight * float32(n.Y)
		gxZ += tap.weight * float32(n.Z)
	}
	var gyX, gyY, gyZ float32
	for _, tap := range sobelY {
		n := s.normal(x, y, tap.dx, tap.dy, t)
		gyX += tap.weight * float32(n.X)
		gyY += tap.weight * float32(n.Y)
		gyZ += tap.weight * float32(n.Z)
	}

	grad := maxAbs32(maxAbs32(gxX, gxY), gxZ)
	if g := maxAbs32(maxAbs32(gyX, gyY), gyZ); g > grad {
		grad = g
	}

	if float64(grad) > cfg.NormalThreshold {
		return 1
	}
	return 0
}
