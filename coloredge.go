package edgefx

// colorEdge runs the Sobel stencil over the shaded RGB color around
// pixel (x, y) and returns 1 if the gradient exceeds the threshold,
// else 0.
//
// The reduction is the Euclidean norm per axis. Color is bounded in
// [0, 1] so the norm cannot overflow, and it weighs simultaneous
// change across channels more faithfully than max-absolute would.
func colorEdge(s *frameSampler, cfg *Config, x, y int) float32 {
	t := cfg.ColorThickness

	var gxR, gxG, gxB float32
	for _, tap := range sobelX {
		r, g, b := s.color(x, y, tap.dx, tap.dy, t)
		gxR += tap.weight * r
		gxG += tap.weight * g
		gxB += tap.weight * b
	}
	var gyR, gyG, gyB float32
	for _, tap := range sobelY {
		r, g, b := s.color(x, y, tap.dx, tap.dy, t)
		gyR += tap.weight * r
		gyG += tap.weight * g
		gyB += tap.weight * b
	}

	grad := length3_32(gxR, gxG, gxB)
	if g := length3_32(gyR, gyG, gyB); g > grad {
		grad = g
	}

	if float64(grad) > cfg.ColorThreshold {
		return 1
	}
	return 0
}
