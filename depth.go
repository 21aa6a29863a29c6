package edgefx

// steepnessEpsilon keeps the fresnel-style steepness term away from
// the singularity at dot(N, V) == 0.
const steepnessEpsilon = 1e-6

// depthEdge runs the Sobel stencil over linear view-space depth around
// pixel (x, y) and returns 1 if the gradient exceeds the
// angle-adjusted threshold, else 0.
//
// The reduction is max-of-absolutes, not a Euclidean norm: depth
// derivatives at grazing angles can be large enough that squaring them
// overflows float32. See maxAbs32.
func depthEdge(s *frameSampler, cfg *Config, x, y int, normal, viewDir Vec3, viewZ float32) float32 {
	t := cfg.DepthThickness

	var gx, gy float32
	for _, tap := range sobelX {
		gx += tap.weight * s.linearDepth(x, y, tap.dx, tap.dy, t)
	}
	for _, tap := range sobelY {
		gy += tap.weight * s.linearDepth(x, y, tap.dx, tap.dy, t)
	}
	grad := maxAbs32(gx, gy)

	// Surfaces viewed near-tangentially produce legitimate large depth
	// gradients that are not edges. Widen the threshold as the view
	// direction approaches the surface plane.
	facing := normal.Dot(viewDir)
	if facing < steepnessEpsilon {
		facing = steepnessEpsilon
	}
	steepness := 1 - facing
	adjustment := smoothstep(cfg.SteepAngleThreshold, 1, steepness) *
		cfg.SteepAngleMultiplier * float64(abs32(viewZ))
	effective := cfg.DepthThreshold * (1 + adjustment)

	if float64(grad) > effective {
		return 1
	}
	return 0
}
