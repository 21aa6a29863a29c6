package edgefx

// maxCombine reduces the per-detector edge strengths to one edge
// signal. Disabled detectors contribute zero, so they never affect the
// others' output.
func maxCombine(depth, normal, color float32) float32 {
	edge := depth
	if normal > edge {
		edge = normal
	}
	if color > edge {
		edge = color
	}
	return edge
}

// compositePixel blends the configured edge color into the source
// color using the edge strength as the mix factor. With boolean edge
// values this is a hard replace; graded strengths yield anti-aliased
// edges through the same interpolation. EdgeColor's alpha is not
// blended; the source alpha carries through.
func compositePixel(src RGBA, edgeColor RGBA, edge float32) RGBA {
	if edge <= 0 {
		return src
	}
	t := float64(edge)
	return RGBA{
		R: src.R + (edgeColor.R-src.R)*t,
		G: src.G + (edgeColor.G-src.G)*t,
		B: src.B + (edgeColor.B-src.B)*t,
		A: src.A,
	}
}
