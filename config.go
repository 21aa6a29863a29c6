package edgefx

// Config is the per-frame parameter block for edge detection.
// It is read-only for the duration of one Apply call; callers may
// mutate it freely between frames.
//
// A detector is active only when its threshold is positive and its
// thickness is at least one effective pixel. Degenerate values (zero
// or negative threshold, zero thickness) simply disable the detector;
// they are never an error.
type Config struct {
	// DepthThreshold is the minimum view-space depth gradient that is
	// reported as an edge. Areas where the depth variation exceeds
	// this threshold are marked as edges. Zero disables the depth
	// detector.
	DepthThreshold float64

	// NormalThreshold is the minimum normal-direction gradient that is
	// reported as an edge. Zero disables the normal detector.
	NormalThreshold float64

	// ColorThreshold is the minimum color gradient that is reported as
	// an edge. Zero disables the color detector.
	ColorThreshold float64

	// DepthThickness, NormalThickness and ColorThickness set the Sobel
	// stencil's neighbor-sampling offset per channel. In the default
	// pixel mode the unit is whole pixels; with UVThickness the unit
	// is texels expressed in normalized UV space, which permits
	// sub-pixel offsets. Values below one effective pixel disable the
	// detector, equivalently to a zero threshold.
	DepthThickness  float64
	NormalThickness float64
	ColorThickness  float64

	// SteepAngleThreshold is where the depth-threshold widening starts
	// as a surface turns away from the camera. The steepness term
	// s = 1 - max(dot(N, V), eps) is remapped by
	// smoothstep(SteepAngleThreshold, 1, s). Range [0, 1].
	SteepAngleThreshold float64

	// SteepAngleMultiplier scales the steep-angle widening. Zero turns
	// the adjustment off entirely. Must be >= 0.
	SteepAngleMultiplier float64

	// EdgeColor is blended into the output wherever an edge is
	// detected. Alpha is carried for configuration symmetry but is not
	// used by the compositor.
	EdgeColor RGBA

	// UVThickness interprets the thickness fields as fractional texel
	// offsets in normalized UV space instead of whole pixels.
	UVThickness bool

	// SampleIndex selects which sample of multisampled depth/normal
	// inputs the detectors read. It is fixed for the whole of one
	// pixel's evaluation and clamped to the input's sample count.
	SampleIndex int
}

// DefaultConfig returns the default edge-detection configuration:
// depth and normal detection on, color detection off, black edges.
func DefaultConfig() Config {
	return Config{
		DepthThreshold:       1.0,
		NormalThreshold:      0.8,
		ColorThreshold:       0.0,
		DepthThickness:       1.0,
		NormalThickness:      1.0,
		ColorThickness:       1.0,
		SteepAngleThreshold:  0.5,
		SteepAngleMultiplier: 1.0,
		EdgeColor:            Black,
	}
}

// depthEnabled reports whether the depth detector contributes.
func (c *Config) depthEnabled() bool {
	return c.DepthThreshold > 0 && c.DepthThickness > 0
}

// normalEnabled reports whether the normal detector contributes.
func (c *Config) normalEnabled() bool {
	return c.NormalThreshold > 0 && c.NormalThickness > 0
}

// colorEnabled reports whether the color detector contributes.
func (c *Config) colorEnabled() bool {
	return c.ColorThreshold > 0 && c.ColorThickness > 0
}

// enabled reports whether any detector contributes. A fully disabled
// config makes Apply a plain copy of the source image.
func (c *Config) enabled() bool {
	return c.depthEnabled() || c.normalEnabled() || c.colorEnabled()
}
