package edgefx

import "math"

// frameSampler resolves how the detectors read a neighbor pixel. It
// fixes the multisample index and coordinate mode once per Apply, so
// every gradient inside one pixel's evaluation reads the same sample
// through the same policy.
//
// Two coordinate modes exist:
//
//   - pixel mode: the stencil offset times the thickness is rounded to
//     whole texels and fetched directly
//   - UV mode: the offset is applied in normalized UV space, allowing
//     sub-pixel thickness; the resulting coordinate resolves to the
//     nearest texel
//
// All fetches clamp to the image bounds (edge-replicate).
type frameSampler struct {
	frame  *FrameInputs
	view   *ViewParams
	width  int
	height int
	sample int
	uvMode bool
}

// newFrameSampler builds the sampling policy for one Apply call.
func newFrameSampler(frame *FrameInputs, view *ViewParams, cfg *Config) frameSampler {
	s := frameSampler{
		frame:  frame,
		view:   view,
		width:  frame.Color.Width(),
		height: frame.Color.Height(),
		uvMode: cfg.UVThickness,
	}
	samples := 1
	if frame.Depth != nil {
		samples = frame.Depth.Samples()
	}
	s.sample = clampInt(cfg.SampleIndex, 0, samples-1)
	return s
}

// texel resolves a stencil offset (dx, dy in {-1, 0, 1}) scaled by the
// thickness into integer texel coordinates.
func (s *frameSampler) texel(x, y, dx, dy int, thickness float64) (int, int) {
	if s.uvMode {
		// Apply the offset at UV precision, then take the texel the
		// displaced coordinate lands in.
		fx := float64(x) + 0.5 + float64(dx)*thickness
		fy := float64(y) + 0.5 + float64(dy)*thickness
		return int(math.Floor(fx)), int(math.Floor(fy))
	}
	step := int(math.Round(thickness))
	return x + dx*step, y + dy*step
}

// linearDepth fetches NDC depth at the displaced coordinate and
// linearizes it to view-space Z. Returns float32: the kernel operates
// at GPU precision so the CPU path is bit-comparable with the shader.
func (s *frameSampler) linearDepth(x, y, dx, dy int, thickness float64) float32 {
	tx, ty := s.texel(x, y, dx, dy, thickness)
	ndc := s.frame.Depth.Fetch(tx, ty, s.sample)
	return float32(s.view.LinearDepth(float64(ndc)))
}

// normal fetches the decoded unit normal at the displaced coordinate.
func (s *frameSampler) normal(x, y, dx, dy int, thickness float64) Vec3 {
	tx, ty := s.texel(x, y, dx, dy, thickness)
	return s.frame.Normal.Fetch(tx, ty, s.sample)
}

// color fetches the RGB color at the displaced coordinate.
func (s *frameSampler) color(x, y, dx, dy int, thickness float64) (float32, float32, float32) {
	tx, ty := s.texel(x, y, dx, dy, thickness)
	return s.frame.Color.rgb32(tx, ty)
}
