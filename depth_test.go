package edgefx

import "testing"

// makeDepthFrame builds a frame whose depth buffer is filled from fn.
// Combined with identityView, the stored values read back unchanged as
// view-space depth.
func makeDepthFrame(w, h int, fn func(x, y int) float32) *FrameInputs {
	frame := &FrameInputs{
		Color: NewPixmap(w, h),
		Depth: NewDepthBuffer(w, h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			frame.Depth.Set(x, y, fn(x, y))
		}
	}
	return frame
}

// depthStep returns a depth field with a vertical step at column k.
func depthStep(k int, a, b float32) func(x, y int) float32 {
	return func(x, y int) float32 {
		if x < k {
			return a
		}
		return b
	}
}

func TestDepthEdgeStepLocalization(t *testing.T) {
	// Step of 2.5 between columns 3 and 4; the Sobel gradient there is
	// 4*2.5 = 10. With threshold 4 only the two pixels abutting the
	// step fire.
	frame := makeDepthFrame(8, 5, depthStep(4, 10, 12.5))
	view := identityView(Vec3{})

	cfg := DefaultConfig()
	cfg.DepthThreshold = 4
	cfg.SteepAngleMultiplier = 0

	s := newFrameSampler(frame, view, &cfg)
	facing := V3(0, 0, 1)

	for x := 0; x < 8; x++ {
		got := depthEdge(&s, &cfg, x, 2, facing, facing, 10)
		want := float32(0)
		if x == 3 || x == 4 {
			want = 1
		}
		if got != want {
			t.Errorf("depthEdge at x=%d: got %v, want %v", x, got, want)
		}
	}
}

func TestDepthEdgeFlatField(t *testing.T) {
	frame := makeDepthFrame(6, 6, func(x, y int) float32 { return 42 })
	cfg := DefaultConfig()
	s := newFrameSampler(frame, identityView(Vec3{}), &cfg)
	facing := V3(0, 0, 1)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if got := depthEdge(&s, &cfg, x, y, facing, facing, 42); got != 0 {
				t.Fatalf("flat field produced an edge at (%d, %d)", x, y)
			}
		}
	}
}

func TestDepthEdgeThicknessWidensBand(t *testing.T) {
	frame := makeDepthFrame(10, 5, depthStep(4, 10, 12.5))
	cfg := DefaultConfig()
	cfg.DepthThreshold = 4
	cfg.DepthThickness = 2
	cfg.SteepAngleMultiplier = 0

	s := newFrameSampler(frame, identityView(Vec3{}), &cfg)
	facing := V3(0, 0, 1)

	// With a two-pixel stencil offset, pixels two texels from the step
	// still read across it.
	for x := 0; x < 10; x++ {
		got := depthEdge(&s, &cfg, x, 2, facing, facing, 10)
		want := float32(0)
		if x >= 2 && x <= 5 {
			want = 1
		}
		if got != want {
			t.Errorf("depthEdge at x=%d: got %v, want %v", x, got, want)
		}
	}
}

func TestDepthEdgeSteepAngleSuppression(t *testing.T) {
	// Gradient 10 at the step, base threshold 4. A surface viewed
	// edge-on (normal perpendicular to the view direction) widens the
	// effective threshold by roughly multiplier*|viewZ|.
	frame := makeDepthFrame(8, 5, depthStep(4, 10, 12.5))
	grazing := V3(1, 0, 0)
	viewDir := V3(0, 0, 1)

	cfg := DefaultConfig()
	cfg.DepthThreshold = 4
	cfg.SteepAngleThreshold = 0.5

	tests := []struct {
		name       string
		multiplier float64
		viewZ      float32
		normal     Vec3
		want       float32
	}{
		{"adjustment off", 0, 10, grazing, 1},
		{"grazing suppressed", 1, 10, grazing, 0},
		{"facing unaffected", 1, 10, viewDir, 1},
		{"grazing near camera", 1, 0.1, grazing, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cfg
			cfg.SteepAngleMultiplier = tt.multiplier
			s := newFrameSampler(frame, identityView(Vec3{}), &cfg)

			got := depthEdge(&s, &cfg, 4, 2, tt.normal, viewDir, tt.viewZ)
			if got != tt.want {
				t.Errorf("depthEdge = %v, want %v", got, tt.want)
			}
		})
	}
}
