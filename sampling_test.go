package edgefx

import "testing"

func TestTexelPixelMode(t *testing.T) {
	s := frameSampler{width: 16, height: 16}

	tests := []struct {
		name      string
		dx, dy    int
		thickness float64
		wantX     int
		wantY     int
	}{
		{"unit step", 1, 0, 1, 6, 8},
		{"thickness rounds up", 1, 0, 2.5, 8, 8},
		{"thickness rounds down", 0, -1, 2.4, 5, 6},
		{"sub-pixel collapses", 1, 1, 0.4, 5, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := s.texel(5, 8, tt.dx, tt.dy, tt.thickness)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("texel = (%d, %d), want (%d, %d)",
					gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTexelUVMode(t *testing.T) {
	s := frameSampler{width: 16, height: 16, uvMode: true}

	tests := []struct {
		name      string
		dx, dy    int
		thickness float64
		wantX     int
		wantY     int
	}{
		// The fractional offset is applied from the pixel center; the
		// displaced coordinate resolves to the texel it lands in.
		{"small offset stays", 1, 0, 0.4, 5, 8},
		{"offset crosses texel", 1, 0, 0.6, 6, 8},
		{"negative crosses texel", -1, 0, 0.6, 4, 8},
		{"whole texel", 0, 1, 1, 5, 9},
		{"one and a half", 1, 0, 1.5, 7, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := s.texel(5, 8, tt.dx, tt.dy, tt.thickness)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("texel = (%d, %d), want (%d, %d)",
					gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTexelModesAgreeAtIntegerThickness(t *testing.T) {
	px := frameSampler{width: 16, height: 16}
	uv := frameSampler{width: 16, height: 16, uvMode: true}

	for _, thickness := range []float64{1, 2, 3} {
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {1, -1}} {
			pxX, pxY := px.texel(5, 8, d[0], d[1], thickness)
			uvX, uvY := uv.texel(5, 8, d[0], d[1], thickness)
			if pxX != uvX || pxY != uvY {
				t.Errorf("thickness %v offset %v: pixel mode (%d, %d) vs UV mode (%d, %d)",
					thickness, d, pxX, pxY, uvX, uvY)
			}
		}
	}
}

func TestNewFrameSamplerClampsSampleIndex(t *testing.T) {
	frame := &FrameInputs{
		Color: NewPixmap(4, 4),
		Depth: NewDepthBufferMS(4, 4, 2),
	}
	view := identityView(Vec3{})

	cfg := DefaultConfig()
	cfg.SampleIndex = 5
	if s := newFrameSampler(frame, view, &cfg); s.sample != 1 {
		t.Errorf("sample = %d, want clamp to last sample 1", s.sample)
	}

	cfg.SampleIndex = -3
	if s := newFrameSampler(frame, view, &cfg); s.sample != 0 {
		t.Errorf("sample = %d, want clamp to 0", s.sample)
	}

	// Without a depth buffer only sample 0 exists.
	cfg.SampleIndex = 2
	noDepth := &FrameInputs{Color: NewPixmap(4, 4)}
	if s := newFrameSampler(noDepth, view, &cfg); s.sample != 0 {
		t.Errorf("sample = %d without depth input, want 0", s.sample)
	}
}

func TestSamplerLinearDepthIdentityView(t *testing.T) {
	frame := &FrameInputs{
		Color: NewPixmap(2, 2),
		Depth: NewDepthBuffer(2, 2),
	}
	frame.Depth.Set(1, 0, -7.5)

	cfg := DefaultConfig()
	s := newFrameSampler(frame, identityView(Vec3{}), &cfg)

	if got := s.linearDepth(0, 0, 1, 0, 1); got != -7.5 {
		t.Errorf("linearDepth = %v, want stored value -7.5", got)
	}
}
