package edgefx

import (
	"image/color"
	"math"
	"testing"
)

func TestRGB(t *testing.T) {
	c := RGB(0.2, 0.4, 0.6)
	if c.A != 1 {
		t.Errorf("RGB alpha = %v, want 1", c.A)
	}
	if c.R != 0.2 || c.G != 0.4 || c.B != 0.6 {
		t.Errorf("RGB = %+v", c)
	}
}

func TestRGBALerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if got != want {
		t.Errorf("Lerp = %+v, want %+v", got, want)
	}

	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp(t=0) = %+v, want start color", got)
	}
	if got := Red.Lerp(Blue, 1); got != Blue {
		t.Errorf("Lerp(t=1) = %+v, want end color", got)
	}
}

func TestColorConversionRoundTrip(t *testing.T) {
	orig := RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	back := FromColor(orig.Color())

	const eps = 1.0 / 255
	if math.Abs(back.R-orig.R) > eps || math.Abs(back.G-orig.G) > eps ||
		math.Abs(back.B-orig.B) > eps || math.Abs(back.A-orig.A) > eps {
		t.Errorf("round trip %+v -> %+v", orig, back)
	}
}

func TestColorClamping(t *testing.T) {
	// Out-of-range components clamp instead of wrapping.
	c := RGBA{R: 2, G: -1, B: 0.5, A: 1}
	got := c.Color().(color.NRGBA)
	if got.R != 255 || got.G != 0 {
		t.Errorf("clamped color = %+v, want R=255 G=0", got)
	}
}
