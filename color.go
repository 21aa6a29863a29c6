package edgefx

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Values are not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = RGBA{R: 0, G: 0, B: 0, A: 1}
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Red         = RGBA{R: 1, G: 0, B: 0, A: 1}
	Green       = RGBA{R: 0, G: 1, B: 0, A: 1}
	Blue        = RGBA{R: 0, G: 0, B: 1, A: 1}
	Transparent = RGBA{R: 0, G: 0, B: 0, A: 0}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// Lerp linearly interpolates between c and other.
// t=0 returns c, t=1 returns other. Alpha interpolates with the rest.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// clamp255 clamps v to the [0, 255] range.
func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
